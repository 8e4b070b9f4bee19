package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"varanbook/internal/database"
	"varanbook/internal/domain"
)

func setupAuditRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	r := gin.New()
	r.Use(Audit(db))
	r.POST("/api/v1/things", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	r.GET("/api/v1/things", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r, db
}

func TestAudit_MutatingRequestWritesRow(t *testing.T) {
	r, db := setupAuditRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/things", strings.NewReader("{}"))
	req.Header.Set("User-Agent", "audit-test-agent")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var rows []domain.AuditLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "post:/api/v1/things", rows[0].Action)
	assert.Equal(t, http.StatusCreated, rows[0].StatusCode)
	assert.Equal(t, "audit-test-agent", rows[0].UserAgent)
	assert.Nil(t, rows[0].TenantID)
	assert.Nil(t, rows[0].UserID)
}

func TestAudit_ReadsAreNotLogged(t *testing.T) {
	r, db := setupAuditRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/things", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var n int64
	require.NoError(t, db.Model(&domain.AuditLog{}).Count(&n).Error)
	assert.Zero(t, n)
}
