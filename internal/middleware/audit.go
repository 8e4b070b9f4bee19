package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"varanbook/internal/domain"
)

const maxAuditUserAgent = 512

// Audit persists one AuditLog row per mutating request once the handler
// chain has finished. Reads are not logged. The write is best-effort: a
// failure is logged server-side and never alters the response.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return
		}

		entry := domain.AuditLog{
			Action:     strings.ToLower(c.Request.Method) + ":" + c.Request.URL.Path,
			IPAddress:  c.ClientIP(),
			UserAgent:  clip(c.GetHeader("User-Agent"), maxAuditUserAgent),
			StatusCode: c.Writer.Status(),
			DurationMS: time.Since(start).Milliseconds(),
		}
		// Tenant and user context are read after Next so rows carry
		// whatever the resolver and auth middleware established.
		if tenant, ok := CurrentTenant(c); ok {
			entry.TenantID = &tenant.ID
		}
		if user, ok := CurrentUser(c); ok {
			entry.UserID = &user.ID
		}

		if err := db.Create(&entry).Error; err != nil {
			log.Printf("audit_write_failed action=%s error=%q", entry.Action, err)
		}
	}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
