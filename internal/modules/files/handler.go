package files

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"varanbook/internal/middleware"
	"varanbook/internal/pkg/response"
	"varanbook/internal/services"
)

// Handler is a thin wrapper over the object-storage collaborator. It
// only scopes upload keys to the caller's tenant; the upload itself goes
// straight to storage.
type Handler struct {
	storage services.ObjectStorage
}

func NewHandler(storage services.ObjectStorage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/files/presign", h.Presign)
}

func (h *Handler) Presign(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	if actor.TenantID == nil {
		response.Error(c, http.StatusBadRequest, "TENANT_REQUIRED", "Platform operators cannot upload tenant files")
		return
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	url, key, err := h.storage.PresignPut(req.Purpose, *actor.TenantID, req.Filename, req.ContentType)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PRESIGN_FAILED", "Failed to create upload URL")
		return
	}
	response.Success(c, http.StatusOK, PresignResponse{UploadURL: url, Key: key})
}
