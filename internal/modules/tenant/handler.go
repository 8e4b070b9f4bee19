package tenant

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"varanbook/internal/middleware"
	"varanbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts tenant administration under the protected group.
// Every route requires the super admin role: tenants live above the
// tenant boundary.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	admin := protected.Group("/admin/tenants", middleware.SuperAdminOnly())
	{
		admin.POST("", h.Create)
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Deactivate)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSlug):
			response.Error(c, http.StatusBadRequest, "INVALID_SLUG", "Slug must contain only lowercase letters, digits and hyphens")
		case errors.Is(err, ErrSlugTaken):
			response.Error(c, http.StatusConflict, "SLUG_TAKEN", "A tenant with this slug already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "TENANT_CREATE_FAILED", "Failed to create tenant")
		}
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "is_active must be a boolean")
			return
		}
		isActive = &v
	}

	list, err := h.service.List(c.Request.Context(), isActive, page, pageSize)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "TENANT_LIST_FAILED", "Failed to list tenants")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tenant id")
		return
	}

	t, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			response.Error(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "TENANT_GET_FAILED", "Failed to load tenant")
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tenant id")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			response.Error(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "TENANT_UPDATE_FAILED", "Failed to update tenant")
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tenant id")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			response.Error(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "TENANT_DEACTIVATE_FAILED", "Failed to deactivate tenant")
		return
	}
	c.Status(http.StatusNoContent)
}
