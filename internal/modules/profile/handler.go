package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"varanbook/internal/middleware"
	"varanbook/internal/pkg/response"
	"varanbook/internal/policy"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	profiles := protected.Group("/profiles")
	{
		profiles.POST("", h.Create)
		profiles.GET("", middleware.AdminOnly(), h.List)
		profiles.GET("/me", h.Me)
		profiles.GET("/:id", h.Get)
		profiles.PATCH("/:id", h.Update)
		profiles.DELETE("/:id", middleware.AdminOnly(), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoTenant):
			response.Error(c, http.StatusBadRequest, "TENANT_REQUIRED", "Platform operators have no biodata profile")
		case errors.Is(err, ErrProfileExists):
			response.Error(c, http.StatusConflict, "PROFILE_EXISTS", "Profile already exists for this user")
		default:
			response.Error(c, http.StatusInternalServerError, "PROFILE_CREATE_FAILED", "Failed to create profile")
		}
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// List serves the staff listing. Tenant admins see their own tenant;
// operators name the tenant through the resolver (header or subdomain).
func (h *Handler) List(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	var tenantID uuid.UUID
	if actor.TenantID != nil {
		tenantID = *actor.TenantID
	} else if tenant, found := middleware.CurrentTenant(c); found {
		tenantID = tenant.ID
	} else {
		response.Error(c, http.StatusBadRequest, "TENANT_REQUIRED", "Request must carry a valid tenant")
		return
	}

	list, err := h.service.List(c.Request.Context(), actor, tenantID, req)
	if err != nil {
		h.writeServiceError(c, err, "PROFILE_LIST_FAILED", "Failed to list profiles")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Me(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	p, err := h.service.Me(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err, "PROFILE_GET_FAILED", "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Get(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile id")
		return
	}

	p, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.writeServiceError(c, err, "PROFILE_GET_FAILED", "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile id")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err, "PROFILE_UPDATE_FAILED", "Failed to update profile")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.writeServiceError(c, err, "PROFILE_DELETE_FAILED", "Failed to delete profile")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeServiceError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, policy.ErrNotFound):
		response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
	case errors.Is(err, policy.ErrAccessDenied):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}
