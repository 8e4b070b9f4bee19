package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"varanbook/internal/middleware"
	"varanbook/internal/pkg/password"
	"varanbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes member self-registration. It is public
// but requires a resolved tenant (header or subdomain).
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/users/register", h.Register)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.GET("/me", h.Me)
		users.PATCH("/me", h.UpdateMe)
		users.POST("", middleware.AdminOnly(), h.Onboard)
		users.DELETE("/:id", middleware.AdminOnly(), h.Deactivate)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := password.ValidatePolicy(req.Password); err != nil {
		writeWeakPassword(c, err)
		return
	}

	tenant, _ := middleware.CurrentTenant(c)
	u, err := h.service.Register(c.Request.Context(), tenant, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTenantRequired):
			response.Error(c, http.StatusBadRequest, "TENANT_REQUIRED", "Request must carry a valid tenant")
		case errors.Is(err, ErrUserQuotaFull):
			response.Error(c, http.StatusForbidden, "USER_QUOTA_FULL", "Tenant user limit reached")
		case errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTER_FAILED", "Failed to register user")
		}
		return
	}
	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) Onboard(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := password.ValidatePolicy(req.Password); err != nil {
		writeWeakPassword(c, err)
		return
	}

	u, err := h.service.Onboard(c.Request.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be member or admin")
		case errors.Is(err, ErrTenantRequired):
			response.Error(c, http.StatusBadRequest, "TENANT_REQUIRED", "An active tenant must be named")
		case errors.Is(err, ErrForbiddenTenant):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Cannot onboard users into another tenant")
		case errors.Is(err, ErrAdminQuotaFull):
			response.Error(c, http.StatusForbidden, "ADMIN_QUOTA_FULL", "Tenant admin limit reached")
		case errors.Is(err, ErrUserQuotaFull):
			response.Error(c, http.StatusForbidden, "USER_QUOTA_FULL", "Tenant user limit reached")
		case errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "ONBOARD_FAILED", "Failed to onboard user")
		}
		return
	}
	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) Me(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	response.Success(c, http.StatusOK, actor)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.UpdateMe(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update profile")
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) Deactivate(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), actor, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DEACTIVATE_FAILED", "Failed to deactivate user")
		return
	}
	c.Status(http.StatusNoContent)
}

func writeWeakPassword(c *gin.Context, err error) {
	var perr *password.PolicyError
	if errors.As(err, &perr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "WEAK_PASSWORD", "Password does not meet the strength policy", perr.Missing)
		return
	}
	response.Error(c, http.StatusBadRequest, "WEAK_PASSWORD", err.Error())
}
