package shortlist

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"varanbook/internal/domain"
	"varanbook/internal/middleware"
	"varanbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	shortlists := protected.Group("/shortlists")
	{
		shortlists.POST("", h.Create)
		shortlists.GET("/sent", h.ListSent)
		shortlists.GET("/received", h.ListReceived)
		shortlists.POST("/:id/respond", h.Respond)
		shortlists.DELETE("/:id", h.Withdraw)
	}
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateShortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	entry, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoProfile):
			response.Error(c, http.StatusBadRequest, "PROFILE_REQUIRED", "Create your profile first")
		case errors.Is(err, ErrSelfShortlist):
			response.Error(c, http.StatusBadRequest, "SELF_SHORTLIST", "Cannot shortlist your own profile")
		case errors.Is(err, ErrTargetNotFound):
			response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
		case errors.Is(err, ErrTargetNotActive):
			response.Error(c, http.StatusBadRequest, "PROFILE_NOT_ACTIVE", "Profile is not published")
		case errors.Is(err, ErrDuplicate):
			response.Error(c, http.StatusConflict, "ALREADY_SHORTLISTED", "Profile is already shortlisted")
		default:
			response.Error(c, http.StatusInternalServerError, "SHORTLIST_FAILED", "Failed to create shortlist entry")
		}
		return
	}
	response.Success(c, http.StatusCreated, entry)
}

func (h *Handler) ListSent(c *gin.Context) {
	h.list(c, h.service.ListSent)
}

func (h *Handler) ListReceived(c *gin.Context) {
	h.list(c, h.service.ListReceived)
}

func (h *Handler) Respond(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid shortlist id")
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	entry, err := h.service.Respond(c.Request.Context(), actor, id, req.Accept)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoProfile):
			response.Error(c, http.StatusBadRequest, "PROFILE_REQUIRED", "Create your profile first")
		case errors.Is(err, ErrShortlistNotFound):
			response.Error(c, http.StatusNotFound, "SHORTLIST_NOT_FOUND", "Shortlist entry not found")
		case errors.Is(err, ErrNotRecipient):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the recipient can respond")
		case errors.Is(err, ErrAlreadyDecided):
			response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Shortlist entry was already answered")
		default:
			response.Error(c, http.StatusInternalServerError, "RESPOND_FAILED", "Failed to update shortlist entry")
		}
		return
	}
	response.Success(c, http.StatusOK, entry)
}

func (h *Handler) Withdraw(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid shortlist id")
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, ErrNoProfile):
			response.Error(c, http.StatusBadRequest, "PROFILE_REQUIRED", "Create your profile first")
		case errors.Is(err, ErrShortlistNotFound):
			response.Error(c, http.StatusNotFound, "SHORTLIST_NOT_FOUND", "Shortlist entry not found")
		case errors.Is(err, ErrNotSender):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the sender can withdraw")
		default:
			response.Error(c, http.StatusInternalServerError, "WITHDRAW_FAILED", "Failed to withdraw shortlist entry")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

type listFn func(ctx context.Context, actor *domain.User, req ListRequest) (*ListResponse, error)

func (h *Handler) list(c *gin.Context, fn listFn) {
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

	list, err := fn(c.Request.Context(), actor, req)
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			response.Error(c, http.StatusBadRequest, "PROFILE_REQUIRED", "Create your profile first")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SHORTLIST_LIST_FAILED", "Failed to list shortlist entries")
		return
	}
	response.Success(c, http.StatusOK, list)
}
