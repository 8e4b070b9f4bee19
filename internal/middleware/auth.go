package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"varanbook/internal/domain"
	jwtsvc "varanbook/internal/pkg/jwt"
	"varanbook/internal/pkg/response"
	"varanbook/internal/repository"
)

const (
	ctxUserKey   = "current_user"
	ctxClaimsKey = "claims"
)

// Auth validates the bearer access token and loads the authenticated user.
//
// The signature check is pure and stateless; the DB load afterwards is what
// makes deactivation (of the user or of their whole tenant) take effect
// mid-session without a token blacklist.
func Auth(jwt *jwtsvc.Service, users *repository.UserRepository, tenants *repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := jwt.Verify(tokenStr, jwtsvc.KindAccess)
		if err != nil {
			switch {
			case errors.Is(err, jwtsvc.ErrExpiredToken):
				abortUnauthorized(c, "TOKEN_EXPIRED", "Token has expired")
			case errors.Is(err, jwtsvc.ErrWrongTokenKind):
				abortUnauthorized(c, "WRONG_TOKEN_KIND", "Use an access token")
			default:
				abortUnauthorized(c, "UNAUTHORIZED", "Invalid token")
			}
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "UNAUTHORIZED", "Invalid token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			abortUnauthorized(c, "UNAUTHORIZED", "Could not validate credentials")
			return
		}

		if user.TenantID != nil {
			if _, err := tenants.GetActiveByID(c.Request.Context(), *user.TenantID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					response.Error(c, http.StatusForbidden, "ACCOUNT_DEACTIVATED", "Account is deactivated")
					c.Abort()
					return
				}
				response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
				c.Abort()
				return
			}
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		abortUnauthorized(c, "UNAUTHORIZED", "Missing Authorization header")
		return "", false
	}
	if !strings.HasPrefix(h, "Bearer ") {
		abortUnauthorized(c, "UNAUTHORIZED", "Invalid Authorization header")
		return "", false
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenStr == "" {
		abortUnauthorized(c, "UNAUTHORIZED", "Empty token")
		return "", false
	}
	return tokenStr, true
}

func abortUnauthorized(c *gin.Context, code, message string) {
	response.Error(c, http.StatusUnauthorized, code, message)
	c.Abort()
}

// CurrentUser returns the authenticated user attached by Auth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(ctxUserKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}
