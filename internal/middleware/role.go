package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"varanbook/internal/domain"
	"varanbook/internal/pkg/response"
)

// RequireRole ensures the authenticated user's role ranks at least as high
// as min in the fixed hierarchy (super_admin > admin > member).
func RequireRole(min domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if !user.Role.AtLeast(min) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// SuperAdminOnly restricts a route to platform operators.
func SuperAdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleSuperAdmin)
}

// AdminOnly restricts a route to tenant admins and above.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
