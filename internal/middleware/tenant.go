package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"varanbook/internal/domain"
	"varanbook/internal/repository"
)

const ctxTenantKey = "tenant"

// Paths that do not require a tenant context: health probe, auth endpoints
// (tenant is derived from the decoded token later) and the platform
// operator's tenant management surface.
var tenantFreePrefixes = []string{
	"/health",
	"/api/v1/auth",
	"/api/v1/admin/tenants",
}

// ResolveTenant attaches the active tenant for the request, resolved from
// the explicit tenant-id header first, then from the leading hostname label
// when the host has at least three dot-separated parts. It never aborts:
// no resolvable tenant simply means no tenant, and downstream authorization
// decides what that implies. Deactivated tenants do not resolve, which is
// how deactivation takes effect network-wide without touching other rows.
func ResolveTenant(headerName string, tenants *repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range tenantFreePrefixes {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Next()
				return
			}
		}

		if raw := c.GetHeader(headerName); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				// Malformed id resolves to no tenant, not an error.
				c.Next()
				return
			}
			if t, err := tenants.GetActiveByID(c.Request.Context(), id); err == nil {
				c.Set(ctxTenantKey, t)
			}
			c.Next()
			return
		}

		host := c.Request.Host
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		parts := strings.Split(host, ".")
		if len(parts) >= 3 { // slug.domain.tld; a bare domain is never a tenant
			if t, err := tenants.GetActiveBySlug(c.Request.Context(), parts[0]); err == nil {
				c.Set(ctxTenantKey, t)
			}
		}

		c.Next()
	}
}

// CurrentTenant returns the tenant resolved for this request, if any.
func CurrentTenant(c *gin.Context) (*domain.Tenant, bool) {
	v, exists := c.Get(ctxTenantKey)
	if !exists {
		return nil, false
	}
	t, ok := v.(*domain.Tenant)
	return t, ok
}
