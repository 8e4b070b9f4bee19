package policy

import (
	"errors"

	"github.com/google/uuid"

	"varanbook/internal/domain"
)

var (
	// ErrAccessDenied maps to 403: the caller exists in the right tenant
	// but lacks the privilege.
	ErrAccessDenied = errors.New("access denied")
	// ErrNotFound maps to 404 and is deliberately returned for any
	// cross-tenant resource so error codes cannot be used to probe for
	// another tenant's data.
	ErrNotFound = errors.New("resource not found")
)

// CanReadProfile decides whether user may read the given profile.
//
// super_admin: always. admin: same tenant only. member: own profile, or a
// same-tenant profile whose status is active (published biodata is visible
// tenant-wide; drafts and suspended profiles only to the owner and staff).
func CanReadProfile(u *domain.User, p *domain.Profile) error {
	switch u.Role {
	case domain.RoleSuperAdmin:
		return nil
	case domain.RoleAdmin:
		if !u.SameTenant(p.TenantID) {
			return ErrNotFound
		}
		return nil
	case domain.RoleMember:
		if p.UserID == u.ID {
			return nil
		}
		if !u.SameTenant(p.TenantID) {
			return ErrNotFound
		}
		if p.Status != domain.ProfileActive {
			return ErrAccessDenied
		}
		return nil
	default:
		return ErrAccessDenied
	}
}

// CanWriteProfile decides mutation rights: members only on their own
// profile, admins within their tenant, super admins everywhere.
func CanWriteProfile(u *domain.User, p *domain.Profile) error {
	switch u.Role {
	case domain.RoleSuperAdmin:
		return nil
	case domain.RoleAdmin:
		if !u.SameTenant(p.TenantID) {
			return ErrNotFound
		}
		return nil
	case domain.RoleMember:
		if !u.SameTenant(p.TenantID) {
			return ErrNotFound
		}
		if p.UserID != u.ID {
			return ErrAccessDenied
		}
		return nil
	default:
		return ErrAccessDenied
	}
}

// CanActOnTenant gates tenant-scoped administrative actions (onboarding,
// deactivation, listings) for the given tenant.
func CanActOnTenant(u *domain.User, tenantID uuid.UUID) error {
	switch u.Role {
	case domain.RoleSuperAdmin:
		return nil
	case domain.RoleAdmin:
		if !u.SameTenant(tenantID) {
			return ErrNotFound
		}
		return nil
	default:
		return ErrAccessDenied
	}
}
