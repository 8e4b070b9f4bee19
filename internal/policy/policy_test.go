package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"varanbook/internal/domain"
)

func member(tenantID uuid.UUID) *domain.User {
	return &domain.User{ID: uuid.New(), TenantID: &tenantID, Role: domain.RoleMember}
}

func admin(tenantID uuid.UUID) *domain.User {
	return &domain.User{ID: uuid.New(), TenantID: &tenantID, Role: domain.RoleAdmin}
}

func operator() *domain.User {
	return &domain.User{ID: uuid.New(), Role: domain.RoleSuperAdmin}
}

func activeProfile(tenantID uuid.UUID) *domain.Profile {
	return &domain.Profile{ID: uuid.New(), TenantID: tenantID, UserID: uuid.New(), Status: domain.ProfileActive}
}

func TestRoleHierarchy(t *testing.T) {
	assert.True(t, domain.RoleSuperAdmin.AtLeast(domain.RoleAdmin))
	assert.True(t, domain.RoleAdmin.AtLeast(domain.RoleMember))
	assert.True(t, domain.RoleMember.AtLeast(domain.RoleMember))
	assert.False(t, domain.RoleMember.AtLeast(domain.RoleAdmin))
	assert.False(t, domain.RoleAdmin.AtLeast(domain.RoleSuperAdmin))
	assert.False(t, domain.UserRole("ghost").AtLeast(domain.RoleMember))
}

func TestCanReadProfile_Operator(t *testing.T) {
	assert.NoError(t, CanReadProfile(operator(), activeProfile(uuid.New())))
}

func TestCanReadProfile_AdminSameTenant(t *testing.T) {
	tenantID := uuid.New()
	p := activeProfile(tenantID)
	p.Status = domain.ProfileDraft

	assert.NoError(t, CanReadProfile(admin(tenantID), p))
}

func TestCanReadProfile_AdminCrossTenant(t *testing.T) {
	assert.ErrorIs(t, CanReadProfile(admin(uuid.New()), activeProfile(uuid.New())), ErrNotFound)
}

func TestCanReadProfile_MemberOwnDraft(t *testing.T) {
	tenantID := uuid.New()
	u := member(tenantID)
	p := activeProfile(tenantID)
	p.UserID = u.ID
	p.Status = domain.ProfileDraft

	assert.NoError(t, CanReadProfile(u, p))
}

func TestCanReadProfile_MemberSameTenantActive(t *testing.T) {
	tenantID := uuid.New()
	assert.NoError(t, CanReadProfile(member(tenantID), activeProfile(tenantID)))
}

func TestCanReadProfile_MemberSameTenantDraft(t *testing.T) {
	tenantID := uuid.New()
	p := activeProfile(tenantID)
	p.Status = domain.ProfileDraft

	assert.ErrorIs(t, CanReadProfile(member(tenantID), p), ErrAccessDenied)
}

func TestCanReadProfile_MemberCrossTenant(t *testing.T) {
	// Cross-tenant reads must look exactly like a missing resource.
	assert.ErrorIs(t, CanReadProfile(member(uuid.New()), activeProfile(uuid.New())), ErrNotFound)
}

func TestCanWriteProfile_MemberOwnOnly(t *testing.T) {
	tenantID := uuid.New()
	u := member(tenantID)

	own := activeProfile(tenantID)
	own.UserID = u.ID
	assert.NoError(t, CanWriteProfile(u, own))

	other := activeProfile(tenantID)
	assert.ErrorIs(t, CanWriteProfile(u, other), ErrAccessDenied)
}

func TestCanWriteProfile_AdminTenantBound(t *testing.T) {
	tenantID := uuid.New()
	assert.NoError(t, CanWriteProfile(admin(tenantID), activeProfile(tenantID)))
	assert.ErrorIs(t, CanWriteProfile(admin(uuid.New()), activeProfile(uuid.New())), ErrNotFound)
}

func TestCanActOnTenant(t *testing.T) {
	tenantID := uuid.New()

	assert.NoError(t, CanActOnTenant(operator(), tenantID))
	assert.NoError(t, CanActOnTenant(admin(tenantID), tenantID))
	assert.ErrorIs(t, CanActOnTenant(admin(uuid.New()), tenantID), ErrNotFound)
	assert.ErrorIs(t, CanActOnTenant(member(tenantID), tenantID), ErrAccessDenied)
}
