package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleAdmin      UserRole = "admin"
	RoleMember     UserRole = "member"
)

// Level encodes the fixed role hierarchy as a total order:
// super_admin > admin > member. Unknown roles rank below everything.
func (r UserRole) Level() int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

func (r UserRole) AtLeast(min UserRole) bool {
	return r.Level() >= min.Level()
}

func (r UserRole) Valid() bool {
	return r.Level() > 0
}

// User is tenant-scoped except for super admins, which carry no tenant.
// Invariant: TenantID == nil ⇔ Role == super_admin.
type User struct {
	ID       uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID *uuid.UUID `json:"tenant_id" gorm:"type:uuid;index"`
	Tenant   *Tenant    `json:"-" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`

	Email        string `json:"email" gorm:"size:320;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"size:1024;not null"`

	FullName string `json:"full_name" gorm:"size:200;not null"`
	Phone    string `json:"phone,omitempty" gorm:"size:20"`

	Role       UserRole `json:"role" gorm:"size:20;not null;default:member"`
	IsActive   bool     `json:"is_active" gorm:"default:true"`
	IsVerified bool     `json:"is_verified" gorm:"default:false"`

	FCMToken string `json:"-" gorm:"size:512"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SameTenant reports whether the user belongs to the given tenant.
// Super admins have no tenant and never match.
func (u *User) SameTenant(tenantID uuid.UUID) bool {
	return u.TenantID != nil && *u.TenantID == tenantID
}
