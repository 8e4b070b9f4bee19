package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantPlan string

const (
	PlanStarter    TenantPlan = "starter"
	PlanGrowth     TenantPlan = "growth"
	PlanEnterprise TenantPlan = "enterprise"
)

// Tenant is one matrimonial centre. The table itself is not row-isolated:
// it lives above the tenant boundary and is only writable by super admins.
// Tenants are never hard-deleted, only deactivated.
type Tenant struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`

	Name   string `json:"name" gorm:"size:200;not null"`
	Slug   string `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Domain string `json:"domain,omitempty" gorm:"size:255"`

	ContactPerson  string `json:"contact_person" gorm:"size:200;not null"`
	ContactEmail   string `json:"contact_email" gorm:"size:320;not null"`
	ContactNumber  string `json:"contact_number" gorm:"size:20;not null"`
	WhatsappNumber string `json:"whatsapp_number,omitempty" gorm:"size:20"`
	Address        string `json:"address,omitempty"`
	Pin            string `json:"pin,omitempty" gorm:"size:6"`
	UpiID          string `json:"upi_id,omitempty" gorm:"size:100"`
	Castes         string `json:"castes,omitempty" gorm:"size:1024"`

	Plan      TenantPlan `json:"plan" gorm:"size:50;default:starter"`
	MaxUsers  int        `json:"max_users" gorm:"default:500"`
	MaxAdmins int        `json:"max_admins" gorm:"default:5"`

	IsActive    bool       `json:"is_active" gorm:"default:true"`
	TrialEndsAt *time.Time `json:"trial_ends_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
