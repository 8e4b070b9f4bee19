package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of a mutating request. Rows are
// written by the audit middleware after the response is committed and are
// never updated or deleted by the API.
//
// The table carries no row-security policy so platform operators can
// query the trail across tenants.
type AuditLog struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`

	// Nil for operator actions outside any tenant scope.
	TenantID *uuid.UUID `json:"tenant_id,omitempty" gorm:"type:uuid;index"`
	// Nil for unauthenticated events such as failed logins.
	UserID *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`

	// e.g. "post:/api/v1/auth/login"
	Action string `json:"action" gorm:"size:200;index;not null"`

	IPAddress  string `json:"ip_address,omitempty" gorm:"size:45"`
	UserAgent  string `json:"user_agent,omitempty" gorm:"size:512"`
	StatusCode int    `json:"status_code"`
	DurationMS int64  `json:"duration_ms"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
