package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShortlistStatus string

const (
	Shortlisted       ShortlistStatus = "shortlisted"
	ShortlistAccepted ShortlistStatus = "accepted"
	ShortlistRejected ShortlistStatus = "rejected"
)

// Shortlist records one expression of interest between two profiles of the
// same tenant.
type Shortlist struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `json:"tenant_id" gorm:"type:uuid;index;not null"`

	FromProfileID uuid.UUID `json:"from_profile_id" gorm:"type:uuid;index;not null;uniqueIndex:uniq_shortlist_pair"`
	ToProfileID   uuid.UUID `json:"to_profile_id" gorm:"type:uuid;index;not null;uniqueIndex:uniq_shortlist_pair"`

	Status ShortlistStatus `json:"status" gorm:"size:20;default:shortlisted"`
	Note   string          `json:"note,omitempty" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Shortlist) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
