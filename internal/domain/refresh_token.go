package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken is the session ledger row behind one issued refresh token.
//
// Security notes:
// - We never store the raw token, only its SHA-256 hash (TokenHash).
// - On refresh we rotate: the old row is revoked and a successor is created
//   inheriting the same absolute expiry.
// - Rows are never deleted by the API; the cleanup job prunes stale ones.
type RefreshToken struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	User   *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	TokenHash  string `json:"-" gorm:"size:64;uniqueIndex;not null"`
	DeviceInfo string `json:"device_info,omitempty" gorm:"size:512"`

	IsRevoked bool      `json:"is_revoked" gorm:"default:false"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`

	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
