package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileStatus string

const (
	ProfileDraft     ProfileStatus = "draft"
	ProfileActive    ProfileStatus = "active"
	ProfileSuspended ProfileStatus = "suspended"
	ProfileMatched   ProfileStatus = "matched"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type MaritalStatus string

const (
	NeverMarried    MaritalStatus = "never_married"
	Divorced        MaritalStatus = "divorced"
	Widowed         MaritalStatus = "widowed"
	AwaitingDivorce MaritalStatus = "awaiting_divorce"
)

// Profile is the matrimonial biodata record. One per user, stamped with the
// owner's tenant. Only profiles with status "active" are visible to other
// members of the same tenant.
type Profile struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `json:"tenant_id" gorm:"type:uuid;index;not null"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	User     *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Gender        Gender        `json:"gender,omitempty" gorm:"size:10"`
	DateOfBirth   *time.Time    `json:"date_of_birth,omitempty"`
	MaritalStatus MaritalStatus `json:"marital_status,omitempty" gorm:"size:20"`

	HeightCM     int    `json:"height_cm,omitempty"`
	City         string `json:"city,omitempty" gorm:"size:100"`
	State        string `json:"state,omitempty" gorm:"size:100"`
	Caste        string `json:"caste,omitempty" gorm:"size:100"`
	Education    string `json:"education,omitempty" gorm:"size:200"`
	Occupation   string `json:"occupation,omitempty" gorm:"size:200"`
	AnnualIncome string `json:"annual_income,omitempty" gorm:"size:50"`
	AboutMe      string `json:"about_me,omitempty"`
	PhotoKeys    string `json:"photo_keys,omitempty" gorm:"size:2048"`

	Status ProfileStatus `json:"status" gorm:"size:20;default:active;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
