package profile

import (
	"time"

	"varanbook/internal/domain"
)

type CreateProfileRequest struct {
	Gender        domain.Gender        `json:"gender" binding:"required,oneof=male female other"`
	DateOfBirth   *time.Time           `json:"date_of_birth,omitempty"`
	MaritalStatus domain.MaritalStatus `json:"marital_status,omitempty" binding:"omitempty,oneof=never_married divorced widowed awaiting_divorce"`
	HeightCM      int                  `json:"height_cm,omitempty" binding:"omitempty,min=50,max=272"`
	City          string               `json:"city,omitempty" binding:"omitempty,max=100"`
	State         string               `json:"state,omitempty" binding:"omitempty,max=100"`
	Caste         string               `json:"caste,omitempty" binding:"omitempty,max=100"`
	Education     string               `json:"education,omitempty" binding:"omitempty,max=200"`
	Occupation    string               `json:"occupation,omitempty" binding:"omitempty,max=200"`
	AnnualIncome  string               `json:"annual_income,omitempty" binding:"omitempty,max=50"`
	AboutMe       string               `json:"about_me,omitempty" binding:"omitempty,max=4000"`
}

type UpdateProfileRequest struct {
	Gender        *domain.Gender        `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	DateOfBirth   *time.Time            `json:"date_of_birth,omitempty"`
	MaritalStatus *domain.MaritalStatus `json:"marital_status,omitempty" binding:"omitempty,oneof=never_married divorced widowed awaiting_divorce"`
	HeightCM      *int                  `json:"height_cm,omitempty" binding:"omitempty,min=50,max=272"`
	City          *string               `json:"city,omitempty" binding:"omitempty,max=100"`
	State         *string               `json:"state,omitempty" binding:"omitempty,max=100"`
	Caste         *string               `json:"caste,omitempty" binding:"omitempty,max=100"`
	Education     *string               `json:"education,omitempty" binding:"omitempty,max=200"`
	Occupation    *string               `json:"occupation,omitempty" binding:"omitempty,max=200"`
	AnnualIncome  *string               `json:"annual_income,omitempty" binding:"omitempty,max=50"`
	AboutMe       *string               `json:"about_me,omitempty" binding:"omitempty,max=4000"`
	PhotoKeys     *string               `json:"photo_keys,omitempty" binding:"omitempty,max=2048"`

	// Status changes are staff-only; the service rejects member attempts.
	Status *domain.ProfileStatus `json:"status,omitempty" binding:"omitempty,oneof=draft active suspended matched"`
}

type ListRequest struct {
	Gender   string `form:"gender" binding:"omitempty,oneof=male female other"`
	Status   string `form:"status" binding:"omitempty,oneof=draft active suspended matched"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type ListResponse struct {
	Items    []domain.Profile `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
