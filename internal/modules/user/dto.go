package user

import "varanbook/internal/domain"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required,min=2,max=200"`
	Phone    string `json:"phone,omitempty" binding:"omitempty,min=7,max=20"`
}

// OnboardRequest is used by admins to create users inside a tenant.
// Operators must name the target tenant; tenant admins may omit it and
// default to their own.
type OnboardRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required"`
	FullName string          `json:"full_name" binding:"required,min=2,max=200"`
	Phone    string          `json:"phone,omitempty" binding:"omitempty,min=7,max=20"`
	Role     domain.UserRole `json:"role" binding:"required"`
	TenantID string          `json:"tenant_id,omitempty" binding:"omitempty,uuid"`
}

type UpdateMeRequest struct {
	FullName *string `json:"full_name,omitempty" binding:"omitempty,min=2,max=200"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,min=7,max=20"`
	FCMToken *string `json:"fcm_token,omitempty"`
}
