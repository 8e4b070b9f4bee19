package user

import "errors"

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrTenantRequired  = errors.New("no tenant resolved for request")
	ErrUserQuotaFull   = errors.New("tenant user quota reached")
	ErrAdminQuotaFull  = errors.New("tenant admin quota reached")
	ErrUserNotFound    = errors.New("user not found")
	ErrForbiddenTenant = errors.New("user belongs to another tenant")
	ErrInvalidRole     = errors.New("role cannot be assigned")
)
