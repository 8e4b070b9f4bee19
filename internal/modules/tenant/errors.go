package tenant

import "errors"

var (
	ErrSlugTaken      = errors.New("tenant slug already exists")
	ErrTenantNotFound = errors.New("tenant not found")
	ErrInvalidSlug    = errors.New("invalid tenant slug")
)
