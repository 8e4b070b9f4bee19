package profile

import "errors"

var (
	ErrProfileExists   = errors.New("user already has a profile")
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoTenant        = errors.New("user has no tenant")
)
