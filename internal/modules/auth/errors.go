package auth

import "errors"

var (
	// ErrInvalidCredentials is deliberately generic: it never reveals
	// whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")

	ErrSessionNotFound = errors.New("refresh session not found or revoked")
	ErrSessionExpired  = errors.New("refresh session expired")

	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	ErrWrongPassword     = errors.New("current password is incorrect")
)
