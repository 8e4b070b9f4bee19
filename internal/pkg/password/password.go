package password

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost aims at roughly 100ms per verify on current server hardware.
	DefaultCost = 12

	MinLength = 8
	symbols   = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

var ErrMismatch = errors.New("password mismatch")

// Hasher wraps bcrypt with a configurable cost factor.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// PolicyError lists every strength requirement the candidate password
// missed, so the caller can surface all of them at once.
type PolicyError struct {
	Missing []string
}

func (e *PolicyError) Error() string {
	return "password must contain: " + strings.Join(e.Missing, ", ")
}

// ValidatePolicy checks password strength before hashing: minimum length
// plus at least one uppercase, lowercase, digit and symbol.
func ValidatePolicy(plain string) error {
	var missing []string

	if len(plain) < MinLength {
		missing = append(missing, fmt.Sprintf("at least %d characters", MinLength))
	}

	var upper, lower, digit, symbol bool
	for _, c := range plain {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		case strings.ContainsRune(symbols, c):
			symbol = true
		}
	}

	if !upper {
		missing = append(missing, "one uppercase letter")
	}
	if !lower {
		missing = append(missing, "one lowercase letter")
	}
	if !digit {
		missing = append(missing, "one digit")
	}
	if !symbol {
		missing = append(missing, "one special character ("+symbols+")")
	}

	if len(missing) > 0 {
		return &PolicyError{Missing: missing}
	}
	return nil
}
