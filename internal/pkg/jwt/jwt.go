package jwt

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// Service mints and verifies signed tokens. Verification is a pure
// cryptographic check with no storage lookup; revocation for refresh
// tokens is layered on top by the session ledger.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type Claims struct {
	TenantID string    `json:"tid,omitempty"`
	Role     string    `json:"rol"`
	Kind     TokenKind `json:"typ"`
	jwtlib.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Tenant returns the tenant claim, nil for platform operators.
func (c *Claims) Tenant() *uuid.UUID {
	if c.TenantID == "" {
		return nil
	}
	id, err := uuid.Parse(c.TenantID)
	if err != nil {
		return nil
	}
	return &id
}

func New(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }
func (s *Service) AccessTTL() time.Duration  { return s.accessTTL }

// Generate mints a signed token of the given kind carrying identity, tenant
// and role claims.
func (s *Service) Generate(userID uuid.UUID, tenantID *uuid.UUID, role string, kind TokenKind) (string, error) {
	ttl := s.accessTTL
	if kind == KindRefresh {
		ttl = s.refreshTTL
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		Kind: kind,
		RegisteredClaims: jwtlib.RegisteredClaims{
			// A fresh jti keeps two mints for the same identity distinct
			// even within the same second.
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	if tenantID != nil {
		claims.TenantID = tenantID.String()
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify decodes the token, validates signature and expiry, and checks the
// embedded kind against the expected one.
func (s *Service) Verify(tokenStr string, kind TokenKind) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind {
		return nil, ErrWrongTokenKind
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
