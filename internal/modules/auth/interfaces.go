package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"varanbook/internal/domain"
	jwtsvc "varanbook/internal/pkg/jwt"
)

// UserRepositoryInterface lists only the methods the auth service uses.
type UserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

type TenantRepositoryInterface interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

// RefreshTokenRepositoryInterface is the session ledger. DB is exposed for
// the rotation transaction.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type PasswordResetRepositoryInterface interface {
	Create(ctx context.Context, t *domain.PasswordResetToken) error
	GetUnusedByHash(ctx context.Context, hash string) (*domain.PasswordResetToken, error)
}

type tokenService interface {
	Generate(userID uuid.UUID, tenantID *uuid.UUID, role string, kind jwtsvc.TokenKind) (string, error)
	Verify(token string, kind jwtsvc.TokenKind) (*jwtsvc.Claims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type passwordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}
