package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"varanbook/internal/database"
	"varanbook/internal/domain"
	jwtsvc "varanbook/internal/pkg/jwt"
	"varanbook/internal/services"
)

const (
	resetTokenBytes   = 32
	maxDeviceInfoLen  = 512
	resetEmailSubject = "password_reset"
)

// Service owns the credential and session lifecycle: login, refresh
// rotation, logout, and the password reset/change flows.
type Service struct {
	users    UserRepositoryInterface
	tenants  TenantRepositoryInterface
	sessions RefreshTokenRepositoryInterface
	resets   PasswordResetRepositoryInterface
	tokens   tokenService
	hasher   passwordHasher
	mailer   services.EmailSender
	resetTTL time.Duration
}

func NewService(
	users UserRepositoryInterface,
	tenants TenantRepositoryInterface,
	sessions RefreshTokenRepositoryInterface,
	resets PasswordResetRepositoryInterface,
	tokens tokenService,
	hasher passwordHasher,
	mailer services.EmailSender,
	resetTTL time.Duration,
) *Service {
	return &Service{
		users:    users,
		tenants:  tenants,
		sessions: sessions,
		resets:   resets,
		tokens:   tokens,
		hasher:   hasher,
		mailer:   mailer,
		resetTTL: resetTTL,
	}
}

// Login verifies credentials and issues an access/refresh pair, persisting
// the hashed refresh token in the session ledger. The raw refresh token is
// returned to the caller exactly once.
func (s *Service) Login(ctx context.Context, req LoginRequest, deviceInfo string) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if err := s.ensureActive(ctx, user); err != nil {
		return nil, err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	return s.issuePair(ctx, user, time.Now().Add(s.tokens.RefreshTTL()), deviceInfo)
}

// Refresh rotates a refresh token: the presented token's row is revoked and
// a successor is issued inheriting the same absolute expiry, inside one
// transaction so two concurrent rotations of the same token cannot both
// succeed. The signature check detects tampering; the ledger row is
// authoritative for revocation and expiry.
func (s *Service) Refresh(ctx context.Context, rawRefresh, deviceInfo string) (*TokenResponse, error) {
	claims, err := s.tokens.Verify(rawRefresh, jwtsvc.KindRefresh)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, jwtsvc.ErrInvalidToken
	}

	hash := hashToken(rawRefresh)
	now := time.Now()
	var result *TokenResponse

	err = s.sessions.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("token_hash = ?", hash)
		if database.IsPostgres(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var current domain.RefreshToken
		if err := q.First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if current.IsRevoked || current.UserID != userID {
			return ErrSessionNotFound
		}
		if current.IsExpired(now) {
			return ErrSessionExpired
		}

		var user domain.User
		if err := tx.Where("id = ?", current.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if err := s.ensureActive(ctx, &user); err != nil {
			return err
		}

		// The guarded update is the rotation's point of no return: without
		// FOR UPDATE (SQLite) two concurrent rotations can both pass the
		// read, so the loser is detected here by its zero row count.
		res := tx.Model(&domain.RefreshToken{}).
			Where("id = ? AND is_revoked = ?", current.ID, false).
			Updates(map[string]any{"is_revoked": true, "last_used_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSessionNotFound
		}

		accessToken, err := s.tokens.Generate(user.ID, user.TenantID, string(user.Role), jwtsvc.KindAccess)
		if err != nil {
			return err
		}
		newRefresh, err := s.tokens.Generate(user.ID, user.TenantID, string(user.Role), jwtsvc.KindRefresh)
		if err != nil {
			return err
		}

		// The successor keeps the predecessor's absolute horizon; rotation
		// never extends a session.
		if err := tx.Create(&domain.RefreshToken{
			UserID:     user.ID,
			TokenHash:  hashToken(newRefresh),
			DeviceInfo: truncate(deviceInfo, maxDeviceInfoLen),
			ExpiresAt:  current.ExpiresAt,
		}).Error; err != nil {
			return err
		}

		result = &TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: newRefresh,
			TokenType:    "bearer",
			ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Logout revokes the session behind the given refresh token. Idempotent:
// unknown or already-revoked tokens are a silent no-op so logout never
// fails on a stale token.
func (s *Service) Logout(ctx context.Context, rawRefresh string) error {
	session, err := s.sessions.GetByHash(ctx, hashToken(rawRefresh))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.sessions.Revoke(ctx, session.ID)
}

// ForgotPassword stores a single-use reset token and mails the raw value.
// A nonexistent email completes the same way as an existing one so the
// endpoint cannot be used to enumerate accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	raw, err := randomToken(resetTokenBytes)
	if err != nil {
		return err
	}
	if err := s.resets.Create(ctx, &domain.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}); err != nil {
		return err
	}

	// Best-effort: the token row is already persisted, a lost email must
	// not fail the request.
	services.SendIgnoreError(s.mailer, user.Email, resetEmailSubject, map[string]string{"token": raw})
	return nil
}

// ResetPassword consumes a reset token exactly once and replaces the
// password hash. Used or expired tokens never authorize a change.
func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	record, err := s.resets.GetUnusedByHash(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if !record.Usable(time.Now()) {
		return ErrInvalidResetToken
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	// The hash swap, the token burn and the session purge land together or
	// not at all; a half-applied reset must not leave the token replayable.
	now := time.Now()
	return s.sessions.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		burn := tx.Model(&domain.PasswordResetToken{}).
			Where("id = ? AND is_used = ?", record.ID, false).
			Updates(map[string]any{"is_used": true, "used_at": now})
		if burn.Error != nil {
			return burn.Error
		}
		if burn.RowsAffected == 0 {
			return ErrInvalidResetToken
		}
		if err := tx.Model(&domain.User{}).
			Where("id = ?", record.UserID).
			Update("password_hash", newHash).Error; err != nil {
			return err
		}
		// A password reset invalidates every open session for the account.
		return tx.Model(&domain.RefreshToken{}).
			Where("user_id = ? AND is_revoked = ?", record.UserID, false).
			Update("is_revoked", true).Error
	})
}

// ChangePassword verifies the current password before accepting the new
// one.
func (s *Service) ChangePassword(ctx context.Context, user *domain.User, currentPassword, newPassword string) error {
	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}
	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, user.ID, newHash)
}

// ensureActive rejects deactivated users and users of deactivated tenants.
func (s *Service) ensureActive(ctx context.Context, user *domain.User) error {
	if !user.IsActive {
		return ErrAccountDeactivated
	}
	if user.TenantID != nil {
		if _, err := s.tenants.GetActiveByID(ctx, *user.TenantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountDeactivated
			}
			return err
		}
	}
	return nil
}

func (s *Service) issuePair(ctx context.Context, user *domain.User, expiresAt time.Time, deviceInfo string) (*TokenResponse, error) {
	accessToken, err := s.tokens.Generate(user.ID, user.TenantID, string(user.Role), jwtsvc.KindAccess)
	if err != nil {
		return nil, err
	}
	rawRefresh, err := s.tokens.Generate(user.ID, user.TenantID, string(user.Role), jwtsvc.KindRefresh)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, &domain.RefreshToken{
		UserID:     user.ID,
		TokenHash:  hashToken(rawRefresh),
		DeviceInfo: truncate(deviceInfo, maxDeviceInfoLen),
		ExpiresAt:  expiresAt,
	}); err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
