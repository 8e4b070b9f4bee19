package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"varanbook/internal/database"
	"varanbook/internal/domain"
	"varanbook/internal/pkg/password"
	"varanbook/internal/repository"
)

type Service struct {
	users    *repository.UserRepository
	tenants  *repository.TenantRepository
	sessions *repository.RefreshTokenRepository
	hasher   *password.Hasher
}

func NewService(users *repository.UserRepository, tenants *repository.TenantRepository, sessions *repository.RefreshTokenRepository, hasher *password.Hasher) *Service {
	return &Service{users: users, tenants: tenants, sessions: sessions, hasher: hasher}
}

// inTenant binds the given tenant for the whole operation so the user
// table's row-security policy engages on PostgreSQL.
func (s *Service) inTenant(ctx context.Context, tenantID *uuid.UUID, fn func(users *repository.UserRepository, tenants *repository.TenantRepository) error) error {
	return database.TenantTransaction(ctx, s.users.DB(), tenantID, func(tx *gorm.DB) error {
		return fn(repository.NewUserRepository(tx), repository.NewTenantRepository(tx))
	})
}

// Register creates a member inside the given tenant. The tenant comes
// from the request's resolved tenant, never from the body, so a caller
// cannot register into a foreign tenant.
func (s *Service) Register(ctx context.Context, tenant *domain.Tenant, req RegisterRequest) (*domain.User, error) {
	if tenant == nil {
		return nil, ErrTenantRequired
	}

	var u *domain.User
	err := s.inTenant(ctx, &tenant.ID, func(users *repository.UserRepository, tenants *repository.TenantRepository) error {
		count, err := tenants.CountUsers(ctx, tenant.ID, nil)
		if err != nil {
			return err
		}
		if count >= int64(tenant.MaxUsers) {
			return ErrUserQuotaFull
		}

		u, err = s.create(ctx, users, tenant.ID, req.Email, req.Password, req.FullName, req.Phone, domain.RoleMember)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Onboard creates a user on behalf of an admin. Tenant admins are
// pinned to their own tenant; operators choose any active tenant.
func (s *Service) Onboard(ctx context.Context, actor *domain.User, req OnboardRequest) (*domain.User, error) {
	if req.Role != domain.RoleMember && req.Role != domain.RoleAdmin {
		return nil, ErrInvalidRole
	}

	var tenantID uuid.UUID
	switch actor.Role {
	case domain.RoleSuperAdmin:
		if req.TenantID == "" {
			return nil, ErrTenantRequired
		}
		id, err := uuid.Parse(req.TenantID)
		if err != nil {
			return nil, ErrTenantRequired
		}
		tenantID = id
	default:
		if actor.TenantID == nil {
			return nil, ErrTenantRequired
		}
		if req.TenantID != "" && req.TenantID != actor.TenantID.String() {
			return nil, ErrForbiddenTenant
		}
		tenantID = *actor.TenantID
	}

	tenant, err := s.tenants.GetActiveByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantRequired
		}
		return nil, err
	}

	var u *domain.User
	err = s.inTenant(ctx, &tenant.ID, func(users *repository.UserRepository, tenants *repository.TenantRepository) error {
		if req.Role == domain.RoleAdmin {
			admins, err := tenants.CountUsers(ctx, tenant.ID, &req.Role)
			if err != nil {
				return err
			}
			if admins >= int64(tenant.MaxAdmins) {
				return ErrAdminQuotaFull
			}
		} else {
			count, err := tenants.CountUsers(ctx, tenant.ID, nil)
			if err != nil {
				return err
			}
			if count >= int64(tenant.MaxUsers) {
				return ErrUserQuotaFull
			}
		}

		u, err = s.create(ctx, users, tenant.ID, req.Email, req.Password, req.FullName, req.Phone, req.Role)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) create(ctx context.Context, users *repository.UserRepository, tenantID uuid.UUID, email, plain, fullName, phone string, role domain.UserRole) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		TenantID:     &tenantID,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Phone:        phone,
		Role:         role,
		IsActive:     true,
	}
	if err := users.Create(ctx, u); err != nil {
		// The unique index catches duplicates the tenant-scoped existence
		// check cannot see.
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) UpdateMe(ctx context.Context, actor *domain.User, req UpdateMeRequest) (*domain.User, error) {
	if req.FullName != nil {
		actor.FullName = *req.FullName
	}
	if req.Phone != nil {
		actor.Phone = *req.Phone
	}
	if req.FCMToken != nil {
		actor.FCMToken = *req.FCMToken
	}
	err := s.inTenant(ctx, actor.TenantID, func(users *repository.UserRepository, _ *repository.TenantRepository) error {
		return users.Update(ctx, actor)
	})
	if err != nil {
		return nil, err
	}
	return actor, nil
}

// Deactivate disables a user inside the actor's reach and revokes the
// target's open sessions. Admins may only touch users of their own
// tenant; cross-tenant targets read as absent.
func (s *Service) Deactivate(ctx context.Context, actor *domain.User, targetID uuid.UUID) error {
	return database.TenantTransaction(ctx, s.users.DB(), actor.TenantID, func(tx *gorm.DB) error {
		target, err := repository.NewUserRepository(tx).GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if actor.Role != domain.RoleSuperAdmin {
			if actor.TenantID == nil || target.TenantID == nil || *actor.TenantID != *target.TenantID {
				return ErrUserNotFound
			}
		}

		if err := repository.NewUserRepository(tx).Deactivate(ctx, target.ID); err != nil {
			return err
		}
		return repository.NewRefreshTokenRepository(tx).RevokeByUser(ctx, target.ID)
	})
}

// isUniqueViolation detects a duplicate-key error on either backend.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
