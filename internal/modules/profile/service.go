package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"varanbook/internal/database"
	"varanbook/internal/domain"
	"varanbook/internal/policy"
	"varanbook/internal/repository"
)

type Service struct {
	profiles *repository.ProfileRepository
}

func NewService(profiles *repository.ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

// inTenant runs fn against a profile repository whose statements execute
// inside a tenant-bound transaction, so the row-security policies engage
// on PostgreSQL.
func (s *Service) inTenant(ctx context.Context, tenantID *uuid.UUID, fn func(profiles *repository.ProfileRepository) error) error {
	return database.TenantTransaction(ctx, s.profiles.DB(), tenantID, func(tx *gorm.DB) error {
		return fn(repository.NewProfileRepository(tx))
	})
}

// Create builds the actor's biodata record. The tenant is stamped from
// the owner, never taken from the request. One profile per user.
func (s *Service) Create(ctx context.Context, actor *domain.User, req CreateProfileRequest) (*domain.Profile, error) {
	if actor.TenantID == nil {
		return nil, ErrNoTenant
	}

	p := &domain.Profile{
		TenantID:      *actor.TenantID,
		UserID:        actor.ID,
		Gender:        req.Gender,
		DateOfBirth:   req.DateOfBirth,
		MaritalStatus: req.MaritalStatus,
		HeightCM:      req.HeightCM,
		City:          req.City,
		State:         req.State,
		Caste:         req.Caste,
		Education:     req.Education,
		Occupation:    req.Occupation,
		AnnualIncome:  req.AnnualIncome,
		AboutMe:       req.AboutMe,
		Status:        domain.ProfileActive,
	}

	err := s.inTenant(ctx, actor.TenantID, func(profiles *repository.ProfileRepository) error {
		if _, err := profiles.GetByUserID(ctx, actor.ID); err == nil {
			return ErrProfileExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return profiles.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Me(ctx context.Context, actor *domain.User) (*domain.Profile, error) {
	var p *domain.Profile
	err := s.inTenant(ctx, actor.TenantID, func(profiles *repository.ProfileRepository) error {
		var err error
		p, err = profiles.GetByUserID(ctx, actor.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Profile, error) {
	var p *domain.Profile
	err := s.inTenant(ctx, actor.TenantID, func(profiles *repository.ProfileRepository) error {
		var err error
		p, err = profiles.GetByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if err := policy.CanReadProfile(actor, p); err != nil {
		if errors.Is(err, policy.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// List is a staff listing scoped to one tenant.
func (s *Service) List(ctx context.Context, actor *domain.User, tenantID uuid.UUID, req ListRequest) (*ListResponse, error) {
	if err := policy.CanActOnTenant(actor, tenantID); err != nil {
		return nil, err
	}

	var (
		items []domain.Profile
		total int64
	)
	err := s.inTenant(ctx, &tenantID, func(profiles *repository.ProfileRepository) error {
		var err error
		items, total, err = profiles.ListByTenant(ctx, tenantID, repository.ProfileFilter{
			Gender: req.Gender,
			Status: req.Status,
			Offset: (req.Page - 1) * req.PageSize,
			Limit:  req.PageSize,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ListResponse{Items: items, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}

// Update applies a partial update after the policy check. Fetch, check and
// save share one transaction so a concurrent write cannot slip between.
func (s *Service) Update(ctx context.Context, actor *domain.User, id uuid.UUID, req UpdateProfileRequest) (*domain.Profile, error) {
	var p *domain.Profile
	err := s.inTenant(ctx, actor.TenantID, func(profiles *repository.ProfileRepository) error {
		var err error
		p, err = profiles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.CanWriteProfile(actor, p); err != nil {
			return err
		}
		if req.Status != nil && !actor.Role.AtLeast(domain.RoleAdmin) {
			return policy.ErrAccessDenied
		}
		applyUpdates(p, req)
		return profiles.Update(ctx, p)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, policy.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	err := s.inTenant(ctx, actor.TenantID, func(profiles *repository.ProfileRepository) error {
		p, err := profiles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.CanWriteProfile(actor, p); err != nil {
			return err
		}
		return profiles.Delete(ctx, p.ID)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, policy.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}

func applyUpdates(p *domain.Profile, req UpdateProfileRequest) {
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		p.DateOfBirth = req.DateOfBirth
	}
	if req.MaritalStatus != nil {
		p.MaritalStatus = *req.MaritalStatus
	}
	if req.HeightCM != nil {
		p.HeightCM = *req.HeightCM
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.Caste != nil {
		p.Caste = *req.Caste
	}
	if req.Education != nil {
		p.Education = *req.Education
	}
	if req.Occupation != nil {
		p.Occupation = *req.Occupation
	}
	if req.AnnualIncome != nil {
		p.AnnualIncome = *req.AnnualIncome
	}
	if req.AboutMe != nil {
		p.AboutMe = *req.AboutMe
	}
	if req.PhotoKeys != nil {
		p.PhotoKeys = *req.PhotoKeys
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
}
