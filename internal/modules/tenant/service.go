package tenant

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"varanbook/internal/domain"
	"varanbook/internal/pkg/validator"
	"varanbook/internal/repository"
)

// Service contains tenant lifecycle logic. Tenants are only ever
// deactivated, never deleted; deactivation blocks authentication and
// resolution for every user of the tenant from the next request on.
type Service struct {
	tenants *repository.TenantRepository
}

func NewService(tenants *repository.TenantRepository) *Service {
	return &Service{tenants: tenants}
}

func (s *Service) Create(ctx context.Context, req CreateTenantRequest) (*domain.Tenant, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !validator.IsSlug(slug) {
		return nil, ErrInvalidSlug
	}

	t := &domain.Tenant{
		Name:           req.Name,
		Slug:           slug,
		Domain:         req.Domain,
		ContactPerson:  req.ContactPerson,
		ContactEmail:   strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		ContactNumber:  req.ContactNumber,
		WhatsappNumber: req.WhatsappNumber,
		Address:        req.Address,
		Pin:            req.Pin,
		UpiID:          req.UpiID,
		Castes:         req.Castes,
		Plan:           req.Plan,
		MaxUsers:       req.MaxUsers,
		MaxAdmins:      req.MaxAdmins,
		IsActive:       true,
	}
	if t.Plan == "" {
		t.Plan = domain.PlanStarter
	}
	if t.MaxUsers <= 0 {
		t.MaxUsers = 500
	}
	if t.MaxAdmins <= 0 {
		t.MaxAdmins = 5
	}

	if err := s.tenants.Create(ctx, t); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, isActive *bool, page, pageSize int) (*ListResponse, error) {
	items, total, err := s.tenants.List(ctx, isActive, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*domain.Tenant, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyIf(&t.Name, req.Name)
	applyIf(&t.Domain, req.Domain)
	applyIf(&t.ContactPerson, req.ContactPerson)
	applyIf(&t.ContactEmail, req.ContactEmail)
	applyIf(&t.ContactNumber, req.ContactNumber)
	applyIf(&t.WhatsappNumber, req.WhatsappNumber)
	applyIf(&t.Address, req.Address)
	applyIf(&t.Pin, req.Pin)
	applyIf(&t.UpiID, req.UpiID)
	applyIf(&t.Castes, req.Castes)
	if req.Plan != nil {
		t.Plan = *req.Plan
	}
	if req.MaxUsers != nil {
		t.MaxUsers = *req.MaxUsers
	}
	if req.MaxAdmins != nil {
		t.MaxAdmins = *req.MaxAdmins
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.tenants.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.tenants.Deactivate(ctx, id)
}

func applyIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
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
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
