package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"varanbook/internal/domain"
)

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Create(ctx context.Context, t *domain.Tenant) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetActiveByID resolves only active tenants. A deactivated tenant is
// indistinguishable from a missing one.
func (r *TenantRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) GetActiveBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) List(ctx context.Context, isActive *bool, offset, limit int) ([]domain.Tenant, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Tenant{})
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tenants []domain.Tenant
	if err := q.Order("created_at").Offset(offset).Limit(limit).Find(&tenants).Error; err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

func (r *TenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Deactivate soft-deletes: the row stays, authentication and resolution
// stop immediately.
func (r *TenantRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Tenant{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *TenantRepository) CountUsers(ctx context.Context, tenantID uuid.UUID, role *domain.UserRole) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{}).Where("tenant_id = ?", tenantID)
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
