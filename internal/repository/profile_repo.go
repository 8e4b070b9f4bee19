package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"varanbook/internal/domain"
)

// ProfileFilter narrows admin listings.
type ProfileFilter struct {
	Gender string
	Status string
	Offset int
	Limit  int
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) DB() *gorm.DB { return r.db }

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByTenant returns profiles of one tenant only. The tenant filter here
// is the application-level half of the isolation; the row-security policy
// is the database-level half.
func (r *ProfileRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, f ProfileFilter) ([]domain.Profile, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("tenant_id = ?", tenantID)
	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []domain.Profile
	if err := q.Order("created_at").Offset(f.Offset).Limit(f.Limit).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Profile{}).Error
}
