package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"varanbook/internal/domain"
)

type ShortlistRepository struct {
	db *gorm.DB
}

func NewShortlistRepository(db *gorm.DB) *ShortlistRepository {
	return &ShortlistRepository{db: db}
}

func (r *ShortlistRepository) DB() *gorm.DB { return r.db }

func (r *ShortlistRepository) Create(ctx context.Context, s *domain.Shortlist) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShortlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shortlist, error) {
	var s domain.Shortlist
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShortlistRepository) ExistsPair(ctx context.Context, fromProfileID, toProfileID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Shortlist{}).
		Where("from_profile_id = ? AND to_profile_id = ?", fromProfileID, toProfileID).
		Count(&n).Error
	return n > 0, err
}

func (r *ShortlistRepository) ListSent(ctx context.Context, fromProfileID uuid.UUID, offset, limit int) ([]domain.Shortlist, int64, error) {
	return r.list(ctx, "from_profile_id", fromProfileID, offset, limit)
}

func (r *ShortlistRepository) ListReceived(ctx context.Context, toProfileID uuid.UUID, offset, limit int) ([]domain.Shortlist, int64, error) {
	return r.list(ctx, "to_profile_id", toProfileID, offset, limit)
}

func (r *ShortlistRepository) list(ctx context.Context, column string, profileID uuid.UUID, offset, limit int) ([]domain.Shortlist, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Shortlist{}).Where(column+" = ?", profileID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Shortlist
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ShortlistRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ShortlistStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Shortlist{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ShortlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Shortlist{}).Error
}
