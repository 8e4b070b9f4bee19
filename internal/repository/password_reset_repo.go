package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"varanbook/internal/domain"
)

type PasswordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, t *domain.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// GetUnusedByHash returns the row only if it has not been consumed yet.
// Expiry is checked by the caller against the stored timestamp.
func (r *PasswordResetRepository) GetUnusedByHash(ctx context.Context, hash string) (*domain.PasswordResetToken, error) {
	var t domain.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND is_used = ?", hash, false).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PasswordResetRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR is_used = ?", now, true).
		Delete(&domain.PasswordResetToken{})
	return res.RowsAffected, res.Error
}
