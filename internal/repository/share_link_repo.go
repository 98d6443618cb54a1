package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"reportdesk/internal/domain"
)

type ShareLinkRepository struct {
	db *gorm.DB
}

func NewShareLinkRepository(db *gorm.DB) *ShareLinkRepository {
	return &ShareLinkRepository{db: db}
}

func (r *ShareLinkRepository) Create(ctx context.Context, link *domain.ShareLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *ShareLinkRepository) GetByToken(ctx context.Context, token string) (*domain.ShareLink, error) {
	var link domain.ShareLink
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *ShareLinkRepository) ListByReport(ctx context.Context, reportID string) ([]domain.ShareLink, error) {
	var links []domain.ShareLink
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at DESC").
		Find(&links).Error
	return links, err
}

func (r *ShareLinkRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&domain.ShareLink{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ShareLinkRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&domain.ShareLink{})
	return res.RowsAffected, res.Error
}
