package repository

import (
	"context"

	"gorm.io/gorm"

	"section-notify-server/internal/announcement/domain"
)

// AnnouncementRepository defines announcement persistence operations
type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) error
	List(ctx context.Context, limit, offset int) ([]domain.Announcement, int64, error)
}

type gormAnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new AnnouncementRepository backed by gorm
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &gormAnnouncementRepository{db: db}
}

func (r *gormAnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *gormAnnouncementRepository) List(ctx context.Context, limit, offset int) ([]domain.Announcement, int64, error) {
	var items []domain.Announcement
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Announcement{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
