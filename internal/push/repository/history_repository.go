package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"section-notify-server/internal/push/domain"
)

// HistoryRepository defines the interface for the append-only delivery audit log
type HistoryRepository interface {
	// Append records one delivery attempt. Rows are never updated afterwards.
	Append(ctx context.Context, entry *domain.NotificationHistory) error

	// ListByUser returns a user's delivery history, newest first
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.NotificationHistory, int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new instance of historyRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Append(ctx context.Context, entry *domain.NotificationHistory) error {
	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now()
	return storageErr("append history", r.db.WithContext(ctx).Create(entry).Error)
}

func (r *historyRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.NotificationHistory, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&domain.NotificationHistory{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storageErr("count history", err)
	}

	var entries []domain.NotificationHistory
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, storageErr("list history", err)
	}
	return entries, total, nil
}
