package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"section-notify-server/internal/push/domain"
)

// PreferenceRepository defines the interface for notification preferences.
// The dispatcher only reads; writes come from the settings endpoint and from
// account creation.
type PreferenceRepository interface {
	// IsAllowed reports whether the user accepts the category. Missing rows
	// and unset flags allow delivery (fail-open).
	IsAllowed(ctx context.Context, userID string, category domain.Category) (bool, error)

	// Get returns the user's preference row, or nil when none exists
	Get(ctx context.Context, userID string) (*domain.NotificationPreference, error)

	// Upsert creates or replaces the user's preference row
	Upsert(ctx context.Context, pref *domain.NotificationPreference) error

	// CreateDefault inserts the default-allow row for a new user account.
	// A no-op when the row already exists.
	CreateDefault(ctx context.Context, userID string) error
}

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new instance of preferenceRepository
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) IsAllowed(ctx context.Context, userID string, category domain.Category) (bool, error) {
	pref, err := r.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if pref == nil {
		return true, nil
	}
	return pref.Allows(category), nil
}

func (r *preferenceRepository) Get(ctx context.Context, userID string) (*domain.NotificationPreference, error) {
	var pref domain.NotificationPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("get preference", err)
	}
	return &pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *domain.NotificationPreference) error {
	now := time.Now()
	pref.UpdatedAt = now
	if pref.CreatedAt.IsZero() {
		pref.CreatedAt = now
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"task_enabled", "announcement_enabled", "reminder_enabled", "email_enabled",
			"quiet_start", "quiet_end", "timezone", "updated_at",
		}),
	}).Create(pref).Error
	return storageErr("upsert preference", err)
}

func (r *preferenceRepository) CreateDefault(ctx context.Context, userID string) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&domain.NotificationPreference{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
	return storageErr("create default preference", err)
}
