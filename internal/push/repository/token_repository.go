package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"section-notify-server/internal/push/domain"
)

const (
	// staleAfter is how long a token may go unused before it is deactivated
	staleAfter = 30 * 24 * time.Hour
	// purgeAfter is how long a deactivated token is kept before deletion
	purgeAfter = 90 * 24 * time.Hour
)

// TokenRepository defines the interface for device token persistence
type TokenRepository interface {
	// Upsert registers a token for a user's device. Re-registering the same
	// device updates the existing row in place. Returns the row id.
	Upsert(ctx context.Context, userID, token string, deviceType domain.DeviceType, info domain.DeviceInfo) (string, error)

	// Deactivate marks a token inactive. Idempotent; unknown tokens are a no-op.
	Deactivate(ctx context.Context, token string) error

	// MarkUsed refreshes last_used_at after a successful delivery
	MarkUsed(ctx context.Context, token string) error

	// Revoke deactivates a token on behalf of its owning user
	Revoke(ctx context.Context, userID, token string) error

	// ListActiveForUsers returns active tokens for the given users
	ListActiveForUsers(ctx context.Context, userIDs []string) ([]domain.DeviceToken, error)

	// SweepExpired deactivates stale or expired tokens, then purges rows that
	// have been inactive long enough. Maintenance only, never inline with
	// delivery. Returns (deactivated, purged) counts.
	SweepExpired(ctx context.Context) (int64, int64, error)
}

// tokenRepository implements TokenRepository on GORM
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new instance of tokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Upsert(ctx context.Context, userID, token string, deviceType domain.DeviceType, info domain.DeviceInfo) (string, error) {
	now := time.Now()
	infoJSON, _ := json.Marshal(info)

	row := &domain.DeviceToken{
		ID:         uuid.New().String(),
		UserID:     userID,
		Token:      token,
		DeviceID:   info.Fingerprint(),
		DeviceType: deviceType,
		DeviceInfo: string(infoJSON),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
		LastUsedAt: now,
		ExpiresAt:  now.Add(domain.TokenTTL),
	}

	// Atomic upsert: INSERT ... ON CONFLICT (user_id, device_id) DO UPDATE.
	// Concurrent registrations from the same device converge to one row; the
	// database's native conflict resolution is the only synchronization.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"token", "device_type", "device_info", "is_active",
			"last_used_at", "expires_at", "updated_at",
		}),
	}).Create(row).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The (user_id, token) index fired instead: the same token value is
		// already registered under another fingerprint. Retry once as an
		// update of that row rather than surfacing the race.
		err = r.db.WithContext(ctx).Model(&domain.DeviceToken{}).
			Where("user_id = ? AND token = ?", userID, token).
			Updates(map[string]interface{}{
				"device_id":    row.DeviceID,
				"device_type":  row.DeviceType,
				"device_info":  row.DeviceInfo,
				"is_active":    true,
				"last_used_at": now,
				"expires_at":   row.ExpiresAt,
				"updated_at":   now,
			}).Error
		if err != nil {
			return "", storageErr("upsert token", err)
		}
		var existing domain.DeviceToken
		if err := r.db.WithContext(ctx).
			Where("user_id = ? AND token = ?", userID, token).
			First(&existing).Error; err != nil {
			return "", storageErr("upsert token", err)
		}
		return existing.ID, nil
	}
	if err != nil {
		return "", storageErr("upsert token", err)
	}

	// The conflict path keeps the existing row id, so read back the
	// canonical row instead of trusting the candidate id.
	var saved domain.DeviceToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND device_id = ?", userID, row.DeviceID).
		First(&saved).Error; err != nil {
		return "", storageErr("upsert token", err)
	}
	return saved.ID, nil
}

func (r *tokenRepository) Deactivate(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).Model(&domain.DeviceToken{}).
		Where("token = ?", token).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
	return storageErr("deactivate token", err)
}

func (r *tokenRepository) MarkUsed(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).Model(&domain.DeviceToken{}).
		Where("token = ?", token).
		Updates(map[string]interface{}{"last_used_at": time.Now(), "updated_at": time.Now()}).Error
	return storageErr("mark token used", err)
}

func (r *tokenRepository) Revoke(ctx context.Context, userID, token string) error {
	err := r.db.WithContext(ctx).Model(&domain.DeviceToken{}).
		Where("user_id = ? AND token = ?", userID, token).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
	return storageErr("revoke token", err)
}

func (r *tokenRepository) ListActiveForUsers(ctx context.Context, userIDs []string) ([]domain.DeviceToken, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var tokens []domain.DeviceToken
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND is_active = ?", userIDs, true).
		Find(&tokens).Error
	if err != nil {
		return nil, storageErr("list active tokens", err)
	}
	return tokens, nil
}

func (r *tokenRepository) SweepExpired(ctx context.Context) (int64, int64, error) {
	now := time.Now()

	deactivated := r.db.WithContext(ctx).Model(&domain.DeviceToken{}).
		Where("is_active = ? AND (last_used_at < ? OR expires_at < ?)", true, now.Add(-staleAfter), now).
		Updates(map[string]interface{}{"is_active": false, "updated_at": now})
	if deactivated.Error != nil {
		return 0, 0, storageErr("sweep deactivate", deactivated.Error)
	}

	purged := r.db.WithContext(ctx).
		Where("is_active = ? AND updated_at < ?", false, now.Add(-purgeAfter)).
		Delete(&domain.DeviceToken{})
	if purged.Error != nil {
		return deactivated.RowsAffected, 0, storageErr("sweep purge", purged.Error)
	}

	return deactivated.RowsAffected, purged.RowsAffected, nil
}
