package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"section-notify-server/internal/push/domain"
)

func boolPtr(b bool) *bool { return &b }

func TestPreferenceFailOpen(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	t.Run("missing row allows every category", func(t *testing.T) {
		allowed, err := repo.IsAllowed(ctx, "nobody", domain.CategoryTask)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("missing row reads back as nil without error", func(t *testing.T) {
		pref, err := repo.Get(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, pref)
	})

	t.Run("explicit opt-out blocks", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &domain.NotificationPreference{
			UserID:              "u1",
			AnnouncementEnabled: boolPtr(false),
		}))

		allowed, err := repo.IsAllowed(ctx, "u1", domain.CategoryAnnouncement)
		require.NoError(t, err)
		assert.False(t, allowed)

		allowed, err = repo.IsAllowed(ctx, "u1", domain.CategoryTask)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestPreferenceUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.NotificationPreference{
		UserID:      "u1",
		TaskEnabled: boolPtr(false),
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.NotificationPreference{
		UserID:      "u1",
		TaskEnabled: boolPtr(true),
		QuietStart:  "22:00",
		QuietEnd:    "07:00",
	}))

	pref, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.True(t, *pref.TaskEnabled)
	assert.Equal(t, "22:00", pref.QuietStart)

	var count int64
	db.Model(&domain.NotificationPreference{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateDefault(ctx, "u1"))

	// A later default insert must not clobber explicit settings
	require.NoError(t, repo.Upsert(ctx, &domain.NotificationPreference{
		UserID:      "u1",
		TaskEnabled: boolPtr(false),
	}))
	require.NoError(t, repo.CreateDefault(ctx, "u1"))

	pref, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, pref)
	require.NotNil(t, pref.TaskEnabled)
	assert.False(t, *pref.TaskEnabled)
}
