package usecase

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"section-notify-server/internal/announcement/domain"
	"section-notify-server/internal/announcement/repository"
	pushdomain "section-notify-server/internal/push/domain"
)

type recordingPublisher struct {
	events []pushdomain.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event pushdomain.DomainEvent) {
	p.events = append(p.events, event)
}

func strPtr(s string) *string { return &s }

func setupAnnouncementUsecase(t *testing.T, publisher EventPublisher) *AnnouncementUsecase {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Announcement{}))

	return NewAnnouncementUsecase(repository.NewAnnouncementRepository(db), publisher)
}

func TestCreateAnnouncement(t *testing.T) {
	publisher := &recordingPublisher{}
	uc := setupAnnouncementUsecase(t, publisher)
	ctx := context.Background()

	t.Run("requires a title", func(t *testing.T) {
		_, err := uc.Create(ctx, "creator", CreateAnnouncementInput{Notify: true})
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("department announcement publishes with department scope", func(t *testing.T) {
		a, err := uc.Create(ctx, "creator", CreateAnnouncementInput{
			Title:        "Office closed Friday",
			Body:         "Maintenance work",
			DepartmentID: strPtr("dep-1"),
			Notify:       true,
		})
		require.NoError(t, err)

		require.Len(t, publisher.events, 1)
		event := publisher.events[0]
		assert.Equal(t, a.ID, event.EntityID)
		assert.Equal(t, pushdomain.CategoryAnnouncement, event.Category)
		assert.Equal(t, "dep-1", event.DepartmentID)
		assert.Empty(t, event.SectionID)
	})

	t.Run("no department means organization-wide", func(t *testing.T) {
		publisher.events = nil
		_, err := uc.Create(ctx, "creator", CreateAnnouncementInput{
			Title:  "All hands Monday",
			Notify: true,
		})
		require.NoError(t, err)

		require.Len(t, publisher.events, 1)
		assert.Empty(t, publisher.events[0].DepartmentID)
	})

	t.Run("notify off skips publication", func(t *testing.T) {
		publisher.events = nil
		_, err := uc.Create(ctx, "creator", CreateAnnouncementInput{Title: "Quiet note"})
		require.NoError(t, err)
		assert.Empty(t, publisher.events)
	})
}

func TestListAnnouncements(t *testing.T) {
	uc := setupAnnouncementUsecase(t, nil)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := uc.Create(ctx, "creator", CreateAnnouncementInput{Title: title})
		require.NoError(t, err)
	}

	items, total, err := uc.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)
}
