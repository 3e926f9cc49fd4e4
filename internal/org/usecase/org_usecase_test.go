package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"section-notify-server/internal/org/domain"
	"section-notify-server/internal/org/repository"
)

type fakePrefs struct {
	created []string
	fail    bool
}

func (f *fakePrefs) CreateDefault(_ context.Context, userID string) error {
	if f.fail {
		return errors.New("storage down")
	}
	f.created = append(f.created, userID)
	return nil
}

func setupOrgUsecase(t *testing.T, prefs PreferenceInitializer) OrgUsecase {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Department{}, &domain.Section{}, &domain.User{}))

	return NewOrgUsecase(repository.NewOrgRepository(db), prefs)
}

func TestCreateUser(t *testing.T) {
	prefs := &fakePrefs{}
	uc := setupOrgUsecase(t, prefs)
	ctx := context.Background()

	t.Run("creates the account with default preferences", func(t *testing.T) {
		user, err := uc.CreateUser(ctx, CreateUserInput{
			Email:    "alice@example.com",
			Password: "password-123",
			Name:     "Alice",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleMember, user.Role)
		assert.NotEqual(t, "password-123", user.Password)
		assert.Equal(t, []string{user.ID}, prefs.created)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := uc.CreateUser(ctx, CreateUserInput{
			Email:    "alice@example.com",
			Password: "password-456",
			Name:     "Another Alice",
		})
		assert.Error(t, err)
	})

	t.Run("preference failure does not fail the account", func(t *testing.T) {
		uc := setupOrgUsecase(t, &fakePrefs{fail: true})
		user, err := uc.CreateUser(ctx, CreateUserInput{
			Email:    "bob@example.com",
			Password: "password-123",
			Name:     "Bob",
			Role:     domain.RoleSectionAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleSectionAdmin, user.Role)
	})
}
