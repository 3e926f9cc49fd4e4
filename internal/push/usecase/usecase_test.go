package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"section-notify-server/internal/push/domain"
	"section-notify-server/internal/push/repository"
	"section-notify-server/pkg/fcm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.DeviceToken{},
		&domain.NotificationPreference{},
		&domain.NotificationHistory{},
	))
	return db
}

type testDeps struct {
	db      *gorm.DB
	prefs   repository.PreferenceRepository
	history repository.HistoryRepository
}

// fakeGateway records sends and fails the tokens it is told to fail
type fakeGateway struct {
	mu        sync.Mutex
	sent      []string
	permanent map[string]bool
	transient map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{permanent: map[string]bool{}, transient: map[string]bool{}}
}

func (g *fakeGateway) Send(_ context.Context, token string, _ fcm.NotificationData, _ map[string]string) error {
	g.mu.Lock()
	g.sent = append(g.sent, token)
	g.mu.Unlock()

	if g.permanent[token] {
		return &fcm.SendError{Permanent: true, Err: errTokenUnregistered}
	}
	if g.transient[token] {
		return &fcm.SendError{Err: errGatewayBusy}
	}
	return nil
}

func (g *fakeGateway) sentTokens() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.sent...)
}

var (
	errTokenUnregistered = errString("registration-token-not-registered")
	errGatewayBusy       = errString("temporarily unavailable")
)

type errString string

func (e errString) Error() string { return string(e) }

func registerToken(t *testing.T, repo repository.TokenRepository, userID, token string) {
	t.Helper()
	_, err := repo.Upsert(context.Background(), userID, token, domain.DeviceTypeWeb,
		domain.DeviceInfo{Platform: "web", InstallID: userID + "-" + token})
	require.NoError(t, err)
}
