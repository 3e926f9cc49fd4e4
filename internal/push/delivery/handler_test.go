package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"section-notify-server/internal/push/domain"
	"section-notify-server/internal/push/repository"
	"section-notify-server/internal/push/usecase"
	"section-notify-server/pkg/fcm"
)

type okGateway struct{}

func (okGateway) Send(context.Context, string, fcm.NotificationData, map[string]string) error {
	return nil
}

// asUser fakes the auth middleware for handler tests
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	tokens := repository.NewTokenRepository(db)
	prefs := repository.NewPreferenceRepository(db)
	history := repository.NewHistoryRepository(db)
	dispatcher := usecase.NewDispatcher(okGateway{}, tokens, prefs, history)
	handler := NewPushHandler(dispatcher, tokens, prefs, history)

	r := gin.New()
	r.POST("/api/notifications/dispatch", handler.Dispatch)
	r.GET("/api/notifications/history", asUser("u1"), handler.GetHistory)
	r.POST("/api/push/register", asUser("u1"), handler.RegisterToken)
	r.DELETE("/api/push/:token", asUser("u1"), handler.UnregisterToken)
	r.GET("/api/preferences", asUser("u1"), handler.GetPreferences)
	r.PUT("/api/preferences", asUser("u1"), handler.UpdatePreferences)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDispatchEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	t.Run("rejects missing title", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/notifications/dispatch", gin.H{
			"userIds":      []string{"u1"},
			"notification": gin.H{"body": "no title"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing target", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/notifications/dispatch", gin.H{
			"notification": gin.H{"title": "t", "body": "b"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty audience succeeds with zero sends", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/notifications/dispatch", gin.H{
			"userIds":      []string{"nobody"},
			"notification": gin.H{"title": "t", "body": "b"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp usecase.DispatchResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 0, resp.Summary.Total)
	})

	t.Run("delivers to registered tokens", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/push/register", gin.H{
			"token":       "tok-1",
			"device_type": "web",
			"device_info": gin.H{"platform": "web", "install_id": "i1"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, "/api/notifications/dispatch", gin.H{
			"userIds":      []string{"u1"},
			"notification": gin.H{"title": "t", "body": "b"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp usecase.DispatchResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Summary.Successful)
	})
}

func TestRegisterEndpoint(t *testing.T) {
	r, db := setupRouter(t)

	t.Run("requires a token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/push/register", gin.H{"device_type": "web"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires an install id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/push/register", gin.H{
			"token":       "tok-1",
			"device_info": gin.H{"platform": "web"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("distinct installs keep distinct rows", func(t *testing.T) {
		for _, install := range []string{"install-a", "install-b"} {
			w := doJSON(t, r, http.MethodPost, "/api/push/register", gin.H{
				"token":       "tok-" + install,
				"device_info": gin.H{"platform": "web", "install_id": install},
			})
			require.Equal(t, http.StatusOK, w.Code)
		}
		var count int64
		db.Model(&domain.DeviceToken{}).Where("user_id = ?", "u1").Count(&count)
		assert.EqualValues(t, 2, count)
	})

	t.Run("rejects unknown device type", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/push/register", gin.H{
			"token": "tok-1", "device_type": "desktop",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("registers and revokes", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/push/register", gin.H{
			"token":       "tok-1",
			"device_info": gin.H{"platform": "web", "install_id": "i1"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["id"])

		w = doJSON(t, r, http.MethodDelete, "/api/push/tok-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var row domain.DeviceToken
		require.NoError(t, db.Where("token = ?", "tok-1").First(&row).Error)
		assert.False(t, row.IsActive)
	})
}

func TestPreferenceEndpoints(t *testing.T) {
	r, _ := setupRouter(t)

	t.Run("defaults are all-allow", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/preferences", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["task"])
		assert.Equal(t, true, resp["announcement"])
	})

	t.Run("update round-trips", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/preferences", gin.H{
			"task":        false,
			"quiet_start": "22:00",
			"quiet_end":   "07:00",
			"timezone":    "Asia/Ho_Chi_Minh",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/preferences", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["task"])
		assert.Equal(t, true, resp["announcement"])
		assert.Equal(t, "22:00", resp["quiet_start"])
	})
}

func TestHistoryEndpoint(t *testing.T) {
	r, db := setupRouter(t)

	history := repository.NewHistoryRepository(db)
	for i := 0; i < 2; i++ {
		require.NoError(t, history.Append(context.Background(), &domain.NotificationHistory{
			UserID: "u1", Title: "t", Status: domain.DeliverySent,
		}))
	}

	w := doJSON(t, r, http.MethodGet, "/api/notifications/history?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		History []domain.NotificationHistory `json:"history"`
		Total   int64                        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.Total)
	assert.Len(t, resp.History, 1)
}
