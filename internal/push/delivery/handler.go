package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"section-notify-server/internal/push/domain"
	"section-notify-server/internal/push/repository"
	"section-notify-server/internal/push/usecase"
)

// PushHandler handles push-notification HTTP requests
type PushHandler struct {
	dispatcher  *usecase.Dispatcher
	tokenRepo   repository.TokenRepository
	prefRepo    repository.PreferenceRepository
	historyRepo repository.HistoryRepository
}

// NewPushHandler creates a new PushHandler
func NewPushHandler(dispatcher *usecase.Dispatcher, tokenRepo repository.TokenRepository, prefRepo repository.PreferenceRepository, historyRepo repository.HistoryRepository) *PushHandler {
	return &PushHandler{
		dispatcher:  dispatcher,
		tokenRepo:   tokenRepo,
		prefRepo:    prefRepo,
		historyRepo: historyRepo,
	}
}

// Dispatch fans a notification out to the resolved audience
// POST /api/notifications/dispatch
func (h *PushHandler) Dispatch(c *gin.Context) {
	var req usecase.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrMissingNotification) || errors.Is(err, usecase.ErrNoTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dispatch failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterTokenRequest represents the request body for registering a token
type RegisterTokenRequest struct {
	Token      string            `json:"token" binding:"required"`
	DeviceType string            `json:"device_type" binding:"omitempty,oneof=web android ios"`
	DeviceInfo domain.DeviceInfo `json:"device_info"`
}

// RegisterToken registers or refreshes a device token for the caller
// POST /api/push/register
func (h *PushHandler) RegisterToken(c *gin.Context) {
	userID := c.GetString("userID")

	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Without an install id every device fingerprints identically and
	// unrelated registrations would collapse into one row.
	if req.DeviceInfo.InstallID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_info.install_id is required"})
		return
	}

	deviceType := domain.DeviceType(req.DeviceType)
	if deviceType == "" {
		deviceType = domain.DeviceTypeWeb
	}

	id, err := h.tokenRepo.Upsert(c.Request.Context(), userID, req.Token, deviceType, req.DeviceInfo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// UnregisterToken revokes one of the caller's tokens
// DELETE /api/push/:token
func (h *PushHandler) UnregisterToken(c *gin.Context) {
	userID := c.GetString("userID")
	token := c.Param("token")

	if err := h.tokenRepo.Revoke(c.Request.Context(), userID, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetHistory returns the caller's delivery history
// GET /api/notifications/history?limit=50&offset=0
func (h *PushHandler) GetHistory(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, total, err := h.historyRepo.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": entries,
		"total":   total,
	})
}

// GetPreferences returns the caller's effective notification preferences
// GET /api/preferences
func (h *PushHandler) GetPreferences(c *gin.Context) {
	userID := c.GetString("userID")

	pref, err := h.prefRepo.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if pref == nil {
		// absence means default-allow
		pref = &domain.NotificationPreference{UserID: userID}
	}

	c.JSON(http.StatusOK, gin.H{
		"task":         pref.Allows(domain.CategoryTask),
		"announcement": pref.Allows(domain.CategoryAnnouncement),
		"reminder":     pref.Allows(domain.CategoryReminder),
		"email":        pref.Allows(domain.CategoryEmail),
		"quiet_start":  pref.QuietStart,
		"quiet_end":    pref.QuietEnd,
		"timezone":     pref.Timezone,
	})
}

// UpdatePreferencesRequest represents the request body for updating preferences
type UpdatePreferencesRequest struct {
	Task         *bool  `json:"task"`
	Announcement *bool  `json:"announcement"`
	Reminder     *bool  `json:"reminder"`
	Email        *bool  `json:"email"`
	QuietStart   string `json:"quiet_start"`
	QuietEnd     string `json:"quiet_end"`
	Timezone     string `json:"timezone"`
}

// UpdatePreferences replaces the caller's notification preferences
// PUT /api/preferences
func (h *PushHandler) UpdatePreferences(c *gin.Context) {
	userID := c.GetString("userID")

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref := &domain.NotificationPreference{
		UserID:              userID,
		TaskEnabled:         req.Task,
		AnnouncementEnabled: req.Announcement,
		ReminderEnabled:     req.Reminder,
		EmailEnabled:        req.Email,
		QuietStart:          req.QuietStart,
		QuietEnd:            req.QuietEnd,
		Timezone:            req.Timezone,
	}
	if err := h.prefRepo.Upsert(c.Request.Context(), pref); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
