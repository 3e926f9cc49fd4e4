package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"section-notify-server/internal/announcement/usecase"
)

// AnnouncementHandler handles announcement HTTP requests
type AnnouncementHandler struct {
	announcementUsecase *usecase.AnnouncementUsecase
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(announcementUsecase *usecase.AnnouncementUsecase) *AnnouncementHandler {
	return &AnnouncementHandler{announcementUsecase: announcementUsecase}
}

// CreateAnnouncementRequest represents the request body for creating an announcement
type CreateAnnouncementRequest struct {
	Title        string  `json:"title" binding:"required"`
	Body         string  `json:"body"`
	DepartmentID *string `json:"department_id"`
	Notify       *bool   `json:"notify"`
}

// Create creates an announcement for the caller
// POST /api/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notify := true
	if req.Notify != nil {
		notify = *req.Notify
	}

	a, err := h.announcementUsecase.Create(c.Request.Context(), userID, usecase.CreateAnnouncementInput{
		Title:        req.Title,
		Body:         req.Body,
		DepartmentID: req.DepartmentID,
		Notify:       notify,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrTitleRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// List returns a page of announcements
// GET /api/announcements?limit=20&offset=0
func (h *AnnouncementHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.announcementUsecase.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"announcements": items,
		"total":         total,
	})
}
