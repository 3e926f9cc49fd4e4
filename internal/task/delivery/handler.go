package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"section-notify-server/internal/task/usecase"
)

// TaskHandler handles task HTTP requests
type TaskHandler struct {
	taskUsecase *usecase.TaskUsecase
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase *usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	SectionID    *string    `json:"section_id"`
	DepartmentID *string    `json:"department_id"`
	DueDate      *time.Time `json:"due_date"`
	Notify       *bool      `json:"notify"`
}

// Create creates a task for the caller
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notify := true
	if req.Notify != nil {
		notify = *req.Notify
	}

	task, err := h.taskUsecase.Create(c.Request.Context(), userID, usecase.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		SectionID:    req.SectionID,
		DepartmentID: req.DepartmentID,
		DueDate:      req.DueDate,
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

	c.JSON(http.StatusCreated, task)
}

// Get returns a single task
// GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.taskUsecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

// List returns a page of tasks for a section
// GET /api/tasks?section_id=...&limit=20&offset=0
func (h *TaskHandler) List(c *gin.Context) {
	sectionID := c.Query("section_id")
	if sectionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "section_id is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	tasks, total, err := h.taskUsecase.ListBySection(c.Request.Context(), sectionID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": total,
	})
}
