package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"section-notify-server/internal/org/domain"
	"section-notify-server/internal/org/usecase"
)

// OrgHandler handles organization management HTTP requests
type OrgHandler struct {
	orgUsecase usecase.OrgUsecase
}

// NewOrgHandler creates a new OrgHandler
func NewOrgHandler(orgUsecase usecase.OrgUsecase) *OrgHandler {
	return &OrgHandler{orgUsecase: orgUsecase}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Name         string  `json:"name" binding:"required"`
	Role         string  `json:"role" binding:"omitempty,oneof=member section_admin admin"`
	SectionID    *string `json:"section_id"`
	DepartmentID *string `json:"department_id"`
}

// CreateUser creates an account
// POST /api/admin/users
func (h *OrgHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.orgUsecase.CreateUser(c.Request.Context(), usecase.CreateUserInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Role:         domain.Role(req.Role),
		SectionID:    req.SectionID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// CreateSectionRequest represents the request body for creating a section
type CreateSectionRequest struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required"`
}

// CreateSection creates a section
// POST /api/admin/sections
func (h *OrgHandler) CreateSection(c *gin.Context) {
	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.orgUsecase.CreateSection(c.Request.Context(), req.Name, req.DepartmentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, section)
}

// CreateDepartmentRequest represents the request body for creating a department
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateDepartment creates a department
// POST /api/admin/departments
func (h *OrgHandler) CreateDepartment(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	department, err := h.orgUsecase.CreateDepartment(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, department)
}
