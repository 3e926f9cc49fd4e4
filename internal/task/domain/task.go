package domain

import "time"

// Task represents a unit of work assigned within a section or department
type Task struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `json:"description"`
	SectionID    *string    `gorm:"index" json:"section_id,omitempty"`
	DepartmentID *string    `gorm:"index" json:"department_id,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Notify       bool       `json:"notify"`
	CreatedBy    string     `gorm:"not null;index" json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
