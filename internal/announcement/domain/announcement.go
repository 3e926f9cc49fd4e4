package domain

import "time"

// Announcement represents a broadcast message to a department or the
// whole organization
type Announcement struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Body         string    `json:"body"`
	DepartmentID *string   `gorm:"index" json:"department_id,omitempty"`
	Notify       bool      `json:"notify"`
	CreatedBy    string    `gorm:"not null;index" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}
