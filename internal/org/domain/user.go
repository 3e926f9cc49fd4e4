package domain

import "time"

// Role determines what a user may do inside their section
type Role string

const (
	RoleMember       Role = "member"
	RoleSectionAdmin Role = "section_admin"
	RoleAdmin        Role = "admin"
)

// Department groups sections
type Department struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Section is the organizational unit work items are scoped to
type Section struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	DepartmentID string    `json:"department_id" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
}

type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Password     string    `json:"-"` // Never return password in JSON
	Name         string    `json:"name"`
	Role         Role      `json:"role" gorm:"default:member"`
	SectionID    *string   `json:"section_id,omitempty" gorm:"index"`
	DepartmentID *string   `json:"department_id,omitempty" gorm:"index"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
