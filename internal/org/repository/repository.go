package repository

import (
	"context"

	"section-notify-server/internal/org/domain"
)

// OrgRepository defines the interface for users, sections and departments.
// The audience queries exist for the notification pipeline: they only ever
// return active accounts.
type OrgRepository interface {
	// CreateUser creates a new user account
	CreateUser(ctx context.Context, user *domain.User) error

	// FindUserByID finds a user by id, nil when absent
	FindUserByID(ctx context.Context, id string) (*domain.User, error)

	// FindUserByEmail finds a user by email, nil when absent
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CreateSection creates a section
	CreateSection(ctx context.Context, section *domain.Section) error

	// CreateDepartment creates a department
	CreateDepartment(ctx context.Context, department *domain.Department) error

	// UserScope returns the section and department a user belongs to
	UserScope(ctx context.Context, userID string) (sectionID, departmentID string, err error)

	// ActiveUserIDsBySection returns the active members of a section,
	// excluding the given user and anyone holding the section_admin role
	ActiveUserIDsBySection(ctx context.Context, sectionID, excludeUserID string) ([]string, error)

	// ActiveUserIDsByDepartment returns the active users of a department
	ActiveUserIDsByDepartment(ctx context.Context, departmentID string) ([]string, error)

	// ActiveUserIDs returns every active user system-wide
	ActiveUserIDs(ctx context.Context) ([]string, error)

	// UserName returns a user's display name, empty when absent
	UserName(ctx context.Context, userID string) (string, error)

	// SectionName returns a section's name, empty when absent
	SectionName(ctx context.Context, sectionID string) (string, error)

	// DepartmentName returns a department's name, empty when absent
	DepartmentName(ctx context.Context, departmentID string) (string, error)
}
