package usecase

import (
	"context"
	"errors"
	"log"

	"section-notify-server/internal/org/domain"
	"section-notify-server/internal/org/repository"
)

// PreferenceInitializer creates the default-allow notification preference
// row for a freshly created account. Implemented by the push module.
type PreferenceInitializer interface {
	CreateDefault(ctx context.Context, userID string) error
}

// OrgUsecase defines the interface for organization management
type OrgUsecase interface {
	// CreateUser creates an account and its default notification preferences
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// CreateSection creates a section
	CreateSection(ctx context.Context, name, departmentID string) (*domain.Section, error)

	// CreateDepartment creates a department
	CreateDepartment(ctx context.Context, name string) (*domain.Department, error)
}

// CreateUserInput carries the fields needed to create an account
type CreateUserInput struct {
	Email        string
	Password     string
	Name         string
	Role         domain.Role
	SectionID    *string
	DepartmentID *string
}

type orgUsecase struct {
	orgRepo repository.OrgRepository
	prefs   PreferenceInitializer
}

// NewOrgUsecase creates a new instance of orgUsecase
func NewOrgUsecase(orgRepo repository.OrgRepository, prefs PreferenceInitializer) OrgUsecase {
	return &orgUsecase{
		orgRepo: orgRepo,
		prefs:   prefs,
	}
}

func (u *orgUsecase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	existing, err := u.orgRepo.FindUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := repository.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}

	user := &domain.User{
		Email:        input.Email,
		Password:     hashedPassword,
		Name:         input.Name,
		Role:         role,
		SectionID:    input.SectionID,
		DepartmentID: input.DepartmentID,
		IsActive:     true,
	}
	if err := u.orgRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Accounts start with the default-allow preference row. Losing it is
	// harmless (absence also means allow), so a failure only gets logged.
	if err := u.prefs.CreateDefault(ctx, user.ID); err != nil {
		log.Printf("[Org] Failed to create default preferences for user %s: %v", user.ID, err)
	}

	return user, nil
}

func (u *orgUsecase) CreateSection(ctx context.Context, name, departmentID string) (*domain.Section, error) {
	section := &domain.Section{Name: name, DepartmentID: departmentID}
	if err := u.orgRepo.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (u *orgUsecase) CreateDepartment(ctx context.Context, name string) (*domain.Department, error) {
	department := &domain.Department{Name: name}
	if err := u.orgRepo.CreateDepartment(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}
