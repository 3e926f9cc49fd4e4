package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"section-notify-server/internal/org/domain"
)

// orgRepository implements OrgRepository on GORM
type orgRepository struct {
	db *gorm.DB
}

// NewOrgRepository creates a new instance of orgRepository
func NewOrgRepository(db *gorm.DB) OrgRepository {
	return &orgRepository{db: db}
}

func (r *orgRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *orgRepository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *orgRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *orgRepository) CreateSection(ctx context.Context, section *domain.Section) error {
	if section.ID == "" {
		section.ID = uuid.New().String()
	}
	section.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *orgRepository) CreateDepartment(ctx context.Context, department *domain.Department) error {
	if department.ID == "" {
		department.ID = uuid.New().String()
	}
	department.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *orgRepository) UserScope(ctx context.Context, userID string) (string, string, error) {
	user, err := r.FindUserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", nil
	}
	var sectionID, departmentID string
	if user.SectionID != nil {
		sectionID = *user.SectionID
	}
	if user.DepartmentID != nil {
		departmentID = *user.DepartmentID
	}
	return sectionID, departmentID, nil
}

func (r *orgRepository) ActiveUserIDsBySection(ctx context.Context, sectionID, excludeUserID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("section_id = ? AND is_active = ? AND role <> ?", sectionID, true, domain.RoleSectionAdmin).
		Where("id <> ?", excludeUserID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *orgRepository) ActiveUserIDsByDepartment(ctx context.Context, departmentID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("department_id = ? AND is_active = ?", departmentID, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *orgRepository) ActiveUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *orgRepository) UserName(ctx context.Context, userID string) (string, error) {
	user, err := r.FindUserByID(ctx, userID)
	if err != nil || user == nil {
		return "", err
	}
	return user.Name, nil
}

func (r *orgRepository) SectionName(ctx context.Context, sectionID string) (string, error) {
	var section domain.Section
	err := r.db.WithContext(ctx).Where("id = ?", sectionID).First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return section.Name, nil
}

func (r *orgRepository) DepartmentName(ctx context.Context, departmentID string) (string, error) {
	var department domain.Department
	err := r.db.WithContext(ctx).Where("id = ?", departmentID).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return department.Name, nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
