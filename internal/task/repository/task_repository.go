package repository

import (
	"context"

	"gorm.io/gorm"

	"section-notify-server/internal/task/domain"
)

// TaskRepository defines task persistence operations
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindBySection(ctx context.Context, sectionID string, limit, offset int) ([]domain.Task, int64, error)
}

type gormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository backed by gorm
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *gormTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) FindBySection(ctx context.Context, sectionID string, limit, offset int) ([]domain.Task, int64, error) {
	var tasks []domain.Task
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Task{}).Where("section_id = ?", sectionID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}
