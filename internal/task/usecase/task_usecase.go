package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	orgrepo "section-notify-server/internal/org/repository"
	pushdomain "section-notify-server/internal/push/domain"
	"section-notify-server/internal/task/domain"
	"section-notify-server/internal/task/repository"
)

// ErrTitleRequired is returned when a task is created without a title
var ErrTitleRequired = errors.New("title is required")

// EventPublisher announces domain events to interested listeners.
// Publication is best effort and never affects the triggering operation.
type EventPublisher interface {
	Publish(ctx context.Context, event pushdomain.DomainEvent)
}

// TaskUsecase implements task business logic
type TaskUsecase struct {
	tasks     repository.TaskRepository
	org       orgrepo.OrgRepository
	publisher EventPublisher
}

// NewTaskUsecase creates a new TaskUsecase
func NewTaskUsecase(tasks repository.TaskRepository, org orgrepo.OrgRepository, publisher EventPublisher) *TaskUsecase {
	return &TaskUsecase{tasks: tasks, org: org, publisher: publisher}
}

// CreateTaskInput carries caller-supplied fields for a new task
type CreateTaskInput struct {
	Title        string
	Description  string
	SectionID    *string
	DepartmentID *string
	DueDate      *time.Time
	Notify       bool
}

// Create persists a task and announces it to the creator's scope.
// When no scope is given the creator's own section and department apply.
func (u *TaskUsecase) Create(ctx context.Context, creatorID string, input CreateTaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	sectionID := input.SectionID
	departmentID := input.DepartmentID
	if sectionID == nil && departmentID == nil {
		sec, dep, err := u.org.UserScope(ctx, creatorID)
		if err != nil {
			return nil, err
		}
		if sec != "" {
			sectionID = &sec
		}
		if dep != "" {
			departmentID = &dep
		}
	}

	task := &domain.Task{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Description:  input.Description,
		SectionID:    sectionID,
		DepartmentID: departmentID,
		DueDate:      input.DueDate,
		Notify:       input.Notify,
		CreatedBy:    creatorID,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	if task.Notify && u.publisher != nil {
		event := pushdomain.DomainEvent{
			EntityID:    task.ID,
			EntityTitle: task.Title,
			Category:    pushdomain.CategoryTask,
			DueDate:     task.DueDate,
			CreatorID:   creatorID,
		}
		if task.SectionID != nil {
			event.SectionID = *task.SectionID
		}
		if task.DepartmentID != nil {
			event.DepartmentID = *task.DepartmentID
		}
		u.publisher.Publish(ctx, event)
	}

	return task, nil
}

// GetByID returns a single task
func (u *TaskUsecase) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return u.tasks.FindByID(ctx, id)
}

// ListBySection returns a page of tasks for one section
func (u *TaskUsecase) ListBySection(ctx context.Context, sectionID string, limit, offset int) ([]domain.Task, int64, error) {
	return u.tasks.FindBySection(ctx, sectionID, limit, offset)
}
