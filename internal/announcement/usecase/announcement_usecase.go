package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"section-notify-server/internal/announcement/domain"
	"section-notify-server/internal/announcement/repository"
	pushdomain "section-notify-server/internal/push/domain"
)

// ErrTitleRequired is returned when an announcement is created without a title
var ErrTitleRequired = errors.New("title is required")

// EventPublisher announces domain events to interested listeners.
// Publication is best effort and never affects the triggering operation.
type EventPublisher interface {
	Publish(ctx context.Context, event pushdomain.DomainEvent)
}

// AnnouncementUsecase implements announcement business logic
type AnnouncementUsecase struct {
	announcements repository.AnnouncementRepository
	publisher     EventPublisher
}

// NewAnnouncementUsecase creates a new AnnouncementUsecase
func NewAnnouncementUsecase(announcements repository.AnnouncementRepository, publisher EventPublisher) *AnnouncementUsecase {
	return &AnnouncementUsecase{announcements: announcements, publisher: publisher}
}

// CreateAnnouncementInput carries caller-supplied fields for a new announcement
type CreateAnnouncementInput struct {
	Title        string
	Body         string
	DepartmentID *string
	Notify       bool
}

// Create persists an announcement and announces it department-wide, or
// organization-wide when no department is given
func (u *AnnouncementUsecase) Create(ctx context.Context, creatorID string, input CreateAnnouncementInput) (*domain.Announcement, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	a := &domain.Announcement{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Body:         input.Body,
		DepartmentID: input.DepartmentID,
		Notify:       input.Notify,
		CreatedBy:    creatorID,
	}
	if err := u.announcements.Create(ctx, a); err != nil {
		return nil, err
	}

	if a.Notify && u.publisher != nil {
		event := pushdomain.DomainEvent{
			EntityID:    a.ID,
			EntityTitle: a.Title,
			Category:    pushdomain.CategoryAnnouncement,
			CreatorID:   creatorID,
		}
		if a.DepartmentID != nil {
			event.DepartmentID = *a.DepartmentID
		}
		u.publisher.Publish(ctx, event)
	}

	return a, nil
}

// List returns a page of announcements, newest first
func (u *AnnouncementUsecase) List(ctx context.Context, limit, offset int) ([]domain.Announcement, int64, error) {
	return u.announcements.List(ctx, limit, offset)
}
