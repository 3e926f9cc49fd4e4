package usecase

import (
	"context"

	"section-notify-server/internal/push/domain"
)

// OrgDirectory is the slice of the organization module the notification
// pipeline needs: audience queries and display names for message building.
type OrgDirectory interface {
	ActiveUserIDsBySection(ctx context.Context, sectionID, excludeUserID string) ([]string, error)
	ActiveUserIDsByDepartment(ctx context.Context, departmentID string) ([]string, error)
	ActiveUserIDs(ctx context.Context) ([]string, error)
	UserName(ctx context.Context, userID string) (string, error)
	SectionName(ctx context.Context, sectionID string) (string, error)
	DepartmentName(ctx context.Context, departmentID string) (string, error)
}

// AudienceResolver computes the recipient set for a domain event
type AudienceResolver struct {
	dir OrgDirectory
}

// NewAudienceResolver creates a new AudienceResolver
func NewAudienceResolver(dir OrgDirectory) *AudienceResolver {
	return &AudienceResolver{dir: dir}
}

// Resolve returns the target user ids for an event. Scope priority is
// deterministic: section, then department, then system-wide. A section
// event never reaches its creator or that section's admins, so the author
// of a section task does not notify themselves. An empty result is a
// normal outcome, not an error.
func (r *AudienceResolver) Resolve(ctx context.Context, event domain.DomainEvent) ([]string, error) {
	switch {
	case event.SectionID != "":
		return r.dir.ActiveUserIDsBySection(ctx, event.SectionID, event.CreatorID)
	case event.DepartmentID != "":
		return r.dir.ActiveUserIDsByDepartment(ctx, event.DepartmentID)
	default:
		return r.dir.ActiveUserIDs(ctx)
	}
}
