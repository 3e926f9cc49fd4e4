package domain

import "time"

// DomainEvent describes the insertion of a notifiable record. It is built by
// the record-creation path, handed to the event publisher and consumed
// exactly once; nothing persists it.
type DomainEvent struct {
	EntityID     string
	EntityTitle  string
	Category     Category
	SectionID    string
	DepartmentID string
	DueDate      *time.Time
	CreatorID    string
}

// Notification is the display payload delivered to a push endpoint
type Notification struct {
	Title              string `json:"title"`
	Body               string `json:"body"`
	Icon               string `json:"icon,omitempty"`
	Badge              string `json:"badge,omitempty"`
	Tag                string `json:"tag,omitempty"`
	RequireInteraction bool   `json:"requireInteraction,omitempty"`
}
