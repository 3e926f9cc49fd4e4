package domain

import "time"

// DeliveryStatus is the terminal outcome of one delivery attempt
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

// NotificationHistory is the append-only audit record of one delivery
// attempt to one token. Rows are never updated after insertion; they exist
// for diagnostics and delivery-rate auditing, not retry bookkeeping.
type NotificationHistory struct {
	ID        string         `json:"id" gorm:"primaryKey"`
	UserID    string         `json:"user_id" gorm:"index"` // empty for direct token sends
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Category  Category       `json:"category"`
	RelatedID string         `json:"related_id"`
	Token     string         `json:"-"`
	Status    DeliveryStatus `json:"status"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
