package domain

import "time"

// Category classifies a notification for preference gating
type Category string

const (
	CategoryTask         Category = "task"
	CategoryAnnouncement Category = "announcement"
	CategoryReminder     Category = "reminder"
	CategoryEmail        Category = "email"
)

// NotificationPreference holds one user's opt-in flags per category plus an
// optional quiet-hours window. A nil flag means the user never touched it,
// which counts as allow (fail-open).
type NotificationPreference struct {
	UserID              string    `json:"user_id" gorm:"primaryKey"`
	TaskEnabled         *bool     `json:"task_enabled"`
	AnnouncementEnabled *bool     `json:"announcement_enabled"`
	ReminderEnabled     *bool     `json:"reminder_enabled"`
	EmailEnabled        *bool     `json:"email_enabled"`
	QuietStart          string    `json:"quiet_start"` // "22:00", empty disables quiet hours
	QuietEnd            string    `json:"quiet_end"`
	Timezone            string    `json:"timezone"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Allows reports whether the given category is enabled. Unset flags and
// unknown categories allow delivery.
func (p *NotificationPreference) Allows(c Category) bool {
	var flag *bool
	switch c {
	case CategoryTask:
		flag = p.TaskEnabled
	case CategoryAnnouncement:
		flag = p.AnnouncementEnabled
	case CategoryReminder:
		flag = p.ReminderEnabled
	case CategoryEmail:
		flag = p.EmailEnabled
	}
	if flag == nil {
		return true
	}
	return *flag
}

// InQuietHours reports whether now falls inside the user's quiet-hours
// window. Windows may cross midnight ("22:00" to "07:00"). An unset or
// unparsable window never suppresses delivery.
func (p *NotificationPreference) InQuietHours(now time.Time) bool {
	if p.QuietStart == "" || p.QuietEnd == "" {
		return false
	}
	start, err := time.Parse("15:04", p.QuietStart)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", p.QuietEnd)
	if err != nil {
		return false
	}

	loc := time.UTC
	if p.Timezone != "" {
		if l, err := time.LoadLocation(p.Timezone); err == nil {
			loc = l
		}
	}
	local := now.In(loc)
	minutes := local.Hour()*60 + local.Minute()
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()

	if startMin <= endMin {
		return minutes >= startMin && minutes < endMin
	}
	// window crosses midnight
	return minutes >= startMin || minutes < endMin
}
