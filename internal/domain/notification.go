package domain

import "time"

// NotificationType distinguishes immediate removals from digestable assignments.
type NotificationType string

const (
	NotificationAssigned NotificationType = "assigned"
	NotificationRemoved  NotificationType = "removed"
)

// Notification is a queued (or already delivered) shift email.
// Rows are never deleted; Processed marks sent or intentionally
// skipped entries so they stay available for audit.
type Notification struct {
	ID        string
	Type      NotificationType
	Recipient string
	ShiftID   string
	Shift     ShiftSnapshot
	CreatedAt time.Time
	Processed bool
}

// UserPreference holds a recipient's notification opt-out flag.
// A missing row means notifications are enabled.
type UserPreference struct {
	Recipient          string
	EmailNotifications bool
	UpdatedAt          time.Time
}
