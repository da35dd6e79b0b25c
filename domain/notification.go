package domain

import "time"

// NotificationType classifies why a notification exists.
type NotificationType string

const (
	NotificationReminder NotificationType = "reminder"
	NotificationDeadline NotificationType = "deadline"
	NotificationNudge    NotificationType = "nudge"
)

// Notification is a scheduled, best-effort delivery record. The engine
// only creates these; delivery happens downstream.
type Notification struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	TaskID       string           `json:"task_id,omitempty"`
	Type         NotificationType `json:"type"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	ScheduledFor time.Time        `json:"scheduled_for"`
	Channels     []string         `json:"channels,omitempty"`
	SentAt       *time.Time       `json:"sent_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}
