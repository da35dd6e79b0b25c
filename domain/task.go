package domain

import "time"

// Priority is the importance tier assigned to a task by its owner.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Ordinal maps the tier onto a 0..3 scale used by the scorer.
// Unknown tiers fall back to medium.
func (p Priority) Ordinal() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	default:
		return 1
	}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TaskStatus is the task lifecycle state. Only pending and in_progress
// tasks are eligible for placement.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Task represents a user-owned activity item. The scheduled_* window is
// written only by the schedule engine; the actual_* timestamps come from
// completion tracking outside this service.
type Task struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	Title             string            `json:"title"`
	Description       string            `json:"description,omitempty"`
	Priority          Priority          `json:"priority"`
	Status            TaskStatus        `json:"status"`
	EstimatedDuration *int              `json:"estimated_duration,omitempty"` // minutes
	ScheduledStart    *time.Time        `json:"scheduled_start,omitempty"`
	ScheduledEnd      *time.Time        `json:"scheduled_end,omitempty"`
	ActualStart       *time.Time        `json:"actual_start,omitempty"`
	ActualEnd         *time.Time        `json:"actual_end,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Schedulable reports whether the task belongs to the backlog.
func (t *Task) Schedulable() bool {
	return t != nil && (t.Status == StatusPending || t.Status == StatusInProgress)
}
