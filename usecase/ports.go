package usecase

import (
	"context"

	"github.com/planday/backend/domain"
)

// Notifier schedules one reminder per placed entry of a committed
// schedule. Implementations are best-effort: a failure here must never
// fail the enclosing generation or adjustment call.
type Notifier interface {
	ScheduleReminders(ctx context.Context, prefs *domain.UserPreferences, schedule *domain.Schedule) error
}

// CalendarSync pushes a committed schedule to the user's external
// calendar provider. Fire-and-forget, same contract as Notifier.
type CalendarSync interface {
	Sync(ctx context.Context, schedule *domain.Schedule) error
}

// TaskExtractor is the black-box text ingestion collaborator: it turns
// free text into candidate tasks with title, priority and estimate.
type TaskExtractor interface {
	Extract(ctx context.Context, content string) ([]TaskDraft, error)
}

// TaskDraft is one candidate task produced by the extractor.
type TaskDraft struct {
	Title             string          `json:"title"`
	Priority          domain.Priority `json:"priority"`
	EstimatedDuration *int            `json:"estimated_duration,omitempty"`
}
