package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/internal/infrastructure/outbox"
	"github.com/planday/backend/usecase"
)

// Trigger implements the notification collaborator boundary: one
// reminder per placed entry, due at entry start minus the owner's
// reminder lead time. Reminders only touch the local outbox here, so
// the commit path never waits on the notification store.
type Trigger struct {
	store  *outbox.Store
	logger *zap.Logger
}

func NewTrigger(store *outbox.Store, logger *zap.Logger) *Trigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trigger{store: store, logger: logger}
}

func (t *Trigger) ScheduleReminders(_ context.Context, prefs *domain.UserPreferences, sched *domain.Schedule) error {
	if t.store == nil || sched == nil {
		return nil
	}

	lead := time.Duration(prefs.ReminderLead()) * time.Minute
	channels := enabledChannels(prefs)

	var errs []error
	for _, entry := range sched.Entries {
		reminder := outbox.Reminder{
			UserID:       sched.UserID,
			TaskID:       entry.TaskID,
			ScheduleID:   sched.ID,
			Title:        "Task Reminder",
			Message:      fmt.Sprintf("Your task starts in %d minutes", prefs.ReminderLead()),
			ScheduledFor: entry.Start.Add(-lead),
			Channels:     channels,
		}
		if err := t.store.Enqueue(reminder); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		t.logger.Warn("some reminders not enqueued",
			zap.String("schedule_id", sched.ID), zap.Int("failed", len(errs)))
		return errors.Join(errs...)
	}
	return nil
}

func enabledChannels(prefs *domain.UserPreferences) []string {
	var channels []string
	if prefs.NotificationSettings.InApp {
		channels = append(channels, "in_app")
	}
	if prefs.NotificationSettings.Push {
		channels = append(channels, "push")
	}
	if prefs.NotificationSettings.Email {
		channels = append(channels, "email")
	}
	return channels
}

var _ usecase.Notifier = (*Trigger)(nil)
