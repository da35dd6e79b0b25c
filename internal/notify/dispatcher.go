package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/internal/infrastructure/outbox"
	"github.com/planday/backend/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// DispatcherConfig controls how frequently the outbox is drained.
type DispatcherConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// Dispatcher drains the reminder outbox into the notification store.
// Delivery itself happens downstream; inserting the row is the handoff.
type Dispatcher struct {
	store         *outbox.Store
	monitor       ConnectionHealth
	notifications repository.NotificationRepository
	logger        *zap.Logger
	cron          *cron.Cron
	cfg           DispatcherConfig
}

func NewDispatcher(
	store *outbox.Store,
	monitor ConnectionHealth,
	notifications repository.NotificationRepository,
	logger *zap.Logger,
	cfg DispatcherConfig,
) *Dispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		store:         store,
		monitor:       monitor,
		notifications: notifications,
		logger:        logger,
		cfg:           cfg,
		cron:          cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = d.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := d.Drain(ctx); err != nil {
			d.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return d
}

// Start launches the cron scheduler.
func (d *Dispatcher) Start() {
	if d == nil || d.cron == nil {
		return
	}
	d.cron.Start()
	d.logger.Info("reminder dispatcher started")
}

// Stop gracefully stops the scheduler.
func (d *Dispatcher) Stop(ctx context.Context) {
	if d == nil || d.cron == nil {
		return
	}
	stopCtx := d.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	d.logger.Info("reminder dispatcher stopped")
}

// Drain hands pending reminders to the notification store.
func (d *Dispatcher) Drain(ctx context.Context) error {
	if d == nil || d.store == nil {
		return nil
	}
	if d.monitor != nil && !d.monitor.IsOnline() {
		d.logger.Debug("skipping outbox drain (offline)")
		return nil
	}

	if err := d.store.Cleanup(time.Now().Add(-d.cfg.Retention)); err != nil {
		d.logger.Warn("outbox cleanup failed", zap.Error(err))
	}

	reminders, err := d.store.GetBatch(d.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, reminder := range reminders {
		if err := d.deliver(ctx, reminder); err != nil {
			d.logger.Error("failed to hand off reminder",
				zap.String("reminder_id", reminder.ID),
				zap.String("task_id", reminder.TaskID),
				zap.Error(err))

			reminder.Retries++
			if reminder.Retries >= d.cfg.MaxRetries {
				d.logger.Warn("dropping reminder (max retries reached)", zap.String("reminder_id", reminder.ID))
				_ = d.store.Remove(reminder)
				continue
			}

			if err := d.store.Remove(reminder); err != nil {
				d.logger.Warn("failed to remove reminder", zap.Error(err))
			}
			if err := d.store.Requeue(reminder); err != nil {
				d.logger.Error("failed to requeue reminder", zap.Error(err))
			}
			continue
		}

		if err := d.store.Remove(reminder); err != nil {
			d.logger.Warn("failed to purge delivered reminder", zap.Error(err))
		}
	}
	return nil
}

// Size returns the number of pending reminders.
func (d *Dispatcher) Size() int {
	if d == nil || d.store == nil {
		return 0
	}
	size, err := d.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (d *Dispatcher) deliver(ctx context.Context, reminder outbox.Reminder) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return d.notifications.Insert(ctx, &domain.Notification{
		ID:           reminder.ID,
		UserID:       reminder.UserID,
		TaskID:       reminder.TaskID,
		Type:         domain.NotificationReminder,
		Title:        reminder.Title,
		Message:      reminder.Message,
		ScheduledFor: reminder.ScheduledFor,
		Channels:     reminder.Channels,
	})
}
