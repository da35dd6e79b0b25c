package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
	"github.com/planday/backend/usecase"
)

// Service is the schedule generation and adjustment engine. It is
// request-scoped and stateless: the persisted schedule document is the
// only shared state, and the repository's conditional upsert is what
// serializes concurrent generators for the same (owner, date).
type Service struct {
	tasks     repository.TaskRepository
	prefs     repository.PreferenceRepository
	schedules repository.ScheduleRepository
	notifier  usecase.Notifier
	calendar  usecase.CalendarSync
	logger    *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	prefs repository.PreferenceRepository,
	schedules repository.ScheduleRepository,
	notifier usecase.Notifier,
	calendar usecase.CalendarSync,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tasks:     tasks,
		prefs:     prefs,
		schedules: schedules,
		notifier:  notifier,
		calendar:  calendar,
		logger:    logger,
	}
}

// Generate returns the schedule for (owner, date). Without force, an
// already-stored schedule is a cache hit and is returned unchanged; the
// scorer and allocator never run. Otherwise the current backlog is
// ranked and allocated, and the result is committed with the atomic
// (owner, date) upsert. A generator that loses the insert race discards
// its own computation and returns the winner's document.
func (s *Service) Generate(ctx context.Context, owner, date string, force bool) (*domain.Schedule, error) {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "date must be YYYY-MM-DD", err)
	}

	if !force {
		existing, err := s.schedules.GetByOwnerDate(ctx, owner, date)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrScheduleNotFound) {
			return nil, storageErr(err)
		}
	}

	prefs, err := s.prefs.GetByUserID(ctx, owner)
	if err != nil {
		return nil, storageErr(err)
	}

	free, err := ResolveAvailability(prefs, day)
	if err != nil {
		return nil, err
	}

	backlog, err := s.tasks.ListBacklog(ctx, owner)
	if err != nil {
		return nil, storageErr(err)
	}

	ranked := rankBacklog(backlog, day, prefs.PriorityWeights)
	breakLen := time.Duration(prefs.PreferredBreakDuration) * time.Minute
	entries, unplaced := Allocate(free, ranked, breakLen)
	sortEntries(entries)

	reason := domain.ReasonGenerated
	if force {
		reason = domain.ReasonRegenerated
	}

	sched := &domain.Schedule{
		ID:      uuid.NewString(),
		UserID:  owner,
		Date:    date,
		Entries: entries,
		Metadata: domain.ScheduleMetadata{
			TotalTasks:       len(backlog),
			PlacedTasks:      len(entries),
			Unplaced:         unplaced,
			GeneratedAt:      time.Now().UTC(),
			GenerationReason: reason,
		},
	}

	stored, won, err := s.schedules.UpsertByOwnerDate(ctx, sched, !force)
	if err != nil {
		return nil, storageErr(err)
	}
	if !won {
		s.logger.Info("generation lost upsert race, returning stored schedule",
			zap.String("user_id", owner), zap.String("date", date))
		return stored, nil
	}

	s.writeBackWindows(ctx, stored)
	s.commitEffects(ctx, prefs, stored)

	s.logger.Info("schedule generated",
		zap.String("user_id", owner),
		zap.String("date", date),
		zap.Int("placed", stored.Metadata.PlacedTasks),
		zap.Int("unplaced", len(stored.Metadata.Unplaced)),
		zap.Bool("forced", force))

	return stored, nil
}

// Get is a pure read: no schedule for the date means ErrScheduleNotFound,
// never an implicit generation.
func (s *Service) Get(ctx context.Context, owner, date string) (*domain.Schedule, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "date must be YYYY-MM-DD", err)
	}
	sched, err := s.schedules.GetByOwnerDate(ctx, owner, date)
	if err != nil {
		return nil, storageErr(err)
	}
	return sched, nil
}

// writeBackWindows mirrors the committed entries onto the task rows.
// The schedule document is the source of truth for the plan, so write
// failures here are logged and tolerated.
func (s *Service) writeBackWindows(ctx context.Context, sched *domain.Schedule) {
	for _, e := range sched.Entries {
		start, end := e.Start, e.End
		if err := s.tasks.SetScheduledWindow(ctx, e.TaskID, &start, &end); err != nil {
			s.logger.Warn("scheduled window write-back failed",
				zap.String("task_id", e.TaskID), zap.Error(err))
		}
	}
	for _, id := range sched.Metadata.Unplaced {
		if err := s.tasks.SetScheduledWindow(ctx, id, nil, nil); err != nil {
			s.logger.Warn("scheduled window clear failed",
				zap.String("task_id", id), zap.Error(err))
		}
	}
}

// commitEffects fires the collaborator boundary: reminders and calendar
// sync. Both are best-effort and never fail the enclosing call.
func (s *Service) commitEffects(ctx context.Context, prefs *domain.UserPreferences, sched *domain.Schedule) {
	if s.notifier != nil {
		if err := s.notifier.ScheduleReminders(ctx, prefs, sched); err != nil {
			s.logger.Warn("reminder scheduling failed", zap.Error(err))
		}
	}
	if s.calendar != nil && prefs.CalendarSyncEnabled {
		if err := s.calendar.Sync(ctx, sched); err != nil {
			s.logger.Warn("calendar sync failed", zap.Error(err))
		}
	}
}

// storageErr classifies failures crossing the storage boundary. A
// caller-supplied timeout surfaces as a retryable TIMEOUT; the engine
// itself never retries since it has no knowledge of the store's retry
// semantics. Domain errors pass through untouched.
func storageErr(err error) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrCodeTimeout, "storage timeout", err)
	}
	return err
}
