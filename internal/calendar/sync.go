package calendar

import (
	"context"

	"go.uber.org/zap"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/usecase"
)

// Stub is a placeholder calendar-sync collaborator. The real provider
// integration (Google/Outlook push) lives outside this service; here we
// only record that a committed schedule was offered for sync.
type Stub struct {
	logger *zap.Logger
}

func NewStub(logger *zap.Logger) *Stub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stub{logger: logger}
}

func (s *Stub) Sync(_ context.Context, sched *domain.Schedule) error {
	if sched == nil {
		return nil
	}
	s.logger.Info("calendar sync requested",
		zap.String("schedule_id", sched.ID),
		zap.String("user_id", sched.UserID),
		zap.String("date", sched.Date),
		zap.Int("entries", len(sched.Entries)))
	return nil
}

var _ usecase.CalendarSync = (*Stub)(nil)
