package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planday/backend/domain"
)

func seedSchedule(t *testing.T, schedules *fakeScheduleRepo, entries []domain.ScheduleEntry, unplaced []string) *domain.Schedule {
	t.Helper()
	sched := &domain.Schedule{
		ID:      "sched-1",
		UserID:  "u1",
		Date:    mondayDate,
		Entries: entries,
		Metadata: domain.ScheduleMetadata{
			TotalTasks:       len(entries) + len(unplaced),
			PlacedTasks:      len(entries),
			Unplaced:         unplaced,
			GeneratedAt:      time.Now().UTC(),
			GenerationReason: domain.ReasonGenerated,
		},
	}
	_, won, err := schedules.UpsertByOwnerDate(context.Background(), sched, true)
	require.NoError(t, err)
	require.True(t, won)
	return sched
}

func entryAt(taskID string, startHour, endHour int, source domain.EntrySource) domain.ScheduleEntry {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return domain.ScheduleEntry{
		TaskID: taskID,
		Start:  day.Add(time.Duration(startHour) * time.Hour),
		End:    day.Add(time.Duration(endHour) * time.Hour),
		Source: source,
	}
}

func TestAdjustMoveEvictsGeneratedEntry(t *testing.T) {
	schedules := newFakeScheduleRepo()
	seedSchedule(t, schedules, []domain.ScheduleEntry{
		entryAt("A", 9, 11, domain.SourceGenerated),
		entryAt("B", 12, 13, domain.SourceGenerated),
	}, nil)

	tasks := newFakeTaskRepo(
		backlogTask("A", "u1", domain.PriorityHigh, 120),
		backlogTask("B", "u1", domain.PriorityMedium, 60),
	)
	svc, _, _ := newTestService(tasks, newFakePrefRepo(), schedules)

	// Move A onto B's slot: A becomes manual, B is evicted to unplaced.
	updated, err := svc.Adjust(context.Background(), "u1", "sched-1", Delta{
		Moves: []domain.ScheduleEntry{entryAt("A", 12, 14, domain.SourceGenerated)},
	})
	require.NoError(t, err)

	require.Len(t, updated.Entries, 1)
	assert.Equal(t, "A", updated.Entries[0].TaskID)
	assert.Equal(t, domain.SourceManual, updated.Entries[0].Source)
	assert.Equal(t, []string{"B"}, updated.Metadata.Unplaced)
	assert.Equal(t, domain.ReasonManualAdjustment, updated.Metadata.GenerationReason)
	assert.Equal(t, 2, updated.Metadata.TotalTasks)
	assert.Equal(t, 1, updated.Metadata.PlacedTasks)
}

func TestAdjustManualManualOverlapConflicts(t *testing.T) {
	schedules := newFakeScheduleRepo()
	seedSchedule(t, schedules, []domain.ScheduleEntry{
		entryAt("A", 9, 11, domain.SourceManual),
		entryAt("B", 12, 13, domain.SourceGenerated),
	}, nil)

	svc, _, _ := newTestService(newFakeTaskRepo(), newFakePrefRepo(), schedules)

	_, err := svc.Adjust(context.Background(), "u1", "sched-1", Delta{
		Moves: []domain.ScheduleEntry{entryAt("B", 10, 12, domain.SourceGenerated)},
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))

	var dErr *domain.Error
	require.True(t, errors.As(err, &dErr))
	conflict, ok := dErr.Details.(domain.EntryConflict)
	require.True(t, ok, "conflict must identify both entries")
	assert.Equal(t, "B", conflict.First.TaskID)
	assert.Equal(t, "A", conflict.Second.TaskID)

	// The stored schedule is untouched after a failed adjustment.
	stored, err := schedules.GetByID(context.Background(), "sched-1")
	require.NoError(t, err)
	assert.Len(t, stored.Entries, 2)
	assert.Equal(t, domain.ReasonGenerated, stored.Metadata.GenerationReason)
}

func TestAdjustRemoveMovesTaskToUnplaced(t *testing.T) {
	schedules := newFakeScheduleRepo()
	seedSchedule(t, schedules, []domain.ScheduleEntry{
		entryAt("A", 9, 10, domain.SourceGenerated),
		entryAt("B", 11, 12, domain.SourceGenerated),
	}, nil)

	svc, _, _ := newTestService(newFakeTaskRepo(), newFakePrefRepo(), schedules)

	updated, err := svc.Adjust(context.Background(), "u1", "sched-1", Delta{
		Removes: []string{"A"},
	})
	require.NoError(t, err)

	require.Len(t, updated.Entries, 1)
	assert.Equal(t, "B", updated.Entries[0].TaskID)
	assert.Equal(t, []string{"A"}, updated.Metadata.Unplaced)
}

func TestAdjustRemoveUnknownTask(t *testing.T) {
	schedules := newFakeScheduleRepo()
	seedSchedule(t, schedules, []domain.ScheduleEntry{
		entryAt("A", 9, 10, domain.SourceGenerated),
	}, nil)

	svc, _, _ := newTestService(newFakeTaskRepo(), newFakePrefRepo(), schedules)

	_, err := svc.Adjust(context.Background(), "u1", "sched-1", Delta{
		Removes: []string{"ghost"},
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestAdjustAddFromUnplaced(t *testing.T) {
	schedules := newFakeScheduleRepo()
	seedSchedule(t, schedules, []domain.ScheduleEntry{
		entryAt("A", 9, 10, domain.SourceGenerated),
	}, []string{"C"})

	tasks := newFakeTaskRepo(backlogTask("C", "u1", domain.PriorityMedium, 60))
	svc, _, _ := newTestService(tasks, newFakePrefRepo(), schedules)

	updated, err := svc.Adjust(context.Background(), "u1", "sched-1", Delta{
		Adds: []domain.ScheduleEntry{entryAt("C", 14, 15, domain.SourceGenerated)},
	})
	require.NoError(t, err)

	require.Len(t, updated.Entries, 2)
	assert.Equal(t, "C", updated.Entries[1].TaskID)
	assert.Equal(t, domain.SourceManual, updated.Entries[1].Source)
	assert.Empty(t, updated.Metadata.Unplaced)
}

func TestAdjustAddDuplicateRejected(t *testing.T) {
	schedules := newFakeScheduleRepo()
	seedSchedule(t, schedules, []domain.ScheduleEntry{
		entryAt("A", 9, 10, domain.SourceGenerated),
	}, nil)

	svc, _, _ := newTestService(newFakeTaskRepo(), newFakePrefRepo(), schedules)

	_, err := svc.Adjust(context.Background(), "u1", "sched-1", Delta{
		Adds: []domain.ScheduleEntry{entryAt("A", 14, 15, domain.SourceGenerated)},
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestAdjustInvalidWindowRejected(t *testing.T) {
	schedules := newFakeScheduleRepo()
	seedSchedule(t, schedules, []domain.ScheduleEntry{
		entryAt("A", 9, 10, domain.SourceGenerated),
	}, nil)

	svc, _, _ := newTestService(newFakeTaskRepo(), newFakePrefRepo(), schedules)

	_, err := svc.Adjust(context.Background(), "u1", "sched-1", Delta{
		Moves: []domain.ScheduleEntry{entryAt("A", 15, 14, domain.SourceGenerated)},
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestAdjustUnknownSchedule(t *testing.T) {
	svc, _, _ := newTestService(newFakeTaskRepo(), newFakePrefRepo(), newFakeScheduleRepo())

	_, err := svc.Adjust(context.Background(), "u1", "missing", Delta{})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestAdjustWrongOwner(t *testing.T) {
	schedules := newFakeScheduleRepo()
	seedSchedule(t, schedules, []domain.ScheduleEntry{
		entryAt("A", 9, 10, domain.SourceGenerated),
	}, nil)

	svc, _, _ := newTestService(newFakeTaskRepo(), newFakePrefRepo(), schedules)

	_, err := svc.Adjust(context.Background(), "intruder", "sched-1", Delta{})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestAdjustUntouchedEntriesSurvive(t *testing.T) {
	schedules := newFakeScheduleRepo()
	original := entryAt("keep", 9, 10, domain.SourceGenerated)
	seedSchedule(t, schedules, []domain.ScheduleEntry{
		original,
		entryAt("move", 11, 12, domain.SourceGenerated),
	}, nil)

	svc, _, _ := newTestService(newFakeTaskRepo(), newFakePrefRepo(), schedules)

	updated, err := svc.Adjust(context.Background(), "u1", "sched-1", Delta{
		Moves: []domain.ScheduleEntry{entryAt("move", 14, 15, domain.SourceGenerated)},
	})
	require.NoError(t, err)

	idx := updated.EntryFor("keep")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, original, updated.Entries[idx])
}
