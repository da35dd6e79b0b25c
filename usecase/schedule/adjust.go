package schedule

import (
	"context"

	"go.uber.org/zap"

	"github.com/planday/backend/domain"
)

// Delta is the set of manual edits applied onto a stored schedule.
// Moves and Adds carry explicit windows; Source on them is ignored and
// forced to manual.
type Delta struct {
	Moves   []domain.ScheduleEntry
	Removes []string
	Adds    []domain.ScheduleEntry
}

// Adjust merges a manual delta onto the stored schedule. Moved and
// added entries become source=manual and win over generated placements:
// a generated entry they collide with is evicted back to unplaced. Two
// overlapping manual entries are a CONFLICT the caller must resolve.
// The merge is a whole-document replace, so a validation failure midway
// never leaves a half-updated schedule behind, and untouched entries
// come back byte-for-byte identical.
func (s *Service) Adjust(ctx context.Context, owner, scheduleID string, delta Delta) (*domain.Schedule, error) {
	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, storageErr(err)
	}
	if sched.UserID != owner {
		return nil, domain.ErrScheduleNotFound
	}

	entries := make([]domain.ScheduleEntry, len(sched.Entries))
	copy(entries, sched.Entries)
	unplaced := append([]string(nil), sched.Metadata.Unplaced...)

	for _, id := range delta.Removes {
		idx := indexOf(entries, id)
		if idx < 0 {
			return nil, domain.NewError(domain.ErrCodeInvalid, "cannot remove task not on schedule: "+id)
		}
		entries = append(entries[:idx], entries[idx+1:]...)
		unplaced = appendUnique(unplaced, id)
	}

	for _, mv := range delta.Moves {
		idx := indexOf(entries, mv.TaskID)
		if idx < 0 {
			return nil, domain.NewError(domain.ErrCodeInvalid, "cannot move task not on schedule: "+mv.TaskID)
		}
		changed, err := manualEntry(mv)
		if err != nil {
			return nil, err
		}
		entries[idx] = changed
		entries, unplaced, err = resolveOverlaps(entries, unplaced, idx)
		if err != nil {
			return nil, err
		}
	}

	for _, add := range delta.Adds {
		if indexOf(entries, add.TaskID) >= 0 {
			return nil, domain.NewError(domain.ErrCodeInvalid, "task already on schedule: "+add.TaskID)
		}
		changed, err := manualEntry(add)
		if err != nil {
			return nil, err
		}
		entries = append(entries, changed)
		unplaced = removeID(unplaced, add.TaskID)
		entries, unplaced, err = resolveOverlaps(entries, unplaced, len(entries)-1)
		if err != nil {
			return nil, err
		}
	}

	sortEntries(entries)
	sched.Entries = entries
	sched.Metadata.PlacedTasks = len(entries)
	sched.Metadata.TotalTasks = len(entries) + len(unplaced)
	sched.Metadata.Unplaced = unplaced
	sched.Metadata.GenerationReason = domain.ReasonManualAdjustment

	if err := s.schedules.Replace(ctx, sched); err != nil {
		return nil, storageErr(err)
	}

	s.writeBackWindows(ctx, sched)
	if prefs, err := s.prefs.GetByUserID(ctx, owner); err == nil {
		s.commitEffects(ctx, prefs, sched)
	} else {
		s.logger.Warn("skipping post-adjustment effects", zap.Error(err))
	}

	s.logger.Info("schedule adjusted",
		zap.String("schedule_id", sched.ID),
		zap.String("user_id", owner),
		zap.Int("entries", len(entries)))

	return sched, nil
}

// resolveOverlaps validates the entry at idx against every other entry.
// Generated entries it collides with are evicted to unplaced (manual
// edits win); a colliding manual entry is a conflict surfaced with both
// entries identified.
func resolveOverlaps(entries []domain.ScheduleEntry, unplaced []string, idx int) ([]domain.ScheduleEntry, []string, error) {
	changed := entries[idx]
	kept := entries[:0]
	for i, other := range entries {
		if i == idx {
			kept = append(kept, other)
			continue
		}
		if !changed.Overlaps(other) {
			kept = append(kept, other)
			continue
		}
		if other.Source == domain.SourceManual {
			return nil, nil, domain.NewConflict(changed, other)
		}
		unplaced = appendUnique(unplaced, other.TaskID)
	}
	return kept, unplaced, nil
}

func manualEntry(e domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	if e.TaskID == "" {
		return domain.ScheduleEntry{}, domain.NewError(domain.ErrCodeInvalid, "entry requires a task_id")
	}
	if !e.Start.Before(e.End) {
		return domain.ScheduleEntry{}, domain.NewError(domain.ErrCodeInvalid, "entry start must precede end")
	}
	e.Source = domain.SourceManual
	return e, nil
}

func indexOf(entries []domain.ScheduleEntry, taskID string) int {
	for i, e := range entries {
		if e.TaskID == taskID {
			return i
		}
	}
	return -1
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
