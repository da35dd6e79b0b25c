package schedule

import (
	"sort"
	"time"

	"github.com/planday/backend/domain"
)

// DefaultTaskDuration time-boxes tasks that carry no estimate, so they
// still occupy calendar space.
const DefaultTaskDuration = 30 * time.Minute

// Allocate places scored tasks into the day's free intervals. It is a
// deterministic single-pass greedy packing, best fit meaning the first
// interval (in chronological order) whose remaining capacity holds the
// task: high-score tasks get their best available slot, which is not
// the same as squeezing the most tasks into the day. A break follows
// every placement. Tasks that fit nowhere are returned as unplaced ids
// and stay pending; a task is never partially scheduled.
func Allocate(free []Interval, ranked []scoredTask, breakLen time.Duration) ([]domain.ScheduleEntry, []string) {
	cursors := make([]time.Time, len(free))
	for i, iv := range free {
		cursors[i] = iv.Start
	}

	var entries []domain.ScheduleEntry
	var unplaced []string

	for _, c := range ranked {
		dur := DefaultTaskDuration
		if c.task.EstimatedDuration != nil {
			dur = time.Duration(*c.task.EstimatedDuration) * time.Minute
		}

		placed := false
		for i, iv := range free {
			end := cursors[i].Add(dur)
			if end.After(iv.End) {
				continue
			}
			entries = append(entries, domain.ScheduleEntry{
				TaskID: c.task.ID,
				Start:  cursors[i],
				End:    end,
				Source: domain.SourceGenerated,
			})
			cursors[i] = end.Add(breakLen)
			placed = true
			break
		}
		if !placed {
			unplaced = append(unplaced, c.task.ID)
		}
	}

	return entries, unplaced
}

// sortEntries keeps a schedule's entry sequence in chronological order
// with a task-id tie-break.
func sortEntries(entries []domain.ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Start.Equal(entries[j].Start) {
			return entries[i].Start.Before(entries[j].Start)
		}
		return entries[i].TaskID < entries[j].TaskID
	})
}
