package domain

import "time"

// DateLayout is the wire format for calendar dates keying schedules.
const DateLayout = "2006-01-02"

// EntrySource marks who placed an entry.
type EntrySource string

const (
	SourceGenerated EntrySource = "generated"
	SourceManual    EntrySource = "manual"
)

// ScheduleEntry is one task's placed time block within a schedule.
// The interval is half-open: [Start, End).
type ScheduleEntry struct {
	TaskID string      `json:"task_id"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Source EntrySource `json:"source"`
}

// Overlaps reports whether two half-open intervals intersect.
func (e ScheduleEntry) Overlaps(other ScheduleEntry) bool {
	return e.Start.Before(other.End) && other.Start.Before(e.End)
}

// ScheduleMetadata summarizes how a schedule was produced.
type ScheduleMetadata struct {
	TotalTasks       int       `json:"total_tasks"`
	PlacedTasks      int       `json:"placed_tasks"`
	Unplaced         []string  `json:"unplaced"`
	GeneratedAt      time.Time `json:"generated_at"`
	GenerationReason string    `json:"generation_reason"`
}

// Schedule is the derived, cacheable allocation of one user's backlog
// onto one calendar date. At most one schedule exists per (UserID, Date);
// regeneration overwrites, never duplicates. Its presence for a date is
// the cache-hit signal.
type Schedule struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Date      string           `json:"date"` // "YYYY-MM-DD"
	Entries   []ScheduleEntry  `json:"entries"`
	Metadata  ScheduleMetadata `json:"metadata"`
	CreatedAt time.Time        `json:"created_at"`
}

// EntryFor returns the index of the entry holding taskID, or -1.
func (s *Schedule) EntryFor(taskID string) int {
	if s == nil {
		return -1
	}
	for i, e := range s.Entries {
		if e.TaskID == taskID {
			return i
		}
	}
	return -1
}

// Generation reasons recorded in schedule metadata.
const (
	ReasonGenerated        = "generated"
	ReasonRegenerated      = "force_regenerated"
	ReasonManualAdjustment = "manual_adjustment"
)
