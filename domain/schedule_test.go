package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func entry(taskID string, startHour, endHour int) ScheduleEntry {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return ScheduleEntry{
		TaskID: taskID,
		Start:  day.Add(time.Duration(startHour) * time.Hour),
		End:    day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestEntryOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b ScheduleEntry
		want bool
	}{
		{"disjoint", entry("a", 9, 10), entry("b", 11, 12), false},
		{"contained", entry("a", 9, 12), entry("b", 10, 11), true},
		{"partial", entry("a", 9, 11), entry("b", 10, 12), true},
		{"identical", entry("a", 9, 10), entry("b", 9, 10), true},
		{"touching is not overlap", entry("a", 9, 10), entry("b", 10, 11), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestEntryFor(t *testing.T) {
	sched := &Schedule{Entries: []ScheduleEntry{entry("a", 9, 10), entry("b", 11, 12)}}
	assert.Equal(t, 0, sched.EntryFor("a"))
	assert.Equal(t, 1, sched.EntryFor("b"))
	assert.Equal(t, -1, sched.EntryFor("ghost"))

	var nilSched *Schedule
	assert.Equal(t, -1, nilSched.EntryFor("a"))
}
