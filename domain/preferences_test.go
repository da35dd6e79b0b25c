package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences("u1")

	assert.Equal(t, "u1", prefs.UserID)
	assert.Equal(t, "09:00", prefs.WorkHoursStart)
	assert.Equal(t, "17:00", prefs.WorkHoursEnd)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, prefs.WorkDays)
	assert.Equal(t, 15, prefs.PreferredBreakDuration)
	assert.Equal(t, PriorityWeights{Deadline: 0.4, Importance: 0.4, Duration: 0.2}, prefs.PriorityWeights)
	assert.False(t, prefs.CalendarSyncEnabled)
	require.NoError(t, prefs.Validate())
}

func TestPreferencesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*UserPreferences)
		ok     bool
	}{
		{"defaults", func(p *UserPreferences) {}, true},
		{"inverted hours", func(p *UserPreferences) { p.WorkHoursStart = "18:00"; p.WorkHoursEnd = "09:00" }, false},
		{"equal hours", func(p *UserPreferences) { p.WorkHoursStart = "09:00"; p.WorkHoursEnd = "09:00" }, false},
		{"bad clock", func(p *UserPreferences) { p.WorkHoursStart = "9am" }, false},
		{"work day out of range", func(p *UserPreferences) { p.WorkDays = []int{0, 1} }, false},
		{"work day above seven", func(p *UserPreferences) { p.WorkDays = []int{8} }, false},
		{"negative break", func(p *UserPreferences) { p.PreferredBreakDuration = -5 }, false},
		{"negative weight", func(p *UserPreferences) { p.PriorityWeights.Deadline = -0.1 }, false},
		{"zero weights allowed", func(p *UserPreferences) { p.PriorityWeights = PriorityWeights{} }, true},
		{"empty work days allowed", func(p *UserPreferences) { p.WorkDays = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := DefaultPreferences("u1")
			tt.mutate(prefs)
			err := prefs.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, IsDomainError(err, ErrCodeConfiguration))
			}
		})
	}
}

func TestWorksOn(t *testing.T) {
	prefs := DefaultPreferences("u1")
	assert.True(t, prefs.WorksOn(1))
	assert.True(t, prefs.WorksOn(5))
	assert.False(t, prefs.WorksOn(6))
	assert.False(t, prefs.WorksOn(7))
}

func TestReminderLead(t *testing.T) {
	prefs := DefaultPreferences("u1")
	assert.Equal(t, 15, prefs.ReminderLead())

	prefs.NotificationSettings.ReminderMinutesBefore = []int{60, 15}
	assert.Equal(t, 60, prefs.ReminderLead())

	prefs.NotificationSettings.ReminderMinutesBefore = nil
	assert.Equal(t, 15, prefs.ReminderLead())
}

func TestISOWeekday(t *testing.T) {
	// 2025-06-02 is a Monday.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.Equal(t, i+1, ISOWeekday(monday.AddDate(0, 0, i)))
	}
}
