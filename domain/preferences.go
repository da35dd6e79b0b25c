package domain

import (
	"fmt"
	"time"
)

// ClockLayout is the wire format for times of day in preferences.
const ClockLayout = "15:04"

// PriorityWeights are the scoring coefficients applied by the schedule
// engine. They are arbitrary non-negative weights, not required to sum
// to one. Distinct from Priority, which is the per-task importance tier.
type PriorityWeights struct {
	Deadline   float64 `json:"deadline"`
	Importance float64 `json:"importance"`
	Duration   float64 `json:"duration"`
}

// DefaultPriorityWeights returns the stock weighting.
func DefaultPriorityWeights() PriorityWeights {
	return PriorityWeights{Deadline: 0.4, Importance: 0.4, Duration: 0.2}
}

func (w PriorityWeights) Valid() bool {
	return w.Deadline >= 0 && w.Importance >= 0 && w.Duration >= 0
}

// NotificationSettings controls reminder delivery channels and lead times.
type NotificationSettings struct {
	Email                 bool  `json:"email"`
	Push                  bool  `json:"push"`
	InApp                 bool  `json:"in_app"`
	ReminderMinutesBefore []int `json:"reminder_minutes_before"`
}

// UserPreferences holds one row per user; it is created lazily with
// defaults on first read. Invariant: WorkHoursStart < WorkHoursEnd.
type UserPreferences struct {
	ID                     string               `json:"id"`
	UserID                 string               `json:"user_id"`
	WorkHoursStart         string               `json:"work_hours_start"` // "HH:MM"
	WorkHoursEnd           string               `json:"work_hours_end"`   // "HH:MM"
	WorkDays               []int                `json:"work_days"`        // ISO weekdays, 1=Monday .. 7=Sunday
	PreferredBreakDuration int                  `json:"preferred_break_duration"` // minutes
	NotificationSettings   NotificationSettings `json:"notification_settings"`
	CalendarSyncEnabled    bool                 `json:"calendar_sync_enabled"`
	PriorityWeights        PriorityWeights      `json:"priority_weights"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`
}

// DefaultPreferences builds the row inserted on first read: 09:00-17:00,
// Monday through Friday, 15 minute breaks.
func DefaultPreferences(userID string) *UserPreferences {
	return &UserPreferences{
		UserID:                 userID,
		WorkHoursStart:         "09:00",
		WorkHoursEnd:           "17:00",
		WorkDays:               []int{1, 2, 3, 4, 5},
		PreferredBreakDuration: 15,
		NotificationSettings: NotificationSettings{
			Email:                 true,
			Push:                  true,
			InApp:                 true,
			ReminderMinutesBefore: []int{15, 60},
		},
		PriorityWeights: DefaultPriorityWeights(),
	}
}

// WorksOn reports whether the ISO weekday (1=Monday) is a working day.
func (p *UserPreferences) WorksOn(isoWeekday int) bool {
	if p == nil {
		return false
	}
	for _, d := range p.WorkDays {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// ReminderLead returns the lead time in minutes for task reminders.
func (p *UserPreferences) ReminderLead() int {
	if p == nil || len(p.NotificationSettings.ReminderMinutesBefore) == 0 {
		return 15
	}
	return p.NotificationSettings.ReminderMinutesBefore[0]
}

// Validate checks the invariants mutations must preserve.
func (p *UserPreferences) Validate() error {
	start, err := time.Parse(ClockLayout, p.WorkHoursStart)
	if err != nil {
		return WrapError(ErrCodeConfiguration, fmt.Sprintf("invalid work_hours_start %q", p.WorkHoursStart), err)
	}
	end, err := time.Parse(ClockLayout, p.WorkHoursEnd)
	if err != nil {
		return WrapError(ErrCodeConfiguration, fmt.Sprintf("invalid work_hours_end %q", p.WorkHoursEnd), err)
	}
	if !start.Before(end) {
		return ErrInvalidWorkHours
	}
	for _, d := range p.WorkDays {
		if d < 1 || d > 7 {
			return NewError(ErrCodeConfiguration, fmt.Sprintf("work_days entry %d out of range 1-7", d))
		}
	}
	if p.PreferredBreakDuration < 0 {
		return NewError(ErrCodeConfiguration, "preferred_break_duration must be non-negative")
	}
	if !p.PriorityWeights.Valid() {
		return NewError(ErrCodeConfiguration, "priority_weights must be non-negative")
	}
	return nil
}

// ISOWeekday converts Go's Sunday-based weekday to ISO 1=Monday .. 7=Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
