package schedule

import (
	"time"

	"github.com/planday/backend/domain"
)

// Interval is a half-open [Start, End) block of schedulable time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Remaining returns the interval length.
func (iv Interval) Remaining() time.Duration {
	return iv.End.Sub(iv.Start)
}

// ResolveAvailability projects the user's working-hours window onto a
// calendar date. A date outside work_days yields no intervals and no
// error: nothing is schedulable, which is not a failure. Breaks and
// already-committed time are subtracted later by the allocator, since
// breaks are spaced relative to allocated work rather than fixed clock
// positions.
func ResolveAvailability(prefs *domain.UserPreferences, date time.Time) ([]Interval, error) {
	if prefs == nil {
		return nil, domain.ErrPreferencesNotFound
	}

	start, err := time.Parse(domain.ClockLayout, prefs.WorkHoursStart)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeConfiguration, "invalid work_hours_start", err)
	}
	end, err := time.Parse(domain.ClockLayout, prefs.WorkHoursEnd)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeConfiguration, "invalid work_hours_end", err)
	}
	if !start.Before(end) {
		return nil, domain.ErrInvalidWorkHours
	}

	if !prefs.WorksOn(domain.ISOWeekday(date)) {
		return nil, nil
	}

	return []Interval{{
		Start: atClock(date, start),
		End:   atClock(date, end),
	}}, nil
}

func atClock(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		date.Location(),
	)
}
