package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planday/backend/domain"
)

func TestResolveAvailabilityWorkday(t *testing.T) {
	prefs := domain.DefaultPreferences("u1")
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	free, err := ResolveAvailability(prefs, monday)
	require.NoError(t, err)
	require.Len(t, free, 1)

	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), free[0].Start)
	assert.Equal(t, time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC), free[0].End)
	assert.Equal(t, 8*time.Hour, free[0].Remaining())
}

func TestResolveAvailabilityNonWorkday(t *testing.T) {
	prefs := domain.DefaultPreferences("u1")
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	free, err := ResolveAvailability(prefs, saturday)
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestResolveAvailabilityCustomWorkDays(t *testing.T) {
	prefs := domain.DefaultPreferences("u1")
	prefs.WorkDays = []int{6, 7}
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	free, err := ResolveAvailability(prefs, sunday)
	require.NoError(t, err)
	require.Len(t, free, 1)
}

func TestResolveAvailabilityInvalidHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"inverted", "17:00", "09:00"},
		{"equal", "09:00", "09:00"},
		{"garbage start", "9am", "17:00"},
		{"garbage end", "09:00", "later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := domain.DefaultPreferences("u1")
			prefs.WorkHoursStart = tt.start
			prefs.WorkHoursEnd = tt.end

			_, err := ResolveAvailability(prefs, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeConfiguration))
		})
	}
}

func TestResolveAvailabilityValidatesBeforeWorkdayCheck(t *testing.T) {
	// Broken hours must fail even on a day off.
	prefs := domain.DefaultPreferences("u1")
	prefs.WorkHoursStart = "18:00"
	prefs.WorkHoursEnd = "09:00"
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	_, err := ResolveAvailability(prefs, saturday)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConfiguration))
}

func TestResolveAvailabilityNilPreferences(t *testing.T) {
	_, err := ResolveAvailability(nil, time.Now())
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
