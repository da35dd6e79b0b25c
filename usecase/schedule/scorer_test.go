package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/planday/backend/domain"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestScoreImportanceComponent(t *testing.T) {
	asOf := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	weights := domain.PriorityWeights{Importance: 1}

	tests := []struct {
		priority domain.Priority
		want     float64
	}{
		{domain.PriorityLow, 0},
		{domain.PriorityMedium, 1.0 / 3.0},
		{domain.PriorityHigh, 2.0 / 3.0},
		{domain.PriorityUrgent, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			task := domain.Task{Priority: tt.priority}
			assert.InDelta(t, tt.want, Score(task, asOf, weights), 1e-9)
		})
	}
}

func TestScoreUrgencyComponent(t *testing.T) {
	asOf := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	weights := domain.PriorityWeights{Deadline: 1}

	tests := []struct {
		name string
		due  *time.Time
		want float64
	}{
		{"no signal", nil, 0},
		{"due now", timePtr(asOf), 1},
		{"overdue clamps to one", timePtr(asOf.Add(-48 * time.Hour)), 1},
		{"due in a week", timePtr(asOf.Add(7 * 24 * time.Hour)), 0.5},
		{"due at horizon", timePtr(asOf.Add(14 * 24 * time.Hour)), 0},
		{"past horizon clamps to zero", timePtr(asOf.Add(30 * 24 * time.Hour)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := domain.Task{Priority: domain.PriorityLow, ScheduledEnd: tt.due}
			assert.InDelta(t, tt.want, Score(task, asOf, weights), 1e-9)
		})
	}
}

func TestScoreDurationComponent(t *testing.T) {
	asOf := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	weights := domain.PriorityWeights{Duration: 1}

	tests := []struct {
		name string
		est  *int
		want float64
	}{
		{"no estimate is neutral", nil, 0.5},
		{"hour long", intPtr(60), 0.75},
		{"at cap", intPtr(240), 0},
		{"beyond cap clamps", intPtr(600), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := domain.Task{Priority: domain.PriorityLow, EstimatedDuration: tt.est}
			assert.InDelta(t, tt.want, Score(task, asOf, weights), 1e-9)
		})
	}
}

func TestRankBacklogOrdering(t *testing.T) {
	asOf := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	weights := domain.DefaultPriorityWeights()

	backlog := []domain.Task{
		{ID: "low", Priority: domain.PriorityLow},
		{ID: "urgent", Priority: domain.PriorityUrgent},
		{ID: "high", Priority: domain.PriorityHigh},
	}

	ranked := rankBacklog(backlog, asOf, weights)
	ids := make([]string, 0, len(ranked))
	for _, c := range ranked {
		ids = append(ids, c.task.ID)
	}
	assert.Equal(t, []string{"urgent", "high", "low"}, ids)
}

func TestRankBacklogTiesKeepInsertionOrder(t *testing.T) {
	asOf := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	weights := domain.DefaultPriorityWeights()

	// Identical tasks score identically; the stable sort must preserve
	// the backlog order.
	backlog := []domain.Task{
		{ID: "first", Priority: domain.PriorityMedium},
		{ID: "second", Priority: domain.PriorityMedium},
		{ID: "third", Priority: domain.PriorityMedium},
	}

	ranked := rankBacklog(backlog, asOf, weights)
	ids := make([]string, 0, len(ranked))
	for _, c := range ranked {
		ids = append(ids, c.task.ID)
	}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestScoreZeroWeightsNeutralizeComponents(t *testing.T) {
	asOf := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	task := domain.Task{
		Priority:          domain.PriorityUrgent,
		ScheduledEnd:      timePtr(asOf),
		EstimatedDuration: intPtr(15),
	}
	assert.Zero(t, Score(task, asOf, domain.PriorityWeights{}))
}
