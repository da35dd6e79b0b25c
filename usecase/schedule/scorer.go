package schedule

import (
	"sort"
	"time"

	"github.com/planday/backend/domain"
)

const (
	// deadlineHorizonDays is how far out a due-by still adds urgency.
	deadlineHorizonDays = 14.0
	// durationCapMinutes caps the shortness bonus for the duration component.
	durationCapMinutes = 240.0
	// neutralDurationScore is used when no estimate exists.
	neutralDurationScore = 0.5
	// tierRange normalizes the 0..3 importance ordinal to [0,1].
	tierRange = 3.0
)

type scoredTask struct {
	task  domain.Task
	score float64
}

// Score converts one task into a single ordering key; higher schedules
// earlier. Three components, each in [0,1], combined with the user's
// weight vector:
//
//   - importance: priority tier ordinal / 3
//   - urgency: 1 - days_until_due/14, clamped; the scheduled_end on the
//     task acts as a soft due-by signal, no signal scores 0
//   - duration: 1 - min(estimate, 240m)/240m, so short tasks clear
//     first and free capacity; no estimate scores the neutral 0.5
func Score(task domain.Task, asOf time.Time, weights domain.PriorityWeights) float64 {
	importance := float64(task.Priority.Ordinal()) / tierRange

	urgency := 0.0
	if task.ScheduledEnd != nil {
		daysUntil := task.ScheduledEnd.Sub(asOf).Hours() / 24
		urgency = clamp01(1 - daysUntil/deadlineHorizonDays)
	}

	durationScore := neutralDurationScore
	if task.EstimatedDuration != nil {
		est := float64(*task.EstimatedDuration)
		if est > durationCapMinutes {
			est = durationCapMinutes
		}
		durationScore = 1 - est/durationCapMinutes
	}

	return weights.Importance*importance +
		weights.Deadline*urgency +
		weights.Duration*durationScore
}

// rankBacklog scores every task and orders them descending. Ties keep
// the backlog's insertion order so identical inputs always produce an
// identical plan.
func rankBacklog(backlog []domain.Task, asOf time.Time, weights domain.PriorityWeights) []scoredTask {
	ranked := make([]scoredTask, 0, len(backlog))
	for _, t := range backlog {
		ranked = append(ranked, scoredTask{task: t, score: Score(t, asOf, weights)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
