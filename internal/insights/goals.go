package insights

import (
	"math"
	"sort"
	"time"

	"lakshmi/internal/models"
)

// CompletionRatio is savedSoFar divided by targetAmount, unrounded. A goal
// with a zero or negative target is treated as 0 rather than dividing by
// zero.
func CompletionRatio(g models.Goal) float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return amount(g.SavedSoFar) / g.TargetAmount
}

// CompletionPercent is the display percentage: round(ratio*100), clamped to
// [0, 100].
func CompletionPercent(g models.Goal) int {
	pct := math.Round(CompletionRatio(g) * 100)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// MonthsLeft is the whole-month difference between now and the deadline,
// floored at zero.
func MonthsLeft(deadline, now time.Time) int {
	months := (deadline.Year()-now.Year())*12 + int(deadline.Month()) - int(now.Month())
	if months < 0 {
		return 0
	}
	return months
}

// GoalGroup is one priority bucket of goals for display.
type GoalGroup struct {
	Priority models.GoalPriority `json:"priority"`
	Goals    []models.Goal       `json:"goals"`
}

// GroupByPriority partitions goals into High/Medium/Low buckets and sorts
// each bucket descending by completion ratio. Sorting uses the raw ratio,
// not the rounded percentage, so near-ties are not distorted by rounding.
func GroupByPriority(goals []models.Goal) []GoalGroup {
	order := []models.GoalPriority{
		models.GoalPriorityHigh,
		models.GoalPriorityMedium,
		models.GoalPriorityLow,
	}

	groups := make([]GoalGroup, 0, len(order))
	for _, p := range order {
		group := GoalGroup{Priority: p, Goals: []models.Goal{}}
		for _, g := range goals {
			if g.Priority == p {
				group.Goals = append(group.Goals, g)
			}
		}
		sort.SliceStable(group.Goals, func(i, j int) bool {
			return CompletionRatio(group.Goals[i]) > CompletionRatio(group.Goals[j])
		})
		groups = append(groups, group)
	}
	return groups
}
