package insights

import (
	"testing"
	"time"

	"lakshmi/internal/models"
)

func goal(priority models.GoalPriority, target, saved float64) models.Goal {
	return models.Goal{Priority: priority, TargetAmount: target, SavedSoFar: saved}
}

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		saved  float64
		want   int
	}{
		{"halfway", 1000, 500, 50},
		{"rounds to nearest", 3000, 1000, 33},
		{"rounds half up", 1000, 335, 34},
		{"complete", 1000, 1000, 100},
		{"overshoot clamps to 100", 1000, 1500, 100},
		{"zero target is 0 not an error", 0, 500, 0},
		{"negative target is 0", -100, 500, 0},
		{"nothing saved", 1000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionPercent(goal(models.GoalPriorityHigh, tt.target, tt.saved))
			if got != tt.want {
				t.Errorf("CompletionPercent(target=%v, saved=%v) = %d, want %d", tt.target, tt.saved, got, tt.want)
			}
		})
	}
}

func TestMonthsLeft(t *testing.T) {
	now := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"same month", time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), 0},
		{"next month", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), 1},
		{"next year", time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), 12},
		{"past deadline floored at zero", time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsLeft(tt.deadline, now); got != tt.want {
				t.Errorf("MonthsLeft(%v) = %d, want %d", tt.deadline, got, tt.want)
			}
		})
	}
}

func TestGroupByPriority(t *testing.T) {
	t.Run("buckets come in High Medium Low order", func(t *testing.T) {
		groups := GroupByPriority(nil)
		if len(groups) != 3 {
			t.Fatalf("expected 3 groups, got %d", len(groups))
		}
		want := []models.GoalPriority{models.GoalPriorityHigh, models.GoalPriorityMedium, models.GoalPriorityLow}
		for i, p := range want {
			if groups[i].Priority != p {
				t.Errorf("group %d: expected %s, got %s", i, p, groups[i].Priority)
			}
		}
	})

	t.Run("sorts within a bucket by completion descending", func(t *testing.T) {
		goals := []models.Goal{
			goal(models.GoalPriorityHigh, 1000, 100),
			goal(models.GoalPriorityHigh, 1000, 900),
			goal(models.GoalPriorityHigh, 1000, 500),
		}
		groups := GroupByPriority(goals)
		high := groups[0].Goals
		if len(high) != 3 {
			t.Fatalf("expected 3 high goals, got %d", len(high))
		}
		if high[0].SavedSoFar != 900 || high[1].SavedSoFar != 500 || high[2].SavedSoFar != 100 {
			t.Errorf("expected order 900/500/100, got %v/%v/%v",
				high[0].SavedSoFar, high[1].SavedSoFar, high[2].SavedSoFar)
		}
	})

	t.Run("sorting uses the raw ratio not the rounded percent", func(t *testing.T) {
		// Both round to 33% but 0.334 must rank ahead of 0.331.
		behind := goal(models.GoalPriorityMedium, 1000, 331)
		ahead := goal(models.GoalPriorityMedium, 1000, 334)
		groups := GroupByPriority([]models.Goal{behind, ahead})
		medium := groups[1].Goals
		if medium[0].SavedSoFar != 334 {
			t.Errorf("expected 334 first, got %v", medium[0].SavedSoFar)
		}
	})

	t.Run("partitions by priority", func(t *testing.T) {
		goals := []models.Goal{
			goal(models.GoalPriorityLow, 100, 0),
			goal(models.GoalPriorityHigh, 100, 0),
		}
		groups := GroupByPriority(goals)
		if len(groups[0].Goals) != 1 || len(groups[1].Goals) != 0 || len(groups[2].Goals) != 1 {
			t.Errorf("unexpected partition: %d/%d/%d",
				len(groups[0].Goals), len(groups[1].Goals), len(groups[2].Goals))
		}
	})
}
