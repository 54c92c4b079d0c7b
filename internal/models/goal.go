package models

import "time"

// GoalPriority represents the display priority of a savings goal.
type GoalPriority string

const (
	GoalPriorityHigh   GoalPriority = "High"
	GoalPriorityMedium GoalPriority = "Medium"
	GoalPriorityLow    GoalPriority = "Low"
)

// Goal represents a savings goal with a target amount and deadline.
// SavedSoFar may exceed TargetAmount; completion is clamped to 100%
// for display only.
type Goal struct {
	Base
	UserID       string       `gorm:"type:uuid;index;not null" json:"user_id"`
	GoalName     string       `gorm:"not null" json:"goalName"`
	TargetAmount float64      `gorm:"not null" json:"targetAmount"`
	SavedSoFar   float64      `gorm:"not null;default:0" json:"savedSoFar"`
	Deadline     time.Time    `gorm:"not null" json:"deadline"`
	Priority     GoalPriority `gorm:"not null" json:"priority"`
	Notes        string       `json:"notes"`
}
