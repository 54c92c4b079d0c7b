package models

import "time"

// AISummary is the per-user snapshot produced by the periodic summary job.
// One row per user, replaced on each refresh.
type AISummary struct {
	Base
	UserID          string             `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Income          float64            `json:"income"`
	Expense         float64            `json:"expense"`
	Savings         float64            `json:"savings"`
	GoalProgress    float64            `json:"goal_progress"`
	ExpenseForecast float64            `json:"expense_forecast_next_month"`
	CategorySummary map[string]float64 `gorm:"serializer:json" json:"category_summary"`
	GeneratedAt     time.Time          `json:"generated_at"`
}
