package models

// OnboardingProfile stores the declared financial baseline collected at
// signup. MonthlyIncome and MonthlyExpenses serve as fallback figures when a
// user has no transactions summing to a non-zero total.
type OnboardingProfile struct {
	Base
	UserID              string   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name                string   `gorm:"not null" json:"name"`
	AgeRange            string   `json:"age"`
	IncomeRange         string   `json:"incomeRange"`
	MonthlyIncome       float64  `gorm:"not null;default:0" json:"monthlyIncome"`
	MonthlyExpenses     float64  `gorm:"not null;default:0" json:"monthlyExpenses"`
	Savings             float64  `gorm:"not null;default:0" json:"savings"`
	MainExpenses        []string `gorm:"serializer:json" json:"mainExpenses,omitempty"`
	FinancialExperience string   `json:"financialExperience"`
	ShortTermGoals      string   `json:"shortTermGoals"`
	LongTermGoals       string   `json:"longTermGoals"`
	Currency            string   `gorm:"default:INR" json:"currency"`
	Notifications       []string `gorm:"serializer:json" json:"notifications,omitempty"`
}
