package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// PaymentMethod represents how a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "Cash"
	PaymentMethodCreditCard PaymentMethod = "Credit Card"
	PaymentMethodDebitCard  PaymentMethod = "Debit Card"
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodNetBanking PaymentMethod = "Net Banking"
	PaymentMethodOthers     PaymentMethod = "Others"
)

// OnboardingCategory is the sentinel category for the synthetic baseline
// transactions seeded at signup. They count toward headline totals but are
// excluded from category and monthly breakdowns.
const OnboardingCategory = "Onboarding"

// Transaction represents a single income or expense entry.
type Transaction struct {
	Base
	UserID        string          `gorm:"type:uuid;index;not null" json:"user_id"`
	Type          TransactionType `gorm:"not null" json:"type"`
	Amount        float64         `gorm:"not null" json:"amount"`
	Category      string          `gorm:"not null" json:"category"`
	Date          time.Time       `gorm:"not null" json:"date"`
	PaymentMethod PaymentMethod   `gorm:"not null" json:"paymentMethod"`
	Description   string          `json:"description"`
}
