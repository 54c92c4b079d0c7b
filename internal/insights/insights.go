// Package insights computes the derived views shown across the dashboard,
// goals, and assistant surfaces: totals, category breakdowns, monthly
// series, and goal progress. Everything here is a pure function over an
// in-memory slice of transactions or goals.
package insights

import (
	"math"
	"time"

	"lakshmi/internal/models"
)

// Totals holds summed income and expense over a set of transactions.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Savings is the headline figure: income minus expense, floored at zero.
func (t Totals) Savings() float64 {
	return math.Max(t.Income-t.Expense, 0)
}

// NetSavings is the unfloored difference used in summary cards; it may be
// negative when the user overspends.
func (t Totals) NetSavings() float64 {
	return t.Income - t.Expense
}

// amount coerces invalid numeric values to zero instead of propagating them.
func amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ComputeTotals sums income and expense amounts over the given transactions.
func ComputeTotals(txns []models.Transaction) Totals {
	var t Totals
	for _, tx := range txns {
		switch tx.Type {
		case models.TransactionTypeIncome:
			t.Income += amount(tx.Amount)
		case models.TransactionTypeExpense:
			t.Expense += amount(tx.Amount)
		}
	}
	return t
}

// WithBaseline substitutes the declared onboarding baseline for any total
// that sums to zero. The check is on the value, not on the presence of
// data: a genuinely zero month is indistinguishable from no data.
func (t Totals) WithBaseline(profile *models.OnboardingProfile) Totals {
	if profile == nil {
		return t
	}
	out := t
	if out.Income == 0 {
		out.Income = amount(profile.MonthlyIncome)
	}
	if out.Expense == 0 {
		out.Expense = amount(profile.MonthlyExpenses)
	}
	return out
}

// Window is a half-open-ended date range; both bounds are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls within the window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// MonthWindow returns the calendar-month window containing t, in t's location.
func MonthWindow(t time.Time) Window {
	year, month, _ := t.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

// PreviousMonthWindow returns the calendar-month window before the one
// containing t.
func PreviousMonthWindow(t time.Time) Window {
	year, month, _ := t.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	return Window{Start: start.AddDate(0, -1, 0), End: start.Add(-time.Nanosecond)}
}

// FilterWindow returns the transactions dated within w, preserving order.
func FilterWindow(txns []models.Transaction, w Window) []models.Transaction {
	var out []models.Transaction
	for _, tx := range txns {
		if w.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// WithoutOnboarding filters out the synthetic baseline transactions seeded
// at signup.
func WithoutOnboarding(txns []models.Transaction) []models.Transaction {
	var out []models.Transaction
	for _, tx := range txns {
		if tx.Category != models.OnboardingCategory {
			out = append(out, tx)
		}
	}
	return out
}

// CategoryAmount is one row of the expenses-by-category breakdown.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"value"`
}

// CategoryBreakdown groups expense transactions by category, summing
// amounts. Onboarding baselines are excluded, categories with no expense
// transactions are omitted, and rows keep first-seen order.
func CategoryBreakdown(txns []models.Transaction) []CategoryAmount {
	index := make(map[string]int)
	var out []CategoryAmount
	for _, tx := range WithoutOnboarding(txns) {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			index[tx.Category] = len(out)
			out = append(out, CategoryAmount{Name: tx.Category})
			i = len(out) - 1
		}
		out[i].Amount += amount(tx.Amount)
	}
	return out
}

// MonthBucket is one month of the monthly overview series.
type MonthBucket struct {
	Name    string  `json:"name"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

// MonthlySeries groups non-onboarding transactions by calendar month
// (abbreviated month name of the transaction's local date) and accumulates
// per-month income, expense, and floored savings. Bucket order follows the
// first transaction seen for each month, not a sort.
func MonthlySeries(txns []models.Transaction) []MonthBucket {
	index := make(map[string]int)
	var out []MonthBucket
	for _, tx := range WithoutOnboarding(txns) {
		name := tx.Date.Format("Jan")
		i, ok := index[name]
		if !ok {
			index[name] = len(out)
			out = append(out, MonthBucket{Name: name})
			i = len(out) - 1
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			out[i].Income += amount(tx.Amount)
		case models.TransactionTypeExpense:
			out[i].Expense += amount(tx.Amount)
		}
		out[i].Savings = math.Max(out[i].Income-out[i].Expense, 0)
	}
	return out
}
