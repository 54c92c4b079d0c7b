package assistant

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lakshmi/internal/insights"
	"lakshmi/internal/models"
)

// Period labels for the three-tier aggregation window fallback.
const (
	periodThisMonth = "this month"
	periodLastMonth = "last month (no data found for this month)"
	periodNoData    = "recent months (no data available)"
)

// promptData is the aggregated context a prompt or local reply is rendered
// from. Selecting it is deterministic for a given "now".
type promptData struct {
	UserName   string
	Currency   string
	Period     string
	Totals     insights.Totals
	Categories []insights.CategoryAmount
	Goals      []models.Goal
	Query      string
}

// selectWindow picks the current calendar month's transactions; if that
// window is empty it falls back to the previous month, and failing that
// proceeds with empty aggregates labeled "no data available". New or
// inactive users never see an empty overview because of this.
func selectWindow(txns []models.Transaction, now time.Time) ([]models.Transaction, string) {
	window := insights.FilterWindow(txns, insights.MonthWindow(now))
	if len(window) > 0 {
		return window, periodThisMonth
	}
	window = insights.FilterWindow(txns, insights.PreviousMonthWindow(now))
	if len(window) > 0 {
		return window, periodLastMonth
	}
	return nil, periodNoData
}

func buildPromptData(userName string, profile *models.OnboardingProfile, goals []models.Goal, txns []models.Transaction, query string, now time.Time) promptData {
	window, period := selectWindow(txns, now)

	currency := "INR"
	if profile != nil && profile.Currency != "" {
		currency = profile.Currency
	}
	if userName == "" {
		userName = "there"
	}

	return promptData{
		UserName:   userName,
		Currency:   currency,
		Period:     period,
		Totals:     insights.ComputeTotals(window),
		Categories: insights.CategoryBreakdown(window),
		Goals:      goals,
		Query:      query,
	}
}

// renderPrompt produces the natural-language block handed to the external
// generator: greeting, monthly figures, category breakdown, active goals,
// the verbatim user question, and a fixed instruction suffix. Pure: same
// data always renders the same text.
func renderPrompt(d promptData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s\n\n", d.UserName)
	fmt.Fprintf(&b, "Here is your %s financial overview:\n\n", d.Period)
	fmt.Fprintf(&b, "Income: %s %s\n", d.Currency, formatAmount(d.Totals.Income))
	fmt.Fprintf(&b, "Expenses: %s %s\n", d.Currency, formatAmount(d.Totals.Expense))

	if len(d.Categories) > 0 {
		b.WriteString("\nSpending breakdown:\n")
		for _, c := range d.Categories {
			fmt.Fprintf(&b, "- %s: %s %s\n", c.Name, d.Currency, formatAmount(c.Amount))
		}
	} else {
		fmt.Fprintf(&b, "\nNo spending data found for %s.\n", d.Period)
	}

	if len(d.Goals) > 0 {
		b.WriteString("\nActive goals:\n")
		for _, g := range d.Goals {
			fmt.Fprintf(&b, "- %s: %s %s/%s %s (%s)\n",
				goalName(g), d.Currency, formatAmount(g.SavedSoFar),
				d.Currency, formatAmount(g.TargetAmount), progressLabel(g))
		}
	} else {
		b.WriteString("\nYou have no active goals yet.\n")
	}

	fmt.Fprintf(&b, "\nUser question:\n%q\n\n", d.Query)
	b.WriteString("Give a short and friendly 2-4 line response like a smart personal finance coach. " +
		"Be concise, realistic, and speak directly. " +
		"If it is about a big goal (like a house or a bike), give one quick insight or concrete step, not a full analysis.\n")

	return b.String()
}

func goalName(g models.Goal) string {
	if g.GoalName == "" {
		return "Untitled"
	}
	return g.GoalName
}

// progressLabel renders one-decimal completion for display in prompts,
// guarding against a zero target.
func progressLabel(g models.Goal) string {
	if g.TargetAmount <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", insights.CompletionRatio(g)*100)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
