package assistant

import (
	"fmt"
	"sort"
	"strings"
)

// renderLocalReply produces a templated summary when no external generator
// is configured. Same structure every time: greeting, figures, top
// categories, goals, and a piece of advice keyed to the question.
func renderLocalReply(d promptData) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Hi %s, here is a personalized finance summary:", d.UserName))
	lines = append(lines, fmt.Sprintf("Income: %s %.2f | Expenses: %s %.2f | Net: %s %.2f",
		d.Currency, d.Totals.Income, d.Currency, d.Totals.Expense, d.Currency, d.Totals.NetSavings()))

	if top := topCategories(d, 3); len(top) > 0 {
		lines = append(lines, "Top spending categories:")
		for _, c := range top {
			lines = append(lines, fmt.Sprintf("- %s: %s %.2f", c.name, d.Currency, c.amount))
		}
	} else {
		lines = append(lines, "No expense categories recorded this month.")
	}

	if len(d.Goals) > 0 {
		lines = append(lines, "Active goals:")
		for _, g := range d.Goals {
			lines = append(lines, fmt.Sprintf("- %s: %s %s/%s %s (%s)",
				goalName(g), d.Currency, formatAmount(g.SavedSoFar),
				d.Currency, formatAmount(g.TargetAmount), progressLabel(g)))
		}
	} else {
		lines = append(lines, "You have no active goals yet.")
	}

	net := d.Totals.NetSavings()
	switch {
	case net < 0:
		lines = append(lines, "You are spending more than you earn this month. Try reducing your top expense category.")
	case net < d.Totals.Income*0.2:
		lines = append(lines, "Try to increase savings to at least 20% of income.")
	default:
		lines = append(lines, "Great job! You are saving well this month.")
	}

	lines = append(lines, "", "Regarding your question:")
	lines = append(lines, adviceFor(d.Query)...)

	return strings.Join(lines, "\n")
}

type rankedCategory struct {
	name   string
	amount float64
}

// topCategories returns the n largest expense categories, ties broken by
// first-seen order.
func topCategories(d promptData, n int) []rankedCategory {
	ranked := make([]rankedCategory, 0, len(d.Categories))
	for _, c := range d.Categories {
		ranked = append(ranked, rankedCategory{name: c.Name, amount: c.Amount})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].amount > ranked[j].amount })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func adviceFor(query string) []string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "save"):
		return []string{
			"- Automate transfers to savings each month.",
			"- Cut small daily costs like snacks or online orders.",
		}
	case strings.Contains(q, "spend"):
		return []string{"- Review your top expense categories and limit non-essential purchases."}
	case strings.Contains(q, "goal"):
		return []string{"- Prioritize goals by deadline and start with the one closest to completion."}
	default:
		return []string{"- Focus on keeping expenses under control while maintaining consistent savings."}
	}
}
