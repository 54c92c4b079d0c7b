package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lakshmi/internal/models"
)

// stubSource returns a fixed reply or error.
type stubSource struct {
	reply string
	err   error
	calls int
}

func (s *stubSource) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

var fixedNow = func() time.Time {
	return time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
}

func monthTx(txType models.TransactionType, category string, amount float64) models.Transaction {
	return models.Transaction{
		Type:     txType,
		Category: category,
		Amount:   amount,
		Date:     time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestIsGreeting(t *testing.T) {
	for _, q := range []string{"hi", "Hello", "HEY", "hlo", "how are you", "who are you", "ok", "thanks", "Thank You", "  hi  "} {
		if !IsGreeting(q) {
			t.Errorf("expected %q to be a greeting", q)
		}
	}
	for _, q := range []string{"hi there", "hello, how much did I spend?", "greetings", ""} {
		if IsGreeting(q) {
			t.Errorf("expected %q not to be a greeting", q)
		}
	}
}

func TestIsFinanceScoped(t *testing.T) {
	for _, q := range []string{
		"How much did I SPEND this month?",
		"can I afford a car",
		"my tiffin costs",
		"what about my investments",
	} {
		if !IsFinanceScoped(q) {
			t.Errorf("expected %q to be finance scoped", q)
		}
	}
	for _, q := range []string{"what's the weather today", "tell me a joke"} {
		if IsFinanceScoped(q) {
			t.Errorf("expected %q to be off topic", q)
		}
	}
}

func TestReply_Classification(t *testing.T) {
	t.Run("greeting bypasses the generator", func(t *testing.T) {
		source := &stubSource{reply: "should not be used"}
		a := NewWithClock(source, fixedNow)

		reply := a.Reply(context.Background(), Input{Query: "hello"})

		if reply != GreetingReply {
			t.Errorf("expected greeting reply, got %q", reply)
		}
		if source.calls != 0 {
			t.Errorf("generator should not be called for greetings, got %d calls", source.calls)
		}
	})

	t.Run("off-topic query gets the scope redirect", func(t *testing.T) {
		source := &stubSource{reply: "should not be used"}
		a := NewWithClock(source, fixedNow)

		reply := a.Reply(context.Background(), Input{Query: "what's the weather like"})

		if reply != RedirectReply {
			t.Errorf("expected redirect reply, got %q", reply)
		}
		if source.calls != 0 {
			t.Errorf("generator should not be called for off-topic queries, got %d calls", source.calls)
		}
	})

	t.Run("finance query reaches the generator", func(t *testing.T) {
		source := &stubSource{reply: "Your spending looks fine."}
		a := NewWithClock(source, fixedNow)

		reply := a.Reply(context.Background(), Input{Query: "how much did I spend"})

		if reply != "Your spending looks fine." {
			t.Errorf("unexpected reply: %q", reply)
		}
		if source.calls != 1 {
			t.Errorf("expected 1 generator call, got %d", source.calls)
		}
	})

	t.Run("generator failure yields the fixed fallback", func(t *testing.T) {
		source := &stubSource{err: errors.New("upstream 500")}
		a := NewWithClock(source, fixedNow)

		reply := a.Reply(context.Background(), Input{Query: "how much did I spend"})

		if reply != FallbackReply {
			t.Errorf("expected fallback reply, got %q", reply)
		}
	})

	t.Run("empty generator reply yields the fixed fallback", func(t *testing.T) {
		source := &stubSource{reply: ""}
		a := NewWithClock(source, fixedNow)

		reply := a.Reply(context.Background(), Input{Query: "how much did I spend"})

		if reply != FallbackReply {
			t.Errorf("expected fallback reply, got %q", reply)
		}
	})

	t.Run("nil source renders a local reply", func(t *testing.T) {
		a := NewWithClock(nil, fixedNow)

		reply := a.Reply(context.Background(), Input{
			UserName:     "Priya",
			Query:        "how are my savings",
			Transactions: []models.Transaction{monthTx(models.TransactionTypeIncome, "Salary", 5000)},
		})

		if reply == "" || reply == FallbackReply {
			t.Errorf("expected a rendered local reply, got %q", reply)
		}
	})
}

func TestBuildPrompt_WindowFallback(t *testing.T) {
	lastMonth := models.Transaction{
		Type:     models.TransactionTypeExpense,
		Category: "Food",
		Amount:   300,
		Date:     time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
	}

	t.Run("uses this month when it has data", func(t *testing.T) {
		a := NewWithClock(nil, fixedNow)
		prompt := a.BuildPrompt(Input{
			Query:        "spend",
			Transactions: []models.Transaction{monthTx(models.TransactionTypeExpense, "Food", 100), lastMonth},
		})
		if !strings.Contains(prompt, "your this month financial overview") {
			t.Errorf("expected this-month label, got:\n%s", prompt)
		}
		if !strings.Contains(prompt, "Expenses: INR 100") {
			t.Errorf("expected only this month's expenses, got:\n%s", prompt)
		}
	})

	t.Run("falls back to last month when this month is empty", func(t *testing.T) {
		a := NewWithClock(nil, fixedNow)
		prompt := a.BuildPrompt(Input{
			Query:        "spend",
			Transactions: []models.Transaction{lastMonth},
		})
		if !strings.Contains(prompt, "last month (no data found for this month)") {
			t.Errorf("expected last-month label, got:\n%s", prompt)
		}
		if !strings.Contains(prompt, "Expenses: INR 300") {
			t.Errorf("expected last month's expenses, got:\n%s", prompt)
		}
	})

	t.Run("labels no data when both windows are empty", func(t *testing.T) {
		a := NewWithClock(nil, fixedNow)
		prompt := a.BuildPrompt(Input{Query: "spend"})
		if !strings.Contains(prompt, "recent months (no data available)") {
			t.Errorf("expected no-data label, got:\n%s", prompt)
		}
		if !strings.Contains(prompt, "No spending data found for recent months (no data available).") {
			t.Errorf("expected no-spending line, got:\n%s", prompt)
		}
	})
}

func TestBuildPrompt_Content(t *testing.T) {
	a := NewWithClock(nil, fixedNow)
	in := Input{
		UserName: "Priya",
		Profile:  &models.OnboardingProfile{Currency: "USD"},
		Goals: []models.Goal{
			{GoalName: "House", TargetAmount: 100000, SavedSoFar: 25000},
			{TargetAmount: 0, SavedSoFar: 100},
		},
		Transactions: []models.Transaction{
			monthTx(models.TransactionTypeIncome, "Salary", 5000),
			monthTx(models.TransactionTypeExpense, "Food", 1500),
		},
		Query: "can I buy a house?",
	}

	prompt := a.BuildPrompt(in)

	for _, want := range []string{
		"Hi Priya",
		"Income: USD 5000",
		"Expenses: USD 1500",
		"- Food: USD 1500",
		"- House: USD 25000/USD 100000 (25.0%)",
		"- Untitled: USD 100/USD 0 (0%)",
		"\"can I buy a house?\"",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	t.Run("same input renders the same prompt", func(t *testing.T) {
		if a.BuildPrompt(in) != prompt {
			t.Error("expected prompt rendering to be deterministic")
		}
	})

	t.Run("anonymous user is greeted as there", func(t *testing.T) {
		p := a.BuildPrompt(Input{Query: "spend"})
		if !strings.Contains(p, "Hi there") {
			t.Errorf("expected default greeting, got:\n%s", p)
		}
	})

	t.Run("no goals line", func(t *testing.T) {
		p := a.BuildPrompt(Input{Query: "spend"})
		if !strings.Contains(p, "You have no active goals yet.") {
			t.Errorf("expected no-goals line, got:\n%s", p)
		}
	})
}
