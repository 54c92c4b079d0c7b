package services

import (
	"context"
	"strings"
	"testing"

	"lakshmi/internal/models"
	"lakshmi/internal/testutil"
)

func TestSummaryService_Dashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSummaryService(db)

	t.Run("aggregates totals breakdown and series", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salary", 5000)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Food", 1500)

		view, err := svc.Dashboard(user.ID)
		testutil.AssertNoError(t, err)

		if view.Income != 5000 || view.Expense != 1500 {
			t.Errorf("unexpected totals: %+v", view)
		}
		if view.Savings != 3500 || view.NetSavings != 3500 {
			t.Errorf("unexpected savings: %v / %v", view.Savings, view.NetSavings)
		}
		if len(view.Categories) != 1 || view.Categories[0].Name != "Food" {
			t.Errorf("unexpected categories: %+v", view.Categories)
		}
		if len(view.Monthly) != 1 {
			t.Errorf("expected one month bucket, got %+v", view.Monthly)
		}
	})

	t.Run("onboarding seeds count toward totals but not breakdowns", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, models.OnboardingCategory, 50000)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, models.OnboardingCategory, 30000)

		view, err := svc.Dashboard(user.ID)
		testutil.AssertNoError(t, err)

		if view.Income != 50000 || view.Expense != 30000 {
			t.Errorf("expected baselines in totals, got %+v", view)
		}
		if len(view.Categories) != 0 {
			t.Errorf("expected baselines out of the breakdown, got %+v", view.Categories)
		}
		if len(view.Monthly) != 0 {
			t.Errorf("expected baselines out of the monthly series, got %+v", view.Monthly)
		}
	})

	t.Run("zero totals fall back to the declared baseline", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 40000, 25000)

		view, err := svc.Dashboard(user.ID)
		testutil.AssertNoError(t, err)

		if view.Income != 40000 || view.Expense != 25000 {
			t.Errorf("expected declared baseline, got %+v", view)
		}
	})
}

func TestSummaryService_Refresh(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSummaryService(db)

	t.Run("computes and stores the snapshot", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salary", 5000)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Food", 1500)
		testutil.CreateTestGoal(t, db, user.ID, 1000, 500, models.GoalPriorityHigh)
		testutil.CreateTestGoal(t, db, user.ID, 1000, 1000, models.GoalPriorityLow)

		summary, err := svc.RefreshUser(user.ID)
		testutil.AssertNoError(t, err)

		if summary.Income != 5000 || summary.Expense != 1500 || summary.Savings != 3500 {
			t.Errorf("unexpected totals: %+v", summary)
		}
		if summary.GoalProgress != 75 {
			t.Errorf("expected average goal progress 75, got %v", summary.GoalProgress)
		}
		if summary.CategorySummary["Food"] != 1500 {
			t.Errorf("expected Food 1500, got %v", summary.CategorySummary)
		}
		if summary.ExpenseForecast != 1500 {
			t.Errorf("expected forecast 1500, got %v", summary.ExpenseForecast)
		}
		if summary.GeneratedAt.IsZero() {
			t.Error("expected generated timestamp")
		}
	})

	t.Run("refresh replaces instead of duplicating", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Food", 100)

		_, err := svc.RefreshUser(user.ID)
		testutil.AssertNoError(t, err)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Food", 50)
		_, err = svc.RefreshUser(user.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.AISummary{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Fatalf("expected a single snapshot row, got %d", count)
		}

		var stored models.AISummary
		db.Where("user_id = ?", user.ID).First(&stored)
		if stored.Expense != 150 {
			t.Errorf("expected refreshed expense 150, got %v", stored.Expense)
		}
	})

	t.Run("refresh all refuses to overlap itself", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Food", 10)

		// Hold the sweep lock as an in-flight run would.
		svc.refreshMu.Lock()
		err := svc.RefreshAll(context.Background())
		testutil.AssertAppError(t, err, "REFRESH_IN_PROGRESS")
		svc.refreshMu.Unlock()

		// Once the in-flight sweep finishes, a new one must run normally.
		testutil.AssertNoError(t, svc.RefreshAll(context.Background()))
	})

	t.Run("refresh all sweeps every active user", func(t *testing.T) {
		a := testutil.CreateTestUser(t, db)
		b := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, a.ID, models.TransactionTypeExpense, "Food", 10)
		testutil.CreateTestTransaction(t, db, b.ID, models.TransactionTypeExpense, "Food", 20)

		testutil.AssertNoError(t, svc.RefreshAll(context.Background()))

		for _, u := range []*models.User{a, b} {
			var count int64
			db.Model(&models.AISummary{}).Where("user_id = ?", u.ID).Count(&count)
			if count != 1 {
				t.Errorf("expected snapshot for user %s", u.ID)
			}
		}
	})
}

func TestSummaryService_GetSummaryText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSummaryService(db)

	t.Run("missing snapshot", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := svc.GetSummaryText(user.ID)
		testutil.AssertAppError(t, err, "SUMMARY_NOT_FOUND")
	})

	t.Run("renders the stored figures with the profile currency", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID, 0, 0)
		db.Model(profile).Update("currency", "USD")
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salary", 5000)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Food", 1500)

		_, err := svc.RefreshUser(user.ID)
		testutil.AssertNoError(t, err)

		text, err := svc.GetSummaryText(user.ID)
		testutil.AssertNoError(t, err)

		for _, want := range []string{
			"Total income: USD 5000.00",
			"Total expenses: USD 1500.00",
			"Savings: USD 3500.00",
			"Top spending: Food (USD 1500.00)",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("summary missing %q:\n%s", want, text)
			}
		}
	})
}
