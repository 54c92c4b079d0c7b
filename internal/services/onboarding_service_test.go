package services

import (
	"testing"

	"lakshmi/internal/models"
	"lakshmi/internal/testutil"
)

func TestOnboardingService_CompleteOnboarding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewOnboardingService(db)

	t.Run("stores profile and seeds baseline transactions", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		profile, err := svc.CompleteOnboarding(user.ID, models.OnboardingProfile{
			Name:            "Priya",
			MonthlyIncome:   50000,
			MonthlyExpenses: 30000,
			MainExpenses:    []string{"Rent", "Food"},
			Currency:        "INR",
		})
		testutil.AssertNoError(t, err)
		if profile.UserID != user.ID {
			t.Errorf("expected profile bound to user, got %q", profile.UserID)
		}

		var seeds []models.Transaction
		err = db.Where("user_id = ? AND category = ?", user.ID, models.OnboardingCategory).
			Order("type ASC").Find(&seeds).Error
		testutil.AssertNoError(t, err)
		if len(seeds) != 2 {
			t.Fatalf("expected 2 baseline transactions, got %d", len(seeds))
		}
		if seeds[0].Type != models.TransactionTypeExpense || seeds[0].Amount != 30000 {
			t.Errorf("unexpected expense seed: %+v", seeds[0])
		}
		if seeds[1].Type != models.TransactionTypeIncome || seeds[1].Amount != 50000 {
			t.Errorf("unexpected income seed: %+v", seeds[1])
		}
	})

	t.Run("rejects a second onboarding", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := svc.CompleteOnboarding(user.ID, models.OnboardingProfile{Name: "Once"})
		testutil.AssertNoError(t, err)

		_, err = svc.CompleteOnboarding(user.ID, models.OnboardingProfile{Name: "Twice"})
		testutil.AssertAppError(t, err, "ONBOARDING_EXISTS")

		var count int64
		db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 2 {
			t.Errorf("expected baselines seeded exactly once, got %d transactions", count)
		}
	})
}

func TestOnboardingService_GetProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewOnboardingService(db)

	t.Run("missing profile", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := svc.GetProfile(user.ID)
		testutil.AssertAppError(t, err, "ONBOARDING_NOT_FOUND")
	})
}

func TestOnboardingService_UpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewOnboardingService(db)

	t.Run("updates fields but keeps main expenses and seeds", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := svc.CompleteOnboarding(user.ID, models.OnboardingProfile{
			Name:            "Priya",
			MonthlyIncome:   50000,
			MonthlyExpenses: 30000,
			MainExpenses:    []string{"Rent"},
			Currency:        "INR",
		})
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateProfile(user.ID, models.OnboardingProfile{
			Name:            "Priya S",
			MonthlyIncome:   60000,
			MonthlyExpenses: 35000,
			MainExpenses:    []string{"Travel"},
			Currency:        "USD",
		})
		testutil.AssertNoError(t, err)

		if updated.MonthlyIncome != 60000 || updated.Currency != "USD" {
			t.Errorf("expected updated fields, got %+v", updated)
		}
		if len(updated.MainExpenses) != 1 || updated.MainExpenses[0] != "Rent" {
			t.Errorf("expected main expenses preserved, got %v", updated.MainExpenses)
		}

		var count int64
		db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 2 {
			t.Errorf("expected no re-seeding on update, got %d transactions", count)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := svc.UpdateProfile(user.ID, models.OnboardingProfile{Name: "X"})
		testutil.AssertAppError(t, err, "ONBOARDING_NOT_FOUND")
	})
}
