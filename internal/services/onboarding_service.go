package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "lakshmi/internal/errors"
	"lakshmi/internal/logger"
	"lakshmi/internal/models"
)

// OnboardingService handles onboarding profiles and their baseline seeding.
type OnboardingService struct {
	db *gorm.DB
}

// NewOnboardingService creates a new OnboardingService.
func NewOnboardingService(db *gorm.DB) *OnboardingService {
	return &OnboardingService{db: db}
}

// CompleteOnboarding stores the user's onboarding profile and seeds two
// baseline transactions (declared monthly income and expenses) under the
// Onboarding category. Profile and seeds are committed in one transaction;
// a failure leaves no partial state behind.
func (s *OnboardingService) CompleteOnboarding(userID string, profile models.OnboardingProfile) (*models.OnboardingProfile, error) {
	var count int64
	if err := s.db.Model(&models.OnboardingProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrOnboardingExists
	}

	profile.UserID = userID
	now := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		seeds := []models.Transaction{
			{
				UserID:        userID,
				Type:          models.TransactionTypeIncome,
				Amount:        profile.MonthlyIncome,
				Category:      models.OnboardingCategory,
				Date:          now,
				PaymentMethod: models.PaymentMethodOthers,
			},
			{
				UserID:        userID,
				Type:          models.TransactionTypeExpense,
				Amount:        profile.MonthlyExpenses,
				Category:      models.OnboardingCategory,
				Date:          now,
				PaymentMethod: models.PaymentMethodOthers,
			},
		}
		return tx.Create(&seeds).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("onboarding completed", "user_id", userID)
	return &profile, nil
}

// GetProfile retrieves the onboarding profile for a user.
func (s *OnboardingService) GetProfile(userID string) (*models.OnboardingProfile, error) {
	var profile models.OnboardingProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOnboardingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpdateProfile replaces the user's onboarding profile fields. The main
// expense list is fixed at onboarding time and is never overwritten here,
// and no baseline transactions are re-seeded.
func (s *OnboardingService) UpdateProfile(userID string, profile models.OnboardingProfile) (*models.OnboardingProfile, error) {
	existing, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	result := s.db.Model(existing).
		Select("Name", "AgeRange", "IncomeRange", "MonthlyIncome", "MonthlyExpenses",
			"Savings", "FinancialExperience", "ShortTermGoals", "LongTermGoals",
			"Currency", "Notifications").
		Updates(models.OnboardingProfile{
			Name:                profile.Name,
			AgeRange:            profile.AgeRange,
			IncomeRange:         profile.IncomeRange,
			MonthlyIncome:       profile.MonthlyIncome,
			MonthlyExpenses:     profile.MonthlyExpenses,
			Savings:             profile.Savings,
			FinancialExperience: profile.FinancialExperience,
			ShortTermGoals:      profile.ShortTermGoals,
			LongTermGoals:       profile.LongTermGoals,
			Currency:            profile.Currency,
			Notifications:       profile.Notifications,
		})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}

	return s.GetProfile(userID)
}
