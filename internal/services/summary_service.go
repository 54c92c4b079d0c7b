package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "lakshmi/internal/errors"
	"lakshmi/internal/insights"
	"lakshmi/internal/logger"
	"lakshmi/internal/models"
)

// SummaryService computes dashboard aggregates on demand and maintains the
// per-user AI summary snapshots refreshed by the background scheduler.
// refreshMu keeps sweeps single-flight across every caller, the scheduler
// and the manual trigger alike.
type SummaryService struct {
	db        *gorm.DB
	refreshMu sync.Mutex
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{db: db}
}

// Dashboard aggregates the user's transactions into the dashboard payload:
// headline totals (with the onboarding baseline as fallback), the expense
// category breakdown, and the monthly series.
func (s *SummaryService) Dashboard(userID string) (*DashboardView, error) {
	txns, profile, err := s.loadUserData(userID)
	if err != nil {
		return nil, err
	}

	totals := insights.ComputeTotals(txns).WithBaseline(profile)
	return &DashboardView{
		Income:     totals.Income,
		Expense:    totals.Expense,
		Savings:    totals.Savings(),
		NetSavings: totals.NetSavings(),
		Categories: insights.CategoryBreakdown(txns),
		Monthly:    insights.MonthlySeries(txns),
	}, nil
}

// RefreshUser recomputes and stores the AI summary snapshot for one user.
func (s *SummaryService) RefreshUser(userID string) (*models.AISummary, error) {
	txns, profile, err := s.loadUserData(userID)
	if err != nil {
		return nil, err
	}

	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := insights.ComputeTotals(txns).WithBaseline(profile)

	goalProgress := 0.0
	if len(goals) > 0 {
		var sum float64
		for _, g := range goals {
			sum += float64(insights.CompletionPercent(g))
		}
		goalProgress = sum / float64(len(goals))
	}

	categories := map[string]float64{}
	for _, c := range insights.CategoryBreakdown(txns) {
		categories[c.Name] = c.Amount
	}

	// Naive forecast: average monthly spend over the recorded months.
	forecast := 0.0
	if series := insights.MonthlySeries(txns); len(series) > 0 {
		var sum float64
		for _, m := range series {
			sum += m.Expense
		}
		forecast = sum / float64(len(series))
	}

	summary := models.AISummary{
		UserID:          userID,
		Income:          totals.Income,
		Expense:         totals.Expense,
		Savings:         totals.Savings(),
		GoalProgress:    goalProgress,
		ExpenseForecast: forecast,
		CategorySummary: categories,
		GeneratedAt:     time.Now(),
	}

	var existing models.AISummary
	err = s.db.Where("user_id = ?", userID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(&summary).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		summary.Base = existing.Base
		if err := s.db.Model(&existing).Select("Income", "Expense", "Savings", "GoalProgress",
			"ExpenseForecast", "CategorySummary", "GeneratedAt").Updates(summary).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &summary, nil
}

// RefreshAll recomputes summaries for every active user. A failure for one
// user is logged and skipped; the sweep continues. Only one sweep runs at a
// time: if another is in progress, RefreshAll returns ErrRefreshInProgress
// instead of starting a second pass over the same rows.
func (s *SummaryService) RefreshAll(ctx context.Context) error {
	if !s.refreshMu.TryLock() {
		return apperrors.ErrRefreshInProgress
	}
	defer s.refreshMu.Unlock()

	var userIDs []string
	if err := s.db.Model(&models.User{}).Where("is_active = ?", true).Pluck("id", &userIDs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	log := logger.Get()
	refreshed, failed := 0, 0
	for _, id := range userIDs {
		if err := ctx.Err(); err != nil {
			log.Warnw("summary refresh interrupted", "refreshed", refreshed, "failed", failed)
			return err
		}
		if _, err := s.RefreshUser(id); err != nil {
			failed++
			log.Errorw("summary refresh failed for user", "user_id", id, "error", err)
			continue
		}
		refreshed++
	}

	log.Infow("summary refresh complete", "users", len(userIDs), "refreshed", refreshed, "failed", failed)
	return nil
}

// GetSummaryText renders the stored snapshot as the bullet list shown in the
// app. Returns ErrSummaryNotFound when no snapshot has been generated yet.
func (s *SummaryService) GetSummaryText(userID string) (string, error) {
	var summary models.AISummary
	if err := s.db.Where("user_id = ?", userID).First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrSummaryNotFound
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	currency := "INR"
	var profile models.OnboardingProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil && profile.Currency != "" {
		currency = profile.Currency
	}

	var b strings.Builder
	b.WriteString("Here's your latest financial summary:\n\n")
	fmt.Fprintf(&b, "• Total income: %s %.2f\n", currency, summary.Income)
	fmt.Fprintf(&b, "• Total expenses: %s %.2f\n", currency, summary.Expense)
	fmt.Fprintf(&b, "• Savings: %s %.2f\n", currency, summary.Savings)
	fmt.Fprintf(&b, "• Goal progress: %.0f%%\n", summary.GoalProgress)
	fmt.Fprintf(&b, "• Expected expenses next month: %s %.2f\n", currency, summary.ExpenseForecast)

	if top := topSpending(summary.CategorySummary, 3); len(top) > 0 {
		parts := make([]string, 0, len(top))
		for _, c := range top {
			parts = append(parts, fmt.Sprintf("%s (%s %.2f)", c.Name, currency, c.Amount))
		}
		fmt.Fprintf(&b, "• Top spending: %s\n", strings.Join(parts, ", "))
	}

	return b.String(), nil
}

// loadUserData fetches the transactions (newest first) and the onboarding
// profile, which may be nil, for a user.
func (s *SummaryService) loadUserData(userID string) ([]models.Transaction, *models.OnboardingProfile, error) {
	var txns []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&txns).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var profile *models.OnboardingProfile
	var p models.OnboardingProfile
	err := s.db.Where("user_id = ?", userID).First(&p).Error
	switch {
	case err == nil:
		profile = &p
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return txns, profile, nil
}

// topSpending returns up to n categories sorted by amount descending.
func topSpending(categories map[string]float64, n int) []insights.CategoryAmount {
	out := make([]insights.CategoryAmount, 0, len(categories))
	for name, amount := range categories {
		out = append(out, insights.CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
