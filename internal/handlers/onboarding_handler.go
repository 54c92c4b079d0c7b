package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "lakshmi/internal/errors"
	"lakshmi/internal/models"
	"lakshmi/internal/services"
)

// OnboardingHandler handles onboarding profile requests.
type OnboardingHandler struct {
	onboardingService services.OnboardingServicer
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboardingService services.OnboardingServicer) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// OnboardingRequest represents the onboarding profile payload.
type OnboardingRequest struct {
	Name                string   `json:"name" binding:"required,max=100"`
	Age                 string   `json:"age" binding:"omitempty,age_range"`
	IncomeRange         string   `json:"incomeRange" binding:"omitempty,income_range"`
	MonthlyIncome       float64  `json:"monthlyIncome" binding:"omitempty,min=0"`
	MonthlyExpenses     float64  `json:"monthlyExpenses" binding:"omitempty,min=0"`
	Savings             float64  `json:"savings" binding:"omitempty,min=0"`
	MainExpenses        []string `json:"mainExpenses"`
	FinancialExperience string   `json:"financialExperience" binding:"omitempty,experience_level"`
	ShortTermGoals      string   `json:"shortTermGoals"`
	LongTermGoals       string   `json:"longTermGoals"`
	Currency            string   `json:"currency" binding:"omitempty,currency"`
	Notifications       []string `json:"notifications"`
}

func (r OnboardingRequest) toModel() models.OnboardingProfile {
	return models.OnboardingProfile{
		Name:                r.Name,
		AgeRange:            r.Age,
		IncomeRange:         r.IncomeRange,
		MonthlyIncome:       r.MonthlyIncome,
		MonthlyExpenses:     r.MonthlyExpenses,
		Savings:             r.Savings,
		MainExpenses:        r.MainExpenses,
		FinancialExperience: r.FinancialExperience,
		ShortTermGoals:      r.ShortTermGoals,
		LongTermGoals:       r.LongTermGoals,
		Currency:            r.Currency,
		Notifications:       r.Notifications,
	}
}

// CompleteOnboarding stores the onboarding profile and seeds the baseline
// @Summary     Complete onboarding
// @Description Store the user's financial baseline and seed the two baseline transactions
// @Tags        onboarding
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body OnboardingRequest true "Onboarding profile"
// @Success     201 {object} models.OnboardingProfile "Profile created"
// @Failure     400 {object} ErrorResponse "Invalid input or onboarding already completed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/onboarding [post]
func (h *OnboardingHandler) CompleteOnboarding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.onboardingService.CompleteOnboarding(userID, req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"onboarding": profile})
}

// GetOnboarding returns the stored onboarding profile
// @Summary     Get onboarding profile
// @Description Get the user's onboarding profile
// @Tags        onboarding
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.OnboardingProfile "Onboarding profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Onboarding info not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/onboarding [get]
func (h *OnboardingHandler) GetOnboarding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.onboardingService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"onboarding": profile})
}

// UpdateOnboarding replaces the onboarding profile fields
// @Summary     Update onboarding profile
// @Description Update the user's onboarding profile; the main expense list and baseline transactions are left untouched
// @Tags        onboarding
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body OnboardingRequest true "Updated profile"
// @Success     200 {object} models.OnboardingProfile "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Onboarding info not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/onboarding [put]
func (h *OnboardingHandler) UpdateOnboarding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.onboardingService.UpdateProfile(userID, req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"onboarding": profile})
}
