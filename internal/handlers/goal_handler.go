package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "lakshmi/internal/errors"
	"lakshmi/internal/insights"
	"lakshmi/internal/models"
	"lakshmi/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the goal creation payload.
type CreateGoalRequest struct {
	GoalName     string              `json:"goalName" binding:"required,max=100"`
	TargetAmount float64             `json:"targetAmount" binding:"required,gt=0"`
	SavedSoFar   float64             `json:"savedSoFar" binding:"omitempty,min=0"`
	Deadline     time.Time           `json:"deadline" binding:"required"`
	Priority     models.GoalPriority `json:"priority" binding:"omitempty,goal_priority"`
	Notes        string              `json:"notes"`
}

// UpdateGoalRequest represents the goal update payload. Absent fields are
// left unchanged.
type UpdateGoalRequest struct {
	GoalName     *string              `json:"goalName" binding:"omitempty,max=100"`
	TargetAmount *float64             `json:"targetAmount"`
	SavedSoFar   *float64             `json:"savedSoFar"`
	Deadline     *time.Time           `json:"deadline"`
	Priority     *models.GoalPriority `json:"priority" binding:"omitempty,goal_priority"`
	Notes        *string              `json:"notes"`
}

// AddSavingsRequest represents the additive savings payload.
type AddSavingsRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// GoalProgress is a goal decorated with its display progress figures.
type GoalProgress struct {
	models.Goal
	CompletionPercent int `json:"completionPercent"`
	MonthsLeft        int `json:"monthsLeft"`
}

// GoalOverviewGroup is one priority bucket of the overview.
type GoalOverviewGroup struct {
	Priority models.GoalPriority `json:"priority"`
	Goals    []GoalProgress      `json:"goals"`
}

// CreateGoal handles the creation of a new goal
// @Summary     Create a goal
// @Description Create a new savings goal with a positive target amount
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(
		userID, req.GoalName, req.TargetAmount, req.SavedSoFar, req.Deadline, req.Priority, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetUserGoals lists the user's goals
// @Summary     List goals
// @Description Get the authenticated user's goals ordered by nearest deadline
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Goal "List of goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetUserGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if goals == nil {
		goals = []models.Goal{}
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoalOverview returns goals grouped by priority with progress figures
// @Summary     Goal overview
// @Description Get goals grouped by priority, each with completion percentage and months left, most complete first
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} GoalOverviewGroup "Priority groups"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/overview [get]
func (h *GoalHandler) GetGoalOverview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	groups := insights.GroupByPriority(goals)
	overview := make([]GoalOverviewGroup, 0, len(groups))
	for _, g := range groups {
		group := GoalOverviewGroup{Priority: g.Priority, Goals: []GoalProgress{}}
		for _, goal := range g.Goals {
			group.Goals = append(group.Goals, GoalProgress{
				Goal:              goal,
				CompletionPercent: insights.CompletionPercent(goal),
				MonthsLeft:        insights.MonthsLeft(goal.Deadline, now),
			})
		}
		overview = append(overview, group)
	}

	c.JSON(http.StatusOK, gin.H{"overview": overview})
}

// AddSavings adds to a goal's saved amount
// @Summary     Add savings to a goal
// @Description Add a positive amount to the goal's saved total; saved may exceed the target
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Param       request body AddSavingsRequest true "Amount to add"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/savings [post]
func (h *GoalHandler) AddSavings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.ErrInvalidGoalSum)
		return
	}

	goal, err := h.goalService.AddSavings(userID, c.Param("id"), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal updates an owned goal
// @Summary     Update goal
// @Description Update the supplied fields of a goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to update"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, c.Param("id"), services.GoalUpdate{
		GoalName:     req.GoalName,
		TargetAmount: req.TargetAmount,
		SavedSoFar:   req.SavedSoFar,
		Deadline:     req.Deadline,
		Priority:     req.Priority,
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal deletes an owned goal
// @Summary     Delete goal
// @Description Delete a goal by ID
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}
