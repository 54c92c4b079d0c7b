package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "lakshmi/internal/errors"
	"lakshmi/internal/logger"
	"lakshmi/internal/models"
)

// GoalService handles goal-related business logic.
type GoalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalService.
func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// CreateGoal creates a savings goal. The target must be positive; the
// starting saved amount may be zero but never negative.
func (s *GoalService) CreateGoal(userID, name string, target, saved float64, deadline time.Time, priority models.GoalPriority, notes string) (*models.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal name is required")
	}
	if target <= 0 {
		return nil, apperrors.ErrInvalidTarget
	}
	if saved < 0 {
		return nil, apperrors.ErrInvalidGoalSum
	}
	if priority == "" {
		priority = models.GoalPriorityMedium
	}

	goal := &models.Goal{
		UserID:       userID,
		GoalName:     name,
		TargetAmount: target,
		SavedSoFar:   saved,
		Deadline:     deadline,
		Priority:     priority,
		Notes:        notes,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("goal created", "goal_id", goal.ID, "user_id", userID, "target", target)
	return goal, nil
}

// AddSavings increments a goal's saved amount. The increment happens in SQL
// so concurrent additions never lose updates; saved may exceed the target.
func (s *GoalService) AddSavings(userID, goalID string, amount float64) (*models.Goal, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidGoalSum
	}

	result := s.db.Model(&models.Goal{}).
		Where("id = ? AND user_id = ?", goalID, userID).
		Update("saved_so_far", gorm.Expr("saved_so_far + ?", amount))
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrGoalNotFound
	}

	var goal models.Goal
	if err := s.db.First(&goal, "id = ?", goalID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// GetUserGoals returns the user's goals ordered by nearest deadline first.
func (s *GoalService) GetUserGoals(userID string) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("deadline ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// UpdateGoal updates the supplied fields of an owned goal. A full update may
// set SavedSoFar directly, unlike the additive savings path.
func (s *GoalService) UpdateGoal(userID, goalID string, update GoalUpdate) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if update.TargetAmount != nil && *update.TargetAmount <= 0 {
		return nil, apperrors.ErrInvalidTarget
	}
	if update.SavedSoFar != nil && *update.SavedSoFar < 0 {
		return nil, apperrors.ErrInvalidGoalSum
	}

	updates := map[string]any{}
	if update.GoalName != nil {
		updates["goal_name"] = strings.TrimSpace(*update.GoalName)
	}
	if update.TargetAmount != nil {
		updates["target_amount"] = *update.TargetAmount
	}
	if update.SavedSoFar != nil {
		updates["saved_so_far"] = *update.SavedSoFar
	}
	if update.Deadline != nil {
		updates["deadline"] = *update.Deadline
	}
	if update.Priority != nil {
		updates["priority"] = *update.Priority
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}
	if len(updates) == 0 {
		return &goal, nil
	}

	if err := s.db.Model(&goal).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// DeleteGoal removes an owned goal.
func (s *GoalService) DeleteGoal(userID, goalID string) error {
	result := s.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}

	logger.Get().Infow("goal deleted", "goal_id", goalID, "user_id", userID)
	return nil
}
