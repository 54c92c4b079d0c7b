package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "lakshmi/internal/errors"
	"lakshmi/internal/models"
	"lakshmi/internal/services"
)

type mockGoalService struct {
	createFn     func(userID, name string, target, saved float64, deadline time.Time, priority models.GoalPriority, notes string) (*models.Goal, error)
	addSavingsFn func(userID, goalID string, amount float64) (*models.Goal, error)
	listFn       func(userID string) ([]models.Goal, error)
	updateFn     func(userID, goalID string, update services.GoalUpdate) (*models.Goal, error)
	deleteFn     func(userID, goalID string) error
}

var _ services.GoalServicer = (*mockGoalService)(nil)

func (m *mockGoalService) CreateGoal(userID, name string, target, saved float64, deadline time.Time, priority models.GoalPriority, notes string) (*models.Goal, error) {
	if m.createFn != nil {
		return m.createFn(userID, name, target, saved, deadline, priority, notes)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) AddSavings(userID, goalID string, amount float64) (*models.Goal, error) {
	if m.addSavingsFn != nil {
		return m.addSavingsFn(userID, goalID, amount)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) GetUserGoals(userID string) ([]models.Goal, error) {
	if m.listFn != nil {
		return m.listFn(userID)
	}
	return nil, nil
}

func (m *mockGoalService) UpdateGoal(userID, goalID string, update services.GoalUpdate) (*models.Goal, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, goalID, update)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) DeleteGoal(userID, goalID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, goalID)
	}
	return nil
}

func setupGoalRouter(svc services.GoalServicer) *gin.Engine {
	handler := NewGoalHandler(svc)
	r := gin.New()
	auth := r.Group("/", injectUserID(testUserID))
	auth.POST("/goals", handler.CreateGoal)
	auth.GET("/goals", handler.GetUserGoals)
	auth.GET("/goals/overview", handler.GetGoalOverview)
	auth.POST("/goals/:id/savings", handler.AddSavings)
	auth.PUT("/goals/:id", handler.UpdateGoal)
	auth.DELETE("/goals/:id", handler.DeleteGoal)
	return r
}

func TestGoalHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockGoalService{
			createFn: func(_, name string, target, saved float64, _ time.Time, priority models.GoalPriority, _ string) (*models.Goal, error) {
				return &models.Goal{GoalName: name, TargetAmount: target, SavedSoFar: saved, Priority: priority}, nil
			},
		}
		r := setupGoalRouter(svc)

		rec := doRequest(r, "POST", "/goals",
			`{"goalName":"House","targetAmount":100000,"savedSoFar":5000,"deadline":"2027-01-01T00:00:00Z","priority":"High"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		goal := parseJSON(t, rec)["goal"].(map[string]interface{})
		if goal["goalName"] != "House" {
			t.Errorf("unexpected goal: %v", goal)
		}
	})

	t.Run("returns 400 on zero target", func(t *testing.T) {
		r := setupGoalRouter(&mockGoalService{})
		rec := doRequest(r, "POST", "/goals",
			`{"goalName":"House","targetAmount":0,"deadline":"2027-01-01T00:00:00Z"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown priority", func(t *testing.T) {
		r := setupGoalRouter(&mockGoalService{})
		rec := doRequest(r, "POST", "/goals",
			`{"goalName":"House","targetAmount":1000,"deadline":"2027-01-01T00:00:00Z","priority":"Urgent"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGoalHandler_List(t *testing.T) {
	t.Run("empty result is an empty array", func(t *testing.T) {
		r := setupGoalRouter(&mockGoalService{})
		rec := doRequest(r, "GET", "/goals", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		goals, ok := parseJSON(t, rec)["goals"].([]interface{})
		if !ok {
			t.Fatalf("expected goals array, got: %s", rec.Body.String())
		}
		if len(goals) != 0 {
			t.Errorf("expected empty array, got %v", goals)
		}
	})
}

func TestGoalHandler_Overview(t *testing.T) {
	deadline := time.Now().AddDate(1, 0, 0)
	svc := &mockGoalService{
		listFn: func(_ string) ([]models.Goal, error) {
			return []models.Goal{
				{GoalName: "Car", TargetAmount: 1000, SavedSoFar: 250, Priority: models.GoalPriorityLow, Deadline: deadline},
				{GoalName: "House", TargetAmount: 1000, SavedSoFar: 500, Priority: models.GoalPriorityHigh, Deadline: deadline},
			}, nil
		},
	}
	r := setupGoalRouter(svc)

	rec := doRequest(r, "GET", "/goals/overview", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	overview := parseJSON(t, rec)["overview"].([]interface{})
	if len(overview) != 2 {
		t.Fatalf("expected 2 priority groups, got %d", len(overview))
	}

	first := overview[0].(map[string]interface{})
	if first["priority"] != "High" {
		t.Errorf("expected High group first, got %v", first["priority"])
	}
	goals := first["goals"].([]interface{})
	progress := goals[0].(map[string]interface{})
	if progress["completionPercent"] != float64(50) {
		t.Errorf("expected 50 percent, got %v", progress["completionPercent"])
	}
	if progress["monthsLeft"] == nil {
		t.Error("expected monthsLeft in the payload")
	}
}

func TestGoalHandler_AddSavings(t *testing.T) {
	t.Run("forwards the amount", func(t *testing.T) {
		var got float64
		svc := &mockGoalService{
			addSavingsFn: func(_, _ string, amount float64) (*models.Goal, error) {
				got = amount
				return &models.Goal{SavedSoFar: 350}, nil
			},
		}
		r := setupGoalRouter(svc)

		rec := doRequest(r, "POST", "/goals/some-id/savings", `{"amount":250}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got != 250 {
			t.Errorf("expected amount 250 forwarded, got %v", got)
		}
	})

	t.Run("returns 400 when the amount is missing", func(t *testing.T) {
		r := setupGoalRouter(&mockGoalService{})
		rec := doRequest(r, "POST", "/goals/some-id/savings", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Invalid amount")
	})

	t.Run("returns 404 for a stranger's goal", func(t *testing.T) {
		svc := &mockGoalService{
			addSavingsFn: func(_, _ string, _ float64) (*models.Goal, error) {
				return nil, apperrors.ErrGoalNotFound
			},
		}
		r := setupGoalRouter(svc)
		rec := doRequest(r, "POST", "/goals/some-id/savings", `{"amount":100}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestGoalHandler_Update(t *testing.T) {
	var got services.GoalUpdate
	svc := &mockGoalService{
		updateFn: func(_, _ string, update services.GoalUpdate) (*models.Goal, error) {
			got = update
			return &models.Goal{}, nil
		},
	}
	r := setupGoalRouter(svc)

	rec := doRequest(r, "PUT", "/goals/some-id", `{"targetAmount":2000,"notes":"stretch"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.TargetAmount == nil || *got.TargetAmount != 2000 {
		t.Errorf("expected target 2000 forwarded, got %+v", got.TargetAmount)
	}
	if got.Notes == nil || *got.Notes != "stretch" {
		t.Errorf("expected notes forwarded, got %+v", got.Notes)
	}
	if got.GoalName != nil || got.Deadline != nil {
		t.Error("expected absent fields to stay nil")
	}
}

func TestGoalHandler_Delete(t *testing.T) {
	t.Run("returns the confirmation message", func(t *testing.T) {
		r := setupGoalRouter(&mockGoalService{})
		rec := doRequest(r, "DELETE", "/goals/some-id", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Goal deleted successfully")
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockGoalService{
			deleteFn: func(_, _ string) error { return apperrors.ErrGoalNotFound },
		}
		r := setupGoalRouter(svc)
		rec := doRequest(r, "DELETE", "/goals/some-id", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
