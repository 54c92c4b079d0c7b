package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"lakshmi/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProfile creates an onboarding profile with the given declared
// monthly income and expenses.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string, income, expenses float64) *models.OnboardingProfile {
	t.Helper()

	profile := &models.OnboardingProfile{
		UserID:          userID,
		Name:            fmt.Sprintf("Test User %d", nextID()),
		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
		Currency:        "INR",
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestTransaction creates a transaction of the given type, category,
// and amount, dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, category string, amount float64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, userID, txType, category, amount, time.Now())
}

// CreateTestTransactionOn creates a transaction dated at the given time.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, category string, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		Category:      category,
		Date:          date,
		PaymentMethod: models.PaymentMethodOthers,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestGoal creates a goal with the given target, saved amount, and priority.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target, saved float64, priority models.GoalPriority) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		GoalName:     fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: target,
		SavedSoFar:   saved,
		Deadline:     time.Now().AddDate(1, 0, 0),
		Priority:     priority,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestChat creates an empty chat for the user.
func CreateTestChat(t *testing.T, db *gorm.DB, userID string) *models.Chat {
	t.Helper()

	chat := &models.Chat{UserID: userID}
	if err := db.Create(chat).Error; err != nil {
		t.Fatalf("failed to create test chat: %v", err)
	}
	return chat
}

// CreateTestMessage appends a message to a chat at the given position.
func CreateTestMessage(t *testing.T, db *gorm.DB, chatID string, sender models.MessageSender, text string, position int) *models.ChatMessage {
	t.Helper()

	msg := &models.ChatMessage{
		ChatID:   chatID,
		Sender:   sender,
		Text:     text,
		Position: position,
	}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("failed to create test message: %v", err)
	}
	return msg
}
