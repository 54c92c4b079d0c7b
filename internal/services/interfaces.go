package services

import (
	"context"
	"time"

	"lakshmi/internal/insights"
	"lakshmi/internal/models"
	"lakshmi/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdatePassword(userID, password string) error
}

// OnboardingServicer defines the contract for onboarding profiles. Completing
// onboarding also seeds the two baseline transactions; profile and seeds are
// written atomically.
type OnboardingServicer interface {
	CompleteOnboarding(userID string, profile models.OnboardingProfile) (*models.OnboardingProfile, error)
	GetProfile(userID string) (*models.OnboardingProfile, error)
	UpdateProfile(userID string, profile models.OnboardingProfile) (*models.OnboardingProfile, error)
}

// TransactionUpdate holds optional fields for a transaction update; nil
// fields are left unchanged.
type TransactionUpdate struct {
	Type          *models.TransactionType
	Amount        *float64
	Category      *string
	Date          *time.Time
	PaymentMethod *models.PaymentMethod
	Description   *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, txType models.TransactionType, amount float64, category string, date time.Time, method models.PaymentMethod, description string) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetAllUserTransactions(userID string) ([]models.Transaction, error)
	GetCategories(userID string) ([]string, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// GoalUpdate holds optional fields for a goal update; nil fields are left
// unchanged. SavedSoFar here is a direct set, only reachable through a full
// update; incremental saving goes through AddSavings.
type GoalUpdate struct {
	GoalName     *string
	TargetAmount *float64
	SavedSoFar   *float64
	Deadline     *time.Time
	Priority     *models.GoalPriority
	Notes        *string
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(userID, name string, target, saved float64, deadline time.Time, priority models.GoalPriority, notes string) (*models.Goal, error)
	AddSavings(userID, goalID string, amount float64) (*models.Goal, error)
	GetUserGoals(userID string) ([]models.Goal, error)
	UpdateGoal(userID, goalID string, update GoalUpdate) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
}

// ChatSummary is one row of the chat history listing.
type ChatSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatServicer defines the contract for chats and the message exchange flow.
type ChatServicer interface {
	CreateChat(userID string) (*models.Chat, error)
	GetChatHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[ChatSummary], error)
	GetChat(userID, chatID string) (*models.Chat, error)
	RenameChat(userID, chatID, title string) (*models.Chat, error)
	DeleteChat(userID, chatID string) error
	SendMessage(ctx context.Context, userID, chatID, text string, edited bool, editedMessageID string) (string, error)
}

// DashboardView is the aggregated payload behind the dashboard endpoint.
type DashboardView struct {
	Income     float64                   `json:"income"`
	Expense    float64                   `json:"expense"`
	Savings    float64                   `json:"savings"`
	NetSavings float64                   `json:"net_savings"`
	Categories []insights.CategoryAmount `json:"categories"`
	Monthly    []insights.MonthBucket    `json:"monthly"`
}

// SummaryServicer defines the contract for the periodic AI summary snapshots
// and on-demand dashboard aggregation.
type SummaryServicer interface {
	Dashboard(userID string) (*DashboardView, error)
	RefreshUser(userID string) (*models.AISummary, error)
	RefreshAll(ctx context.Context) error
	GetSummaryText(userID string) (string, error)
}
