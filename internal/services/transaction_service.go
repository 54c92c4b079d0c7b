package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	apperrors "lakshmi/internal/errors"
	"lakshmi/internal/logger"
	"lakshmi/internal/models"
	"lakshmi/internal/pagination"
)

const defaultDescription = "Auto-added from receipt"

// TransactionService handles transaction-related business logic.
type TransactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// normalizeCategory title-cases a category so "food" and "Food" land in the
// same breakdown bucket. Empty categories fall back to "Other".
func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return "Other"
	}
	return cases.Title(language.English).String(strings.ToLower(category))
}

// CreateTransaction creates a transaction for the user, applying defaults
// for missing fields. Negative amounts are rejected.
func (s *TransactionService) CreateTransaction(userID string, txType models.TransactionType, amount float64, category string, date time.Time, method models.PaymentMethod, description string) (*models.Transaction, error) {
	if amount < 0 {
		return nil, apperrors.ErrNegativeAmount
	}
	if txType == "" {
		txType = models.TransactionTypeExpense
	}
	if method == "" {
		method = models.PaymentMethodOthers
	}
	if date.IsZero() {
		date = time.Now()
	}
	if description == "" {
		description = defaultDescription
	}

	transaction := &models.Transaction{
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		Category:      normalizeCategory(category),
		Date:          date,
		PaymentMethod: method,
		Description:   description,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("transaction created",
		"transaction_id", transaction.ID,
		"user_id", userID,
		"type", transaction.Type,
		"amount", transaction.Amount,
	)
	return transaction, nil
}

// GetUserTransactions returns the user's transactions newest first, paginated.
func (s *TransactionService) GetUserTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(transactions, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetAllUserTransactions returns every transaction for the user, newest
// first. This feeds the aggregation paths (dashboard, assistant, summaries),
// which depend on the newest-first ordering for month bucket order.
func (s *TransactionService) GetAllUserTransactions(userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetCategories returns the distinct category names used by the user.
func (s *TransactionService) GetCategories(userID string) ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// GetTransactionByID retrieves a single transaction. A transaction that
// exists but belongs to another user yields ErrForbidden, not a 404.
func (s *TransactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transaction.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &transaction, nil
}

// UpdateTransaction updates the supplied fields of an owned transaction.
func (s *TransactionService) UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if update.Amount != nil && *update.Amount < 0 {
		return nil, apperrors.ErrNegativeAmount
	}

	updates := map[string]any{}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Category != nil {
		updates["category"] = normalizeCategory(*update.Category)
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}
	if update.PaymentMethod != nil {
		updates["payment_method"] = *update.PaymentMethod
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if len(updates) == 0 {
		return transaction, nil
	}

	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction removes an owned transaction.
func (s *TransactionService) DeleteTransaction(userID, transactionID string) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	logger.Get().Infow("transaction deleted", "transaction_id", transactionID, "user_id", userID)
	return nil
}
