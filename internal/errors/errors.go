// Package errors provides custom error types for the Lakshmi API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
// Clients only ever see the message; the code is for logs and tests.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials", StatusCode: http.StatusBadRequest}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User & onboarding errors.
var (
	ErrUserNotFound        = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail      = &AppError{Code: "DUPLICATE_EMAIL", Message: "User already exists", StatusCode: http.StatusBadRequest}
	ErrPasswordMismatch    = &AppError{Code: "PASSWORD_MISMATCH", Message: "Passwords do not match", StatusCode: http.StatusBadRequest}
	ErrOnboardingExists    = &AppError{Code: "ONBOARDING_EXISTS", Message: "Onboarding data already exists for this user", StatusCode: http.StatusBadRequest}
	ErrOnboardingNotFound  = &AppError{Code: "ONBOARDING_NOT_FOUND", Message: "Onboarding info not found", StatusCode: http.StatusNotFound}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrNegativeAmount      = &AppError{Code: "NEGATIVE_AMOUNT", Message: "Amount must not be negative", StatusCode: http.StatusBadRequest}
)

// Goal errors.
var (
	ErrGoalNotFound     = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrInvalidGoalSum   = &AppError{Code: "INVALID_GOAL_SUM", Message: "Invalid amount", StatusCode: http.StatusBadRequest}
	ErrInvalidTarget    = &AppError{Code: "INVALID_TARGET", Message: "Target amount must be greater than zero", StatusCode: http.StatusBadRequest}
)

// Chat errors.
var (
	ErrChatNotFound    = &AppError{Code: "CHAT_NOT_FOUND", Message: "Chat not found", StatusCode: http.StatusNotFound}
	ErrEmptyMessage    = &AppError{Code: "EMPTY_MESSAGE", Message: "Message text required", StatusCode: http.StatusBadRequest}
	ErrEmptyQuery      = &AppError{Code: "EMPTY_QUERY", Message: "Query is required", StatusCode: http.StatusBadRequest}
)

// Summary errors.
var (
	ErrSummaryNotFound   = &AppError{Code: "SUMMARY_NOT_FOUND", Message: "No summary found", StatusCode: http.StatusNotFound}
	ErrRefreshInProgress = &AppError{Code: "REFRESH_IN_PROGRESS", Message: "A summary refresh is already running", StatusCode: http.StatusConflict}
)
