// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("goal_priority", validateGoalPriority)
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("age_range", validateAgeRange)
		_ = v.RegisterValidation("income_range", validateIncomeRange)
		_ = v.RegisterValidation("experience_level", validateExperienceLevel)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Income", "Expense":
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Cash", "Credit Card", "Debit Card", "UPI", "Net Banking", "Others":
		return true
	}
	return false
}

func validateGoalPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "High", "Medium", "Low":
		return true
	}
	return false
}

func validateCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "INR", "USD", "EUR", "GBP", "JPY":
		return true
	}
	return false
}

func validateAgeRange(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "18-25", "26-35", "36-45", "46-60", "60+":
		return true
	}
	return false
}

func validateIncomeRange(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "0-3 LPA", "3-6 LPA", "6-10 LPA", "10-15 LPA", "15+ LPA":
		return true
	}
	return false
}

func validateExperienceLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Beginner", "Intermediate", "Expert":
		return true
	}
	return false
}
