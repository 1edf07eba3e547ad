// Package storage provides the data persistence layer for the spendwise application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"spendwise/internal/common"
	"spendwise/internal/model"

	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateAmount ensures an expense amount is strictly positive.
func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", common.ErrValidation, amount)
	}
	return nil
}

// validateDate ensures a calendar date is present and well formed.
func validateDate(date, paramName string) error {
	if date == "" {
		return fmt.Errorf("%w: missing %s", common.ErrValidation, paramName)
	}
	if !model.ValidDate(date) {
		return fmt.Errorf("%w: %s %q is not a valid calendar date", common.ErrValidation, paramName, date)
	}
	return nil
}

// validateCategoryName ensures a category name is non-empty after
// trimming and within the length limit.
func validateCategoryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: category name cannot be empty", common.ErrValidation)
	}
	if len(trimmed) > model.MaxCategoryNameLength {
		return "", fmt.Errorf("%w: category name exceeds %d characters", common.ErrValidation, model.MaxCategoryNameLength)
	}
	return trimmed, nil
}

// validateExpense validates a full expense record, including the
// status/paid-date consistency invariant.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if expense.ID == "" {
		return fmt.Errorf("%w: missing expense ID", common.ErrValidation)
	}
	if err := validateAmount(expense.Amount); err != nil {
		return err
	}
	if expense.CategoryID == "" {
		return fmt.Errorf("%w: missing category", common.ErrValidation)
	}
	if err := validateDate(expense.Date, "date"); err != nil {
		return err
	}

	switch expense.Status {
	case model.StatusUnpaid:
		if expense.PaidDate != "" {
			return fmt.Errorf("%w: unpaid expense cannot have a paid date", common.ErrValidation)
		}
	case model.StatusPaid:
		if err := validateDate(expense.PaidDate, "paid date"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: invalid status %q", common.ErrValidation, expense.Status)
	}

	return nil
}
