package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used throughout the ledger.
// Dates are stored as ISO strings so they compare correctly lexically.
const DateLayout = "2006-01-02"

// ExpenseStatus indicates whether an expense has been paid.
type ExpenseStatus string

const (
	// StatusUnpaid is the default status for newly created expenses.
	StatusUnpaid ExpenseStatus = "unpaid"
	// StatusPaid marks an expense settled as of its PaidDate.
	StatusPaid ExpenseStatus = "paid"
)

// Expense represents a single spending record.
type Expense struct {
	CreatedAt  time.Time
	Amount     decimal.Decimal
	ID         string
	CategoryID string
	Date       string // ISO calendar date (YYYY-MM-DD)
	Note       string
	PaidDate   string // set only while Status == StatusPaid
	Status     ExpenseStatus
}

// IsPaid reports whether the expense has been settled.
func (e *Expense) IsPaid() bool {
	return e.Status == StatusPaid
}

// ValidDate reports whether s is a well-formed calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Today returns the current calendar date in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}
