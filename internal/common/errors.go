// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrNotFound indicates the targeted record does not exist. The
	// operation has no side effects.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates input failed a precondition. Nothing is
	// ever partially applied; the caller must correct and retry.
	ErrValidation = errors.New("validation failed")

	// ErrStorage indicates the underlying persistence layer failed.
	// Propagated unmodified; no automatic retry.
	ErrStorage = errors.New("storage error")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
