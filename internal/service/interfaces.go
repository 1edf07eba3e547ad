// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"spendwise/internal/model"
)

// Storage defines the contract for the persistence layer. It is the
// boundary the presentation layer (CLI commands, TUI) talks to.
type Storage interface {
	// Expense operations
	AddExpense(ctx context.Context, amount decimal.Decimal, categoryID, date, note string) (*model.Expense, error)
	GetExpenseByID(ctx context.Context, id string) (*model.Expense, error)
	UpdateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	ListExpenses(ctx context.Context) ([]model.Expense, error)

	// Settlement. All matching unpaid expenses in the category dated at
	// or before cutoffDate become paid as of cutoffDate, atomically.
	SettleCategory(ctx context.Context, categoryID, cutoffDate string) ([]model.Expense, error)

	// Category operations
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	AddCategory(ctx context.Context, name, icon, color string) (*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	EnsureDefaultCategories(ctx context.Context) error

	// Settings operations
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	ListSettings(ctx context.Context) ([]model.Setting, error)

	// Reset clears all stores and reseeds the default categories.
	ResetAll(ctx context.Context) error

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within transaction
	Storage
}
