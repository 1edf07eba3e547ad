// Package testutil provides test helpers for setting up isolated
// ledger databases.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"spendwise/internal/model"
	"spendwise/internal/service"
	"spendwise/internal/storage"
)

// TestDB wraps a migrated, default-seeded storage instance for tests.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a fresh on-disk test database, runs migrations,
// and seeds the default categories. Cleanup is registered with t.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := store.EnsureDefaultCategories(ctx); err != nil {
		t.Fatalf("failed to seed default categories: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustAddExpense creates an expense or fails the test.
func (db *TestDB) MustAddExpense(amount, categoryID, date, note string) *model.Expense {
	db.t.Helper()

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		db.t.Fatalf("invalid test amount %q: %v", amount, err)
	}

	expense, err := db.Storage.AddExpense(context.Background(), amt, categoryID, date, note)
	if err != nil {
		db.t.Fatalf("failed to add expense: %v", err)
	}
	return expense
}

// MustListExpenses lists all expenses or fails the test.
func (db *TestDB) MustListExpenses() []model.Expense {
	db.t.Helper()

	expenses, err := db.Storage.ListExpenses(context.Background())
	if err != nil {
		db.t.Fatalf("failed to list expenses: %v", err)
	}
	return expenses
}
