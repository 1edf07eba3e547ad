package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"spendwise/internal/common"
	"spendwise/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddExpense creates a new expense record. New expenses always start
// unpaid with no paid date.
func (s *SQLiteStorage) AddExpense(ctx context.Context, amount decimal.Decimal, categoryID, date, note string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.addExpenseTx(ctx, s.db, amount, categoryID, date, note)
}

func (s *SQLiteStorage) addExpenseTx(ctx context.Context, q queryable, amount decimal.Decimal, categoryID, date, note string) (*model.Expense, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if categoryID == "" {
		return nil, fmt.Errorf("%w: missing category", common.ErrValidation)
	}
	if err := validateDate(date, "date"); err != nil {
		return nil, err
	}

	expense := &model.Expense{
		ID:         uuid.NewString(),
		Amount:     amount,
		CategoryID: categoryID,
		Date:       date,
		Note:       note,
		Status:     model.StatusUnpaid,
		CreatedAt:  time.Now().UTC(),
	}

	query := `
		INSERT INTO expenses (id, amount, category_id, date, note, status, paid_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NULL, ?)`

	if _, err := q.ExecContext(ctx, query,
		expense.ID,
		expense.Amount.String(),
		expense.CategoryID,
		expense.Date,
		expense.Note,
		string(expense.Status),
		expense.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	slog.Debug("created expense",
		"id", expense.ID,
		"amount", expense.Amount,
		"category", expense.CategoryID,
		"date", expense.Date)
	return expense, nil
}

// GetExpenseByID returns a single expense by its id.
func (s *SQLiteStorage) GetExpenseByID(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getExpenseByIDTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getExpenseByIDTx(ctx context.Context, q queryable, id string) (*model.Expense, error) {
	query := `
		SELECT id, amount, category_id, date, note, status, paid_date, created_at
		FROM expenses
		WHERE id = ?`

	expense, err := scanExpense(q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: expense %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}

	return expense, nil
}

// UpdateExpense replaces the mutable fields of an expense record. The
// status/paid-date consistency invariant is validated here, but keeping
// it sensible across edits is a contract on callers; the settlement
// path is the only writer that transitions status in normal operation.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.updateExpenseTx(ctx, s.db, expense)
}

func (s *SQLiteStorage) updateExpenseTx(ctx context.Context, q queryable, expense *model.Expense) (*model.Expense, error) {
	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	query := `
		UPDATE expenses
		SET amount = ?, category_id = ?, date = ?, note = ?, status = ?, paid_date = ?
		WHERE id = ?`

	result, err := q.ExecContext(ctx, query,
		expense.Amount.String(),
		expense.CategoryID,
		expense.Date,
		expense.Note,
		string(expense.Status),
		nullableDate(expense.PaidDate),
		expense.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: expense %s", common.ErrNotFound, expense.ID)
	}

	// Re-read so the caller gets the canonical record, including the
	// immutable created_at.
	return s.getExpenseByIDTx(ctx, q, expense.ID)
}

// DeleteExpense removes an expense record. Deleting an absent id
// returns ErrNotFound.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.deleteExpenseTx(ctx, s.db, id)
}

func (s *SQLiteStorage) deleteExpenseTx(ctx context.Context, q queryable, id string) error {
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: expense %s", common.ErrNotFound, id)
	}

	slog.Debug("deleted expense", "id", id)
	return nil
}

// ListExpenses returns all expenses sorted by date descending,
// tie-broken by creation time descending (newest-entered-first among
// same-day expenses). This is the default view order.
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listExpensesTx(ctx, s.db)
}

func (s *SQLiteStorage) listExpensesTx(ctx context.Context, q queryable) ([]model.Expense, error) {
	query := `
		SELECT id, amount, category_id, date, note, status, paid_date, created_at
		FROM expenses
		ORDER BY date DESC, created_at DESC`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		expense, scanErr := scanExpense(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", scanErr)
		}
		expenses = append(expenses, *expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(expenses))
	return expenses, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*model.Expense, error) {
	var (
		expense   model.Expense
		amountStr string
		status    string
		paidDate  sql.NullString
	)

	if err := row.Scan(
		&expense.ID,
		&amountStr,
		&expense.CategoryID,
		&expense.Date,
		&expense.Note,
		&status,
		&paidDate,
		&expense.CreatedAt,
	); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amountStr, err)
	}
	expense.Amount = amount
	expense.Status = model.ExpenseStatus(status)
	if paidDate.Valid {
		expense.PaidDate = paidDate.String
	}

	return &expense, nil
}

// nullableDate maps an empty date string to SQL NULL.
func nullableDate(date string) any {
	if date == "" {
		return nil
	}
	return date
}
