package storage

import (
	"context"
	"fmt"
	"log/slog"

	"spendwise/internal/model"
)

// SettleCategory transitions every unpaid expense in the category
// dated at or before cutoffDate to paid, all sharing cutoffDate as
// their paid date. The whole batch is applied in a single database
// transaction: either every selected record is updated or none is.
//
// An empty working set (no matching expenses, or an unknown category)
// is a valid no-op: no writes happen and an empty slice is returned.
// Calling twice with the same arguments is therefore idempotent.
//
// The settled records are returned ordered by date ascending with
// creation time as tie-break, oldest first.
func (s *SQLiteStorage) SettleCategory(ctx context.Context, categoryID, cutoffDate string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	settled, err := s.settleCategoryTx(ctx, tx, categoryID, cutoffDate)
	if err != nil {
		return nil, err
	}

	if len(settled) == 0 {
		// Nothing selected, nothing written; no need to commit.
		return settled, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	slog.Info("settled expenses",
		"category", categoryID,
		"cutoff", cutoffDate,
		"count", len(settled))
	return settled, nil
}

func (s *SQLiteStorage) settleCategoryTx(ctx context.Context, q queryable, categoryID, cutoffDate string) ([]model.Expense, error) {
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}
	if err := validateDate(cutoffDate, "cutoff date"); err != nil {
		return nil, err
	}

	// Select the working set. Dates are ISO strings, so the <=
	// comparison is a plain lexical compare.
	selectQuery := `
		SELECT id, amount, category_id, date, note, status, paid_date, created_at
		FROM expenses
		WHERE category_id = ? AND status = ? AND date <= ?
		ORDER BY date ASC, created_at ASC`

	rows, err := q.QueryContext(ctx, selectQuery, categoryID, string(model.StatusUnpaid), cutoffDate)
	if err != nil {
		return nil, fmt.Errorf("failed to select expenses to settle: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var workingSet []model.Expense
	for rows.Next() {
		expense, scanErr := scanExpense(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", scanErr)
		}
		workingSet = append(workingSet, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses to settle: %w", err)
	}

	if len(workingSet) == 0 {
		return []model.Expense{}, nil
	}

	updateQuery := `
		UPDATE expenses
		SET status = ?, paid_date = ?
		WHERE category_id = ? AND status = ? AND date <= ?`

	result, err := q.ExecContext(ctx, updateQuery,
		string(model.StatusPaid),
		cutoffDate,
		categoryID,
		string(model.StatusUnpaid),
		cutoffDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to settle expenses: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check settlement result: %w", err)
	}
	if affected != int64(len(workingSet)) {
		// The transaction rolls back, so no mixed paid/unpaid state
		// can leak out.
		return nil, fmt.Errorf("settlement updated %d of %d selected expenses", affected, len(workingSet))
	}

	for i := range workingSet {
		workingSet[i].Status = model.StatusPaid
		workingSet[i].PaidDate = cutoffDate
	}

	return workingSet, nil
}
