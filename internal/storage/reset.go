package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// ResetAll wipes expenses, categories, and settings in one transaction
// and reseeds the default category set, restoring first-run state.
func (s *SQLiteStorage) ResetAll(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.resetAllTx(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}

	slog.Info("reset all data")
	return nil
}

func (s *SQLiteStorage) resetAllTx(ctx context.Context, q queryable) error {
	for _, table := range []string{"expenses", "categories", "settings"} {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return s.ensureDefaultCategoriesTx(ctx, q)
}
