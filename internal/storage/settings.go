package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"spendwise/internal/common"
	"spendwise/internal/model"
)

// GetSetting returns the stored value for key, or ErrNotFound when the
// key has never been set. Callers supply their own fallbacks.
func (s *SQLiteStorage) GetSetting(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	return s.getSettingTx(ctx, s.db, key)
}

func (s *SQLiteStorage) getSettingTx(ctx context.Context, q queryable, key string) (string, error) {
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: setting %s", common.ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting: %w", err)
	}

	return value, nil
}

// SetSetting stores a preference value, replacing any existing value
// for the key.
func (s *SQLiteStorage) SetSetting(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.setSettingTx(ctx, s.db, key, value)
}

func (s *SQLiteStorage) setSettingTx(ctx context.Context, q queryable, key, value string) error {
	if err := validateString(key, "key"); err != nil {
		return err
	}

	query := `
		INSERT INTO settings (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := q.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	slog.Debug("saved setting", "key", key)
	return nil
}

// ListSettings returns all stored settings sorted by key.
func (s *SQLiteStorage) ListSettings(ctx context.Context) ([]model.Setting, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listSettingsTx(ctx, s.db)
}

func (s *SQLiteStorage) listSettingsTx(ctx context.Context, q queryable) ([]model.Setting, error) {
	rows, err := q.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var settings []model.Setting
	for rows.Next() {
		var setting model.Setting
		if err := rows.Scan(&setting.Key, &setting.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, setting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return settings, nil
}
