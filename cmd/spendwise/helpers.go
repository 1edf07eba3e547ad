package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"spendwise/internal/common"
	"spendwise/internal/config"
	"spendwise/internal/model"
	"spendwise/internal/service"
	"spendwise/internal/storage"
)

// initStorage opens the ledger database, runs migrations, and seeds
// the default categories on first run.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to open ledger database at %s", dbPath), err)
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// First run: populate the fixed default category set
	if err := store.EnsureDefaultCategories(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}

	return store, nil
}

// currencySymbol returns the configured currency symbol, falling back
// to the default when none has been set.
func currencySymbol(ctx context.Context, store service.Storage) string {
	currency, err := store.GetSetting(ctx, model.SettingCurrency)
	if err != nil {
		return model.DefaultCurrency
	}
	return currency
}

// categoryNames maps category ids to display names. Dangling ids
// resolve to the raw id so deleted categories stay visible.
func categoryNames(ctx context.Context, store service.Storage) (map[string]string, error) {
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	return names, nil
}

// resolveCategory finds a category by id or (case-sensitive) name so
// commands accept either form.
func resolveCategory(ctx context.Context, store service.Storage, idOrName string) (*model.Category, error) {
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	for i := range categories {
		if categories[i].ID == idOrName || categories[i].Name == idOrName {
			return &categories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: category %q", common.ErrNotFound, idOrName)
}
