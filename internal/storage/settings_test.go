package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendwise/internal/common"
	"spendwise/internal/model"
)

func TestSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.GetSetting(ctx, model.SettingCurrency)
		require.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		require.NoError(t, store.SetSetting(ctx, model.SettingCurrency, "€"))

		value, err := store.GetSetting(ctx, model.SettingCurrency)
		require.NoError(t, err)
		assert.Equal(t, "€", value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		require.NoError(t, store.SetSetting(ctx, model.SettingTheme, "dark"))
		require.NoError(t, store.SetSetting(ctx, model.SettingTheme, "light"))

		value, err := store.GetSetting(ctx, model.SettingTheme)
		require.NoError(t, err)
		assert.Equal(t, "light", value)

		settings, err := store.ListSettings(ctx)
		require.NoError(t, err)
		assert.Len(t, settings, 1)
	})

	t.Run("list sorted by key", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		require.NoError(t, store.SetSetting(ctx, "theme", "dark"))
		require.NoError(t, store.SetSetting(ctx, "currency", "$"))

		settings, err := store.ListSettings(ctx)
		require.NoError(t, err)
		require.Len(t, settings, 2)
		assert.Equal(t, "currency", settings[0].Key)
		assert.Equal(t, "theme", settings[1].Key)
	})
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.EnsureDefaultCategories(ctx))
	addTestExpense(t, store, "10", "food", "2024-01-05")
	require.NoError(t, store.SetSetting(ctx, model.SettingCurrency, "€"))
	_, err := store.AddCategory(ctx, "Travel", "", "")
	require.NoError(t, err)

	require.NoError(t, store.ResetAll(ctx))

	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	_, err = store.GetSetting(ctx, model.SettingCurrency)
	require.ErrorIs(t, err, common.ErrNotFound)

	// Defaults are re-seeded
	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 8)
}
