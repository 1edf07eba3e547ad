package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendwise/internal/common"
)

func TestEnsureDefaultCategories(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.EnsureDefaultCategories(ctx))

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 8)

	// Seeding again must not duplicate
	require.NoError(t, store.EnsureDefaultCategories(ctx))
	categories, err = store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 8)

	food, err := store.GetCategoryByID(ctx, "food")
	require.NoError(t, err)
	assert.Equal(t, "Food", food.Name)
	assert.Equal(t, "fa-utensils", food.Icon)
}

func TestAddCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("trims name and applies defaults", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		category, err := store.AddCategory(ctx, "  Travel  ", "", "")
		require.NoError(t, err)

		assert.NotEmpty(t, category.ID)
		assert.Equal(t, "Travel", category.Name)
		assert.Equal(t, defaultCategoryIcon, category.Icon)
		assert.Equal(t, defaultCategoryColor, category.Color)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.AddCategory(ctx, "   ", "", "")
		require.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("rejects overly long name", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.AddCategory(ctx, strings.Repeat("a", 21), "", "")
		require.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("accepts name at the length limit", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		category, err := store.AddCategory(ctx, strings.Repeat("a", 20), "", "")
		require.NoError(t, err)
		assert.Len(t, category.Name, 20)
	})
}

func TestListCategoriesSortedByName(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.AddCategory(ctx, "Zoo", "", "")
	require.NoError(t, err)
	_, err = store.AddCategory(ctx, "Books", "", "")
	require.NoError(t, err)
	_, err = store.AddCategory(ctx, "Music", "", "")
	require.NoError(t, err)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)

	assert.Equal(t, "Books", categories[0].Name)
	assert.Equal(t, "Music", categories[1].Name)
	assert.Equal(t, "Zoo", categories[2].Name)
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("renames and restyles", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		category, err := store.AddCategory(ctx, "Pets", "", "")
		require.NoError(t, err)

		category.Name = "Animals"
		category.Color = "#ff0000"
		updated, err := store.UpdateCategory(ctx, category)
		require.NoError(t, err)

		assert.Equal(t, category.ID, updated.ID)
		assert.Equal(t, "Animals", updated.Name)
		assert.Equal(t, "#ff0000", updated.Color)
	})

	t.Run("unknown id", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		category, err := store.AddCategory(ctx, "Pets", "", "")
		require.NoError(t, err)
		category.ID = "no-such-id"
		_, err = store.UpdateCategory(ctx, category)
		require.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("expenses keep the removed category id", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		category, err := store.AddCategory(ctx, "Gadgets", "", "")
		require.NoError(t, err)

		expense, err := store.AddExpense(ctx, mustAmount(t, "99.99"), category.ID, "2024-04-01", "")
		require.NoError(t, err)

		require.NoError(t, store.DeleteCategory(ctx, category.ID))

		_, err = store.GetCategoryByID(ctx, category.ID)
		require.ErrorIs(t, err, common.ErrNotFound)

		retrieved, err := store.GetExpenseByID(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, category.ID, retrieved.CategoryID)
	})

	t.Run("unknown id", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		err := store.DeleteCategory(ctx, "no-such-id")
		require.ErrorIs(t, err, common.ErrNotFound)
	})
}
