package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendwise/internal/model"
)

func TestSettleCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("settles only matching unpaid expenses up to the cutoff", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		a := addTestExpense(t, store, "10", "food", "2024-01-05")
		b := addTestExpense(t, store, "20", "food", "2024-01-10")
		c := addTestExpense(t, store, "30", "food", "2024-01-15")
		d := addTestExpense(t, store, "40", "rent", "2024-01-05")

		settled, err := store.SettleCategory(ctx, "food", "2024-01-10")
		require.NoError(t, err)
		require.Len(t, settled, 2)

		// Oldest first
		assert.Equal(t, a.ID, settled[0].ID)
		assert.Equal(t, b.ID, settled[1].ID)
		for _, e := range settled {
			assert.Equal(t, model.StatusPaid, e.Status)
			assert.Equal(t, "2024-01-10", e.PaidDate)
		}

		// After the cutoff and other categories stay untouched
		later, err := store.GetExpenseByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusUnpaid, later.Status)
		assert.Empty(t, later.PaidDate)

		other, err := store.GetExpenseByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusUnpaid, other.Status)

		// Changes persisted
		first, err := store.GetExpenseByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPaid, first.Status)
		assert.Equal(t, "2024-01-10", first.PaidDate)
	})

	t.Run("second run finds nothing left to settle", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		addTestExpense(t, store, "10", "food", "2024-01-05")

		settled, err := store.SettleCategory(ctx, "food", "2024-01-10")
		require.NoError(t, err)
		require.Len(t, settled, 1)

		settled, err = store.SettleCategory(ctx, "food", "2024-01-10")
		require.NoError(t, err)
		assert.Empty(t, settled)
	})

	t.Run("unknown category is a no-op", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		addTestExpense(t, store, "10", "food", "2024-01-05")

		settled, err := store.SettleCategory(ctx, "no-such-category", "2024-01-10")
		require.NoError(t, err)
		assert.NotNil(t, settled)
		assert.Empty(t, settled)
	})

	t.Run("expense dated exactly at the cutoff is included", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		onCutoff := addTestExpense(t, store, "10", "food", "2024-01-10")

		settled, err := store.SettleCategory(ctx, "food", "2024-01-10")
		require.NoError(t, err)
		require.Len(t, settled, 1)
		assert.Equal(t, onCutoff.ID, settled[0].ID)
	})

	t.Run("already paid expenses are skipped", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		addTestExpense(t, store, "10", "food", "2024-01-05")
		second := addTestExpense(t, store, "20", "food", "2024-01-06")

		_, err := store.SettleCategory(ctx, "food", "2024-01-05")
		require.NoError(t, err)

		settled, err := store.SettleCategory(ctx, "food", "2024-01-31")
		require.NoError(t, err)
		require.Len(t, settled, 1)
		assert.Equal(t, second.ID, settled[0].ID)
		assert.Equal(t, "2024-01-31", settled[0].PaidDate)
	})
}
