package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendwise/internal/model"
)

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func expense(t *testing.T, id, categoryID, date, amt string) model.Expense {
	t.Helper()
	return model.Expense{
		ID:         id,
		CategoryID: categoryID,
		Date:       date,
		Amount:     amount(t, amt),
		Status:     model.StatusUnpaid,
	}
}

func TestSum(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		assert.True(t, Sum(nil).IsZero())
		assert.True(t, Sum([]model.Expense{}).IsZero())
	})

	t.Run("totals all amounts", func(t *testing.T) {
		expenses := []model.Expense{
			expense(t, "a", "food", "2024-01-05", "10.25"),
			expense(t, "b", "rent", "2024-01-06", "0.75"),
		}
		assert.True(t, Sum(expenses).Equal(amount(t, "11")))
	})
}

func TestGroupByCategory(t *testing.T) {
	expenses := []model.Expense{
		expense(t, "a", "food", "2024-01-05", "10"),
		expense(t, "b", "food", "2024-01-06", "5"),
		expense(t, "c", "rent", "2024-01-07", "800"),
		expense(t, "d", "gone", "2024-01-08", "3"),
		expense(t, "e", "food", "2024-01-09", "2"),
	}

	totals := GroupByCategory(expenses)
	require.Len(t, totals, 3)
	assert.True(t, totals["food"].Equal(amount(t, "17")))
	assert.True(t, totals["rent"].Equal(amount(t, "800")))
	// A deleted category's id still carries its total
	assert.True(t, totals["gone"].Equal(amount(t, "3")))

	// Per-category totals account for every expense
	grand := decimal.Zero
	for _, total := range totals {
		grand = grand.Add(total)
	}
	assert.True(t, grand.Equal(Sum(expenses)))
}

func TestGroupByDate(t *testing.T) {
	expenses := []model.Expense{
		expense(t, "a", "food", "2024-01-05", "10"),
		expense(t, "b", "rent", "2024-01-10", "20"),
		expense(t, "c", "food", "2024-01-05", "30"),
	}

	groups := GroupByDate(expenses)
	require.Len(t, groups, 2)

	assert.Equal(t, "2024-01-10", groups[0].Date)
	assert.Equal(t, "2024-01-05", groups[1].Date)

	// Same-day expenses keep input order
	require.Len(t, groups[1].Expenses, 2)
	assert.Equal(t, "a", groups[1].Expenses[0].ID)
	assert.Equal(t, "c", groups[1].Expenses[1].ID)
}

func TestDailyTotals(t *testing.T) {
	t.Run("zero-fills the window oldest first", func(t *testing.T) {
		expenses := []model.Expense{
			expense(t, "a", "food", "2024-01-10", "10"),
			expense(t, "b", "food", "2024-01-10", "5"),
			expense(t, "c", "rent", "2024-01-08", "20"),
			expense(t, "d", "food", "2024-01-01", "99"), // outside the window
		}

		totals, err := DailyTotals(expenses, "2024-01-10", 7)
		require.NoError(t, err)
		require.Len(t, totals, 7)

		assert.Equal(t, "2024-01-04", totals[0].Date)
		assert.Equal(t, "2024-01-10", totals[6].Date)

		assert.True(t, totals[6].Total.Equal(amount(t, "15")))
		assert.True(t, totals[4].Total.Equal(amount(t, "20")))
		for _, i := range []int{0, 1, 2, 3, 5} {
			assert.True(t, totals[i].Total.IsZero(), "day %s should be zero", totals[i].Date)
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := DailyTotals(nil, "not-a-date", 7)
		require.Error(t, err)

		_, err = DailyTotals(nil, "2024-01-10", 0)
		require.Error(t, err)
	})
}

func TestFilter(t *testing.T) {
	expenses := []model.Expense{
		{ID: "a", CategoryID: "food", Date: "2024-01-05", Amount: amount(t, "10"), Status: model.StatusUnpaid},
		{ID: "b", CategoryID: "food", Date: "2024-01-10", Amount: amount(t, "20"), Status: model.StatusPaid, PaidDate: "2024-01-11"},
		{ID: "c", CategoryID: "rent", Date: "2024-01-10", Amount: amount(t, "30"), Status: model.StatusUnpaid},
		{ID: "d", CategoryID: "food", Date: "2024-01-15", Amount: amount(t, "40"), Status: model.StatusUnpaid},
	}

	ids := func(matched []model.Expense) []string {
		var out []string
		for _, e := range matched {
			out = append(out, e.ID)
		}
		return out
	}

	t.Run("zero filter matches everything", func(t *testing.T) {
		assert.Len(t, Apply(expenses, Filter{}), 4)
	})

	t.Run("by status", func(t *testing.T) {
		assert.Equal(t, []string{"a", "c", "d"}, ids(Apply(expenses, Filter{Status: model.StatusUnpaid})))
	})

	t.Run("by category", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "d"}, ids(Apply(expenses, Filter{CategoryID: "food"})))
	})

	t.Run("date bounds are inclusive", func(t *testing.T) {
		matched := Apply(expenses, Filter{From: "2024-01-10", To: "2024-01-15"})
		assert.Equal(t, []string{"b", "c", "d"}, ids(matched))
	})

	t.Run("criteria combine as AND", func(t *testing.T) {
		f := Filter{Status: model.StatusUnpaid, CategoryID: "food", To: "2024-01-10"}
		assert.Equal(t, []string{"a"}, ids(Apply(expenses, f)))
	})

	t.Run("input survives untouched", func(t *testing.T) {
		before := make([]model.Expense, len(expenses))
		copy(before, expenses)
		_ = Apply(expenses, Filter{CategoryID: "rent"})
		assert.Equal(t, before, expenses)
	})
}

func TestSortByDate(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		{ID: "a", Date: "2024-01-10", CreatedAt: base, Amount: amount(t, "1")},
		{ID: "b", Date: "2024-01-05", CreatedAt: base.Add(time.Minute), Amount: amount(t, "2")},
		{ID: "c", Date: "2024-01-10", CreatedAt: base.Add(2 * time.Minute), Amount: amount(t, "3")},
	}

	descending := SortByDate(expenses, false)
	assert.Equal(t, "c", descending[0].ID)
	assert.Equal(t, "a", descending[1].ID)
	assert.Equal(t, "b", descending[2].ID)

	ascending := SortByDate(expenses, true)
	assert.Equal(t, "b", ascending[0].ID)
	assert.Equal(t, "a", ascending[1].ID)
	assert.Equal(t, "c", ascending[2].ID)

	// Input order is preserved
	assert.Equal(t, "a", expenses[0].ID)
	assert.Equal(t, "b", expenses[1].ID)
	assert.Equal(t, "c", expenses[2].ID)
}

func TestSortByAmount(t *testing.T) {
	expenses := []model.Expense{
		expense(t, "a", "food", "2024-01-05", "20"),
		expense(t, "b", "food", "2024-01-06", "10"),
		expense(t, "c", "food", "2024-01-07", "20"),
	}

	descending := SortByAmount(expenses, false)
	// Equal amounts keep input order
	assert.Equal(t, "a", descending[0].ID)
	assert.Equal(t, "c", descending[1].ID)
	assert.Equal(t, "b", descending[2].ID)

	ascending := SortByAmount(expenses, true)
	assert.Equal(t, "b", ascending[0].ID)
	assert.Equal(t, "a", ascending[1].ID)
	assert.Equal(t, "c", ascending[2].ID)
}
