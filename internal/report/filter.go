package report

import (
	"sort"

	"spendwise/internal/model"
)

// Filter selects a subset of an expense collection. Zero-valued fields
// are inactive; active fields combine as a logical AND, so the order
// in which they are set does not matter.
type Filter struct {
	Status     model.ExpenseStatus // "" matches any status
	CategoryID string              // "" matches any category
	From       string              // inclusive lower date bound, "" for none
	To         string              // inclusive upper date bound, "" for none
}

// Match reports whether the expense passes every active criterion.
func (f Filter) Match(e *model.Expense) bool {
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.CategoryID != "" && e.CategoryID != f.CategoryID {
		return false
	}
	if f.From != "" && e.Date < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}
	return true
}

// Apply returns the expenses matching the filter, preserving order.
// The input slice is never modified.
func Apply(expenses []model.Expense, f Filter) []model.Expense {
	var matched []model.Expense
	for i := range expenses {
		if f.Match(&expenses[i]) {
			matched = append(matched, expenses[i])
		}
	}
	return matched
}

// SortByDate returns a copy sorted by date, tie-broken by creation
// time in the same direction.
func SortByDate(expenses []model.Expense, ascending bool) []model.Expense {
	sorted := make([]model.Expense, len(expenses))
	copy(sorted, expenses)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if a.Date != b.Date {
			if ascending {
				return a.Date < b.Date
			}
			return a.Date > b.Date
		}
		if ascending {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return sorted
}

// SortByAmount returns a copy sorted by amount. Equal amounts keep
// their original relative order.
func SortByAmount(expenses []model.Expense, ascending bool) []model.Expense {
	sorted := make([]model.Expense, len(expenses))
	copy(sorted, expenses)

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := sorted[i].Amount.Cmp(sorted[j].Amount)
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return sorted
}
