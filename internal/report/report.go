// Package report computes aggregations over expense collections.
//
// Every function here is pure: input slices are never mutated (sorts
// operate on copies), and the same input always produces the same
// output. The presentation layer feeds these functions whatever
// expense collection it currently holds; there is no store access.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/model"
)

// DefaultWindowDays is the trailing window used by the dashboard's
// daily spending chart.
const DefaultWindowDays = 7

// DailyTotal is the spending total for a single calendar day.
type DailyTotal struct {
	Date  string
	Total decimal.Decimal
}

// DateGroup is the set of expenses sharing one calendar date.
type DateGroup struct {
	Date     string
	Expenses []model.Expense
}

// Sum returns the total amount over all expenses. The sum of an empty
// collection is zero.
func Sum(expenses []model.Expense) decimal.Decimal {
	return SumBy(expenses, func(*model.Expense) bool { return true })
}

// SumBy returns the total amount over expenses matching the predicate.
func SumBy(expenses []model.Expense, predicate func(*model.Expense) bool) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		if predicate(&expenses[i]) {
			total = total.Add(expenses[i].Amount)
		}
	}
	return total
}

// GroupByCategory returns the total amount per category id. Dangling
// references (a deleted category) still appear, keyed by the raw id.
func GroupByCategory(expenses []model.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		totals[e.CategoryID] = totals[e.CategoryID].Add(e.Amount)
	}
	return totals
}

// GroupByDate groups expenses by calendar date, newest date first.
// Within a group, expenses keep their input order.
func GroupByDate(expenses []model.Expense) []DateGroup {
	byDate := make(map[string][]model.Expense)
	for i := range expenses {
		byDate[expenses[i].Date] = append(byDate[expenses[i].Date], expenses[i])
	}

	groups := make([]DateGroup, 0, len(byDate))
	for date, group := range byDate {
		groups = append(groups, DateGroup{Date: date, Expenses: group})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups
}

// DailyTotals returns per-day totals for windowDays consecutive
// calendar days ending at referenceDate inclusive, oldest day first.
// Days with no expenses report a zero total.
func DailyTotals(expenses []model.Expense, referenceDate string, windowDays int) ([]DailyTotal, error) {
	ref, err := time.Parse(model.DateLayout, referenceDate)
	if err != nil {
		return nil, fmt.Errorf("invalid reference date %q: %w", referenceDate, err)
	}
	if windowDays <= 0 {
		return nil, fmt.Errorf("window must be positive, got %d", windowDays)
	}

	byDate := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		byDate[e.Date] = byDate[e.Date].Add(e.Amount)
	}

	totals := make([]DailyTotal, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		date := ref.AddDate(0, 0, -i).Format(model.DateLayout)
		totals = append(totals, DailyTotal{Date: date, Total: byDate[date]})
	}
	return totals, nil
}
