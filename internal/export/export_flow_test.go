package export_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendwise/internal/export"
	"spendwise/internal/testutil"
)

// Exercises the whole flow a user hits when exporting a settled
// ledger: record expenses, settle a category, export to CSV.
func TestExportAfterSettlement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	db.MustAddExpense("12.50", "food", "2024-01-05", "lunch")
	db.MustAddExpense("30", "food", "2024-01-20", "dinner")
	db.MustAddExpense("800", "rent", "2024-01-01", "")

	settled, err := db.Storage.SettleCategory(ctx, "food", "2024-01-10")
	require.NoError(t, err)
	require.Len(t, settled, 1)

	expenses := db.MustListExpenses()
	require.Len(t, expenses, 3)

	categories, err := db.Storage.ListCategories(ctx)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, export.WriteCSV(&buf, expenses, categories, "$"))
	out := buf.String()

	assert.Contains(t, out, "2024-01-05,Food,12.50,paid,2024-01-10,lunch")
	assert.Contains(t, out, "2024-01-20,Food,30.00,unpaid,,")
	assert.Contains(t, out, "2024-01-01,Rent,800.00,unpaid,,")
	assert.Contains(t, out, "Total Records,3")
	assert.Contains(t, out, "Unpaid,$830.00")
	assert.Contains(t, out, "Paid,$12.50")
}

// Round-trips records through the import parser and back into the
// store, mirroring what the import command does.
func TestImportedRecordsLand(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	input := "Date,Category,Amount,Notes\n" +
		"2024-02-01,grocery,45.20,weekly shop\n" +
		"2024-02-03,transport,2.75\n"

	records, err := export.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, record := range records {
		_, err := db.Storage.AddExpense(ctx, record.Amount, record.CategoryID, record.Date, record.Note)
		require.NoError(t, err)
	}

	expenses := db.MustListExpenses()
	require.Len(t, expenses, 2)
	assert.Equal(t, "transport", expenses[0].CategoryID)
	assert.Equal(t, "grocery", expenses[1].CategoryID)
	assert.Equal(t, "weekly shop", expenses[1].Note)
}
