package export

import (
	"strings"
	"testing"

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

func TestWriteCSV(t *testing.T) {
	categories := []model.Category{
		{ID: "food", Name: "Food"},
		{ID: "rent", Name: "Rent"},
	}
	expenses := []model.Expense{
		{ID: "a", CategoryID: "food", Date: "2024-01-10", Amount: amount(t, "12.5"), Status: model.StatusPaid, PaidDate: "2024-01-11", Note: "lunch"},
		{ID: "b", CategoryID: "rent", Date: "2024-01-05", Amount: amount(t, "800"), Status: model.StatusUnpaid},
		{ID: "c", CategoryID: "gone", Date: "2024-01-06", Amount: amount(t, "3"), Status: model.StatusUnpaid},
	}

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, expenses, categories, "$"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 9)

	assert.Equal(t, "Date,Category,Amount,Status,Paid Date,Notes", lines[0])
	assert.Equal(t, "2024-01-10,Food,12.50,paid,2024-01-11,lunch", lines[1])
	assert.Equal(t, "2024-01-05,Rent,800.00,unpaid,,", lines[2])
	// Deleted category falls back to the raw id
	assert.Equal(t, "2024-01-06,gone,3.00,unpaid,,", lines[3])

	assert.Equal(t, "", lines[4])
	assert.Equal(t, "Total Records,3", lines[5])
	assert.Equal(t, "Total Amount,$815.50", lines[6])
	assert.Equal(t, "Paid,$12.50", lines[7])
	assert.Equal(t, "Unpaid,$803.00", lines[8])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, nil, nil, "$"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Total Records,0", lines[2])
	assert.Equal(t, "Total Amount,$0.00", lines[3])
}

func TestReadCSV(t *testing.T) {
	t.Run("skips a header row", func(t *testing.T) {
		input := "Date,Category,Amount,Notes\n" +
			"2024-01-10,food,12.50,lunch\n" +
			"2024-01-05,rent,800\n"

		records, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "2024-01-10", records[0].Date)
		assert.Equal(t, "food", records[0].CategoryID)
		assert.True(t, records[0].Amount.Equal(amount(t, "12.50")))
		assert.Equal(t, "lunch", records[0].Note)

		assert.Equal(t, "2024-01-05", records[1].Date)
		assert.Empty(t, records[1].Note)
	})

	t.Run("headerless input", func(t *testing.T) {
		records, err := ReadCSV(strings.NewReader("2024-01-10,food,12.50\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("invalid date past the first line", func(t *testing.T) {
		input := "2024-01-10,food,12.50\nnot-a-date,food,1\n"
		_, err := ReadCSV(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("2024-01-10,food,abc\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid amount")
	})

	t.Run("too few columns", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("2024-01-10,food\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "columns")
	})

	t.Run("empty input", func(t *testing.T) {
		records, err := ReadCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
