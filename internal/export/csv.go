// Package export reads and writes expense records as CSV. The CSV
// layout mirrors the report the app has always produced: a record
// table followed by a summary block with paid/unpaid breakdowns.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"spendwise/internal/model"
	"spendwise/internal/report"
)

var header = []string{"Date", "Category", "Amount", "Status", "Paid Date", "Notes"}

// WriteCSV writes expenses as CSV records followed by a summary block.
// Category ids are resolved to names where possible; dangling
// references keep the raw id, matching how the list views render them.
func WriteCSV(w io.Writer, expenses []model.Expense, categories []model.Category, currency string) error {
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range expenses {
		e := &expenses[i]
		name := names[e.CategoryID]
		if name == "" {
			name = e.CategoryID
		}
		record := []string{
			e.Date,
			name,
			e.Amount.StringFixed(2),
			string(e.Status),
			e.PaidDate,
			e.Note,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write expense %s: %w", e.ID, err)
		}
	}

	paid := report.SumBy(expenses, func(e *model.Expense) bool { return e.Status == model.StatusPaid })
	unpaid := report.SumBy(expenses, func(e *model.Expense) bool { return e.Status == model.StatusUnpaid })

	summary := [][]string{
		{},
		{"Total Records", strconv.Itoa(len(expenses))},
		{"Total Amount", currency + report.Sum(expenses).StringFixed(2)},
		{"Paid", currency + paid.StringFixed(2)},
		{"Unpaid", currency + unpaid.StringFixed(2)},
	}
	for _, record := range summary {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Record is a single expense row parsed from an import file.
type Record struct {
	Amount     decimal.Decimal
	CategoryID string
	Date       string
	Note       string
}

// ReadCSV parses an import file of expense rows. The expected columns
// are date, category id, amount, and an optional note; a leading
// header row is skipped when detected.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var records []Record
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line++

		if len(row) < 3 {
			return nil, fmt.Errorf("line %d: expected at least 3 columns, got %d", line, len(row))
		}

		// Header row
		if line == 1 && !model.ValidDate(row[0]) {
			continue
		}

		if !model.ValidDate(row[0]) {
			return nil, fmt.Errorf("line %d: invalid date %q", line, row[0])
		}
		amount, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q: %w", line, row[2], err)
		}

		record := Record{
			Date:       row[0],
			CategoryID: row[1],
			Amount:     amount,
		}
		if len(row) > 3 {
			record.Note = row[3]
		}
		records = append(records, record)
	}

	return records, nil
}
