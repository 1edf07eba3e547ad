// Package tui implements the interactive outstanding-balance
// dashboard. It mirrors the summary command but lets the user settle
// whole categories in place.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"spendwise/internal/cli"
	"spendwise/internal/model"
	"spendwise/internal/report"
	"spendwise/internal/service"
)

const loadTimeout = 30 * time.Second

// row is one category line on the dashboard.
type row struct {
	Outstanding decimal.Decimal
	CategoryID  string
	Name        string
	Count       int
}

// Model holds the dashboard state.
type Model struct {
	storage    service.Storage
	lastError  error
	currency   string
	status     string
	expenses   []model.Expense
	rows       []row
	keymap     KeyMap
	cursor     int
	width      int
	height     int
	quitting   bool
	loading    bool
}

// NewModel creates a dashboard model backed by the given storage.
func NewModel(storage service.Storage) Model {
	return Model{
		storage:  storage,
		keymap:   DefaultKeyMap(),
		currency: model.DefaultCurrency,
		loading:  true,
	}
}

// Data loading messages.
type dataLoadedMsg struct {
	err        error
	currency   string
	expenses   []model.Expense
	categories []model.Category
}

type settledMsg struct {
	err      error
	category string
	settled  []model.Expense
}

// loadData loads expenses, categories, and the currency setting.
func (m Model) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		expenses, err := m.storage.ListExpenses(ctx)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		categories, err := m.storage.ListCategories(ctx)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		currency, err := m.storage.GetSetting(ctx, model.SettingCurrency)
		if err != nil {
			currency = model.DefaultCurrency
		}

		return dataLoadedMsg{
			expenses:   expenses,
			categories: categories,
			currency:   currency,
		}
	}
}

// settleCategory settles all unpaid expenses in the category up to
// today.
func (m Model) settleCategory(categoryID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		settled, err := m.storage.SettleCategory(ctx, categoryID, model.Today())
		return settledMsg{
			settled:  settled,
			category: categoryID,
			err:      err,
		}
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.loadData())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.expenses = msg.expenses
		m.currency = msg.currency
		m.rows = buildRows(msg.expenses, msg.categories)
		if m.cursor >= len(m.rows) {
			m.cursor = max(0, len(m.rows)-1)
		}

	case settledMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		if len(msg.settled) == 0 {
			m.status = "Nothing to settle"
			return m, nil
		}
		total := report.Sum(msg.settled)
		m.status = fmt.Sprintf("Settled %d expenses (%s)", len(msg.settled), cli.FormatAmount(m.currency, total))
		return m, m.loadData()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keymap.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keymap.Refresh):
			m.status = ""
			return m, m.loadData()
		case key.Matches(msg, m.keymap.Settle):
			if m.cursor < len(m.rows) {
				return m, m.settleCategory(m.rows[m.cursor].CategoryID)
			}
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loading {
		return cli.SubtleStyle.Render("Loading ledger…")
	}

	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render("SpendWise — Outstanding Balance"))
	b.WriteString("\n")

	unpaid := report.SumBy(m.expenses, func(e *model.Expense) bool { return e.Status == model.StatusUnpaid })
	paid := report.SumBy(m.expenses, func(e *model.Expense) bool { return e.Status == model.StatusPaid })
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n\n",
		cli.WarningStyle.Render("Unpaid:"),
		cli.BoldStyle.Render(cli.FormatAmount(m.currency, unpaid)),
		cli.SuccessStyle.Render("Paid:"),
		cli.FormatAmount(m.currency, paid)))

	if len(m.rows) == 0 {
		b.WriteString(cli.SubtleStyle.Render("All settled — no outstanding expenses.") + "\n")
	}

	for i, r := range m.rows {
		cursor := "  "
		line := fmt.Sprintf("%-20s %4d  %12s", r.Name, r.Count, cli.FormatAmount(m.currency, r.Outstanding))
		if i == m.cursor {
			cursor = cli.BoldStyle.Render("> ")
			line = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor).Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n")
	if m.lastError != nil {
		b.WriteString(cli.FormatError(m.lastError.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(cli.FormatSuccess(m.status) + "\n")
	}

	b.WriteString(cli.SubtleStyle.Render("↑/↓ move · s settle up to today · r refresh · q quit"))
	return b.String()
}

// buildRows computes per-category outstanding balances, largest first.
func buildRows(expenses []model.Expense, categories []model.Category) []row {
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	unpaid := report.Apply(expenses, report.Filter{Status: model.StatusUnpaid})
	totals := report.GroupByCategory(unpaid)
	counts := make(map[string]int)
	for i := range unpaid {
		counts[unpaid[i].CategoryID]++
	}

	rows := make([]row, 0, len(totals))
	for id, total := range totals {
		name := names[id]
		if name == "" {
			name = id // dangling reference, show the raw id
		}
		rows = append(rows, row{
			CategoryID:  id,
			Name:        name,
			Outstanding: total,
			Count:       counts[id],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		cmp := rows[i].Outstanding.Cmp(rows[j].Outstanding)
		if cmp != 0 {
			return cmp > 0
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// Run starts the dashboard and blocks until the user quits.
func Run(storage service.Storage) error {
	p := tea.NewProgram(NewModel(storage), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
