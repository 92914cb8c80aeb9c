package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/store"
)

type fakeSource struct {
	*store.TransactionStore
	ledger model.Ledger
}

func (f fakeSource) Daily(d time.Time) []model.Transaction { return f.ByDate(d) }
func (f fakeSource) Weekly(d time.Time) []model.Transaction { return f.ByWeek(d) }
func (f fakeSource) Monthly(ym model.YearMonth) []model.Transaction { return f.ByMonth(ym) }
func (f fakeSource) Ledger() model.Ledger { return f.ledger }

func newSource(t *testing.T) fakeSource {
	t.Helper()
	s := store.New()
	for _, txn := range []model.Transaction{
		{ID: "a", Date: model.NewDate(2024, 5, 6), Title: "Pizza", Category: "Food", Amount: decimal.RequireFromString("12.5")},
		{ID: "b", Date: model.NewDate(2024, 5, 8), Title: "Paycheck", Category: "Salary", Amount: decimal.RequireFromString("2000"), IsIncome: true},
		{ID: "c", Date: model.NewDate(2024, 5, 20), Title: "Bus", Category: "Transportation", Amount: decimal.RequireFromString("3")},
		{ID: "d", Date: model.NewDate(2024, 4, 30), Title: "Rent", Category: "Bills and Fees", Amount: decimal.RequireFromString("900")},
	} {
		_, err := s.Add(txn)
		require.NoError(t, err)
	}
	return fakeSource{TransactionStore: s, ledger: model.NewLedger().WithCurrency("EUR")}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModel_StartsOnMonth(t *testing.T) {
	m := New(newSource(t), model.NewDate(2024, 5, 8))

	assert.Equal(t, PeriodMonth, m.Period())
	assert.Equal(t, "Month 2024-05", m.Title())
	assert.Len(t, m.Transactions(), 3)

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", sel.ID)
}

func TestModel_SwitchPeriods(t *testing.T) {
	m := New(newSource(t), model.NewDate(2024, 5, 8))

	m = press(t, m, runes("d"))
	assert.Equal(t, PeriodDay, m.Period())
	assert.Equal(t, "Day 08/05/2024", m.Title())
	require.Len(t, m.Transactions(), 1)
	assert.Equal(t, "b", m.Transactions()[0].ID)

	m = press(t, m, runes("w"))
	assert.Equal(t, "Week 06/05/2024 - 12/05/2024", m.Title())
	assert.Len(t, m.Transactions(), 2)

	m = press(t, m, runes("a"))
	assert.Equal(t, "All transactions", m.Title())
	assert.Len(t, m.Transactions(), 4)
	assert.Equal(t, "d", m.Transactions()[0].ID)
}

func TestModel_ShiftPeriods(t *testing.T) {
	m := New(newSource(t), model.NewDate(2024, 5, 8))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "Month 2024-04", m.Title())
	require.Len(t, m.Transactions(), 1)
	assert.Equal(t, "d", m.Transactions()[0].ID)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "Month 2024-06", m.Title())
	assert.Empty(t, m.Transactions())

	m = press(t, m, runes("w"), runes("h"))
	assert.True(t, m.Anchor().Equal(model.NewDate(2024, 5, 25)))

	m = press(t, m, runes("a"), runes("l"))
	assert.True(t, m.Anchor().Equal(model.NewDate(2024, 5, 25)), "all ignores shifting")
}

func TestModel_NavigateAndDetail(t *testing.T) {
	m := New(newSource(t), model.NewDate(2024, 5, 8))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", sel.ID)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	assert.Contains(t, view, "ID:       b")
	assert.Contains(t, view, "+€2000.00")
	assert.Contains(t, view, "No note")

	// Period keys are ignored while the detail is open.
	m = press(t, m, runes("d"))
	assert.Equal(t, PeriodMonth, m.Period())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "ID:       b")
}

func TestModel_ViewSummary(t *testing.T) {
	m := New(newSource(t), model.NewDate(2024, 5, 8))
	view := m.View()

	assert.Contains(t, view, "Month 2024-05")
	assert.Contains(t, view, "Pizza")
	assert.Contains(t, view, "3 transactions")
	assert.Contains(t, view, "Income +€2000.00")
	assert.Contains(t, view, "Expense -€15.50")
	assert.Contains(t, view, "Net €1984.50")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, m.View(), "No transactions found.")
}

func TestModel_Quit(t *testing.T) {
	m := New(newSource(t), model.NewDate(2024, 5, 8))

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestModel_WindowResize(t *testing.T) {
	m := New(newSource(t), model.NewDate(2024, 5, 8))
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	cols := m.table.Columns()
	require.Len(t, cols, 5)
	assert.Equal(t, 10, cols[0].Width)
}
