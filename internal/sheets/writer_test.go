package sheets

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
)

func testTransactions() []model.Transaction {
	return []model.Transaction{
		{
			ID:       "t1",
			Date:     model.NewDate(2024, 3, 10),
			Title:    "Groceries",
			Category: "Food",
			Amount:   decimal.RequireFromString("200"),
			Note:     "weekly shop",
		},
		{
			ID:       "t2",
			Date:     model.NewDate(2024, 3, 1),
			Title:    "Paycheck",
			Category: "Salary",
			Amount:   decimal.RequireFromString("1000"),
			IsIncome: true,
		},
		{
			ID:       "t3",
			Date:     model.NewDate(2024, 3, 15),
			Title:    "Bus pass",
			Category: "Transport",
			Amount:   decimal.RequireFromString("50.5"),
		},
	}
}

func TestPrepareReportData(t *testing.T) {
	layout := prepareReportData(testTransactions())
	values := layout.values

	require.Len(t, values, 19)
	assert.Equal(t, []any{"Tally Report", "Mar 1, 2024 - Mar 15, 2024"}, values[0])

	assert.Equal(t, 3, layout.summaryStart)
	assert.Equal(t, 6, layout.summaryEnd)
	assert.Equal(t, []any{"Total Income", "1000.00"}, values[3])
	assert.Equal(t, []any{"Total Expense", "250.50"}, values[4])
	assert.Equal(t, []any{"Net Balance", "749.50"}, values[5])
	assert.Equal(t, []any{"Transactions", 3}, values[6])

	// Categories ordered by expense, largest first.
	assert.Equal(t, []any{"Category", "Count", "Income", "Expense"}, values[9])
	assert.Equal(t, "Food", values[10][0])
	assert.Equal(t, "Transport", values[11][0])
	assert.Equal(t, []any{"Salary", 1, "1000.00", "0.00"}, values[12])

	assert.Equal(t, []any{"Date", "Title", "Type", "Category", "Amount", "Note"}, values[15])
	assert.Equal(t, 16, layout.detailsStart)
	assert.Equal(t, []any{"2024-03-10", "Groceries", "Expense", "Food", "200.00", "weekly shop"}, values[16])
	assert.Equal(t, []any{"2024-03-01", "Paycheck", "Income", "Salary", "1000.00", ""}, values[17])
}

func TestPrepareReportData_Empty(t *testing.T) {
	layout := prepareReportData(nil)

	assert.Equal(t, []any{"Tally Report", "No transactions"}, layout.values[0])
	assert.Equal(t, []any{"Transactions", 0}, layout.values[6])
	assert.Equal(t, len(layout.values), layout.detailsStart)
}

func TestCurrencyPattern(t *testing.T) {
	assert.Equal(t, `"$"#,##0.00`, currencyPattern("$"))
	assert.Equal(t, `"Rs"#,##0.00`, currencyPattern("Rs "))
	assert.Equal(t, `"€"#,##0.00`, currencyPattern("€"))
	assert.Equal(t, `"$"#,##0.00`, currencyPattern(""))
}

func TestFormattingRequests(t *testing.T) {
	layout := prepareReportData(testTransactions())
	requests := formattingRequests(42, "£", layout)

	require.Len(t, requests, 4)
	for _, r := range requests[:3] {
		require.NotNil(t, r.RepeatCell)
		assert.Equal(t, int64(42), r.RepeatCell.Range.SheetId)
	}

	summary := requests[1].RepeatCell
	assert.Equal(t, int64(3), summary.Range.StartRowIndex)
	assert.Equal(t, int64(6), summary.Range.EndRowIndex)
	assert.Equal(t, `"£"#,##0.00`, summary.Cell.UserEnteredFormat.NumberFormat.Pattern)

	amounts := requests[2].RepeatCell
	assert.Equal(t, int64(16), amounts.Range.StartRowIndex)
	assert.Equal(t, int64(19), amounts.Range.EndRowIndex)
	assert.Equal(t, int64(4), amounts.Range.StartColumnIndex)

	require.NotNil(t, requests[3].AutoResizeDimensions)
	assert.Equal(t, int64(6), requests[3].AutoResizeDimensions.Dimensions.EndIndex)
}

func TestWriter_SheetRange(t *testing.T) {
	w := &Writer{config: Config{SheetTitle: "Bob's Money"}}
	assert.Equal(t, "'Bob''s Money'!A:Z", w.sheetRange("A:Z"))
}

func TestNewWriter_InvalidConfig(t *testing.T) {
	_, err := NewWriter(context.Background(), Config{}, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestMockWriter(t *testing.T) {
	m := NewMockWriter()
	ctx := context.Background()
	txns := testTransactions()

	require.NoError(t, m.Write(ctx, "$", txns))
	m.AssertWriteCalled(t, 1)
	assert.Equal(t, "$", m.LastSymbol)
	assert.Len(t, m.LastTransactions, 3)

	boom := errors.New("quota exceeded")
	m.SetWriteError(boom)
	assert.ErrorIs(t, m.Write(ctx, "€", nil), boom)

	calls := m.GetWriteCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "€", calls[1].Symbol)
	assert.ErrorIs(t, calls[1].Error, boom)

	m.Reset()
	m.AssertWriteCalled(t, 0)
	assert.Empty(t, m.GetWriteCalls())
}
