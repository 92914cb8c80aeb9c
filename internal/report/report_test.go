package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
)

func txn(date, title, category, amount, note string, isIncome bool) model.Transaction {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return model.Transaction{
		ID:       title,
		Date:     d,
		Title:    title,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Note:     note,
		IsIncome: isIncome,
	}
}

func sample() []model.Transaction {
	return []model.Transaction{
		txn("2024-03-05", "Salary", "Salary", "1000", "March pay", true),
		txn("2024-03-06", "Coffee", "Food", "4.5", "", false),
		txn("2024-03-07", "Rent, March", "Housing", "450.25", `landlord "Bob"`, false),
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "1000.00", s.TotalIncome.StringFixed(2))
	assert.Equal(t, "454.75", s.TotalExpense.StringFixed(2))
	assert.Equal(t, "545.25", s.Net.StringFixed(2))
	assert.Equal(t, []string{"Housing", "Food", "Salary"}, s.Categories())

	empty := Summarize(nil)
	assert.True(t, empty.TotalIncome.IsZero())
	assert.True(t, empty.TotalExpense.IsZero())
	assert.True(t, empty.Net.IsZero())
}

func TestWriteCSV(t *testing.T) {
	f := NewFormatter("$")
	out := f.CSV(sample()[:2])

	want := "Date,Title,Type,Category,Amount,Note\n" +
		"2024-03-05,Salary,Income,Salary,1000.00,March pay\n" +
		"2024-03-06,Coffee,Expense,Food,4.50,\n"
	assert.Equal(t, want, out)
}

func TestCSVRoundTrip(t *testing.T) {
	f := NewFormatter("€")
	in := sample()

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf, in))

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, out, len(in))

	for i := range in {
		assert.True(t, in[i].Date.Equal(out[i].Date))
		assert.Equal(t, in[i].Title, out[i].Title)
		assert.Equal(t, in[i].IsIncome, out[i].IsIncome)
		assert.Equal(t, in[i].Category, out[i].Category)
		assert.Equal(t, in[i].Amount.StringFixed(2), out[i].Amount.StringFixed(2))
		assert.Equal(t, in[i].Note, out[i].Note)
	}
}

func TestReadCSVRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "wrong header", input: "a,b,c,d,e,f\n"},
		{name: "bad type", input: "Date,Title,Type,Category,Amount,Note\n2024-01-01,x,Gift,Food,1.00,\n"},
		{name: "bad amount", input: "Date,Title,Type,Category,Amount,Note\n2024-01-01,x,Expense,Food,abc,\n"},
		{name: "bad date", input: "Date,Title,Type,Category,Amount,Note\n01/01/2024,x,Expense,Food,1.00,\n"},
		{name: "short row", input: "Date,Title,Type,Category,Amount,Note\n2024-01-01,x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrInvalidCSV)
		})
	}
}

func TestLine(t *testing.T) {
	f := NewFormatter("£")

	assert.Equal(t, "06/03/2024 | Coffee | Food | £4.50 | No note", f.Line(sample()[1]))
	assert.Equal(t, "05/03/2024 | Salary | Salary | £1000.00 | March pay", f.Line(sample()[0]))
}

func TestText(t *testing.T) {
	f := NewFormatter("$")
	out := f.Text(sample()[:2])

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, reportRule, lines[0])
	assert.Equal(t, reportBanner, lines[1])
	assert.Equal(t, "05/03/2024 | Salary | Salary | $1000.00 | March pay", lines[4])
	assert.Equal(t, "06/03/2024 | Coffee | Food | $4.50 | No note", lines[5])
	assert.Equal(t, "Total Income:  $1000.00", lines[8])
	assert.Equal(t, "Total Expense: $4.50", lines[9])
	assert.Equal(t, "Net Balance:   $995.50", lines[10])
}

func TestTextScenario(t *testing.T) {
	day := model.NewDate(2024, time.January, 10)
	list := []model.Transaction{
		{Date: day, Title: "Salary", Category: "Salary", Amount: decimal.RequireFromString("1000"), IsIncome: true},
		{Date: day, Title: "Lunch", Category: "Food", Amount: decimal.RequireFromString("200")},
	}

	out := NewFormatter("$").Text(list)
	assert.Contains(t, out, "Total Income:  $1000.00")
	assert.Contains(t, out, "Total Expense: $200.00")
	assert.Contains(t, out, "Net Balance:   $800.00")
}

func TestPeriod(t *testing.T) {
	f := NewFormatter("$")

	empty := f.Period("Daily Report - 2024-03-05", nil)
	assert.Contains(t, empty, "Daily Report - 2024-03-05")
	assert.Contains(t, empty, noResults)
	assert.NotContains(t, empty, "--- Summary ---")

	full := f.Period("March 2024", sample())
	assert.Contains(t, full, "--- Summary ---")
	assert.Contains(t, full, "Net Balance: $545.25")
}
