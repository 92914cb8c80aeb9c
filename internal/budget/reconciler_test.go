package budget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/tally/internal/model"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(amount string) model.Transaction {
	return model.Transaction{Amount: money(amount)}
}

func income(amount string) model.Transaction {
	return model.Transaction{Amount: money(amount), IsIncome: true}
}

func TestApplyAddAndDelete(t *testing.T) {
	l := model.NewLedger()

	l = ApplyAdd(l, expense("4.50"))
	assert.True(t, l.Spent.Equal(money("4.50")))

	l = ApplyAdd(l, income("1000"))
	assert.True(t, l.Spent.Equal(money("4.50")), "income does not count as spending")

	l = ApplyDelete(l, expense("4.50"))
	assert.True(t, l.Spent.IsZero())

	l = ApplyDelete(l, income("1000"))
	assert.True(t, l.Spent.IsZero())
}

func TestApplyUpdate(t *testing.T) {
	tests := []struct {
		before model.Transaction
		after  model.Transaction
		name   string
		start  string
		want   string
	}{
		{name: "expense amount change", start: "50", before: expense("50"), after: expense("80"), want: "80"},
		{name: "expense becomes income", start: "50", before: expense("50"), after: income("50"), want: "0"},
		{name: "income becomes expense", start: "10", before: income("50"), after: expense("50"), want: "60"},
		{name: "income stays income", start: "10", before: income("50"), after: income("70"), want: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := model.NewLedger()
			l.Spent = money(tt.start)
			got := ApplyUpdate(l, tt.before, tt.after)
			assert.True(t, got.Spent.Equal(money(tt.want)), "got %s", got.Spent)
		})
	}
}

func TestApplyDoesNotClamp(t *testing.T) {
	l := ApplyDelete(model.NewLedger(), expense("5"))
	assert.True(t, l.Spent.Equal(money("-5")))
}

func TestRecomputeAndReconcile(t *testing.T) {
	txns := []model.Transaction{expense("1.10"), income("7"), expense("2.20")}
	assert.True(t, Recompute(txns).Equal(money("3.30")))

	l := model.NewLedger()
	l.Spent = money("3.30")
	_, drifted := Reconcile(l, txns)
	assert.False(t, drifted)

	l.Spent = money("99")
	fixed, drifted := Reconcile(l, txns)
	assert.True(t, drifted)
	assert.True(t, fixed.Spent.Equal(money("3.30")))
}

func TestStatusOf(t *testing.T) {
	l := model.NewLedger().WithCurrency("GBP")
	l.Budget = money("100")
	l.Spent = money("120")

	s := StatusOf(l)
	assert.True(t, s.HasBudget)
	assert.True(t, s.Over)
	assert.Equal(t, "£", s.Symbol)
	assert.Equal(t, 1.0, s.Used)
	assert.True(t, s.Remaining.Equal(money("-20")))

	empty := StatusOf(model.NewLedger())
	assert.False(t, empty.HasBudget)
	assert.False(t, empty.Over)
}
