// Package budget keeps the ledger's spent total in step with transaction mutations.
//
// Every function is pure: it takes the ledger before a mutation and returns the
// ledger after it. Callers apply the result in lock-step with the store change.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/model"
)

// ApplyAdd accounts for a newly stored transaction.
func ApplyAdd(l model.Ledger, added model.Transaction) model.Ledger {
	l.Spent = l.Spent.Add(added.Spending())
	return l
}

// ApplyDelete accounts for a removed transaction.
func ApplyDelete(l model.Ledger, removed model.Transaction) model.Ledger {
	l.Spent = l.Spent.Sub(removed.Spending())
	return l
}

// ApplyUpdate reverses the old record's contribution before applying the new one,
// so flipping the income flag never double counts.
func ApplyUpdate(l model.Ledger, before, after model.Transaction) model.Ledger {
	return ApplyAdd(ApplyDelete(l, before), after)
}

// Recompute sums the spending of txns from scratch.
func Recompute(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Spending())
	}
	return total
}

// Reconcile returns l with Spent re-derived from txns and whether it had drifted.
func Reconcile(l model.Ledger, txns []model.Transaction) (model.Ledger, bool) {
	actual := Recompute(txns)
	if l.Spent.Equal(actual) {
		return l, false
	}
	l.Spent = actual
	return l, true
}

// Status is a read-only view of the budget for display.
type Status struct {
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Symbol    string
	Used      float64 // spent/budget clamped to [0, 1]
	HasBudget bool
	Over      bool
}

// StatusOf summarizes l.
func StatusOf(l model.Ledger) Status {
	return Status{
		Budget:    l.Budget,
		Spent:     l.Spent,
		Remaining: l.Remaining(),
		Symbol:    l.CurrencySymbol(),
		Used:      l.UsedFraction(),
		HasBudget: l.HasBudget(),
		Over:      l.HasBudget() && l.Remaining().IsNegative(),
	}
}
