// Package report renders transaction lists as CSV, plain text and summaries.
// It only produces payloads; writing them somewhere is the caller's concern.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/model"
)

// Summary holds aggregate totals for a list of transactions.
type Summary struct {
	ByCategory   map[string]CategoryTotal
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Net          decimal.Decimal // TotalIncome - TotalExpense
	Count        int
}

// CategoryTotal aggregates one category.
type CategoryTotal struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

// Summarize totals income and expense across txns.
func Summarize(txns []model.Transaction) Summary {
	s := Summary{
		ByCategory:   make(map[string]CategoryTotal),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, t := range txns {
		ct := s.ByCategory[t.Category]
		if t.IsIncome {
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
			ct.Income = ct.Income.Add(t.Amount)
		} else {
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
			ct.Expense = ct.Expense.Add(t.Amount)
		}
		ct.Count++
		s.ByCategory[t.Category] = ct
		s.Count++
	}

	s.Net = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// Categories returns the category names ordered by expense, largest first.
func (s Summary) Categories() []string {
	names := make([]string, 0, len(s.ByCategory))
	for name := range s.ByCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ei, ej := s.ByCategory[names[i]].Expense, s.ByCategory[names[j]].Expense
		if !ei.Equal(ej) {
			return ei.GreaterThan(ej)
		}
		return names[i] < names[j]
	})
	return names
}
