package report

import "financas/internal/core"

// Totals holds the per-category and overall sums for one period. Per-category
// maps are keyed by the raw category reference as it appears on the record;
// uncategorized records are absent from the maps but always counted in the
// overall totals.
type Totals struct {
	expense      map[string]int64
	income       map[string]int64
	expenseOrder []string // category refs in first-seen scan order

	TotalExpense         core.Money // transactions + contributions
	TotalIncome          core.Money
	Contributions        core.Money // folded into TotalExpense under "Metas"
	UncategorizedExpense core.Money
}

// Aggregate sums period-filtered transactions and contributions. Contribution
// amounts count as expenses; callers surface them under the synthetic "Metas"
// category.
func Aggregate(txs []core.Transaction, contribs []core.Contribution) Totals {
	t := Totals{
		expense: make(map[string]int64),
		income:  make(map[string]int64),
	}

	for _, tx := range txs {
		cents := tx.Amount.Abs().Cents
		switch tx.Type {
		case core.Income:
			t.TotalIncome.Cents += cents
			if tx.CategoryID != "" {
				t.income[tx.CategoryID] += cents
			}
		case core.Expense:
			t.TotalExpense.Cents += cents
			if tx.CategoryID == "" {
				t.UncategorizedExpense.Cents += cents
				continue
			}
			if _, seen := t.expense[tx.CategoryID]; !seen {
				t.expenseOrder = append(t.expenseOrder, tx.CategoryID)
			}
			t.expense[tx.CategoryID] += cents
		}
	}

	for _, c := range contribs {
		cents := c.Amount.Abs().Cents
		t.Contributions.Cents += cents
		t.TotalExpense.Cents += cents
	}

	return t
}

// ExpenseFor returns the summed expenses recorded against the category
// reference for the period.
func (t Totals) ExpenseFor(categoryID string) core.Money {
	return core.Money{Cents: t.expense[categoryID]}
}

// IncomeFor returns the summed income recorded against the category reference
// for the period.
func (t Totals) IncomeFor(categoryID string) core.Money {
	return core.Money{Cents: t.income[categoryID]}
}
