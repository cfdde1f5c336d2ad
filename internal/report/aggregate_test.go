package report

import (
	"testing"

	"financas/internal/core"
)

func catTx(id, category string, typ core.TransactionType, cents int64, day int) core.Transaction {
	t := tx(id, "acc", typ, cents, 2025, 6, day)
	t.CategoryID = category
	return t
}

func TestAggregateSplitsIncomeAndExpense(t *testing.T) {
	txs := []core.Transaction{
		catTx("t1", "food", core.Expense, 5000, 1),
		catTx("t2", "food", core.Expense, 2500, 2),
		catTx("t3", "salary", core.Income, 300000, 5),
		catTx("t4", "", core.Expense, 1000, 7), // uncategorized
	}

	got := Aggregate(txs, nil)

	if got.ExpenseFor("food").Cents != 7500 {
		t.Errorf("food expense = %d, want 7500", got.ExpenseFor("food").Cents)
	}
	if got.IncomeFor("salary").Cents != 300000 {
		t.Errorf("salary income = %d, want 300000", got.IncomeFor("salary").Cents)
	}
	if got.TotalExpense.Cents != 8500 {
		t.Errorf("total expense = %d, want 8500 (uncategorized still counts)", got.TotalExpense.Cents)
	}
	if got.UncategorizedExpense.Cents != 1000 {
		t.Errorf("uncategorized = %d, want 1000", got.UncategorizedExpense.Cents)
	}
	if got.ExpenseFor("").Cents != 0 {
		t.Error("uncategorized records must not enter the per-category map")
	}
}

func TestAggregateFoldsContributionsIntoExpenses(t *testing.T) {
	txs := []core.Transaction{
		catTx("t1", "food", core.Expense, 5000, 1),
	}
	contribs := []core.Contribution{
		{ID: "c1", GoalID: "g1", AccountID: "acc", Amount: core.Money{Cents: 2000}, Date: core.NewDate(2025, 6, 3)},
		{ID: "c2", GoalID: "g2", AccountID: "acc", Amount: core.Money{Cents: 1500}, Date: core.NewDate(2025, 6, 9)},
	}

	got := Aggregate(txs, contribs)

	if got.Contributions.Cents != 3500 {
		t.Errorf("contributions = %d, want 3500", got.Contributions.Cents)
	}
	if got.TotalExpense.Cents != 8500 {
		t.Errorf("total expense = %d, want 8500 (contributions folded in)", got.TotalExpense.Cents)
	}
	if got.TotalIncome.Cents != 0 {
		t.Errorf("total income = %d, want 0", got.TotalIncome.Cents)
	}
}

func TestAggregateKeepsFirstSeenOrder(t *testing.T) {
	txs := []core.Transaction{
		catTx("t1", "b", core.Expense, 100, 1),
		catTx("t2", "a", core.Expense, 100, 2),
		catTx("t3", "b", core.Expense, 100, 3),
		catTx("t4", "c", core.Expense, 100, 4),
	}

	got := Aggregate(txs, nil)

	want := []string{"b", "a", "c"}
	if len(got.expenseOrder) != len(want) {
		t.Fatalf("order length = %d, want %d", len(got.expenseOrder), len(want))
	}
	for i, ref := range want {
		if got.expenseOrder[i] != ref {
			t.Errorf("order[%d] = %s, want %s", i, got.expenseOrder[i], ref)
		}
	}
}

func TestAggregateTreatsAmountsAsMagnitudes(t *testing.T) {
	txs := []core.Transaction{
		catTx("t1", "food", core.Expense, -5000, 1), // sign is implied by type
	}
	got := Aggregate(txs, nil)
	if got.TotalExpense.Cents != 5000 {
		t.Errorf("total expense = %d, want 5000", got.TotalExpense.Cents)
	}
}
