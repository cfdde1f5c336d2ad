package core

import "testing"

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2025 || int(d.Month()) != 3 || d.Day() != 15 {
		t.Fatalf("unexpected date: %v", d)
	}

	for _, in := range []string{"", "15/03/2025", "2025-13-01", "garbage"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("%q expected error", in)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:      NewDate(2025, 1, 10),
		Amount:    Money{Cents: 1500},
		Type:      Expense,
		AccountID: "acc-1",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Amount: Money{Cents: 1}, Type: Expense, AccountID: "a"},                            // zero date
		{Date: NewDate(2025, 1, 1), Amount: Money{Cents: 1}, Type: "transfer", AccountID: "a"}, // bad type
		{Date: NewDate(2025, 1, 1), Amount: Money{Cents: -1}, Type: Income, AccountID: "a"},    // negative
		{Date: NewDate(2025, 1, 1), Amount: Money{Cents: 1}, Type: Income},                     // no account
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{CategoryID: "cat-1", Amount: Money{Cents: 50000}, Type: BudgetExpense, Period: "monthly"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Budget{CategoryID: "c", Amount: Money{}, Type: BudgetGoal}).Validate(); err != nil {
		t.Fatalf("goal budgets are valid entities: %v", err)
	}

	bads := []Budget{
		{Amount: Money{Cents: 1}, Type: BudgetExpense},                                 // no category
		{CategoryID: "c", Amount: Money{Cents: 1}, Type: "weekly"},                     // bad type
		{CategoryID: "c", Amount: Money{Cents: 1}, Type: BudgetIncome, Period: "year"}, // bad period
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestContributionValidate(t *testing.T) {
	good := Contribution{GoalID: "g-1", AccountID: "a-1", Amount: Money{Cents: 100}, Date: NewDate(2025, 2, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Contribution{
		{AccountID: "a", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)}, // no goal
		{GoalID: "g", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},    // no account
		{GoalID: "g", AccountID: "a", Amount: Money{Cents: 1}},               // zero date
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
