package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"financas/internal/core"
	"financas/internal/ledger"
	"financas/internal/report"
)

func TestStoreCreateAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	acc, err := s.CreateAccount(ctx, core.Account{Name: "Conta Corrente", Type: core.AccountChecking, Balance: core.Money{Cents: 10000}})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if acc.ID == "" {
		t.Fatal("create must mint an id")
	}

	tx, err := s.CreateTransaction(ctx, core.Transaction{
		Date:      core.NewDate(2025, 6, 1),
		Amount:    core.Money{Cents: 2500},
		Type:      core.Expense,
		AccountID: acc.ID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	txs, err := s.ListTransactions(ctx)
	if err != nil || len(txs) != 1 || txs[0].ID != tx.ID {
		t.Fatalf("unexpected list: txs=%v err=%v", txs, err)
	}
}

func TestStoreRejectsInvalidRecords(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateTransaction(ctx, core.Transaction{Type: core.Expense, AccountID: "a"}); !errors.Is(err, core.ErrInvalidDate) {
		t.Errorf("zero date: err = %v, want ErrInvalidDate", err)
	}
	if _, err := s.CreateAccount(ctx, core.Account{Name: "  "}); !errors.Is(err, core.ErrEmptyName) {
		t.Errorf("blank name: err = %v, want ErrEmptyName", err)
	}
	if _, err := s.CreateBudget(ctx, core.Budget{CategoryID: "c", Type: "weekly"}); !errors.Is(err, core.ErrInvalidType) {
		t.Errorf("bad budget type: err = %v, want ErrInvalidType", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	cat, err := s.CreateCategory(ctx, core.Category{Name: "Alimentação"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if err := s.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteCategory(ctx, cat.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
	cats, _ := s.ListCategories(ctx)
	if len(cats) != 0 {
		t.Errorf("categories after delete = %d, want 0", len(cats))
	}
}

func TestLoadSnapshotCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.CreateAccount(ctx, core.Account{Name: "A"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	snap.Accounts[0].Name = "mutated"

	again, _ := s.LoadSnapshot(ctx)
	if again.Accounts[0].Name != "A" {
		t.Error("snapshot must be a copy, not a view of store state")
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()

	// Missing file -> empty store.
	s, err := NewFromFile(filepath.Join(dir, "absent.json"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	snap, _ := s.LoadSnapshot(context.Background())
	if len(snap.Accounts) != 0 {
		t.Fatalf("expected empty store, got %d accounts", len(snap.Accounts))
	}

	seed := `{
		"accounts": [{"id": "a1", "name": "Conta", "type": "checking", "balance": 150.00}],
		"categories": [{"id": "c1", "name": "Moradia", "color": "#ef4444"}],
		"transactions": [
			{"id": "t1", "date": "2025-06-01", "amount": 42.50, "type": "expense", "categoryId": "c1", "accountId": "a1"},
			{"id": "t2", "date": "not-a-date", "amount": 10, "type": "expense", "accountId": "a1"}
		]
	}`
	path := filepath.Join(dir, "seed.json")
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	s, err = NewFromFile(path)
	if err != nil {
		t.Fatalf("seeded store: %v", err)
	}
	snap, _ = s.LoadSnapshot(context.Background())
	if len(snap.Accounts) != 1 || snap.Accounts[0].Balance.Cents != 15000 {
		t.Fatalf("unexpected accounts: %+v", snap.Accounts)
	}
	if snap.Transactions[0].Amount.Cents != 4250 {
		t.Errorf("amount = %d cents, want 4250", snap.Transactions[0].Amount.Cents)
	}
	// Malformed dates degrade to the zero Date and stay out of every period.
	if !snap.Transactions[1].Date.IsZero() {
		t.Error("malformed date should decode to the zero Date")
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write bad seed: %v", err)
	}
	if _, err := NewFromFile(path); err == nil {
		t.Error("malformed seed file should be an error")
	}
}

func TestMonthReportArchive(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, p := range []struct{ y, m int }{{2025, 5}, {2025, 6}, {2024, 12}} {
		if err := s.SaveMonthReport(ctx, report.MonthReport{Year: p.y, Month: p.m}); err != nil {
			t.Fatalf("save %d-%d: %v", p.y, p.m, err)
		}
	}
	// Overwrite replaces, not duplicates.
	if err := s.SaveMonthReport(ctx, report.MonthReport{Year: 2025, Month: 6, Summary: report.DashboardSummary{TotalIncome: 1}}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err := s.ListMonthReports(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("reports = %d, want 3", len(got))
	}
	if got[0].Year != 2025 || got[0].Month != 6 || got[0].Summary.TotalIncome != 1 {
		t.Errorf("newest report = %d-%d income %v, want replaced 2025-6", got[0].Year, got[0].Month, got[0].Summary.TotalIncome)
	}
	if got[2].Year != 2024 {
		t.Errorf("oldest report year = %d, want 2024", got[2].Year)
	}
}
