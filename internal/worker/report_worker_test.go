package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/ledger/memory"
	"financas/internal/report"
)

type fakeExporter struct {
	reports []report.MonthReport
	err     error
}

func (f *fakeExporter) ExportMonthReport(_ context.Context, rep report.MonthReport) error {
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, rep)
	return nil
}

func seedExpense(t *testing.T, store *memory.Store, year, month, day int, cents int64) {
	t.Helper()
	ctx := context.Background()

	account, err := store.CreateAccount(ctx, core.Account{Name: "Conta", Type: core.AccountChecking})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	_, err = store.CreateTransaction(ctx, core.Transaction{
		Date:      core.NewDate(year, month, day),
		Amount:    core.Money{Cents: cents},
		Type:      core.Expense,
		AccountID: account.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
}

func TestHandleLedgerEventArchivesPeriod(t *testing.T) {
	store := memory.New()
	seedExpense(t, store, 2025, 6, 10, 30000)
	exporter := &fakeExporter{}
	w := NewReportWorker(store, exporter, nil)

	msg := amqp.NewLedgerEventMessage("transaction", amqp.ActionCreated, "tx-1", 2025, 6)
	if err := w.HandleLedgerEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}

	reports, err := store.ListMonthReports(context.Background())
	if err != nil {
		t.Fatalf("ListMonthReports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("archived %d reports, want 1", len(reports))
	}
	rep := reports[0]
	if rep.Year != 2025 || rep.Month != 6 {
		t.Errorf("archived period = %d-%d, want 2025-6", rep.Year, rep.Month)
	}
	if rep.Summary.TotalExpense != 300 {
		t.Errorf("TotalExpense = %v, want 300", rep.Summary.TotalExpense)
	}

	if len(exporter.reports) != 1 {
		t.Fatalf("exported %d reports, want 1", len(exporter.reports))
	}
	if exporter.reports[0].Year != 2025 || exporter.reports[0].Month != 6 {
		t.Errorf("exported period = %d-%d, want 2025-6",
			exporter.reports[0].Year, exporter.reports[0].Month)
	}
}

func TestHandleLedgerEventWithoutPeriodRefreshesCurrentMonth(t *testing.T) {
	store := memory.New()
	w := NewReportWorker(store, nil, nil)

	msg := amqp.NewLedgerEventMessage("account", amqp.ActionDeleted, "a-1", 0, 0)
	if err := w.HandleLedgerEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}

	reports, err := store.ListMonthReports(context.Background())
	if err != nil {
		t.Fatalf("ListMonthReports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("archived %d reports, want 1", len(reports))
	}
	now := time.Now()
	if reports[0].Year != now.Year() || reports[0].Month != int(now.Month()) {
		t.Errorf("archived period = %d-%d, want current month",
			reports[0].Year, reports[0].Month)
	}
}

func TestRefreshPeriodSurvivesExportFailure(t *testing.T) {
	store := memory.New()
	exporter := &fakeExporter{err: errors.New("sheets unavailable")}
	w := NewReportWorker(store, exporter, nil)

	if err := w.RefreshPeriod(context.Background(), 2025, 6); err != nil {
		t.Fatalf("RefreshPeriod should not fail on export error, got %v", err)
	}

	reports, err := store.ListMonthReports(context.Background())
	if err != nil {
		t.Fatalf("ListMonthReports: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("archived %d reports, want 1 despite export failure", len(reports))
	}
}

func TestRefreshPeriodReplacesExistingReport(t *testing.T) {
	store := memory.New()
	w := NewReportWorker(store, nil, nil)
	ctx := context.Background()

	if err := w.RefreshPeriod(ctx, 2025, 6); err != nil {
		t.Fatalf("RefreshPeriod: %v", err)
	}
	seedExpense(t, store, 2025, 6, 10, 10000)
	if err := w.RefreshPeriod(ctx, 2025, 6); err != nil {
		t.Fatalf("RefreshPeriod: %v", err)
	}

	reports, err := store.ListMonthReports(ctx)
	if err != nil {
		t.Fatalf("ListMonthReports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("archived %d reports, want 1 (same month replaced)", len(reports))
	}
	if reports[0].Summary.TotalExpense != 100 {
		t.Errorf("TotalExpense = %v, want 100 after refresh", reports[0].Summary.TotalExpense)
	}
}

func TestRunPeriodicRefreshesUntilCancelled(t *testing.T) {
	store := memory.New()
	w := NewReportWorker(store, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.RunPeriodic(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunPeriodic did not stop after cancellation")
	}

	reports, err := store.ListMonthReports(context.Background())
	if err != nil {
		t.Fatalf("ListMonthReports: %v", err)
	}
	if len(reports) == 0 {
		t.Error("periodic refresh archived no reports")
	}
}
