// Package worker materializes month reports. It reacts to ledger-change
// events and runs a periodic full refresh as backup for lost messages.
package worker

import (
	"context"
	"fmt"
	"time"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/ledger"
	"financas/internal/log"
	"financas/internal/report"
)

// Exporter mirrors an archived month report to an external destination.
type Exporter interface {
	ExportMonthReport(ctx context.Context, rep report.MonthReport) error
}

// ReportWorker recomputes and archives the derived view of a month whenever
// the underlying ledger changes.
type ReportWorker struct {
	store    ledger.Store
	exporter Exporter
	logger   *log.Logger
}

// NewReportWorker creates a worker. The exporter may be nil, in which case
// reports are only archived locally.
func NewReportWorker(store ledger.Store, exporter Exporter, logger *log.Logger) *ReportWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	}
	return &ReportWorker{
		store:    store,
		exporter: exporter,
		logger:   logger,
	}
}

// HandleLedgerEvent processes one ledger-change event. Events without a
// period (deletes, undated entities) refresh the current month.
func (w *ReportWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	year, month := msg.Year, msg.Month
	if year == 0 || month == 0 {
		now := time.Now()
		year, month = now.Year(), int(now.Month())
	}

	fields := log.NewFields().
		WithEntity(msg.Entity, msg.ID).
		WithPeriod(year, month)
	fields[log.FieldAction] = msg.Action
	w.logger.InfoContext(ctx, "Processing ledger event", fields.ToSlice()...)

	return w.RefreshPeriod(ctx, year, month)
}

// RefreshPeriod recomputes one month's report and archives it. The optional
// export is best-effort; the archive is the source of truth.
func (w *ReportWorker) RefreshPeriod(ctx context.Context, year, month int) error {
	snap, err := w.store.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	rep := report.ComposeMonthReport(snap, core.Period{Year: year, Month: month})
	if err := w.store.SaveMonthReport(ctx, rep); err != nil {
		return fmt.Errorf("archive month report (year=%d, month=%d): %w", year, month, err)
	}

	if w.exporter != nil {
		if err := w.exporter.ExportMonthReport(ctx, rep); err != nil {
			w.logger.ErrorContext(ctx, "Month report export failed",
				log.FieldError, err,
				log.FieldOperation, log.OpExport,
				log.FieldYear, year,
				log.FieldMonth, month)
		}
	}

	w.logger.InfoContext(ctx, "Month report archived",
		log.FieldOperation, log.OpCompose,
		log.FieldYear, year,
		log.FieldMonth, month,
		"total_income", rep.Summary.TotalIncome,
		"total_expense", rep.Summary.TotalExpense)

	return nil
}

// RunPeriodic refreshes the current month every interval until the context
// is cancelled.
func (w *ReportWorker) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			if err := w.RefreshPeriod(ctx, now.Year(), int(now.Month())); err != nil {
				w.logger.ErrorContext(ctx, "Periodic refresh failed", log.FieldError, err)
			}
		}
	}
}
