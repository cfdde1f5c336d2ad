package http

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"financas/internal/core"
	"financas/internal/log"
	"financas/internal/report"
)

// viewTimeout bounds snapshot loads so a slow store cannot hang a view
// request.
const viewTimeout = 7 * time.Second

// monthReport returns the derived view for one month, computing and caching
// it on miss.
func (s *Server) monthReport(ctx context.Context, year, month int) (report.MonthReport, error) {
	key := periodKey(year, month)
	if rep, found := s.reportCache.Get(key); found {
		atomic.AddInt64(&s.appMetrics.cacheHits, 1)
		return rep, nil
	}
	atomic.AddInt64(&s.appMetrics.cacheMisses, 1)

	cctx, cancel := context.WithTimeout(ctx, viewTimeout)
	defer cancel()
	snap, err := s.store.LoadSnapshot(cctx)
	if err != nil {
		return report.MonthReport{}, fmt.Errorf("load snapshot (year=%d, month=%d): %w", year, month, err)
	}

	rep := report.ComposeMonthReport(snap, core.Period{Year: year, Month: month})
	s.reportCache.Set(key, rep)
	return rep, nil
}

// accountBalances returns the projected balance per account, cached under a
// single key since it is period-independent.
func (s *Server) accountBalances(ctx context.Context) (report.AccountBalances, error) {
	const key = "balances"
	if balances, found := s.balanceCache.Get(key); found {
		atomic.AddInt64(&s.appMetrics.cacheHits, 1)
		return balances, nil
	}
	atomic.AddInt64(&s.appMetrics.cacheMisses, 1)

	cctx, cancel := context.WithTimeout(ctx, viewTimeout)
	defer cancel()
	snap, err := s.store.LoadSnapshot(cctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot for balances: %w", err)
	}

	balances := report.Balances(snap)
	s.balanceCache.Set(key, balances)
	return balances, nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, month := parseMonthParams(r)
	rep, err := s.monthReport(r.Context(), year, month)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Summary view error",
			log.FieldError, err, log.FieldYear, year, log.FieldMonth, month)
		writeError(w, http.StatusInternalServerError, "error loading summary")
		return
	}
	writeJSON(w, http.StatusOK, rep.Summary)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	year, month := parseMonthParams(r)
	rep, err := s.monthReport(r.Context(), year, month)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Charts view error",
			log.FieldError, err, log.FieldYear, year, log.FieldMonth, month)
		writeError(w, http.StatusInternalServerError, "error loading charts")
		return
	}
	writeJSON(w, http.StatusOK, rep.Charts)
}

func (s *Server) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	year, month := parseMonthParams(r)
	rep, err := s.monthReport(r.Context(), year, month)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Budget view error",
			log.FieldError, err, log.FieldYear, year, log.FieldMonth, month)
		writeError(w, http.StatusInternalServerError, "error loading budgets")
		return
	}
	page := rep.Budgets
	if page.Budgets == nil {
		page.Budgets = []report.ProcessedBudget{}
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleAccountBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.accountBalances(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Balances view error",
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "error loading balances")
		return
	}
	if balances == nil {
		balances = report.AccountBalances{}
	}
	writeJSON(w, http.StatusOK, balances)
}

func (s *Server) handleReportHistory(w http.ResponseWriter, r *http.Request) {
	cctx, cancel := context.WithTimeout(r.Context(), viewTimeout)
	defer cancel()

	reports, err := s.store.ListMonthReports(cctx)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Report history error",
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "error loading report history")
		return
	}
	if reports == nil {
		reports = []report.MonthReport{}
	}
	writeJSON(w, http.StatusOK, reports)
}
