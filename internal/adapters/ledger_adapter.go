package adapters

import (
	"context"

	"financas/internal/core"
	"financas/internal/ledger"
	"financas/internal/report"
	"financas/internal/services"
)

// LedgerAdapter combines a store and the event-publishing service into one
// ledger.Store: reads go straight to the store, mutations go through the
// service so that change events reach the report worker.
type LedgerAdapter struct {
	store   ledger.Store
	service *services.LedgerService
}

func NewLedgerAdapter(store ledger.Store, service *services.LedgerService) *LedgerAdapter {
	return &LedgerAdapter{
		store:   store,
		service: service,
	}
}

func (a *LedgerAdapter) LoadSnapshot(ctx context.Context) (core.Snapshot, error) {
	return a.store.LoadSnapshot(ctx)
}

func (a *LedgerAdapter) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	return a.service.CreateTransaction(ctx, t)
}

func (a *LedgerAdapter) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return a.store.ListTransactions(ctx)
}

func (a *LedgerAdapter) DeleteTransaction(ctx context.Context, id string) error {
	return a.service.DeleteTransaction(ctx, id)
}

func (a *LedgerAdapter) CreateAccount(ctx context.Context, acc core.Account) (core.Account, error) {
	return a.service.CreateAccount(ctx, acc)
}

func (a *LedgerAdapter) ListAccounts(ctx context.Context) ([]core.Account, error) {
	return a.store.ListAccounts(ctx)
}

func (a *LedgerAdapter) DeleteAccount(ctx context.Context, id string) error {
	return a.service.DeleteAccount(ctx, id)
}

func (a *LedgerAdapter) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	return a.service.CreateCategory(ctx, c)
}

func (a *LedgerAdapter) ListCategories(ctx context.Context) ([]core.Category, error) {
	return a.store.ListCategories(ctx)
}

func (a *LedgerAdapter) DeleteCategory(ctx context.Context, id string) error {
	return a.service.DeleteCategory(ctx, id)
}

func (a *LedgerAdapter) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	return a.service.CreateBudget(ctx, b)
}

func (a *LedgerAdapter) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	return a.store.ListBudgets(ctx)
}

func (a *LedgerAdapter) DeleteBudget(ctx context.Context, id string) error {
	return a.service.DeleteBudget(ctx, id)
}

func (a *LedgerAdapter) CreateContribution(ctx context.Context, c core.Contribution) (core.Contribution, error) {
	return a.service.CreateContribution(ctx, c)
}

func (a *LedgerAdapter) ListContributions(ctx context.Context) ([]core.Contribution, error) {
	return a.store.ListContributions(ctx)
}

func (a *LedgerAdapter) DeleteContribution(ctx context.Context, id string) error {
	return a.service.DeleteContribution(ctx, id)
}

func (a *LedgerAdapter) SaveMonthReport(ctx context.Context, r report.MonthReport) error {
	return a.store.SaveMonthReport(ctx, r)
}

func (a *LedgerAdapter) ListMonthReports(ctx context.Context) ([]report.MonthReport, error) {
	return a.store.ListMonthReports(ctx)
}

var _ ledger.Store = (*LedgerAdapter)(nil)
