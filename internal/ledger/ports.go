// Package ledger defines the ports between the aggregation engine's callers
// and the persistence backends. Implementations live in internal/storage
// (SQLite) and internal/ledger/memory.
package ledger

import (
	"context"
	"errors"

	"financas/internal/core"
	"financas/internal/report"
)

// ErrNotFound is returned by deletes and lookups for unknown ids.
var ErrNotFound = errors.New("ledger: record not found")

// Ports for outbound adapters. Create methods mint the record id and return
// the stored entity.
type (
	SnapshotReader interface {
		LoadSnapshot(ctx context.Context) (core.Snapshot, error)
	}

	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
	}

	AccountStore interface {
		CreateAccount(ctx context.Context, a core.Account) (core.Account, error)
		ListAccounts(ctx context.Context) ([]core.Account, error)
		DeleteAccount(ctx context.Context, id string) error
	}

	CategoryStore interface {
		CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
		ListCategories(ctx context.Context) ([]core.Category, error)
		DeleteCategory(ctx context.Context, id string) error
	}

	BudgetStore interface {
		CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		DeleteBudget(ctx context.Context, id string) error
	}

	ContributionStore interface {
		CreateContribution(ctx context.Context, c core.Contribution) (core.Contribution, error)
		ListContributions(ctx context.Context) ([]core.Contribution, error)
		DeleteContribution(ctx context.Context, id string) error
	}

	// ReportArchive stores worker-materialized month reports. Saving the same
	// year and month twice replaces the archived report.
	ReportArchive interface {
		SaveMonthReport(ctx context.Context, r report.MonthReport) error
		ListMonthReports(ctx context.Context) ([]report.MonthReport, error)
	}
)

// Store is the full persistence surface a backend provides.
type Store interface {
	SnapshotReader
	TransactionStore
	AccountStore
	CategoryStore
	BudgetStore
	ContributionStore
	ReportArchive
}
