// Package storage implements the ledger ports on SQLite. Dates are stored as
// YYYY-MM-DD text; amounts as integer cents; row ids are UUIDs minted here.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"financas/internal/core"
	"financas/internal/ledger"
	"financas/internal/report"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadSnapshot reads the five collections concurrently and bundles them.
func (r *SQLiteRepository) LoadSnapshot(ctx context.Context) (core.Snapshot, error) {
	var snap core.Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Transactions, err = r.ListTransactions(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Accounts, err = r.ListAccounts(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Categories, err = r.ListCategories(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Budgets, err = r.ListBudgets(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Contributions, err = r.ListContributions(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return core.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, date, amount_cents, type, category_id, account_id, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date.String(), t.Amount.Cents, string(t.Type), t.CategoryID, t.AccountID, t.Description)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"amount_cents", t.Amount.Cents,
		"date", t.Date.String())
	return t, nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, amount_cents, type, category_id, account_id, description
		FROM transactions ORDER BY date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var date string
		var typ string
		if err := rows.Scan(&t.ID, &date, &t.Amount.Cents, &typ, &t.CategoryID, &t.AccountID, &t.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		// A malformed stored date degrades to the zero Date; the engine then
		// keeps the row out of every period but still in balance history.
		t.Date, _ = core.ParseDate(date)
		t.Type = core.TransactionType(typ)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	return r.deleteRow(ctx, "transactions", id)
}

func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	a.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, type, balance_cents) VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, string(a.Type), a.Balance.Cents)
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}

	slog.InfoContext(ctx, "Account saved", "id", a.ID, "name", a.Name, "type", a.Type)
	return a, nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, balance_cents FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var a core.Account
		var typ string
		if err := rows.Scan(&a.ID, &a.Name, &typ, &a.Balance.Cents); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Type = core.AccountType(typ)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteAccount(ctx context.Context, id string) error {
	return r.deleteRow(ctx, "accounts", id)
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	c.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, color, type) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Color, string(c.Type))
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}

	slog.InfoContext(ctx, "Category saved", "id", c.ID, "name", c.Name)
	return c, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, color, type FROM categories ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		var typ string
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &typ); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = core.TransactionType(typ)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.deleteRow(ctx, "categories", id)
}

func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	b.ID = uuid.NewString()
	if b.Period == "" {
		b.Period = "monthly"
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (id, category_id, amount_cents, type, period, description)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.CategoryID, b.Amount.Cents, string(b.Type), b.Period, b.Description)
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved", "id", b.ID, "category_id", b.CategoryID, "type", b.Type)
	return b, nil
}

func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category_id, amount_cents, type, period, description
		FROM budgets ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var typ string
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.Amount.Cents, &typ, &b.Period, &b.Description); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Type = core.BudgetType(typ)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id string) error {
	return r.deleteRow(ctx, "budgets", id)
}

func (r *SQLiteRepository) CreateContribution(ctx context.Context, c core.Contribution) (core.Contribution, error) {
	if err := c.Validate(); err != nil {
		return core.Contribution{}, err
	}
	c.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contributions (id, goal_id, account_id, amount_cents, date, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.GoalID, c.AccountID, c.Amount.Cents, c.Date.String(), c.Notes)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("create contribution: %w", err)
	}

	slog.InfoContext(ctx, "Contribution saved", "id", c.ID, "goal_id", c.GoalID, "amount_cents", c.Amount.Cents)
	return c, nil
}

func (r *SQLiteRepository) ListContributions(ctx context.Context) ([]core.Contribution, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, goal_id, account_id, amount_cents, date, notes
		FROM contributions ORDER BY date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var out []core.Contribution
	for rows.Next() {
		var c core.Contribution
		var date string
		if err := rows.Scan(&c.ID, &c.GoalID, &c.AccountID, &c.Amount.Cents, &date, &c.Notes); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		c.Date, _ = core.ParseDate(date)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteContribution(ctx context.Context, id string) error {
	return r.deleteRow(ctx, "contributions", id)
}

// SaveMonthReport upserts the archived report for the month as a JSON payload.
func (r *SQLiteRepository) SaveMonthReport(ctx context.Context, rep report.MonthReport) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal month report: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO month_reports (year, month, payload, generated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (year, month) DO UPDATE SET
			payload = excluded.payload,
			generated_at = CURRENT_TIMESTAMP`,
		rep.Year, rep.Month, string(payload))
	if err != nil {
		return fmt.Errorf("save month report: %w", err)
	}

	slog.InfoContext(ctx, "Month report archived", "year", rep.Year, "month", rep.Month)
	return nil
}

// ListMonthReports returns the archived reports, newest first.
func (r *SQLiteRepository) ListMonthReports(ctx context.Context) ([]report.MonthReport, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT payload FROM month_reports ORDER BY year DESC, month DESC`)
	if err != nil {
		return nil, fmt.Errorf("list month reports: %w", err)
	}
	defer rows.Close()

	var out []report.MonthReport
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan month report: %w", err)
		}
		var rep report.MonthReport
		if err := json.Unmarshal([]byte(payload), &rep); err != nil {
			slog.WarnContext(ctx, "Skipping unreadable month report payload", "error", err)
			continue
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) deleteRow(ctx context.Context, table, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

var _ ledger.Store = (*SQLiteRepository)(nil)
