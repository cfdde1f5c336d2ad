// Package memory implements the ledger ports in process memory. It backs
// tests and the default backend when no SQLite path is configured. A store
// may be seeded from a JSON snapshot fixture.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"financas/internal/core"
	"financas/internal/ledger"
	"financas/internal/report"
)

type Store struct {
	mu            sync.Mutex
	transactions  []core.Transaction
	accounts      []core.Account
	categories    []core.Category
	budgets       []core.Budget
	contributions []core.Contribution
	reports       map[int]report.MonthReport // keyed year*100+month
}

func New() *Store {
	return &Store{reports: make(map[int]report.MonthReport)}
}

// NewFromFile seeds the store from a JSON snapshot fixture. A missing file
// yields an empty store; a malformed file is an error.
func NewFromFile(path string) (*Store, error) {
	s := New()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var snap core.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	s.transactions = snap.Transactions
	s.accounts = snap.Accounts
	s.categories = snap.Categories
	s.budgets = snap.Budgets
	s.contributions = snap.Contributions
	return s, nil
}

// LoadSnapshot returns copies of all five collections.
func (s *Store) LoadSnapshot(_ context.Context) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Snapshot{
		Transactions:  append([]core.Transaction(nil), s.transactions...),
		Accounts:      append([]core.Account(nil), s.accounts...),
		Categories:    append([]core.Category(nil), s.categories...),
		Budgets:       append([]core.Budget(nil), s.budgets...),
		Contributions: append([]core.Contribution(nil), s.contributions...),
	}, nil
}

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...), nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) CreateAccount(_ context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	s.accounts = append(s.accounts, a)
	return a, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Account(nil), s.accounts...), nil
}

func (s *Store) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.accounts {
		if a.ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) CreateCategory(_ context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.categories = append(s.categories, c)
	return c, nil
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...), nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) CreateBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = uuid.NewString()
	s.budgets = append(s.budgets, b)
	return b, nil
}

func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.budgets...), nil
}

func (s *Store) DeleteBudget(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.budgets {
		if b.ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) CreateContribution(_ context.Context, c core.Contribution) (core.Contribution, error) {
	if err := c.Validate(); err != nil {
		return core.Contribution{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.contributions = append(s.contributions, c)
	return c, nil
}

func (s *Store) ListContributions(_ context.Context) ([]core.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Contribution(nil), s.contributions...), nil
}

func (s *Store) DeleteContribution(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.contributions {
		if c.ID == id {
			s.contributions = append(s.contributions[:i], s.contributions[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) SaveMonthReport(_ context.Context, r report.MonthReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.Year*100+r.Month] = r
	return nil
}

func (s *Store) ListMonthReports(_ context.Context) ([]report.MonthReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]report.MonthReport, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	// Newest first.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Year*100+out[i].Month > out[j].Year*100+out[j].Month
	})
	return out, nil
}
