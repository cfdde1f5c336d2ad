// Package services orchestrates ledger mutations: every write goes to the
// store first, then a change event is published for the report worker.
// Publishing is best-effort; a mutation never fails because the broker is
// down.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/ledger"
)

// EventPublisher is the slice of the AMQP client the service needs.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error
	Close() error
}

// LedgerService orchestrates ledger operations across the store and AMQP.
type LedgerService struct {
	store     ledger.Store
	publisher EventPublisher
}

func NewLedgerService(store ledger.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// Store exposes the underlying store for read paths.
func (s *LedgerService) Store() ledger.Store {
	return s.store
}

func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	created, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.publishEvent(ctx, "transaction", amqp.ActionCreated, created.ID, created.Date)
	return created, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, "transaction", amqp.ActionDeleted, id, core.Date{})
	return nil
}

func (s *LedgerService) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	created, err := s.store.CreateAccount(ctx, a)
	if err != nil {
		return core.Account{}, fmt.Errorf("save account: %w", err)
	}
	s.publishEvent(ctx, "account", amqp.ActionCreated, created.ID, core.Date{})
	return created, nil
}

func (s *LedgerService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.store.DeleteAccount(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, "account", amqp.ActionDeleted, id, core.Date{})
	return nil
}

func (s *LedgerService) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	created, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return core.Category{}, fmt.Errorf("save category: %w", err)
	}
	s.publishEvent(ctx, "category", amqp.ActionCreated, created.ID, core.Date{})
	return created, nil
}

func (s *LedgerService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, "category", amqp.ActionDeleted, id, core.Date{})
	return nil
}

func (s *LedgerService) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	created, err := s.store.CreateBudget(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("save budget: %w", err)
	}
	s.publishEvent(ctx, "budget", amqp.ActionCreated, created.ID, core.Date{})
	return created, nil
}

func (s *LedgerService) DeleteBudget(ctx context.Context, id string) error {
	if err := s.store.DeleteBudget(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, "budget", amqp.ActionDeleted, id, core.Date{})
	return nil
}

func (s *LedgerService) CreateContribution(ctx context.Context, c core.Contribution) (core.Contribution, error) {
	created, err := s.store.CreateContribution(ctx, c)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("save contribution: %w", err)
	}
	s.publishEvent(ctx, "contribution", amqp.ActionCreated, created.ID, created.Date)
	return created, nil
}

func (s *LedgerService) DeleteContribution(ctx context.Context, id string) error {
	if err := s.store.DeleteContribution(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, "contribution", amqp.ActionDeleted, id, core.Date{})
	return nil
}

// publishEvent never propagates broker errors; the record is already saved.
func (s *LedgerService) publishEvent(ctx context.Context, entity, action, id string, date core.Date) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not available, skipping ledger event",
			"entity", entity, "id", id)
		return
	}

	var year, month int
	if !date.IsZero() {
		year, month = date.Year(), int(date.Month())
	}

	msg := amqp.NewLedgerEventMessage(entity, action, id, year, month)
	if err := s.publisher.PublishLedgerEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"entity", entity,
			"action", action,
			"id", id,
			"error", err)
	}
}

// Close releases the publisher connection. The store is owned by the backend
// factory and closed there.
func (s *LedgerService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}
