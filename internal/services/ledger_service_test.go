package services

import (
	"context"
	"errors"
	"testing"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/ledger"
	"financas/internal/ledger/memory"
)

type fakePublisher struct {
	events []*amqp.LedgerEventMessage
	err    error
	closed bool
}

func (f *fakePublisher) PublishLedgerEvent(_ context.Context, msg *amqp.LedgerEventMessage) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, msg)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func TestCreateTransactionPublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewLedgerService(memory.New(), pub)

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		Date:      core.NewDate(2025, 6, 15),
		Amount:    core.Money{Cents: 1200},
		Type:      core.Expense,
		AccountID: "acc",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("events = %d, want 1", len(pub.events))
	}
	e := pub.events[0]
	if e.Entity != "transaction" || e.Action != amqp.ActionCreated || e.ID != created.ID {
		t.Errorf("unexpected event %+v", e)
	}
	if e.Year != 2025 || e.Month != 6 {
		t.Errorf("event period = %d-%d, want 2025-6", e.Year, e.Month)
	}
}

func TestMutationSucceedsWhenBrokerFails(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection refused")}
	svc := NewLedgerService(memory.New(), pub)

	if _, err := svc.CreateAccount(context.Background(), core.Account{Name: "Conta"}); err != nil {
		t.Fatalf("mutation must not fail on broker error, got %v", err)
	}

	accounts, _ := svc.Store().ListAccounts(context.Background())
	if len(accounts) != 1 {
		t.Fatalf("account not saved: %d", len(accounts))
	}
}

func TestMutationWithoutPublisher(t *testing.T) {
	svc := NewLedgerService(memory.New(), nil)

	cat, err := svc.CreateCategory(context.Background(), core.Category{Name: "Moradia"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteCategory(context.Background(), cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestStoreErrorStopsEvent(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewLedgerService(memory.New(), pub)

	if err := svc.DeleteBudget(context.Background(), "missing"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("no event should be published for a failed mutation, got %d", len(pub.events))
	}

	if _, err := svc.CreateContribution(context.Background(), core.Contribution{}); err == nil {
		t.Fatal("invalid contribution must fail")
	}
	if len(pub.events) != 0 {
		t.Errorf("no event should be published for invalid input, got %d", len(pub.events))
	}
}

func TestDeletePublishesEventWithoutPeriod(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewLedgerService(memory.New(), pub)

	tx, err := svc.CreateTransaction(context.Background(), core.Transaction{
		Date:      core.NewDate(2025, 6, 15),
		Amount:    core.Money{Cents: 100},
		Type:      core.Income,
		AccountID: "acc",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteTransaction(context.Background(), tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	e := pub.events[len(pub.events)-1]
	if e.Action != amqp.ActionDeleted || e.Year != 0 || e.Month != 0 {
		t.Errorf("delete event = %+v, want deleted action with zero period", e)
	}
}

func TestCloseClosesPublisher(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewLedgerService(memory.New(), pub)
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !pub.closed {
		t.Error("publisher not closed")
	}
}
