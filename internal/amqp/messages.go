package amqp

import (
	"encoding/json"
	"time"
)

const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// LedgerEventMessage signals that a ledger record changed. It carries only
// the record identity and the affected period; the worker reloads the full
// snapshot from the database when it recomputes.
type LedgerEventMessage struct {
	Entity    string    `json:"entity"` // transaction, account, category, budget, contribution
	Action    string    `json:"action"` // created, deleted
	ID        string    `json:"id"`
	Year      int       `json:"year,omitempty"`  // affected month, when the record carries a date
	Month     int       `json:"month,omitempty"` // 0 means "not tied to one month"
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates a change event for a dated record. Pass zero
// year and month for records not tied to one month.
func NewLedgerEventMessage(entity, action, id string, year, month int) *LedgerEventMessage {
	return &LedgerEventMessage{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
