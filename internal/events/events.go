// Package events publishes ledger changes to interested consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// EventType identifies what happened to a ledger.
type EventType string

const (
	SharedExpenseRecorded EventType = "ledger.recorded"
	SharedExpensesCleared EventType = "ledger.cleared"
	PersonalExpenseAdded  EventType = "expense.added"
)

// Event is a lightweight notification; consumers read full records from the store.
type Event struct {
	Type       EventType       `json:"type"`
	UserID     int64           `json:"userID"`
	Entries    int64           `json:"entries"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType EventType, userID int64, entries int64, total decimal.Decimal) Event {
	return Event{
		Type:       eventType,
		UserID:     userID,
		Entries:    entries,
		Total:      total,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON creates an event from JSON bytes.
func EventFromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Publisher delivers events. Publishing is best effort: callers log failures
// and never fail the ledger operation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher discards every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
