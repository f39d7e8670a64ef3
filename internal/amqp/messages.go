package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

type EventType string

const (
	ServiceCreated EventType = "service.created"
	ServiceUpdated EventType = "service.updated"
	ExpenseCreated EventType = "expense.created"
	ClientDeleted  EventType = "client.deleted"
)

func (t EventType) IsValid() bool {
	switch t {
	case ServiceCreated, ServiceUpdated, ExpenseCreated, ClientDeleted:
		return true
	}
	return false
}

// Event is a lightweight domain event. It carries ids only; consumers fetch
// the current row from the store.
type Event struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
	EntityID  string    `json:"entity_id"`
	Count     int64     `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps an event with the current time
func NewEvent(t EventType, userID, entityID string) Event {
	return Event{
		Type:      t,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes and validates an event body
func EventFromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	if !e.Type.IsValid() {
		return Event{}, fmt.Errorf("unknown event type %q", e.Type)
	}
	if e.UserID == "" || e.EntityID == "" {
		return Event{}, fmt.Errorf("event %s missing user or entity id", e.Type)
	}
	return e, nil
}
