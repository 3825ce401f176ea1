// Package events broadcasts catalog change signals to interested peers.
// The explorer works fully in-process; broadcasting exists so that several
// service instances (or external UI shells) can react to mutations made
// through any one of them. Backends: memory, Redis, NATS, Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types.
const (
	TypeCatalogChanged     = "catalog.changed"
	TypeConnectionsChanged = "connections.changed"
)

// ChangeEvent is the wire payload of one change signal.
type ChangeEvent struct {
	Type         string    `json:"type"`
	ConnectionID string    `json:"connection_id,omitempty"`
	At           time.Time `json:"at"`
}

// Encode serializes the event to JSON.
func (e ChangeEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEvent parses a JSON-encoded change event.
func DecodeEvent(data []byte) (ChangeEvent, error) {
	var event ChangeEvent
	err := json.Unmarshal(data, &event)
	return event, err
}

// Handler consumes incoming change events.
type Handler func(ChangeEvent)

// Broadcaster publishes and subscribes to change events on a single
// shared channel. Implementations must be safe for concurrent use.
type Broadcaster interface {
	// Publish sends a change event to all subscribers.
	Publish(ctx context.Context, event ChangeEvent) error

	// Subscribe registers a handler for incoming events.
	Subscribe(handler Handler) error

	// Close releases the backend connection.
	Close() error
}
