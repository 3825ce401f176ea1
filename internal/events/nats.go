package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
)

// NATSBroadcaster implements Broadcaster over core NATS publish/subscribe.
// Core NATS (not JetStream) is deliberate: refresh signals are ephemeral
// and replaying missed ones after a reconnect would only cause spurious
// re-renders.
type NATSBroadcaster struct {
	conn    *nats.Conn
	subject string

	mu  sync.Mutex
	sub *nats.Subscription
}

// NewNATSBroadcaster connects to NATS and returns a broadcaster on the
// given subject.
func NewNATSBroadcaster(url, subject string) (*NATSBroadcaster, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	if subject == "" {
		subject = "weavenav.catalog"
	}
	return &NATSBroadcaster{conn: conn, subject: subject}, nil
}

// NewNATSBroadcasterWithConn wraps an existing connection (used in tests).
func NewNATSBroadcasterWithConn(conn *nats.Conn, subject string) *NATSBroadcaster {
	if subject == "" {
		subject = "weavenav.catalog"
	}
	return &NATSBroadcaster{conn: conn, subject: subject}
}

// Publish sends an event on the subject.
func (b *NATSBroadcaster) Publish(ctx context.Context, event ChangeEvent) error {
	data, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := b.conn.Publish(b.subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", b.subject, err)
	}
	return nil
}

// Subscribe starts consuming events from the subject.
func (b *NATSBroadcaster) Subscribe(handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sub != nil {
		return fmt.Errorf("already subscribed to subject %s", b.subject)
	}

	sub, err := b.conn.Subscribe(b.subject, func(msg *nats.Msg) {
		event, err := DecodeEvent(msg.Data)
		if err != nil {
			return
		}
		handler(event)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", b.subject, err)
	}
	b.sub = sub
	return nil
}

// Close drops the subscription and closes the connection.
func (b *NATSBroadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sub != nil {
		_ = b.sub.Unsubscribe()
		b.sub = nil
	}
	b.conn.Close()
	return nil
}
