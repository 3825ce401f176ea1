package events

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBroadcaster implements Broadcaster with an in-memory channel.
// Useful for single-instance deployments and tests.
type MemoryBroadcaster struct {
	mu       sync.RWMutex
	handlers []Handler
	ch       chan ChangeEvent
	cancel   context.CancelFunc
	closed   bool
}

// NewMemoryBroadcaster creates an in-memory broadcaster.
func NewMemoryBroadcaster() *MemoryBroadcaster {
	ctx, cancel := context.WithCancel(context.Background())
	b := &MemoryBroadcaster{
		ch:     make(chan ChangeEvent, 1024),
		cancel: cancel,
	}

	go b.dispatch(ctx)
	return b
}

func (b *MemoryBroadcaster) dispatch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-b.ch:
			b.mu.RLock()
			handlers := make([]Handler, len(b.handlers))
			copy(handlers, b.handlers)
			b.mu.RUnlock()

			for _, handler := range handlers {
				handler(event)
			}
		}
	}
}

// Publish queues an event for delivery to all handlers.
func (b *MemoryBroadcaster) Publish(ctx context.Context, event ChangeEvent) error {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return fmt.Errorf("broadcaster is closed")
	}

	select {
	case b.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("event channel full")
	}
}

// Subscribe registers a handler.
func (b *MemoryBroadcaster) Subscribe(handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("broadcaster is closed")
	}
	b.handlers = append(b.handlers, handler)
	return nil
}

// Close stops the dispatch loop.
func (b *MemoryBroadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.cancel()
	return nil
}
