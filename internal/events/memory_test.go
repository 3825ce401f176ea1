package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoryBroadcaster_PublishSubscribe(t *testing.T) {
	b := NewMemoryBroadcaster()
	defer func() { _ = b.Close() }()

	var received int32
	var lastType atomic.Value
	if err := b.Subscribe(func(event ChangeEvent) {
		lastType.Store(event.Type)
		atomic.AddInt32(&received, 1)
	}); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	event := ChangeEvent{Type: TypeCatalogChanged, At: time.Now().UTC()}
	if err := b.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	waitFor(t, func() bool { return atomic.LoadInt32(&received) == 1 })
	if got := lastType.Load(); got != TypeCatalogChanged {
		t.Errorf("Expected %q, got %v", TypeCatalogChanged, got)
	}
}

func TestMemoryBroadcaster_MultipleHandlers(t *testing.T) {
	b := NewMemoryBroadcaster()
	defer func() { _ = b.Close() }()

	var count int32
	for i := 0; i < 3; i++ {
		_ = b.Subscribe(func(ChangeEvent) { atomic.AddInt32(&count, 1) })
	}

	if err := b.Publish(context.Background(), ChangeEvent{Type: TypeCatalogChanged}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	waitFor(t, func() bool { return atomic.LoadInt32(&count) == 3 })
}

func TestMemoryBroadcaster_ClosedRejects(t *testing.T) {
	b := NewMemoryBroadcaster()
	_ = b.Close()

	if err := b.Publish(context.Background(), ChangeEvent{Type: TypeCatalogChanged}); err == nil {
		t.Error("Expected publish error after close")
	}
	if err := b.Subscribe(func(ChangeEvent) {}); err == nil {
		t.Error("Expected subscribe error after close")
	}

	// Double close is a no-op.
	if err := b.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}

func TestChangeEvent_EncodeDecode(t *testing.T) {
	event := ChangeEvent{
		Type:         TypeConnectionsChanged,
		ConnectionID: "c1",
		At:           time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	}

	data, err := event.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Type != event.Type || decoded.ConnectionID != event.ConnectionID || !decoded.At.Equal(event.At) {
		t.Errorf("Round trip mismatch: %+v", decoded)
	}

	if _, err := DecodeEvent([]byte("{bad")); err == nil {
		t.Error("Expected decode error for invalid JSON")
	}
}

// waitFor polls a condition with a deadline, avoiding fixed sleeps.
func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Condition not met before deadline")
}
