package events

import (
	"testing"

	"github.com/weavenav/weavenav/internal/config"
)

func TestNewBroadcaster_DefaultsToMemory(t *testing.T) {
	b, err := NewBroadcaster(config.EventsConfig{})
	if err != nil {
		t.Fatalf("NewBroadcaster failed: %v", err)
	}
	defer func() { _ = b.Close() }()

	if _, ok := b.(*MemoryBroadcaster); !ok {
		t.Errorf("Expected memory broadcaster, got %T", b)
	}
}

func TestNewBroadcaster_TypeCaseInsensitive(t *testing.T) {
	b, err := NewBroadcaster(config.EventsConfig{Type: "Memory"})
	if err != nil {
		t.Fatalf("NewBroadcaster failed: %v", err)
	}
	defer func() { _ = b.Close() }()

	if _, ok := b.(*MemoryBroadcaster); !ok {
		t.Errorf("Expected memory broadcaster, got %T", b)
	}
}

func TestNewBroadcaster_UnsupportedType(t *testing.T) {
	if _, err := NewBroadcaster(config.EventsConfig{Type: "rabbitmq"}); err == nil {
		t.Error("Expected error for unsupported type")
	}
}

func TestNewBroadcaster_NATS(t *testing.T) {
	url, cleanup := setupTestNATS(t)
	defer cleanup()

	b, err := NewBroadcaster(config.EventsConfig{Type: "nats", URL: url})
	if err != nil {
		t.Fatalf("NewBroadcaster failed: %v", err)
	}
	defer func() { _ = b.Close() }()

	if _, ok := b.(*NATSBroadcaster); !ok {
		t.Errorf("Expected NATS broadcaster, got %T", b)
	}
}
