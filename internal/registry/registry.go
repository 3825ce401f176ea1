// Package registry manages the set of known Weaviate connections and their
// clients. Connection definitions live in memory for the lifetime of the
// process; nothing is persisted across sessions.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weavenav/weavenav/internal/logging"
	"github.com/weavenav/weavenav/internal/weaviate"
)

// Status represents a connection's lifecycle state.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusError        Status = "error"
)

// ConnectionSummary is the externally visible view of a connection.
type ConnectionSummary struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Endpoint string    `json:"endpoint"`
	Status   Status    `json:"status"`
	LastUsed time.Time `json:"last_used"`
}

// connection is the internal record behind a summary.
type connection struct {
	summary ConnectionSummary
	apiKey  string
	client  weaviate.Client
}

// ClientFactory builds a client for an endpoint. Swapped out in tests.
type ClientFactory func(endpoint, apiKey string) weaviate.Client

// Manager owns the connection set. Safe for concurrent use.
type Manager struct {
	logger  *logging.Logger
	factory ClientFactory

	mu          sync.RWMutex
	connections map[string]*connection

	// createSem serializes connection creation in FIFO order.
	createSem chan struct{}

	listenerMu sync.RWMutex
	listeners  []func()
}

// NewManager creates a connection manager. A nil factory defaults to the
// REST client.
func NewManager(logger *logging.Logger, factory ClientFactory) *Manager {
	if factory == nil {
		factory = func(endpoint, apiKey string) weaviate.Client {
			opts := []weaviate.RESTOption{}
			if apiKey != "" {
				opts = append(opts, weaviate.WithAPIKey(apiKey))
			}
			return weaviate.NewRESTClient(endpoint, opts...)
		}
	}
	return &Manager{
		logger:      logger,
		factory:     factory,
		connections: make(map[string]*connection),
		createSem:   make(chan struct{}, 1),
	}
}

// Add registers a new connection definition and returns its summary.
// Creation requests are processed one at a time in arrival order.
func (m *Manager) Add(ctx context.Context, name, endpoint, apiKey string) (ConnectionSummary, error) {
	if name == "" {
		return ConnectionSummary{}, fmt.Errorf("connection name is required")
	}
	if endpoint == "" {
		return ConnectionSummary{}, fmt.Errorf("connection endpoint is required")
	}

	select {
	case m.createSem <- struct{}{}:
		defer func() { <-m.createSem }()
	case <-ctx.Done():
		return ConnectionSummary{}, ctx.Err()
	}

	m.mu.Lock()
	for _, c := range m.connections {
		if c.summary.Name == name {
			m.mu.Unlock()
			return ConnectionSummary{}, fmt.Errorf("connection %s already exists", name)
		}
	}

	summary := ConnectionSummary{
		ID:       uuid.New().String(),
		Name:     name,
		Endpoint: endpoint,
		Status:   StatusDisconnected,
		LastUsed: time.Now(),
	}
	m.connections[summary.ID] = &connection{summary: summary, apiKey: apiKey}
	m.mu.Unlock()

	m.logger.Info("Connection added", "connection_id", summary.ID, "name", name, "endpoint", endpoint)
	m.notify()
	return summary, nil
}

// Remove deletes a connection definition.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	_, exists := m.connections[id]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("connection %s not found", id)
	}
	delete(m.connections, id)
	m.mu.Unlock()

	m.logger.Info("Connection removed", "connection_id", id)
	m.notify()
	return nil
}

// Get returns a connection summary by id.
func (m *Manager) Get(id string) (ConnectionSummary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.connections[id]
	if !exists {
		return ConnectionSummary{}, false
	}
	return c.summary, true
}

// List returns all connections sorted by most-recently-used first.
func (m *Manager) List() []ConnectionSummary {
	m.mu.RLock()
	out := make([]ConnectionSummary, 0, len(m.connections))
	for _, c := range m.connections {
		out = append(out, c.summary)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].LastUsed.Equal(out[j].LastUsed) {
			return out[i].Name < out[j].Name
		}
		return out[i].LastUsed.After(out[j].LastUsed)
	})
	return out
}

// Client returns the active client for a connected connection.
func (m *Manager) Client(id string) (weaviate.Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.connections[id]
	if !exists || c.client == nil {
		return nil, false
	}
	return c.client, true
}

// IsConnected reports whether the connection is currently connected.
func (m *Manager) IsConnected(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.connections[id]
	return exists && c.summary.Status == StatusConnected
}

// Connect builds a client for the connection and verifies it by fetching
// server metadata. On success the status becomes connected and LastUsed
// is bumped.
func (m *Manager) Connect(ctx context.Context, id string) error {
	m.mu.Lock()
	c, exists := m.connections[id]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("connection %s not found", id)
	}
	endpoint, apiKey := c.summary.Endpoint, c.apiKey
	c.summary.Status = StatusConnecting
	m.mu.Unlock()

	client := m.factory(endpoint, apiKey)
	if _, err := client.GetMeta(ctx); err != nil {
		m.mu.Lock()
		c.summary.Status = StatusError
		m.mu.Unlock()
		m.notify()
		return fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}

	m.mu.Lock()
	c.client = client
	c.summary.Status = StatusConnected
	c.summary.LastUsed = time.Now()
	m.mu.Unlock()

	m.logger.Info("Connection established", "connection_id", id, "endpoint", endpoint)
	m.notify()
	return nil
}

// Disconnect drops the client and marks the connection disconnected.
func (m *Manager) Disconnect(id string) error {
	m.mu.Lock()
	c, exists := m.connections[id]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("connection %s not found", id)
	}
	c.client = nil
	c.summary.Status = StatusDisconnected
	m.mu.Unlock()

	m.logger.Info("Connection closed", "connection_id", id)
	m.notify()
	return nil
}

// Touch bumps a connection's LastUsed timestamp.
func (m *Manager) Touch(id string) {
	m.mu.Lock()
	if c, exists := m.connections[id]; exists {
		c.summary.LastUsed = time.Now()
	}
	m.mu.Unlock()
}

// OnConnectionsChanged registers a listener fired after every change to
// the connection set or any connection's status.
func (m *Manager) OnConnectionsChanged(fn func()) {
	m.listenerMu.Lock()
	m.listeners = append(m.listeners, fn)
	m.listenerMu.Unlock()
}

func (m *Manager) notify() {
	m.listenerMu.RLock()
	listeners := make([]func(), len(m.listeners))
	copy(listeners, m.listeners)
	m.listenerMu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
