package explorer

import (
	"context"
	"sync"
	"time"

	"github.com/weavenav/weavenav/internal/events"
	"github.com/weavenav/weavenav/internal/logging"
	"github.com/weavenav/weavenav/internal/utils"
)

// DefaultDebounceWindow is the quiet period used to coalesce rapid
// successive change signals.
const DefaultDebounceWindow = 100 * time.Millisecond

// Notifier coalesces change signals into re-render notifications. Refresh
// schedules a notification after the debounce window, collapsing bursts
// into one; ForceRefresh cancels any pending schedule and fires
// immediately, exactly once per call.
type Notifier struct {
	logger      *logging.Logger
	window      time.Duration
	broadcaster events.Broadcaster

	mu      sync.Mutex
	pending *time.Timer
	closed  bool

	listenerMu sync.RWMutex
	listeners  []func()
}

// NewNotifier creates a notifier with the given debounce window. A zero
// window falls back to the default. The broadcaster is optional; when set,
// every fired notification is also published as a catalog change event.
func NewNotifier(logger *logging.Logger, window time.Duration, broadcaster events.Broadcaster) *Notifier {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Notifier{
		logger:      logger,
		window:      window,
		broadcaster: broadcaster,
	}
}

// Subscribe registers a listener invoked on every fired notification.
func (n *Notifier) Subscribe(fn func()) {
	n.listenerMu.Lock()
	n.listeners = append(n.listeners, fn)
	n.listenerMu.Unlock()
}

// Refresh requests a debounced notification. Calls arriving within the
// window reset the pending schedule, so a burst fires once.
func (n *Notifier) Refresh() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	if n.pending != nil {
		n.pending.Stop()
	}
	n.pending = time.AfterFunc(n.window, func() {
		n.mu.Lock()
		n.pending = nil
		n.mu.Unlock()
		n.fire()
	})
}

// ForceRefresh cancels any pending schedule and fires immediately.
func (n *Notifier) ForceRefresh() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	if n.pending != nil {
		n.pending.Stop()
		n.pending = nil
	}
	n.mu.Unlock()

	n.fire()
}

// Close cancels any pending schedule and drops further signals.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	if n.pending != nil {
		n.pending.Stop()
		n.pending = nil
	}
}

func (n *Notifier) fire() {
	n.listenerMu.RLock()
	listeners := make([]func(), len(n.listeners))
	copy(listeners, n.listeners)
	n.listenerMu.RUnlock()

	for _, fn := range listeners {
		fn()
	}

	if n.broadcaster != nil {
		ctx, cancel := context.WithTimeout(context.Background(), utils.BroadcastTimeout)
		defer cancel()
		event := events.ChangeEvent{Type: events.TypeCatalogChanged, At: time.Now().UTC()}
		if err := n.broadcaster.Publish(ctx, event); err != nil {
			n.logger.Warn("Failed to broadcast catalog change", "error", err)
		}
	}
}
