package explorer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/weavenav/weavenav/internal/config"
	"github.com/weavenav/weavenav/internal/events"
	"github.com/weavenav/weavenav/internal/logging"
	"github.com/weavenav/weavenav/internal/registry"
	"github.com/weavenav/weavenav/internal/utils"
	"github.com/weavenav/weavenav/internal/weaviate"
)

// Options tunes the expansion engine.
type Options struct {
	// DebounceWindow coalesces change signals; zero means the default.
	DebounceWindow time.Duration
	// ErrorClipLength caps error text on message leaves.
	ErrorClipLength int
	// CacheFailedSections caches a failed section fetch until a forced
	// refresh invalidates the slot. The zero value leaves failures
	// uncached so the next expansion retries.
	CacheFailedSections bool
	// RequestTimeout bounds each remote fetch.
	RequestTimeout time.Duration
}

// OptionsFromConfig maps the explorer configuration onto engine options.
func OptionsFromConfig(cfg config.ExplorerConfig) Options {
	return Options{
		DebounceWindow:      cfg.DebounceWindow,
		ErrorClipLength:     cfg.ErrorClipLength,
		CacheFailedSections: !cfg.RetryFailedSections,
		RequestTimeout:      cfg.RequestTimeout,
	}
}

func (o *Options) applyDefaults() {
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = DefaultDebounceWindow
	}
	if o.ErrorClipLength <= 0 {
		o.ErrorClipLength = utils.DefaultErrorClipLength
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = utils.RemoteFetchTimeout
	}
}

// fetchFailure marks a slot whose last fetch failed, cached only when
// CacheFailedSections is enabled.
type fetchFailure struct {
	err error
}

// inflightFetch memoizes one in-progress slot fetch so concurrent
// expansions of the same unfetched section share a single remote call.
type inflightFetch struct {
	done  chan struct{}
	value interface{}
	err   error
}

// Explorer is the explicitly constructed context object tying together the
// connection registry, the cache store and the change notifier. One
// instance serves a session; nothing here is a package-level singleton.
type Explorer struct {
	logger   *logging.Logger
	registry *registry.Manager
	store    *Store
	notifier *Notifier
	opts     Options

	inflightMu sync.Mutex
	inflight   map[string]*inflightFetch
}

// New creates an explorer. The broadcaster may be nil for purely
// in-process notification.
func New(logger *logging.Logger, reg *registry.Manager, broadcaster events.Broadcaster, opts Options) *Explorer {
	opts.applyDefaults()

	e := &Explorer{
		logger:   logger,
		registry: reg,
		store:    NewStore(),
		notifier: NewNotifier(logger, opts.DebounceWindow, broadcaster),
		opts:     opts,
		inflight: make(map[string]*inflightFetch),
	}

	// Connection lifecycle changes drive the debounced notification.
	reg.OnConnectionsChanged(e.notifier.Refresh)
	return e
}

// Store exposes the cache store (read-only use outside the engine).
func (e *Explorer) Store() *Store {
	return e.store
}

// Notifier exposes the change notifier for listener registration.
func (e *Explorer) Notifier() *Notifier {
	return e.notifier
}

// Refresh requests a debounced re-render notification.
func (e *Explorer) Refresh() {
	e.notifier.Refresh()
}

// ForceRefresh notifies immediately, bypassing the debounce.
func (e *Explorer) ForceRefresh() {
	e.notifier.ForceRefresh()
}

// GetParent resolves a node's parent structurally. Nil for roots.
func (e *Explorer) GetParent(node Node) *Node {
	return ParentOf(node)
}

// GetTreeItem recomputes a node's presentation state from the cache.
// Identity fields pass through untouched.
func (e *Explorer) GetTreeItem(node Node) Node {
	switch node.Type {
	case ItemConnection:
		if summary, ok := e.registry.Get(node.ConnectionID); ok {
			return e.connectionNode(summary)
		}
	case ItemCollection:
		if node.Label == "" {
			node.Label = node.Resource
		}
		node.Icon = "database"
		node.Expandable = true
	case ItemMessage, ItemObject:
		// Presentation-only leaves carry their own labels.
	default:
		if node.Label == "" {
			node.Label = sectionLabel(node.Type)
		}
	}
	return node
}

// fetchSlot resolves a slot value, fetching it from the remote on a cache
// miss. Concurrent misses on the same key share one fetch. Failed fetches
// leave the slot unfetched (or cache the failure, depending on options).
func (e *Explorer) fetchSlot(ctx context.Context, connectionID string, slot Slot,
	fetch func(ctx context.Context, client weaviate.Client) (interface{}, error),
) (interface{}, error) {
	if value, fetched := e.store.Get(connectionID, slot); fetched {
		if failure, failed := value.(fetchFailure); failed {
			return nil, failure.err
		}
		return value, nil
	}

	client, ok := e.registry.Client(connectionID)
	if !ok {
		return nil, NotConnectedError("Client not available")
	}

	key := connectionID + "/" + string(slot)
	e.inflightMu.Lock()
	if call, running := e.inflight[key]; running {
		e.inflightMu.Unlock()
		select {
		case <-call.done:
			return call.value, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &inflightFetch{done: make(chan struct{})}
	e.inflight[key] = call
	e.inflightMu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, e.opts.RequestTimeout)
	value, err := fetch(fetchCtx, client)
	cancel()

	// Re-check connection status before writing: a late fetch resolving
	// after disconnect must not repopulate the cleared cache.
	if connected := e.registry.IsConnected(connectionID); connected {
		if err == nil {
			e.writeSlot(connectionID, slot, value)
		} else if e.opts.CacheFailedSections {
			e.store.Set(connectionID, slot, fetchFailure{err: err})
		}
	}

	call.value, call.err = value, err
	close(call.done)

	e.inflightMu.Lock()
	delete(e.inflight, key)
	e.inflightMu.Unlock()

	if err != nil {
		e.logger.Warn("Section fetch failed",
			"connection_id", connectionID, "slot", string(slot), "error", err)
	}
	return value, err
}

// writeSlot stores a fetched value, routing collections through the
// normalizing setter.
func (e *Explorer) writeSlot(connectionID string, slot Slot, value interface{}) {
	if slot == SlotCollections {
		collections, _ := value.([]weaviate.CollectionSchema)
		e.store.SetCollections(connectionID, collections)
		return
	}
	e.store.Set(connectionID, slot, value)
}

// Per-slot loaders. Each consults the cache and fetches on a miss.

func (e *Explorer) loadCollections(ctx context.Context, connectionID string) ([]weaviate.CollectionSchema, error) {
	value, err := e.fetchSlot(ctx, connectionID, SlotCollections,
		func(ctx context.Context, client weaviate.Client) (interface{}, error) {
			collections, err := client.ListCollections(ctx)
			if err != nil {
				return nil, err
			}
			return collections, nil
		})
	if err != nil {
		return nil, err
	}
	collections, _ := value.([]weaviate.CollectionSchema)
	return collections, nil
}

func (e *Explorer) loadClusterMetadata(ctx context.Context, connectionID string) (*weaviate.ClusterMetadata, error) {
	value, err := e.fetchSlot(ctx, connectionID, SlotClusterMetadata,
		func(ctx context.Context, client weaviate.Client) (interface{}, error) {
			return client.GetMeta(ctx)
		})
	if err != nil {
		return nil, err
	}
	meta, _ := value.(*weaviate.ClusterMetadata)
	if meta == nil {
		return nil, NotFoundError("Server metadata not available")
	}
	return meta, nil
}

func (e *Explorer) loadClusterNodes(ctx context.Context, connectionID string) ([]weaviate.NodeStatus, error) {
	value, err := e.fetchSlot(ctx, connectionID, SlotClusterNodes,
		func(ctx context.Context, client weaviate.Client) (interface{}, error) {
			return client.ListNodes(ctx)
		})
	if err != nil {
		return nil, err
	}
	nodes, _ := value.([]weaviate.NodeStatus)
	return nodes, nil
}

func (e *Explorer) loadClusterStatistics(ctx context.Context, connectionID string) (*weaviate.ClusterStatistics, error) {
	value, err := e.fetchSlot(ctx, connectionID, SlotClusterStatistics,
		func(ctx context.Context, client weaviate.Client) (interface{}, error) {
			return client.GetStatistics(ctx)
		})
	if err != nil {
		return nil, err
	}
	stats, _ := value.(*weaviate.ClusterStatistics)
	return stats, nil
}

func (e *Explorer) loadAliases(ctx context.Context, connectionID string) ([]weaviate.Alias, error) {
	value, err := e.fetchSlot(ctx, connectionID, SlotAliases,
		func(ctx context.Context, client weaviate.Client) (interface{}, error) {
			return client.ListAliases(ctx)
		})
	if err != nil {
		return nil, err
	}
	aliases, _ := value.([]weaviate.Alias)
	return aliases, nil
}

func (e *Explorer) loadBackups(ctx context.Context, connectionID string) ([]weaviate.Backup, error) {
	value, err := e.fetchSlot(ctx, connectionID, SlotBackups,
		func(ctx context.Context, client weaviate.Client) (interface{}, error) {
			return client.ListBackups(ctx)
		})
	if err != nil {
		return nil, err
	}
	backups, _ := value.([]weaviate.Backup)
	return backups, nil
}

func (e *Explorer) loadRBAC(ctx context.Context, connectionID string) (*weaviate.RBACState, error) {
	value, err := e.fetchSlot(ctx, connectionID, SlotRBAC,
		func(ctx context.Context, client weaviate.Client) (interface{}, error) {
			users, err := client.ListUsers(ctx)
			if err != nil {
				return nil, err
			}
			roles, err := client.ListRoles(ctx)
			if err != nil {
				return nil, err
			}
			groups, err := client.ListGroupAssignments(ctx)
			if err != nil {
				return nil, err
			}
			return &weaviate.RBACState{
				Users:            users,
				Roles:            roles,
				GroupAssignments: groups,
			}, nil
		})
	if err != nil {
		return nil, err
	}
	state, _ := value.(*weaviate.RBACState)
	if state == nil {
		return nil, NotFoundError("Access control data not available")
	}
	return state, nil
}

// primeSections populates the primary sections after a connect. Failures
// are logged, never surfaced; expansion retries them on demand.
func (e *Explorer) primeSections(ctx context.Context, connectionID string) {
	if _, err := e.loadClusterMetadata(ctx, connectionID); err != nil {
		e.logger.Debug("Priming server metadata failed", "connection_id", connectionID, "error", err)
	}
	if _, err := e.loadClusterNodes(ctx, connectionID); err != nil {
		e.logger.Debug("Priming cluster nodes failed", "connection_id", connectionID, "error", err)
	}
	if _, err := e.loadCollections(ctx, connectionID); err != nil {
		e.logger.Debug("Priming collections failed", "connection_id", connectionID, "error", err)
	}
}

// messageLeaf builds a non-expandable informational node.
func messageLeaf(connectionID, text string) Node {
	return Node{
		Type:         ItemMessage,
		ConnectionID: connectionID,
		Label:        text,
		Icon:         "info",
	}
}

// errorLeaf builds a message node carrying a clipped error string.
func (e *Explorer) errorLeaf(connectionID string, err error) Node {
	return Node{
		Type:         ItemMessage,
		ConnectionID: connectionID,
		Label:        clip(err.Error(), e.opts.ErrorClipLength),
		Icon:         "error",
		Tooltip:      fmt.Sprintf("Fetch failed: %s", clip(err.Error(), e.opts.ErrorClipLength)),
	}
}
