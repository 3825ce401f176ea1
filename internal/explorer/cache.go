package explorer

import (
	"sync"

	"github.com/weavenav/weavenav/internal/weaviate"
)

// Slot names one cache compartment within a connection's cache record.
type Slot string

const (
	SlotCollections       Slot = "collections"
	SlotClusterMetadata   Slot = "clusterMetadata"
	SlotClusterNodes      Slot = "clusterNodes"
	SlotClusterStatistics Slot = "clusterStatistics"
	SlotAliases           Slot = "aliases"
	SlotBackups           Slot = "backups"
	SlotRBAC              Slot = "rbac"
)

// AllSlots lists every slot, used when invalidating a whole connection.
var AllSlots = []Slot{
	SlotCollections,
	SlotClusterMetadata,
	SlotClusterNodes,
	SlotClusterStatistics,
	SlotAliases,
	SlotBackups,
	SlotRBAC,
}

// Store is the per-connection, per-slot in-memory cache. A slot is in one
// of three states: unfetched (absent), fetched-empty (present, empty
// collection) or fetched-populated. Readers must never conflate unfetched
// with empty; the second return value of Get carries the distinction.
//
// The store is the only shared mutable resource of the explorer. It is
// written to by the expansion engine (on fetch) and the mutation layer
// (on successful mutation), and by nobody else.
type Store struct {
	mu    sync.RWMutex
	conns map[string]map[Slot]interface{}
}

// NewStore creates an empty cache store.
func NewStore() *Store {
	return &Store{conns: make(map[string]map[Slot]interface{})}
}

// Get returns the slot value and whether the slot has been fetched.
// (nil, false) means unfetched and must trigger a fetch.
func (s *Store) Get(connectionID string, slot Slot) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots, exists := s.conns[connectionID]
	if !exists {
		return nil, false
	}
	value, exists := slots[slot]
	return value, exists
}

// Set stores a slot value, marking the slot fetched even when the value
// is an empty collection.
func (s *Store) Set(connectionID string, slot Slot, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, exists := s.conns[connectionID]
	if !exists {
		slots = make(map[Slot]interface{})
		s.conns[connectionID] = slots
	}
	slots[slot] = value
}

// Invalidate clears the given slots for a connection; with no slots it
// clears the connection's entire cache record (used on disconnect).
func (s *Store) Invalidate(connectionID string, slots ...Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(slots) == 0 {
		delete(s.conns, connectionID)
		return
	}
	record, exists := s.conns[connectionID]
	if !exists {
		return
	}
	for _, slot := range slots {
		delete(record, slot)
	}
}

// Collections returns the cached collection list for a connection.
func (s *Store) Collections(connectionID string) ([]weaviate.CollectionSchema, bool) {
	value, fetched := s.Get(connectionID, SlotCollections)
	if !fetched {
		return nil, false
	}
	collections, _ := value.([]weaviate.CollectionSchema)
	return collections, true
}

// SetCollections stores the collection list, normalizing every schema's
// dataType representation at the write boundary.
func (s *Store) SetCollections(connectionID string, collections []weaviate.CollectionSchema) {
	for i := range collections {
		weaviate.NormalizeSchema(&collections[i])
	}
	s.Set(connectionID, SlotCollections, collections)
}

// Collection looks up a single cached collection schema by name.
func (s *Store) Collection(connectionID, name string) (*weaviate.CollectionSchema, bool) {
	collections, fetched := s.Collections(connectionID)
	if !fetched {
		return nil, false
	}
	for i := range collections {
		if collections[i].Class == name {
			return &collections[i], true
		}
	}
	return nil, false
}

// RemoveCollection patches the cached collection list in place, filtering
// out the named entry. A no-op when the slot is unfetched or the name is
// absent.
func (s *Store) RemoveCollection(connectionID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, exists := s.conns[connectionID]
	if !exists {
		return
	}
	value, exists := slots[SlotCollections]
	if !exists {
		return
	}
	collections, _ := value.([]weaviate.CollectionSchema)
	filtered := make([]weaviate.CollectionSchema, 0, len(collections))
	for _, c := range collections {
		if c.Class != name {
			filtered = append(filtered, c)
		}
	}
	slots[SlotCollections] = filtered
}

// ClusterMetadata returns the cached server metadata.
func (s *Store) ClusterMetadata(connectionID string) (*weaviate.ClusterMetadata, bool) {
	value, fetched := s.Get(connectionID, SlotClusterMetadata)
	if !fetched {
		return nil, false
	}
	meta, _ := value.(*weaviate.ClusterMetadata)
	return meta, true
}

// ClusterNodes returns the cached node status list.
func (s *Store) ClusterNodes(connectionID string) ([]weaviate.NodeStatus, bool) {
	value, fetched := s.Get(connectionID, SlotClusterNodes)
	if !fetched {
		return nil, false
	}
	nodes, _ := value.([]weaviate.NodeStatus)
	return nodes, true
}

// ClusterStatistics returns the cached raft statistics.
func (s *Store) ClusterStatistics(connectionID string) (*weaviate.ClusterStatistics, bool) {
	value, fetched := s.Get(connectionID, SlotClusterStatistics)
	if !fetched {
		return nil, false
	}
	stats, _ := value.(*weaviate.ClusterStatistics)
	return stats, true
}

// Aliases returns the cached alias list.
func (s *Store) Aliases(connectionID string) ([]weaviate.Alias, bool) {
	value, fetched := s.Get(connectionID, SlotAliases)
	if !fetched {
		return nil, false
	}
	aliases, _ := value.([]weaviate.Alias)
	return aliases, true
}

// Backups returns the cached backup list.
func (s *Store) Backups(connectionID string) ([]weaviate.Backup, bool) {
	value, fetched := s.Get(connectionID, SlotBackups)
	if !fetched {
		return nil, false
	}
	backups, _ := value.([]weaviate.Backup)
	return backups, true
}

// RBAC returns the cached access-control state.
func (s *Store) RBAC(connectionID string) (*weaviate.RBACState, bool) {
	value, fetched := s.Get(connectionID, SlotRBAC)
	if !fetched {
		return nil, false
	}
	state, _ := value.(*weaviate.RBACState)
	return state, true
}
