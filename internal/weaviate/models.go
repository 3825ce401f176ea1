// Package weaviate contains the data model for remote Weaviate resources
// and a minimal REST client exposing the list/get/create/delete operations
// the catalog explorer needs.
package weaviate

import (
	"encoding/json"
	"strings"
)

// DataType holds a property data type. The wire format is either a plain
// string or an array of strings; the first element carries the semantic type.
type DataType []string

// UnmarshalJSON accepts both the string and array-of-string wire forms.
func (d *DataType) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*d = arr
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*d = DataType{single}
	return nil
}

// Primary returns the semantic type (first element), empty if unset.
func (d DataType) Primary() string {
	if len(d) == 0 {
		return ""
	}
	return d[0]
}

// IsObject reports whether the type is object or object[], any case.
func (d DataType) IsObject() bool {
	switch strings.ToLower(d.Primary()) {
	case "object", "object[]":
		return true
	}
	return false
}

// Property represents a property definition inside a collection schema.
// Object-typed properties nest further properties to unbounded depth.
type Property struct {
	Name              string                 `json:"name"`
	DataType          DataType               `json:"dataType"`
	Description       string                 `json:"description,omitempty"`
	Tokenization      string                 `json:"tokenization,omitempty"`
	IndexFilterable   *bool                  `json:"indexFilterable,omitempty"`
	IndexSearchable   *bool                  `json:"indexSearchable,omitempty"`
	IndexRangeFilters *bool                  `json:"indexRangeFilters,omitempty"`
	IndexInverted     *bool                  `json:"indexInverted,omitempty"`
	ModuleConfig      map[string]interface{} `json:"moduleConfig,omitempty"`
	NestedProperties  []Property             `json:"nestedProperties,omitempty"`
}

// VectorConfig represents one named-vector configuration of a collection.
type VectorConfig struct {
	Vectorizer        map[string]interface{} `json:"vectorizer,omitempty"`
	VectorIndexType   string                 `json:"vectorIndexType,omitempty"`
	VectorIndexConfig map[string]interface{} `json:"vectorIndexConfig,omitempty"`
}

// CollectionSchema mirrors a Weaviate class definition.
type CollectionSchema struct {
	Class               string                  `json:"class"`
	Description         string                  `json:"description,omitempty"`
	Vectorizer          string                  `json:"vectorizer,omitempty"`
	Properties          []Property              `json:"properties,omitempty"`
	VectorConfig        map[string]VectorConfig `json:"vectorConfig,omitempty"`
	VectorIndexType     string                  `json:"vectorIndexType,omitempty"`
	VectorIndexConfig   map[string]interface{}  `json:"vectorIndexConfig,omitempty"`
	InvertedIndexConfig map[string]interface{}  `json:"invertedIndexConfig,omitempty"`
	ModuleConfig        map[string]interface{}  `json:"moduleConfig,omitempty"`
	ReplicationConfig   map[string]interface{}  `json:"replicationConfig,omitempty"`
	ShardingConfig      map[string]interface{}  `json:"shardingConfig,omitempty"`
	MultiTenancyConfig  map[string]interface{}  `json:"multiTenancyConfig,omitempty"`
}

// GenerativeConfig extracts generative-* module config blocks, keyed by module name.
func (s *CollectionSchema) GenerativeConfig() map[string]interface{} {
	return s.moduleConfigByPrefix("generative-")
}

// RerankerConfig extracts reranker-* module config blocks, keyed by module name.
func (s *CollectionSchema) RerankerConfig() map[string]interface{} {
	return s.moduleConfigByPrefix("reranker-")
}

func (s *CollectionSchema) moduleConfigByPrefix(prefix string) map[string]interface{} {
	out := make(map[string]interface{})
	for name, cfg := range s.ModuleConfig {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			out[name] = cfg
		}
	}
	return out
}

// NormalizeSchema canonicalizes every dataType in the schema into the
// lowercase array form. Applied once at the cache-write boundary so
// downstream logic never repeats the normalization.
func NormalizeSchema(s *CollectionSchema) {
	if s == nil {
		return
	}
	normalizeProperties(s.Properties)
}

func normalizeProperties(props []Property) {
	for i := range props {
		for j, dt := range props[i].DataType {
			props[i].DataType[j] = strings.ToLower(dt)
		}
		normalizeProperties(props[i].NestedProperties)
	}
}

// ClusterMetadata represents server-level metadata (/v1/meta).
type ClusterMetadata struct {
	Hostname string                 `json:"hostname"`
	Version  string                 `json:"version"`
	Modules  map[string]interface{} `json:"modules,omitempty"`
}

// ShardStatus represents one shard of a node's status report.
type ShardStatus struct {
	Name              string `json:"name"`
	Class             string `json:"class"`
	ObjectCount       int64  `json:"objectCount"`
	VectorIndexStatus string `json:"vectorIndexingStatus,omitempty"`
	Loaded            bool   `json:"loaded,omitempty"`
}

// NodeStats aggregates per-node object and shard counts.
type NodeStats struct {
	ObjectCount int64 `json:"objectCount"`
	ShardCount  int64 `json:"shardCount"`
}

// NodeStatus represents one cluster node's health record (/v1/nodes).
type NodeStatus struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Version  string        `json:"version,omitempty"`
	GitHash  string        `json:"gitHash,omitempty"`
	Stats    *NodeStats    `json:"stats,omitempty"`
	Shards   []ShardStatus `json:"shards,omitempty"`
}

// NodeStatistics represents one node's entry in /v1/cluster/statistics.
type NodeStatistics struct {
	Name          string                 `json:"name"`
	Status        string                 `json:"status,omitempty"`
	LeaderID      string                 `json:"leaderId,omitempty"`
	LeaderAddress string                 `json:"leaderAddress,omitempty"`
	Ready         bool                   `json:"ready,omitempty"`
	IsVoter       bool                   `json:"isVoter,omitempty"`
	Raft          map[string]interface{} `json:"raft,omitempty"`
}

// ClusterStatistics represents the cluster-wide raft statistics document.
type ClusterStatistics struct {
	Statistics   []NodeStatistics `json:"statistics"`
	Synchronized bool             `json:"synchronized"`
}

// Leader returns the leader node id reported by the statistics, empty if unknown.
func (c *ClusterStatistics) Leader() string {
	if c == nil {
		return ""
	}
	for _, s := range c.Statistics {
		if s.LeaderID != "" {
			return s.LeaderID
		}
	}
	return ""
}

// Alias represents an alias -> collection mapping.
type Alias struct {
	Alias      string `json:"alias"`
	Collection string `json:"class"`
}

// Backup represents one backup job record.
type Backup struct {
	ID          string   `json:"id"`
	Backend     string   `json:"backend"`
	Status      string   `json:"status"`
	Path        string   `json:"path,omitempty"`
	StartedAt   string   `json:"startedAt,omitempty"`
	CompletedAt string   `json:"completedAt,omitempty"`
	Collections []string `json:"classes,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// User represents an RBAC database user.
type User struct {
	ID         string   `json:"userId"`
	UserType   string   `json:"dbUserType,omitempty"`
	Active     bool     `json:"active,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	CreatedAt  string   `json:"createdAt,omitempty"`
	LastUsedAt string   `json:"lastUsedAt,omitempty"`
}

// Role represents an RBAC role with its permission list.
type Role struct {
	Name        string                   `json:"name"`
	Permissions []map[string]interface{} `json:"permissions,omitempty"`
}

// GroupAssignment represents roles assigned to an OIDC group.
type GroupAssignment struct {
	Group string   `json:"group"`
	Roles []string `json:"roles,omitempty"`
}

// RBACState bundles the access-control listing results for one connection.
type RBACState struct {
	Users            []User            `json:"users"`
	Roles            []Role            `json:"roles"`
	GroupAssignments []GroupAssignment `json:"groupAssignments"`
}
