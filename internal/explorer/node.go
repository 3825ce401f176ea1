// Package explorer implements the lazily-materialized catalog hierarchy:
// node addressing, the per-connection cache store, the on-demand expansion
// engine, mutation consistency, and debounced change notification.
package explorer

import "fmt"

// ItemType discriminates the kinds of nodes in the hierarchy.
type ItemType string

const (
	ItemConnection            ItemType = "connection"
	ItemServerInfo            ItemType = "serverInfo"
	ItemClusterHealth         ItemType = "clusterHealth"
	ItemClusterNodes          ItemType = "clusterNodes"
	ItemClusterNode           ItemType = "clusterNode"
	ItemModules               ItemType = "modules"
	ItemCollectionsGroup      ItemType = "collectionsGroup"
	ItemCollection            ItemType = "collection"
	ItemProperties            ItemType = "properties"
	ItemPropertyItem          ItemType = "propertyItem"
	ItemVectorConfig          ItemType = "vectorConfig"
	ItemVectorConfigDetail    ItemType = "vectorConfigDetail"
	ItemGenerativeConfig      ItemType = "generativeConfig"
	ItemRerankerConfig        ItemType = "rerankerConfig"
	ItemIndexes               ItemType = "indexes"
	ItemStatistics            ItemType = "statistics"
	ItemSharding              ItemType = "sharding"
	ItemCollectionReplication ItemType = "collectionReplication"
	ItemAliases               ItemType = "aliases"
	ItemAliasItem             ItemType = "aliasItem"
	ItemBackupsGroup          ItemType = "backupsGroup"
	ItemBackupItem            ItemType = "backupItem"
	ItemRBACUsersGroup        ItemType = "rbacUsersGroup"
	ItemRBACUser              ItemType = "rbacUser"
	ItemRBACUserDetails       ItemType = "rbacUserDetails"
	ItemRBACRoles             ItemType = "rbacRoles"
	ItemRBACGroupItem         ItemType = "rbacGroupItem"
	ItemObject                ItemType = "object"
	ItemMessage               ItemType = "message"
)

// Node is an addressable element of the hierarchy. Identity is the tuple
// (Type, ConnectionID, Resource, ItemID); everything else is derived
// presentation state recomputed from the cache on every render.
type Node struct {
	Type         ItemType `json:"type"`
	ConnectionID string   `json:"connection_id,omitempty"`
	Resource     string   `json:"resource,omitempty"`
	ItemID       string   `json:"item_id,omitempty"`

	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	Tooltip     string `json:"tooltip,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Command     string `json:"command,omitempty"`

	// Expandable marks the node as having children; Expanded hints that
	// the UI should auto-expand it on first render.
	Expandable bool `json:"expandable,omitempty"`
	Expanded   bool `json:"expanded,omitempty"`
}

// Key returns the canonical identity key used for cache and parent lookups.
func (n Node) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s", n.Type, n.ConnectionID, n.Resource, n.ItemID)
}

// Same reports whether two nodes address the same element.
func (n Node) Same(other Node) bool {
	return n.Type == other.Type &&
		n.ConnectionID == other.ConnectionID &&
		n.Resource == other.Resource &&
		n.ItemID == other.ItemID
}

// collectionSections are the fixed sub-sections under a collection node.
var collectionSections = []ItemType{
	ItemProperties,
	ItemVectorConfig,
	ItemGenerativeConfig,
	ItemRerankerConfig,
	ItemIndexes,
	ItemStatistics,
	ItemSharding,
	ItemCollectionReplication,
}

// connectionSections are the fixed sections under a connected connection,
// in display order.
var connectionSections = []ItemType{
	ItemServerInfo,
	ItemClusterHealth,
	ItemClusterNodes,
	ItemModules,
	ItemAliases,
	ItemBackupsGroup,
	ItemRBACUsersGroup,
	ItemRBACRoles,
	ItemCollectionsGroup,
}

// ParentOf computes a node's parent structurally from the type hierarchy.
// It never relies on traversal history, so nodes reconstructed fresh from
// cache data resolve to the same parent. Connection nodes are roots and
// return nil.
func ParentOf(n Node) *Node {
	switch n.Type {
	case ItemConnection, ItemMessage, ItemObject:
		return nil

	case ItemServerInfo, ItemClusterHealth, ItemClusterNodes, ItemModules,
		ItemAliases, ItemBackupsGroup, ItemRBACUsersGroup, ItemCollectionsGroup:
		return &Node{Type: ItemConnection, ConnectionID: n.ConnectionID}

	case ItemRBACRoles:
		// Role items reuse the section type with ItemID set.
		if n.ItemID != "" {
			return &Node{Type: ItemRBACRoles, ConnectionID: n.ConnectionID}
		}
		return &Node{Type: ItemConnection, ConnectionID: n.ConnectionID}

	case ItemCollection:
		return &Node{Type: ItemCollectionsGroup, ConnectionID: n.ConnectionID}

	case ItemProperties, ItemVectorConfig, ItemGenerativeConfig, ItemRerankerConfig,
		ItemIndexes, ItemSharding, ItemCollectionReplication:
		return &Node{Type: ItemCollection, ConnectionID: n.ConnectionID, Resource: n.Resource}

	case ItemStatistics:
		// Statistics appears both under a collection and under a cluster node.
		if n.Resource != "" {
			return &Node{Type: ItemCollection, ConnectionID: n.ConnectionID, Resource: n.Resource}
		}
		if n.ItemID != "" {
			return &Node{Type: ItemClusterNode, ConnectionID: n.ConnectionID, ItemID: n.ItemID}
		}
		return &Node{Type: ItemConnection, ConnectionID: n.ConnectionID}

	case ItemPropertyItem:
		return &Node{Type: ItemProperties, ConnectionID: n.ConnectionID, Resource: n.Resource}

	case ItemVectorConfigDetail:
		return &Node{Type: ItemVectorConfig, ConnectionID: n.ConnectionID, Resource: n.Resource}

	case ItemClusterNode:
		return &Node{Type: ItemClusterNodes, ConnectionID: n.ConnectionID}

	case ItemAliasItem:
		return &Node{Type: ItemAliases, ConnectionID: n.ConnectionID}

	case ItemBackupItem:
		return &Node{Type: ItemBackupsGroup, ConnectionID: n.ConnectionID}

	case ItemRBACUser:
		return &Node{Type: ItemRBACUsersGroup, ConnectionID: n.ConnectionID}

	case ItemRBACUserDetails:
		return &Node{Type: ItemRBACUser, ConnectionID: n.ConnectionID, ItemID: n.ItemID}

	case ItemRBACGroupItem:
		return &Node{Type: ItemRBACRoles, ConnectionID: n.ConnectionID}
	}

	return nil
}
