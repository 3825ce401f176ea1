package explorer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/weavenav/weavenav/internal/registry"
	"github.com/weavenav/weavenav/internal/weaviate"
)

// GetChildren resolves the children of a node, fetching remote data on
// demand. The function is total: every failure degrades to a message leaf
// and unknown node types yield an empty list, never an error.
func (e *Explorer) GetChildren(ctx context.Context, node *Node) []Node {
	if node == nil {
		return e.rootChildren()
	}

	switch node.Type {
	case ItemConnection:
		return e.connectionChildren(node.ConnectionID)

	case ItemServerInfo:
		return e.serverInfoChildren(ctx, node.ConnectionID)
	case ItemClusterHealth:
		return e.clusterHealthChildren(ctx, node.ConnectionID)
	case ItemClusterNodes:
		return e.clusterNodesChildren(ctx, node.ConnectionID)
	case ItemClusterNode:
		return e.clusterNodeChildren(ctx, node.ConnectionID, node.ItemID)
	case ItemModules:
		return e.modulesChildren(ctx, node.ConnectionID)
	case ItemAliases:
		return e.aliasesChildren(ctx, node.ConnectionID)
	case ItemAliasItem:
		return e.aliasItemChildren(ctx, node.ConnectionID, node.ItemID)
	case ItemBackupsGroup:
		return e.backupsChildren(ctx, node.ConnectionID)
	case ItemBackupItem:
		return e.backupItemChildren(ctx, node.ConnectionID, node.ItemID)
	case ItemRBACUsersGroup:
		return e.rbacUsersChildren(ctx, node.ConnectionID)
	case ItemRBACUser:
		return e.rbacUserChildren(ctx, node.ConnectionID, node.ItemID)
	case ItemRBACUserDetails:
		return e.rbacUserDetailsChildren(ctx, node.ConnectionID, node.ItemID)
	case ItemRBACRoles:
		if node.ItemID != "" {
			return e.rbacRoleChildren(ctx, node.ConnectionID, node.ItemID)
		}
		return e.rbacRolesChildren(ctx, node.ConnectionID)
	case ItemRBACGroupItem:
		return e.rbacGroupChildren(ctx, node.ConnectionID, node.ItemID)

	case ItemCollectionsGroup:
		return e.collectionsChildren(ctx, node.ConnectionID)
	case ItemCollection:
		return e.collectionSectionNodes(*node)
	case ItemProperties:
		return e.propertiesChildren(ctx, node.ConnectionID, node.Resource)
	case ItemPropertyItem:
		return e.propertyItemChildren(ctx, node.ConnectionID, node.Resource, node.ItemID)
	case ItemVectorConfig:
		return e.vectorConfigChildren(ctx, node.ConnectionID, node.Resource)
	case ItemVectorConfigDetail:
		return e.vectorConfigDetailChildren(ctx, node.ConnectionID, node.Resource, node.ItemID)
	case ItemGenerativeConfig:
		return e.moduleConfigChildren(ctx, node.ConnectionID, node.Resource, "generative")
	case ItemRerankerConfig:
		return e.moduleConfigChildren(ctx, node.ConnectionID, node.Resource, "reranker")
	case ItemIndexes:
		return e.indexesChildren(ctx, node.ConnectionID, node.Resource)
	case ItemStatistics:
		if node.Resource != "" {
			return e.collectionStatisticsChildren(ctx, node.ConnectionID, node.Resource)
		}
		return e.nodeStatisticsChildren(ctx, node.ConnectionID, node.ItemID)
	case ItemSharding:
		return e.shardingChildren(ctx, node.ConnectionID, node.Resource)
	case ItemCollectionReplication:
		return e.replicationChildren(ctx, node.ConnectionID, node.Resource)
	}

	return []Node{}
}

// rootChildren lists one node per known connection, most recently used
// first, or an invitation message when none exist.
func (e *Explorer) rootChildren() []Node {
	connections := e.registry.List()
	if len(connections) == 0 {
		return []Node{messageLeaf("", "No connections found. Add a connection to get started.")}
	}

	out := make([]Node, 0, len(connections))
	for _, summary := range connections {
		out = append(out, e.connectionNode(summary))
	}
	return out
}

func (e *Explorer) connectionNode(summary registry.ConnectionSummary) Node {
	connected := summary.Status == registry.StatusConnected
	node := Node{
		Type:         ItemConnection,
		ConnectionID: summary.ID,
		Label:        summary.Name,
		Description:  summary.Endpoint,
		Tooltip:      fmt.Sprintf("%s (%s)", summary.Endpoint, summary.Status),
		Icon:         ConnectionIcon(connected),
		Expandable:   true,
		Expanded:     connected,
	}
	if !connected {
		node.Command = "connect"
	}
	return node
}

// connectionChildren returns the fixed-order section nodes, with live
// counts for sections whose slot is already fetched.
func (e *Explorer) connectionChildren(connectionID string) []Node {
	if !e.registry.IsConnected(connectionID) {
		return []Node{messageLeaf(connectionID, "Not connected. Connect to browse this server.")}
	}

	// Browsing a server counts as use for the most-recently-used ordering.
	e.registry.Touch(connectionID)

	out := make([]Node, 0, len(connectionSections))
	for _, section := range connectionSections {
		node := Node{
			Type:         section,
			ConnectionID: connectionID,
			Label:        e.sectionLabelWithCount(connectionID, section),
			Icon:         sectionIcon(section),
			Expandable:   true,
		}
		out = append(out, node)
	}
	return out
}

func (e *Explorer) sectionLabelWithCount(connectionID string, section ItemType) string {
	label := sectionLabel(section)
	if count, ok := e.sectionCount(connectionID, section); ok {
		return fmt.Sprintf("%s (%d)", label, count)
	}
	return label
}

// sectionCount returns the cached element count for countable sections.
func (e *Explorer) sectionCount(connectionID string, section ItemType) (int, bool) {
	switch section {
	case ItemCollectionsGroup:
		if collections, fetched := e.store.Collections(connectionID); fetched {
			return len(collections), true
		}
	case ItemClusterNodes:
		if nodes, fetched := e.store.ClusterNodes(connectionID); fetched {
			return len(nodes), true
		}
	case ItemAliases:
		if aliases, fetched := e.store.Aliases(connectionID); fetched {
			return len(aliases), true
		}
	case ItemBackupsGroup:
		if backups, fetched := e.store.Backups(connectionID); fetched {
			return len(backups), true
		}
	case ItemModules:
		if meta, fetched := e.store.ClusterMetadata(connectionID); fetched && meta != nil {
			return len(meta.Modules), true
		}
	case ItemRBACUsersGroup:
		if state, fetched := e.store.RBAC(connectionID); fetched && state != nil {
			return len(state.Users), true
		}
	case ItemRBACRoles:
		if state, fetched := e.store.RBAC(connectionID); fetched && state != nil {
			return len(state.Roles) + len(state.GroupAssignments), true
		}
	}
	return 0, false
}

func sectionLabel(section ItemType) string {
	switch section {
	case ItemServerInfo:
		return "Server Information"
	case ItemClusterHealth:
		return "Cluster Health"
	case ItemClusterNodes:
		return "Cluster Nodes"
	case ItemModules:
		return "Modules"
	case ItemAliases:
		return "Aliases"
	case ItemBackupsGroup:
		return "Backups"
	case ItemRBACUsersGroup:
		return "Users"
	case ItemRBACRoles:
		return "Roles & Groups"
	case ItemCollectionsGroup:
		return "Collections"
	case ItemProperties:
		return "Properties"
	case ItemVectorConfig:
		return "Vector Config"
	case ItemGenerativeConfig:
		return "Generative Config"
	case ItemRerankerConfig:
		return "Reranker Config"
	case ItemIndexes:
		return "Indexes"
	case ItemStatistics:
		return "Statistics"
	case ItemSharding:
		return "Sharding"
	case ItemCollectionReplication:
		return "Replication"
	}
	return string(section)
}

func sectionIcon(section ItemType) string {
	switch section {
	case ItemServerInfo:
		return "server"
	case ItemClusterHealth:
		return "pulse"
	case ItemClusterNodes:
		return "server-environment"
	case ItemModules:
		return "extensions"
	case ItemAliases:
		return "link"
	case ItemBackupsGroup:
		return "archive"
	case ItemRBACUsersGroup:
		return "organization"
	case ItemRBACRoles:
		return "shield"
	case ItemCollectionsGroup:
		return "library"
	}
	return "folder"
}

// serverInfoChildren renders the flattened server metadata. The modules
// map is excluded; it has its own section.
func (e *Explorer) serverInfoChildren(ctx context.Context, connectionID string) []Node {
	meta, err := e.loadClusterMetadata(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	record := map[string]interface{}{
		"hostname": meta.Hostname,
		"version":  meta.Version,
	}
	return e.objectLeaves(connectionID, Flatten(record, nil, "", false))
}

// clusterHealthChildren summarizes node health and raft synchronization.
func (e *Explorer) clusterHealthChildren(ctx context.Context, connectionID string) []Node {
	nodes, err := e.loadClusterNodes(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	healthy := 0
	for _, n := range nodes {
		if strings.EqualFold(n.Status, "HEALTHY") {
			healthy++
		}
	}

	out := []Node{{
		Type:         ItemObject,
		ConnectionID: connectionID,
		Label:        fmt.Sprintf("Healthy nodes: %d/%d", healthy, len(nodes)),
		Icon:         "pulse",
	}}

	// Statistics are best-effort; health renders without them.
	if stats, err := e.loadClusterStatistics(ctx, connectionID); err == nil && stats != nil {
		out = append(out, Node{
			Type:         ItemObject,
			ConnectionID: connectionID,
			Label:        fmt.Sprintf("Synchronized: %t", stats.Synchronized),
			Icon:         "sync",
		})
	}

	for _, n := range nodes {
		out = append(out, Node{
			Type:         ItemObject,
			ConnectionID: connectionID,
			Label:        fmt.Sprintf("%s %s %s", n.Name, HealthGlyph(n.Status), n.Status),
			Icon:         "circle-outline",
		})
	}
	return out
}

// clusterNodesChildren lists the cluster nodes, marking the raft leader.
func (e *Explorer) clusterNodesChildren(ctx context.Context, connectionID string) []Node {
	nodes, err := e.loadClusterNodes(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}
	if len(nodes) == 0 {
		return []Node{messageLeaf(connectionID, "No nodes reported.")}
	}

	leader := ""
	if stats, err := e.loadClusterStatistics(ctx, connectionID); err == nil {
		leader = stats.Leader()
	}

	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Node{
			Type:         ItemClusterNode,
			ConnectionID: connectionID,
			ItemID:       n.Name,
			Label:        n.Name + LeaderMarker(n.Name, leader),
			Description:  n.Version,
			Tooltip:      fmt.Sprintf("%s %s", HealthGlyph(n.Status), n.Status),
			Icon:         "server",
			Expandable:   true,
		})
	}
	return out
}

// clusterNodeChildren returns the Statistics group plus the flattened raw
// node record, excluding the statistics surfaced separately.
func (e *Explorer) clusterNodeChildren(ctx context.Context, connectionID, nodeName string) []Node {
	nodes, err := e.loadClusterNodes(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	var found *weaviate.NodeStatus
	for i := range nodes {
		if nodes[i].Name == nodeName {
			found = &nodes[i]
			break
		}
	}
	if found == nil {
		return []Node{messageLeaf(connectionID, "Node details not available.")}
	}

	out := []Node{{
		Type:         ItemStatistics,
		ConnectionID: connectionID,
		ItemID:       nodeName,
		Label:        "Statistics",
		Icon:         "graph",
		Expandable:   true,
	}}

	record := map[string]interface{}{
		"name":    found.Name,
		"status":  found.Status,
		"version": found.Version,
		"gitHash": found.GitHash,
	}

	leader := ""
	if stats, err := e.loadClusterStatistics(ctx, connectionID); err == nil {
		leader = stats.Leader()
	}
	if marker := LeaderMarker(found.Name, leader); marker != "" {
		record["role"] = "leader"
	}

	return append(out, e.objectLeaves(connectionID, Flatten(record, nil, "", false))...)
}

// nodeStatisticsChildren flattens one node's stats and shard rows.
func (e *Explorer) nodeStatisticsChildren(ctx context.Context, connectionID, nodeName string) []Node {
	nodes, err := e.loadClusterNodes(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	for _, n := range nodes {
		if n.Name != nodeName {
			continue
		}
		record := map[string]interface{}{}
		if n.Stats != nil {
			record["objectCount"] = n.Stats.ObjectCount
			record["shardCount"] = n.Stats.ShardCount
		}
		for _, shard := range n.Shards {
			key := fmt.Sprintf("shard %s", shard.Name)
			record[key] = fmt.Sprintf("%s: %d objects", shard.Class, shard.ObjectCount)
		}
		if len(record) == 0 {
			return []Node{messageLeaf(connectionID, "No statistics reported.")}
		}
		return e.objectLeaves(connectionID, Flatten(record, nil, "", true))
	}
	return []Node{messageLeaf(connectionID, "Node details not available.")}
}

// modulesChildren lists the server's enabled modules.
func (e *Explorer) modulesChildren(ctx context.Context, connectionID string) []Node {
	meta, err := e.loadClusterMetadata(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}
	if len(meta.Modules) == 0 {
		return []Node{messageLeaf(connectionID, "No modules enabled.")}
	}

	entries := Flatten(map[string]interface{}{"": meta.Modules}, nil, "", true)
	out := make([]Node, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Node{
			Type:         ItemObject,
			ConnectionID: connectionID,
			Label:        strings.TrimSpace(entry.Key),
			Description:  fmt.Sprintf("%v", entry.Value),
			Icon:         "extensions",
		})
	}
	return out
}

// aliasesChildren lists alias -> collection mappings.
func (e *Explorer) aliasesChildren(ctx context.Context, connectionID string) []Node {
	aliases, err := e.loadAliases(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}
	if len(aliases) == 0 {
		return []Node{messageLeaf(connectionID, "No aliases defined.")}
	}

	out := make([]Node, 0, len(aliases))
	for _, alias := range aliases {
		out = append(out, Node{
			Type:         ItemAliasItem,
			ConnectionID: connectionID,
			ItemID:       alias.Alias,
			Label:        alias.Alias,
			Description:  "→ " + alias.Collection,
			Icon:         "link",
			Expandable:   true,
		})
	}
	return out
}

func (e *Explorer) aliasItemChildren(ctx context.Context, connectionID, aliasName string) []Node {
	aliases, err := e.loadAliases(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}
	for _, alias := range aliases {
		if alias.Alias == aliasName {
			record := map[string]interface{}{
				"alias":      alias.Alias,
				"collection": alias.Collection,
			}
			return e.objectLeaves(connectionID, Flatten(record, nil, "", false))
		}
	}
	return []Node{messageLeaf(connectionID, "Alias not found.")}
}

// backupsChildren lists backup jobs with humanized durations.
func (e *Explorer) backupsChildren(ctx context.Context, connectionID string) []Node {
	backups, err := e.loadBackups(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}
	if len(backups) == 0 {
		return []Node{messageLeaf(connectionID, "No backups found.")}
	}

	out := make([]Node, 0, len(backups))
	for _, backup := range backups {
		description := backup.Status
		if duration, ok := HumanizeDuration(backup.StartedAt, backup.CompletedAt); ok {
			description = fmt.Sprintf("%s · %s", backup.Status, duration)
		}
		out = append(out, Node{
			Type:         ItemBackupItem,
			ConnectionID: connectionID,
			ItemID:       backup.ID,
			Label:        backup.ID,
			Description:  description,
			Tooltip:      fmt.Sprintf("%s backup on %s", backup.Status, backup.Backend),
			Icon:         BackupStatusIcon(backup.Status),
			Expandable:   true,
		})
	}
	return out
}

func (e *Explorer) backupItemChildren(ctx context.Context, connectionID, backupID string) []Node {
	backups, err := e.loadBackups(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	for _, backup := range backups {
		if backup.ID != backupID {
			continue
		}
		record := map[string]interface{}{
			"id":      backup.ID,
			"backend": backup.Backend,
			"status":  backup.Status,
		}
		if backup.Path != "" {
			record["path"] = backup.Path
		}
		if backup.StartedAt != "" {
			record["started"] = backup.StartedAt
		}
		if backup.CompletedAt != "" {
			record["completed"] = backup.CompletedAt
		}
		if duration, ok := HumanizeDuration(backup.StartedAt, backup.CompletedAt); ok {
			record["duration"] = duration
		}
		if len(backup.Collections) > 0 {
			record["collections"] = strings.Join(backup.Collections, ", ")
		}
		if backup.Error != "" {
			record["error"] = backup.Error
		}
		return e.objectLeaves(connectionID, Flatten(record, nil, "", false))
	}
	return []Node{messageLeaf(connectionID, "Backup details not available.")}
}

// rbacUsersChildren lists database users.
func (e *Explorer) rbacUsersChildren(ctx context.Context, connectionID string) []Node {
	state, err := e.loadRBAC(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}
	if len(state.Users) == 0 {
		return []Node{messageLeaf(connectionID, "No users found.")}
	}

	out := make([]Node, 0, len(state.Users))
	for _, user := range state.Users {
		out = append(out, Node{
			Type:         ItemRBACUser,
			ConnectionID: connectionID,
			ItemID:       user.ID,
			Label:        user.ID,
			Description:  fmt.Sprintf("%d roles", len(user.Roles)),
			Icon:         "person",
			Expandable:   true,
		})
	}
	return out
}

func (e *Explorer) rbacUserChildren(ctx context.Context, connectionID, userID string) []Node {
	state, err := e.loadRBAC(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	for _, user := range state.Users {
		if user.ID != userID {
			continue
		}
		out := []Node{{
			Type:         ItemRBACUserDetails,
			ConnectionID: connectionID,
			ItemID:       userID,
			Label:        "Details",
			Icon:         "info",
			Expandable:   true,
		}}
		for _, role := range user.Roles {
			out = append(out, Node{
				Type:         ItemObject,
				ConnectionID: connectionID,
				Label:        role,
				Icon:         "shield",
			})
		}
		return out
	}
	return []Node{messageLeaf(connectionID, "User not found.")}
}

func (e *Explorer) rbacUserDetailsChildren(ctx context.Context, connectionID, userID string) []Node {
	state, err := e.loadRBAC(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	for _, user := range state.Users {
		if user.ID != userID {
			continue
		}
		record := map[string]interface{}{
			"userId": user.ID,
			"active": user.Active,
		}
		if user.UserType != "" {
			record["type"] = user.UserType
		}
		if user.CreatedAt != "" {
			record["created"] = user.CreatedAt
		}
		if user.LastUsedAt != "" {
			record["lastUsed"] = user.LastUsedAt
		}
		if len(user.Roles) > 0 {
			record["roles"] = strings.Join(user.Roles, ", ")
		}
		return e.objectLeaves(connectionID, Flatten(record, nil, "", false))
	}
	return []Node{messageLeaf(connectionID, "User details not available.")}
}

// rbacRolesChildren lists roles followed by group role assignments.
func (e *Explorer) rbacRolesChildren(ctx context.Context, connectionID string) []Node {
	state, err := e.loadRBAC(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}
	if len(state.Roles) == 0 && len(state.GroupAssignments) == 0 {
		return []Node{messageLeaf(connectionID, "No roles or groups defined.")}
	}

	out := make([]Node, 0, len(state.Roles)+len(state.GroupAssignments))
	for _, role := range state.Roles {
		out = append(out, Node{
			Type:         ItemRBACRoles,
			ConnectionID: connectionID,
			ItemID:       role.Name,
			Label:        role.Name,
			Description:  fmt.Sprintf("%d permissions", len(role.Permissions)),
			Icon:         "shield",
			Expandable:   true,
		})
	}
	for _, group := range state.GroupAssignments {
		out = append(out, Node{
			Type:         ItemRBACGroupItem,
			ConnectionID: connectionID,
			ItemID:       group.Group,
			Label:        group.Group,
			Description:  fmt.Sprintf("%d roles", len(group.Roles)),
			Icon:         "organization",
			Expandable:   true,
		})
	}
	return out
}

func (e *Explorer) rbacRoleChildren(ctx context.Context, connectionID, roleName string) []Node {
	state, err := e.loadRBAC(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	for _, role := range state.Roles {
		if role.Name != roleName {
			continue
		}
		if len(role.Permissions) == 0 {
			return []Node{messageLeaf(connectionID, "No permissions granted.")}
		}
		var out []Node
		for i, permission := range role.Permissions {
			prefix := fmt.Sprintf("permission %d", i+1)
			out = append(out, e.objectLeaves(connectionID, Flatten(permission, nil, prefix, false))...)
		}
		return out
	}
	return []Node{messageLeaf(connectionID, "Role not found.")}
}

func (e *Explorer) rbacGroupChildren(ctx context.Context, connectionID, groupName string) []Node {
	state, err := e.loadRBAC(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	for _, group := range state.GroupAssignments {
		if group.Group != groupName {
			continue
		}
		if len(group.Roles) == 0 {
			return []Node{messageLeaf(connectionID, "No roles assigned.")}
		}
		out := make([]Node, 0, len(group.Roles))
		for _, role := range group.Roles {
			out = append(out, Node{
				Type:         ItemObject,
				ConnectionID: connectionID,
				Label:        role,
				Icon:         "shield",
			})
		}
		return out
	}
	return []Node{messageLeaf(connectionID, "Group not found.")}
}

// collectionsChildren lists the connection's collections.
func (e *Explorer) collectionsChildren(ctx context.Context, connectionID string) []Node {
	collections, err := e.loadCollections(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}
	if len(collections) == 0 {
		return []Node{messageLeaf(connectionID, "No collections found.")}
	}

	out := make([]Node, 0, len(collections))
	for _, coll := range collections {
		out = append(out, Node{
			Type:         ItemCollection,
			ConnectionID: connectionID,
			Resource:     coll.Class,
			Label:        coll.Class,
			Description:  coll.Vectorizer,
			Tooltip:      coll.Description,
			Icon:         "database",
			Expandable:   true,
		})
	}
	return out
}

// collectionSectionNodes returns the fixed sub-sections of a collection,
// each collapsed until expanded.
func (e *Explorer) collectionSectionNodes(parent Node) []Node {
	out := make([]Node, 0, len(collectionSections))
	for _, section := range collectionSections {
		out = append(out, Node{
			Type:         section,
			ConnectionID: parent.ConnectionID,
			Resource:     parent.Resource,
			Label:        sectionLabel(section),
			Icon:         collectionSectionIcon(section),
			Expandable:   true,
		})
	}
	return out
}

func collectionSectionIcon(section ItemType) string {
	switch section {
	case ItemProperties:
		return "symbol-field"
	case ItemVectorConfig:
		return "settings"
	case ItemGenerativeConfig:
		return "sparkle"
	case ItemRerankerConfig:
		return "list-ordered"
	case ItemIndexes:
		return "list-tree"
	case ItemStatistics:
		return "graph"
	case ItemSharding:
		return "layers"
	case ItemCollectionReplication:
		return "copy"
	}
	return "folder"
}

// schema resolves a collection's cached schema, loading the collections
// slot when unfetched.
func (e *Explorer) schema(ctx context.Context, connectionID, collection string) (*weaviate.CollectionSchema, error) {
	if cached, ok := e.store.Collection(connectionID, collection); ok {
		return cached, nil
	}
	if _, err := e.loadCollections(ctx, connectionID); err != nil {
		return nil, err
	}
	if cached, ok := e.store.Collection(connectionID, collection); ok {
		return cached, nil
	}
	return nil, NotFoundError(fmt.Sprintf("Collection %s not found", collection))
}

// vectorConfigChildren lists named vector configurations, falling back to
// the legacy single vectorizer field.
func (e *Explorer) vectorConfigChildren(ctx context.Context, connectionID, collection string) []Node {
	schema, err := e.schema(ctx, connectionID, collection)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	if len(schema.VectorConfig) == 0 {
		if schema.Vectorizer == "" || schema.Vectorizer == "none" {
			return []Node{messageLeaf(connectionID, "No vectorizer configured.")}
		}
		return []Node{{
			Type:         ItemObject,
			ConnectionID: connectionID,
			Resource:     collection,
			Label:        "vectorizer",
			Description:  schema.Vectorizer,
			Icon:         "settings",
		}}
	}

	names := sortedKeys(schema.VectorConfig)
	out := make([]Node, 0, len(names))
	for _, name := range names {
		cfg := schema.VectorConfig[name]
		out = append(out, Node{
			Type:         ItemVectorConfigDetail,
			ConnectionID: connectionID,
			Resource:     collection,
			ItemID:       name,
			Label:        name,
			Description:  cfg.VectorIndexType,
			Icon:         "settings",
			Expandable:   true,
		})
	}
	return out
}

func sortedKeys(m map[string]weaviate.VectorConfig) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (e *Explorer) vectorConfigDetailChildren(ctx context.Context, connectionID, collection, vectorName string) []Node {
	schema, err := e.schema(ctx, connectionID, collection)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	cfg, ok := schema.VectorConfig[vectorName]
	if !ok {
		return []Node{messageLeaf(connectionID, "Vector config not found.")}
	}

	record := map[string]interface{}{}
	if cfg.VectorIndexType != "" {
		record["vectorIndexType"] = cfg.VectorIndexType
	}
	for key, value := range cfg.Vectorizer {
		record["vectorizer "+key] = value
	}
	for key, value := range cfg.VectorIndexConfig {
		record["index "+key] = value
	}
	if len(record) == 0 {
		return []Node{messageLeaf(connectionID, "No vector configuration details.")}
	}
	return e.objectLeaves(connectionID, Flatten(record, nil, "", true))
}

// moduleConfigChildren renders generative-* or reranker-* module config.
func (e *Explorer) moduleConfigChildren(ctx context.Context, connectionID, collection, family string) []Node {
	schema, err := e.schema(ctx, connectionID, collection)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	var cfg map[string]interface{}
	if family == "generative" {
		cfg = schema.GenerativeConfig()
	} else {
		cfg = schema.RerankerConfig()
	}
	if len(cfg) == 0 {
		return []Node{messageLeaf(connectionID, fmt.Sprintf("No %s module configured.", family))}
	}
	return e.objectLeaves(connectionID, Flatten(cfg, nil, "", true))
}

// indexesChildren flattens vector and inverted index configuration.
func (e *Explorer) indexesChildren(ctx context.Context, connectionID, collection string) []Node {
	schema, err := e.schema(ctx, connectionID, collection)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	record := map[string]interface{}{}
	if schema.VectorIndexType != "" {
		record["vectorIndexType"] = schema.VectorIndexType
	}
	if len(schema.VectorIndexConfig) > 0 {
		record["vectorIndex"] = schema.VectorIndexConfig
	}
	if len(schema.InvertedIndexConfig) > 0 {
		record["invertedIndex"] = schema.InvertedIndexConfig
	}
	if len(record) == 0 {
		return []Node{messageLeaf(connectionID, "No index configuration.")}
	}
	return e.objectLeaves(connectionID, Flatten(record, nil, "", true))
}

// collectionStatisticsChildren aggregates shard statistics for one
// collection across the cluster.
func (e *Explorer) collectionStatisticsChildren(ctx context.Context, connectionID, collection string) []Node {
	nodes, err := e.loadClusterNodes(ctx, connectionID)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	var objects int64
	shards := 0
	for _, n := range nodes {
		for _, shard := range n.Shards {
			if shard.Class == collection {
				objects += shard.ObjectCount
				shards++
			}
		}
	}

	return []Node{
		{
			Type:         ItemObject,
			ConnectionID: connectionID,
			Resource:     collection,
			Label:        fmt.Sprintf("Objects: %d", objects),
			Icon:         "symbol-number",
		},
		{
			Type:         ItemObject,
			ConnectionID: connectionID,
			Resource:     collection,
			Label:        fmt.Sprintf("Shards: %d", shards),
			Icon:         "layers",
		},
	}
}

// shardingChildren flattens sharding and multi-tenancy configuration.
func (e *Explorer) shardingChildren(ctx context.Context, connectionID, collection string) []Node {
	schema, err := e.schema(ctx, connectionID, collection)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	record := map[string]interface{}{}
	if len(schema.ShardingConfig) > 0 {
		record["sharding"] = schema.ShardingConfig
	}
	if len(schema.MultiTenancyConfig) > 0 {
		record["multiTenancy"] = schema.MultiTenancyConfig
	}
	if len(record) == 0 {
		return []Node{messageLeaf(connectionID, "No sharding configuration.")}
	}
	return e.objectLeaves(connectionID, Flatten(record, nil, "", true))
}

// replicationChildren flattens the replication configuration.
func (e *Explorer) replicationChildren(ctx context.Context, connectionID, collection string) []Node {
	schema, err := e.schema(ctx, connectionID, collection)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}
	if len(schema.ReplicationConfig) == 0 {
		return []Node{messageLeaf(connectionID, "No replication configuration.")}
	}
	return e.objectLeaves(connectionID, Flatten(schema.ReplicationConfig, nil, "", true))
}

// objectLeaves converts flattened entries into non-expandable leaves.
func (e *Explorer) objectLeaves(connectionID string, entries []FlatEntry) []Node {
	out := make([]Node, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Node{
			Type:         ItemObject,
			ConnectionID: connectionID,
			Label:        entry.Key,
			Description:  fmt.Sprintf("%v", entry.Value),
			Icon:         "symbol-property",
		})
	}
	return out
}
