package models

// CreateConnectionRequest registers a new server connection
type CreateConnectionRequest struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key,omitempty"`
}

// CloneCollectionRequest names the target of a collection clone
type CloneCollectionRequest struct {
	NewName string `json:"new_name"`
}

// CreateAliasRequest maps an alias onto a collection
type CreateAliasRequest struct {
	Alias      string `json:"alias"`
	Collection string `json:"collection"`
}

// CreateBackupRequest starts a backup job
type CreateBackupRequest struct {
	Backend     string   `json:"backend"`
	ID          string   `json:"id"`
	Collections []string `json:"collections,omitempty"`
}

// ChildrenRequest addresses the node whose children are requested.
// An absent node means the hierarchy root.
type ChildrenRequest struct {
	Node *NodeRef `json:"node,omitempty"`
}

// NodeRef carries the identity tuple of a tree node
type NodeRef struct {
	Type         string `json:"type"`
	ConnectionID string `json:"connection_id,omitempty"`
	Resource     string `json:"resource,omitempty"`
	ItemID       string `json:"item_id,omitempty"`
}
