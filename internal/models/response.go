package models

import "github.com/weavenav/weavenav/internal/explorer"

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ConnectionResponse represents one connection definition
type ConnectionResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Status   string `json:"status"`
	LastUsed string `json:"last_used"`
}

// ConnectionListResponse represents list connections response
type ConnectionListResponse struct {
	Connections []ConnectionResponse `json:"connections"`
}

// ChildrenResponse carries the resolved children of a tree node
type ChildrenResponse struct {
	Children []explorer.Node `json:"children"`
}

// NodeResponse carries a single resolved tree node
type NodeResponse struct {
	Node *explorer.Node `json:"node"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
