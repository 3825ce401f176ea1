package weaviate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBackupBackends are probed when listing backups; backends that are
// not enabled on the server respond with an error and are skipped.
var DefaultBackupBackends = []string{"filesystem", "s3", "gcs", "azure"}

// RESTClient implements Client against the Weaviate REST API.
type RESTClient struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	backupBackends []string
}

// RESTOption configures a RESTClient.
type RESTOption func(*RESTClient)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) RESTOption {
	return func(c *RESTClient) { c.apiKey = key }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) RESTOption {
	return func(c *RESTClient) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) RESTOption {
	return func(c *RESTClient) { c.httpClient = hc }
}

// WithBackupBackends overrides the backup backends probed by ListBackups.
func WithBackupBackends(backends []string) RESTOption {
	return func(c *RESTClient) { c.backupBackends = backends }
}

// NewRESTClient creates a REST client for the given endpoint
// (e.g. http://localhost:8080).
func NewRESTClient(endpoint string, opts ...RESTOption) *RESTClient {
	c := &RESTClient{
		baseURL:        strings.TrimRight(endpoint, "/"),
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		backupBackends: DefaultBackupBackends,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError represents a non-2xx response from the remote API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote API error (status %d): %s", e.StatusCode, e.Body)
}

func (c *RESTClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ListCollections returns all class schemas from /v1/schema.
func (c *RESTClient) ListCollections(ctx context.Context) ([]CollectionSchema, error) {
	var schema struct {
		Classes []CollectionSchema `json:"classes"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/schema", nil, &schema); err != nil {
		return nil, err
	}
	return schema.Classes, nil
}

// GetCollection returns a single class schema.
func (c *RESTClient) GetCollection(ctx context.Context, name string) (*CollectionSchema, error) {
	var out CollectionSchema
	if err := c.do(ctx, http.MethodGet, "/v1/schema/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCollection creates a new class.
func (c *RESTClient) CreateCollection(ctx context.Context, schema *CollectionSchema) error {
	return c.do(ctx, http.MethodPost, "/v1/schema", schema, nil)
}

// DeleteCollection deletes a class by name.
func (c *RESTClient) DeleteCollection(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/v1/schema/"+url.PathEscape(name), nil, nil)
}

// DeleteAllCollections deletes every class. The API has no bulk endpoint,
// so classes are listed and deleted one by one; the first failure aborts.
func (c *RESTClient) DeleteAllCollections(ctx context.Context) error {
	collections, err := c.ListCollections(ctx)
	if err != nil {
		return err
	}
	for _, coll := range collections {
		if err := c.DeleteCollection(ctx, coll.Class); err != nil {
			return fmt.Errorf("failed to delete collection %s: %w", coll.Class, err)
		}
	}
	return nil
}

// GetMeta returns server metadata.
func (c *RESTClient) GetMeta(ctx context.Context) (*ClusterMetadata, error) {
	var out ClusterMetadata
	if err := c.do(ctx, http.MethodGet, "/v1/meta", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListNodes returns verbose node status records.
func (c *RESTClient) ListNodes(ctx context.Context) ([]NodeStatus, error) {
	var out struct {
		Nodes []NodeStatus `json:"nodes"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/nodes?output=verbose", nil, &out); err != nil {
		return nil, err
	}
	return out.Nodes, nil
}

// GetStatistics returns raft cluster statistics.
func (c *RESTClient) GetStatistics(ctx context.Context) (*ClusterStatistics, error) {
	var out ClusterStatistics
	if err := c.do(ctx, http.MethodGet, "/v1/cluster/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAliases returns all alias mappings.
func (c *RESTClient) ListAliases(ctx context.Context) ([]Alias, error) {
	var out struct {
		Aliases []Alias `json:"aliases"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/aliases", nil, &out); err != nil {
		return nil, err
	}
	return out.Aliases, nil
}

// CreateAlias creates an alias pointing at a collection.
func (c *RESTClient) CreateAlias(ctx context.Context, alias, collection string) error {
	return c.do(ctx, http.MethodPost, "/v1/aliases", Alias{Alias: alias, Collection: collection}, nil)
}

// DeleteAlias removes an alias.
func (c *RESTClient) DeleteAlias(ctx context.Context, alias string) error {
	return c.do(ctx, http.MethodDelete, "/v1/aliases/"+url.PathEscape(alias), nil, nil)
}

// ListBackups lists backups across the configured backends. Backends that
// are not enabled on the server are skipped silently.
func (c *RESTClient) ListBackups(ctx context.Context) ([]Backup, error) {
	var all []Backup
	for _, backend := range c.backupBackends {
		var items []Backup
		err := c.do(ctx, http.MethodGet, "/v1/backups/"+url.PathEscape(backend), nil, &items)
		if err != nil {
			// A backend that is not configured returns an error; skip it.
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				continue
			}
			return nil, err
		}
		for i := range items {
			if items[i].Backend == "" {
				items[i].Backend = backend
			}
		}
		all = append(all, items...)
	}
	return all, nil
}

// CreateBackup starts a backup of the given collections on a backend.
func (c *RESTClient) CreateBackup(ctx context.Context, backend, id string, collections []string) error {
	body := map[string]interface{}{"id": id}
	if len(collections) > 0 {
		body["include"] = collections
	}
	return c.do(ctx, http.MethodPost, "/v1/backups/"+url.PathEscape(backend), body, nil)
}

// RestoreBackup restores a backup by id.
func (c *RESTClient) RestoreBackup(ctx context.Context, backend, id string) error {
	path := fmt.Sprintf("/v1/backups/%s/%s/restore", url.PathEscape(backend), url.PathEscape(id))
	return c.do(ctx, http.MethodPost, path, map[string]interface{}{}, nil)
}

// ListUsers lists database users.
func (c *RESTClient) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/v1/users/db", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRoles lists RBAC roles with their permissions.
func (c *RESTClient) ListRoles(ctx context.Context) ([]Role, error) {
	var out []Role
	if err := c.do(ctx, http.MethodGet, "/v1/authz/roles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListGroupAssignments lists OIDC groups that have roles assigned.
func (c *RESTClient) ListGroupAssignments(ctx context.Context) ([]GroupAssignment, error) {
	var groups []string
	if err := c.do(ctx, http.MethodGet, "/v1/authz/groups/oidc", nil, &groups); err != nil {
		return nil, err
	}

	out := make([]GroupAssignment, 0, len(groups))
	for _, group := range groups {
		var roles []Role
		path := "/v1/authz/groups/" + url.PathEscape(group) + "/roles/oidc"
		if err := c.do(ctx, http.MethodGet, path, nil, &roles); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.Name)
		}
		out = append(out, GroupAssignment{Group: group, Roles: names})
	}
	return out, nil
}
