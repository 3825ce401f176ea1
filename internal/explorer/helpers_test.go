package explorer

import (
	"context"
	"sync"
	"testing"

	"github.com/weavenav/weavenav/internal/logging"
	"github.com/weavenav/weavenav/internal/registry"
	"github.com/weavenav/weavenav/internal/weaviate"
)

// fakeClient is an in-memory weaviate.Client with per-call error injection
// and call counting.
type fakeClient struct {
	mu sync.Mutex

	collections []weaviate.CollectionSchema
	meta        *weaviate.ClusterMetadata
	nodes       []weaviate.NodeStatus
	statistics  *weaviate.ClusterStatistics
	aliases     []weaviate.Alias
	backups     []weaviate.Backup
	users       []weaviate.User
	roles       []weaviate.Role
	groups      []weaviate.GroupAssignment

	errs  map[string]error
	calls map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		meta:  &weaviate.ClusterMetadata{Hostname: "http://localhost:8080", Version: "1.30.0"},
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeClient) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.errs[op]
}

func (f *fakeClient) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeClient) failWith(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
}

func (f *fakeClient) ListCollections(ctx context.Context) ([]weaviate.CollectionSchema, error) {
	if err := f.record("ListCollections"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]weaviate.CollectionSchema, len(f.collections))
	copy(out, f.collections)
	return out, nil
}

func (f *fakeClient) GetCollection(ctx context.Context, name string) (*weaviate.CollectionSchema, error) {
	if err := f.record("GetCollection"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.collections {
		if f.collections[i].Class == name {
			return &f.collections[i], nil
		}
	}
	return nil, &weaviate.APIError{StatusCode: 404, Body: "not found"}
}

func (f *fakeClient) CreateCollection(ctx context.Context, schema *weaviate.CollectionSchema) error {
	if err := f.record("CreateCollection"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections = append(f.collections, *schema)
	return nil
}

func (f *fakeClient) DeleteCollection(ctx context.Context, name string) error {
	if err := f.record("DeleteCollection"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.collections[:0]
	for _, c := range f.collections {
		if c.Class != name {
			kept = append(kept, c)
		}
	}
	f.collections = kept
	return nil
}

func (f *fakeClient) DeleteAllCollections(ctx context.Context) error {
	if err := f.record("DeleteAllCollections"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections = nil
	return nil
}

func (f *fakeClient) GetMeta(ctx context.Context) (*weaviate.ClusterMetadata, error) {
	if err := f.record("GetMeta"); err != nil {
		return nil, err
	}
	return f.meta, nil
}

func (f *fakeClient) ListNodes(ctx context.Context) ([]weaviate.NodeStatus, error) {
	if err := f.record("ListNodes"); err != nil {
		return nil, err
	}
	return f.nodes, nil
}

func (f *fakeClient) GetStatistics(ctx context.Context) (*weaviate.ClusterStatistics, error) {
	if err := f.record("GetStatistics"); err != nil {
		return nil, err
	}
	return f.statistics, nil
}

func (f *fakeClient) ListAliases(ctx context.Context) ([]weaviate.Alias, error) {
	if err := f.record("ListAliases"); err != nil {
		return nil, err
	}
	return f.aliases, nil
}

func (f *fakeClient) CreateAlias(ctx context.Context, alias, collection string) error {
	if err := f.record("CreateAlias"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aliases = append(f.aliases, weaviate.Alias{Alias: alias, Collection: collection})
	return nil
}

func (f *fakeClient) DeleteAlias(ctx context.Context, alias string) error {
	if err := f.record("DeleteAlias"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.aliases[:0]
	for _, a := range f.aliases {
		if a.Alias != alias {
			kept = append(kept, a)
		}
	}
	f.aliases = kept
	return nil
}

func (f *fakeClient) ListBackups(ctx context.Context) ([]weaviate.Backup, error) {
	if err := f.record("ListBackups"); err != nil {
		return nil, err
	}
	return f.backups, nil
}

func (f *fakeClient) CreateBackup(ctx context.Context, backend, id string, collections []string) error {
	if err := f.record("CreateBackup"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.backups = append(f.backups, weaviate.Backup{ID: id, Backend: backend, Status: "STARTED", Collections: collections})
	return nil
}

func (f *fakeClient) RestoreBackup(ctx context.Context, backend, id string) error {
	return f.record("RestoreBackup")
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]weaviate.User, error) {
	if err := f.record("ListUsers"); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeClient) ListRoles(ctx context.Context) ([]weaviate.Role, error) {
	if err := f.record("ListRoles"); err != nil {
		return nil, err
	}
	return f.roles, nil
}

func (f *fakeClient) ListGroupAssignments(ctx context.Context) ([]weaviate.GroupAssignment, error) {
	if err := f.record("ListGroupAssignments"); err != nil {
		return nil, err
	}
	return f.groups, nil
}

// testExplorer bundles an explorer wired to a single fake-backed connection.
type testExplorer struct {
	explorer *Explorer
	registry *registry.Manager
	client   *fakeClient
	connID   string
}

// newTestExplorer creates an explorer with one connected connection backed
// by a fake client.
func newTestExplorer(t *testing.T, opts Options) *testExplorer {
	t.Helper()

	logger := logging.NewDevelopment()
	client := newFakeClient()
	reg := registry.NewManager(logger, func(endpoint, apiKey string) weaviate.Client {
		return client
	})

	exp := New(logger, reg, nil, opts)

	summary, err := reg.Add(context.Background(), "local", "http://localhost:8080", "")
	if err != nil {
		t.Fatalf("Failed to add connection: %v", err)
	}
	if err := reg.Connect(context.Background(), summary.ID); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	// Connecting pings the server; reset counters so tests observe only
	// their own fetches.
	client.mu.Lock()
	client.calls = make(map[string]int)
	client.mu.Unlock()

	return &testExplorer{explorer: exp, registry: reg, client: client, connID: summary.ID}
}

// labels extracts the Label of every node, easing assertions.
func labels(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Label)
	}
	return out
}
