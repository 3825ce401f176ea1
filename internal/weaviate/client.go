package weaviate

import "context"

// Client exposes the remote catalog operations the explorer consumes.
// Implementations must be safe for concurrent use.
type Client interface {
	// Collection operations
	ListCollections(ctx context.Context) ([]CollectionSchema, error)
	GetCollection(ctx context.Context, name string) (*CollectionSchema, error)
	CreateCollection(ctx context.Context, schema *CollectionSchema) error
	DeleteCollection(ctx context.Context, name string) error
	DeleteAllCollections(ctx context.Context) error

	// Cluster operations
	GetMeta(ctx context.Context) (*ClusterMetadata, error)
	ListNodes(ctx context.Context) ([]NodeStatus, error)
	GetStatistics(ctx context.Context) (*ClusterStatistics, error)

	// Alias operations
	ListAliases(ctx context.Context) ([]Alias, error)
	CreateAlias(ctx context.Context, alias, collection string) error
	DeleteAlias(ctx context.Context, alias string) error

	// Backup operations
	ListBackups(ctx context.Context) ([]Backup, error)
	CreateBackup(ctx context.Context, backend, id string, collections []string) error
	RestoreBackup(ctx context.Context, backend, id string) error

	// Access-control operations
	ListUsers(ctx context.Context) ([]User, error)
	ListRoles(ctx context.Context) ([]Role, error)
	ListGroupAssignments(ctx context.Context) ([]GroupAssignment, error)
}
