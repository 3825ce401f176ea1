package explorer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/weavenav/weavenav/internal/weaviate"
)

// Mutation consistency rules: a successful mutation either patches the
// cache in place (delete) or refetches the affected slot (create), then
// requests a debounced notification. A failed mutation leaves the cache
// untouched and propagates the error, so the tree keeps rendering the
// last known-good state.

// validateConnection resolves the client for a mutation target.
func (e *Explorer) validateConnection(connectionID string) (weaviate.Client, error) {
	if _, exists := e.registry.Get(connectionID); !exists {
		return nil, NotFoundError("Connection not found")
	}
	client, ok := e.registry.Client(connectionID)
	if !ok {
		return nil, NotConnectedError("Client not available")
	}
	return client, nil
}

// CreateCollection creates a collection remotely, then refetches the full
// collection list so server-side defaults land in the cache.
func (e *Explorer) CreateCollection(ctx context.Context, connectionID string, schema *weaviate.CollectionSchema) error {
	if schema == nil || schema.Class == "" {
		return ValidationError("Collection name is required")
	}

	client, err := e.validateConnection(connectionID)
	if err != nil {
		return err
	}

	// The UI offers "none" as an explicit vectorizer choice; the server
	// expects the field absent in that case.
	if schema.Vectorizer == "none" {
		schema.Vectorizer = ""
	}

	if err := client.CreateCollection(ctx, schema); err != nil {
		return RemoteError(fmt.Sprintf("Failed to create collection %s", schema.Class), err)
	}

	e.logger.Info("Collection created", "connection_id", connectionID, "collection", schema.Class)
	e.refetchCollections(ctx, connectionID)
	e.notifier.Refresh()
	return nil
}

// CloneCollection returns a draft schema for a new collection copied from
// an existing one. Nothing is created remotely; the caller reviews the
// draft and submits it through CreateCollection.
func (e *Explorer) CloneCollection(ctx context.Context, connectionID, source, target string) (*weaviate.CollectionSchema, error) {
	if target == "" {
		return nil, ValidationError("Target collection name is required")
	}
	if _, err := e.validateConnection(connectionID); err != nil {
		return nil, err
	}

	schema, err := e.schema(ctx, connectionID, source)
	if err != nil {
		return nil, err
	}

	// Deep copy through JSON so the draft shares nothing with the cache.
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, RemoteError("Failed to clone collection schema", err)
	}
	var draft weaviate.CollectionSchema
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, RemoteError("Failed to clone collection schema", err)
	}

	draft.Class = target
	return &draft, nil
}

// ImportCollection creates a collection from a raw schema document.
func (e *Explorer) ImportCollection(ctx context.Context, connectionID string, raw []byte) error {
	var schema weaviate.CollectionSchema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return ValidationError(fmt.Sprintf("Invalid collection schema: %s", err))
	}
	return e.CreateCollection(ctx, connectionID, &schema)
}

// DeleteCollection deletes a collection remotely and patches the cached
// list in place, avoiding a refetch. Remote failure leaves the cache as
// it was; a repeated delete of an already-gone collection surfaces the
// server's error rather than being masked locally.
func (e *Explorer) DeleteCollection(ctx context.Context, connectionID, name string) error {
	client, err := e.validateConnection(connectionID)
	if err != nil {
		return err
	}

	if err := client.DeleteCollection(ctx, name); err != nil {
		return RemoteError(fmt.Sprintf("Failed to delete collection %s", name), err)
	}

	e.store.RemoveCollection(connectionID, name)
	e.logger.Info("Collection deleted", "connection_id", connectionID, "collection", name)
	e.notifier.Refresh()
	return nil
}

// DeleteAllCollections removes every collection on the server and settles
// the cache on the fetched-empty state.
func (e *Explorer) DeleteAllCollections(ctx context.Context, connectionID string) error {
	client, err := e.validateConnection(connectionID)
	if err != nil {
		return err
	}

	if err := client.DeleteAllCollections(ctx); err != nil {
		return RemoteError("Failed to delete all collections", err)
	}

	e.store.SetCollections(connectionID, []weaviate.CollectionSchema{})
	e.logger.Info("All collections deleted", "connection_id", connectionID)
	e.notifier.Refresh()
	return nil
}

// CreateAlias creates an alias and refetches the alias list.
func (e *Explorer) CreateAlias(ctx context.Context, connectionID, alias, collection string) error {
	if alias == "" || collection == "" {
		return ValidationError("Alias and collection names are required")
	}
	client, err := e.validateConnection(connectionID)
	if err != nil {
		return err
	}

	if err := client.CreateAlias(ctx, alias, collection); err != nil {
		return RemoteError(fmt.Sprintf("Failed to create alias %s", alias), err)
	}

	e.store.Invalidate(connectionID, SlotAliases)
	if _, err := e.loadAliases(ctx, connectionID); err != nil {
		e.logger.Debug("Alias refetch failed", "connection_id", connectionID, "error", err)
	}
	e.notifier.Refresh()
	return nil
}

// DeleteAlias removes an alias and invalidates the alias slot.
func (e *Explorer) DeleteAlias(ctx context.Context, connectionID, alias string) error {
	client, err := e.validateConnection(connectionID)
	if err != nil {
		return err
	}

	if err := client.DeleteAlias(ctx, alias); err != nil {
		return RemoteError(fmt.Sprintf("Failed to delete alias %s", alias), err)
	}

	e.store.Invalidate(connectionID, SlotAliases)
	e.logger.Info("Alias deleted", "connection_id", connectionID, "alias", alias)
	e.notifier.Refresh()
	return nil
}

// CreateBackup starts a backup job and invalidates the backup slot so the
// next expansion shows the job's live status.
func (e *Explorer) CreateBackup(ctx context.Context, connectionID, backend, backupID string, collections []string) error {
	if backupID == "" {
		return ValidationError("Backup id is required")
	}
	client, err := e.validateConnection(connectionID)
	if err != nil {
		return err
	}

	if err := client.CreateBackup(ctx, backend, backupID, collections); err != nil {
		return RemoteError(fmt.Sprintf("Failed to create backup %s", backupID), err)
	}

	e.store.Invalidate(connectionID, SlotBackups)
	e.logger.Info("Backup started", "connection_id", connectionID, "backup_id", backupID, "backend", backend)
	e.notifier.Refresh()
	return nil
}

// RestoreBackup starts a restore job. Collections may change as the
// restore lands, so both slots are invalidated.
func (e *Explorer) RestoreBackup(ctx context.Context, connectionID, backend, backupID string) error {
	client, err := e.validateConnection(connectionID)
	if err != nil {
		return err
	}

	if err := client.RestoreBackup(ctx, backend, backupID); err != nil {
		return RemoteError(fmt.Sprintf("Failed to restore backup %s", backupID), err)
	}

	e.store.Invalidate(connectionID, SlotBackups, SlotCollections)
	e.logger.Info("Backup restore started", "connection_id", connectionID, "backup_id", backupID)
	e.notifier.Refresh()
	return nil
}

// Connect establishes the connection and, outside of batch startup,
// primes the primary sections so the first expansion renders from cache.
func (e *Explorer) Connect(ctx context.Context, connectionID string, batch bool) error {
	if _, exists := e.registry.Get(connectionID); !exists {
		return NotFoundError("Connection not found")
	}
	if err := e.registry.Connect(ctx, connectionID); err != nil {
		return RemoteError("Failed to connect", err)
	}
	if !batch {
		e.primeSections(ctx, connectionID)
	}
	return nil
}

// Disconnect drops the connection and clears every cache slot for it.
// Late in-flight fetches find the connection disconnected and skip their
// cache write.
func (e *Explorer) Disconnect(connectionID string) error {
	if _, exists := e.registry.Get(connectionID); !exists {
		return NotFoundError("Connection not found")
	}
	if err := e.registry.Disconnect(connectionID); err != nil {
		return RemoteError("Failed to disconnect", err)
	}
	e.store.Invalidate(connectionID)
	return nil
}

// refetchCollections drops and reloads the collections slot. Best effort;
// a failed reload leaves the slot unfetched for the next expansion.
func (e *Explorer) refetchCollections(ctx context.Context, connectionID string) {
	e.store.Invalidate(connectionID, SlotCollections)
	if _, err := e.loadCollections(ctx, connectionID); err != nil {
		e.logger.Debug("Collection refetch failed", "connection_id", connectionID, "error", err)
	}
}
