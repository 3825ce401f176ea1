package explorer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weavenav/weavenav/internal/weaviate"
)

func TestCreateCollection_RefetchesList(t *testing.T) {
	te := newTestExplorer(t, Options{})

	err := te.explorer.CreateCollection(context.Background(), te.connID, &weaviate.CollectionSchema{Class: "Article"})
	require.NoError(t, err)

	// Create triggers a full refetch so server-side defaults land in cache.
	collections, fetched := te.explorer.Store().Collections(te.connID)
	require.True(t, fetched)
	require.Len(t, collections, 1)
	assert.Equal(t, "Article", collections[0].Class)
	assert.Equal(t, 1, te.client.callCount("ListCollections"))
}

func TestCreateCollection_Validation(t *testing.T) {
	te := newTestExplorer(t, Options{})

	err := te.explorer.CreateCollection(context.Background(), te.connID, &weaviate.CollectionSchema{})
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
	assert.Equal(t, 0, te.client.callCount("CreateCollection"))
}

func TestCreateCollection_VectorizerNoneDropped(t *testing.T) {
	te := newTestExplorer(t, Options{})

	schema := &weaviate.CollectionSchema{Class: "Article", Vectorizer: "none"}
	require.NoError(t, te.explorer.CreateCollection(context.Background(), te.connID, schema))
	assert.Empty(t, schema.Vectorizer)
}

func TestCreateCollection_UnknownConnection(t *testing.T) {
	te := newTestExplorer(t, Options{})

	err := te.explorer.CreateCollection(context.Background(), "bogus", &weaviate.CollectionSchema{Class: "X"})
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestCreateCollection_NotConnected(t *testing.T) {
	te := newTestExplorer(t, Options{})
	require.NoError(t, te.explorer.Disconnect(te.connID))

	err := te.explorer.CreateCollection(context.Background(), te.connID, &weaviate.CollectionSchema{Class: "X"})
	require.Error(t, err)
	assert.Equal(t, CodeNotConnected, ErrorCode(err))
}

func TestDeleteCollection_PatchesCacheInPlace(t *testing.T) {
	te := newTestExplorer(t, Options{})
	te.client.collections = []weaviate.CollectionSchema{{Class: "Article"}, {Class: "Author"}}

	// Prime the slot, then delete one entry.
	_, err := te.explorer.loadCollections(context.Background(), te.connID)
	require.NoError(t, err)
	require.NoError(t, te.explorer.DeleteCollection(context.Background(), te.connID, "Article"))

	collections, fetched := te.explorer.Store().Collections(te.connID)
	require.True(t, fetched)
	require.Len(t, collections, 1)
	assert.Equal(t, "Author", collections[0].Class)

	// The patch avoids a refetch.
	assert.Equal(t, 1, te.client.callCount("ListCollections"))
}

func TestDeleteCollection_RemoteFailureKeepsCache(t *testing.T) {
	te := newTestExplorer(t, Options{})
	te.client.collections = []weaviate.CollectionSchema{{Class: "Article"}}

	_, err := te.explorer.loadCollections(context.Background(), te.connID)
	require.NoError(t, err)

	te.client.failWith("DeleteCollection", errors.New("boom"))
	err = te.explorer.DeleteCollection(context.Background(), te.connID, "Article")
	require.Error(t, err)
	assert.Equal(t, CodeRemoteAPIError, ErrorCode(err))

	// Cache still shows the collection.
	collections, fetched := te.explorer.Store().Collections(te.connID)
	require.True(t, fetched)
	assert.Len(t, collections, 1)
}

func TestDeleteAllCollections_SettlesOnFetchedEmpty(t *testing.T) {
	te := newTestExplorer(t, Options{})
	te.client.collections = []weaviate.CollectionSchema{{Class: "Article"}}

	require.NoError(t, te.explorer.DeleteAllCollections(context.Background(), te.connID))

	collections, fetched := te.explorer.Store().Collections(te.connID)
	require.True(t, fetched, "Slot must be fetched-empty, not unfetched")
	assert.Empty(t, collections)
}

func TestCloneCollection_DeepCopyDraft(t *testing.T) {
	te := newTestExplorer(t, Options{})
	te.client.collections = []weaviate.CollectionSchema{{
		Class:      "Article",
		Vectorizer: "text2vec-openai",
		Properties: []weaviate.Property{{Name: "title", DataType: weaviate.DataType{"text"}}},
	}}

	draft, err := te.explorer.CloneCollection(context.Background(), te.connID, "Article", "ArticleCopy")
	require.NoError(t, err)
	assert.Equal(t, "ArticleCopy", draft.Class)
	assert.Equal(t, "text2vec-openai", draft.Vectorizer)

	// Nothing was created remotely.
	assert.Equal(t, 0, te.client.callCount("CreateCollection"))

	// The draft shares no backing arrays with the cache.
	draft.Properties[0].Name = "changed"
	cached, ok := te.explorer.Store().Collection(te.connID, "Article")
	require.True(t, ok)
	assert.Equal(t, "title", cached.Properties[0].Name)
}

func TestCloneCollection_SourceMissing(t *testing.T) {
	te := newTestExplorer(t, Options{})

	_, err := te.explorer.CloneCollection(context.Background(), te.connID, "Missing", "Copy")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestImportCollection(t *testing.T) {
	te := newTestExplorer(t, Options{})

	raw := []byte(`{"class":"Imported","vectorizer":"none","properties":[{"name":"title","dataType":"text"}]}`)
	require.NoError(t, te.explorer.ImportCollection(context.Background(), te.connID, raw))

	collections, fetched := te.explorer.Store().Collections(te.connID)
	require.True(t, fetched)
	require.Len(t, collections, 1)
	assert.Equal(t, "Imported", collections[0].Class)
	// The string-form dataType was normalized at the cache boundary.
	assert.Equal(t, "text", collections[0].Properties[0].DataType.Primary())
}

func TestImportCollection_InvalidJSON(t *testing.T) {
	te := newTestExplorer(t, Options{})

	err := te.explorer.ImportCollection(context.Background(), te.connID, []byte("{not json"))
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestAliasMutations(t *testing.T) {
	te := newTestExplorer(t, Options{})

	require.NoError(t, te.explorer.CreateAlias(context.Background(), te.connID, "recent", "Article"))
	aliases, fetched := te.explorer.Store().Aliases(te.connID)
	require.True(t, fetched)
	require.Len(t, aliases, 1)

	require.NoError(t, te.explorer.DeleteAlias(context.Background(), te.connID, "recent"))
	if _, fetched := te.explorer.Store().Get(te.connID, SlotAliases); fetched {
		t.Error("Expected aliases slot invalidated after delete")
	}
}

func TestRestoreBackup_InvalidatesCollections(t *testing.T) {
	te := newTestExplorer(t, Options{})
	te.client.collections = []weaviate.CollectionSchema{{Class: "Article"}}

	_, err := te.explorer.loadCollections(context.Background(), te.connID)
	require.NoError(t, err)

	require.NoError(t, te.explorer.RestoreBackup(context.Background(), te.connID, "filesystem", "b1"))
	if _, fetched := te.explorer.Store().Get(te.connID, SlotCollections); fetched {
		t.Error("Expected collections slot invalidated after restore")
	}
}

func TestDisconnect_UnknownConnection(t *testing.T) {
	te := newTestExplorer(t, Options{})

	err := te.explorer.Disconnect("bogus")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}
