package weaviate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRESTClient_ListCollections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/schema" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"classes": []map[string]interface{}{
				{"class": "Article", "vectorizer": "text2vec-openai"},
			},
		})
	}))
	defer server.Close()

	client := NewRESTClient(server.URL)
	collections, err := client.ListCollections(context.Background())
	if err != nil {
		t.Fatalf("ListCollections failed: %v", err)
	}
	if len(collections) != 1 || collections[0].Class != "Article" {
		t.Errorf("Unexpected collections: %+v", collections)
	}
}

func TestRESTClient_APIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Expected bearer token, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(ClusterMetadata{Version: "1.30.0"})
	}))
	defer server.Close()

	client := NewRESTClient(server.URL, WithAPIKey("secret"))
	if _, err := client.GetMeta(context.Background()); err != nil {
		t.Fatalf("GetMeta failed: %v", err)
	}
}

func TestRESTClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "class not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewRESTClient(server.URL)
	_, err := client.GetCollection(context.Background(), "Missing")
	if err == nil {
		t.Fatal("Expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", apiErr.StatusCode)
	}
}

func TestRESTClient_ListNodesVerbose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("output"); got != "verbose" {
			t.Errorf("Expected verbose output query, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"nodes": []map[string]interface{}{
				{"name": "node1", "status": "HEALTHY", "shards": []map[string]interface{}{
					{"name": "s1", "class": "Article", "objectCount": 42},
				}},
			},
		})
	}))
	defer server.Close()

	client := NewRESTClient(server.URL)
	nodes, err := client.ListNodes(context.Background())
	if err != nil {
		t.Fatalf("ListNodes failed: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Shards[0].ObjectCount != 42 {
		t.Errorf("Unexpected nodes: %+v", nodes)
	}
}

func TestRESTClient_ListBackupsSkipsDisabledBackends(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/backups/filesystem":
			_ = json.NewEncoder(w).Encode([]Backup{{ID: "b1", Status: "SUCCESS"}})
		default:
			// Backend not configured on the server.
			http.Error(w, "backend not enabled", http.StatusUnprocessableEntity)
		}
	}))
	defer server.Close()

	client := NewRESTClient(server.URL, WithBackupBackends([]string{"filesystem", "s3"}))
	backups, err := client.ListBackups(context.Background())
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 || backups[0].ID != "b1" {
		t.Fatalf("Unexpected backups: %+v", backups)
	}
	// The backend field is filled in when the server omits it.
	if backups[0].Backend != "filesystem" {
		t.Errorf("Expected backend filled in, got %q", backups[0].Backend)
	}
}

func TestRESTClient_DeleteAllCollections(t *testing.T) {
	deleted := map[string]bool{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/schema":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"classes": []map[string]interface{}{{"class": "A"}, {"class": "B"}},
			})
		case r.Method == http.MethodDelete:
			deleted[r.URL.Path] = true
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewRESTClient(server.URL)
	if err := client.DeleteAllCollections(context.Background()); err != nil {
		t.Fatalf("DeleteAllCollections failed: %v", err)
	}
	if !deleted["/v1/schema/A"] || !deleted["/v1/schema/B"] {
		t.Errorf("Expected both classes deleted, got %v", deleted)
	}
}

func TestRESTClient_ListGroupAssignments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/authz/groups/oidc":
			_ = json.NewEncoder(w).Encode([]string{"devs"})
		case "/v1/authz/groups/devs/roles/oidc":
			_ = json.NewEncoder(w).Encode([]Role{{Name: "viewer"}})
		default:
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewRESTClient(server.URL)
	groups, err := client.ListGroupAssignments(context.Background())
	if err != nil {
		t.Fatalf("ListGroupAssignments failed: %v", err)
	}
	if len(groups) != 1 || groups[0].Group != "devs" || groups[0].Roles[0] != "viewer" {
		t.Errorf("Unexpected groups: %+v", groups)
	}
}
