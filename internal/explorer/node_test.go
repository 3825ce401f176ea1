package explorer

import "testing"

func TestNode_Key(t *testing.T) {
	a := Node{Type: ItemCollection, ConnectionID: "c1", Resource: "Article"}
	b := Node{Type: ItemCollection, ConnectionID: "c1", Resource: "Article", Label: "Article", Icon: "database"}

	// Presentation state must not affect identity.
	if a.Key() != b.Key() {
		t.Errorf("Expected identical keys, got %q and %q", a.Key(), b.Key())
	}
	if !a.Same(b) {
		t.Error("Expected nodes with equal identity tuples to be the same")
	}

	c := Node{Type: ItemCollection, ConnectionID: "c2", Resource: "Article"}
	if a.Key() == c.Key() {
		t.Error("Expected different keys for different connections")
	}
}

func TestParentOf_Connection(t *testing.T) {
	if parent := ParentOf(Node{Type: ItemConnection, ConnectionID: "c1"}); parent != nil {
		t.Errorf("Expected nil parent for connection, got %+v", parent)
	}
	if parent := ParentOf(Node{Type: ItemMessage, ConnectionID: "c1"}); parent != nil {
		t.Errorf("Expected nil parent for message leaf, got %+v", parent)
	}
}

func TestParentOf_Sections(t *testing.T) {
	for _, section := range connectionSections {
		parent := ParentOf(Node{Type: section, ConnectionID: "c1"})
		if parent == nil {
			t.Fatalf("Expected parent for section %s", section)
		}
		if parent.Type != ItemConnection || parent.ConnectionID != "c1" {
			t.Errorf("Section %s: expected connection parent, got %+v", section, parent)
		}
	}
}

func TestParentOf_CollectionSubtree(t *testing.T) {
	coll := Node{Type: ItemCollection, ConnectionID: "c1", Resource: "Article"}
	parent := ParentOf(coll)
	if parent == nil || parent.Type != ItemCollectionsGroup {
		t.Fatalf("Expected collections group parent, got %+v", parent)
	}

	for _, section := range collectionSections {
		parent := ParentOf(Node{Type: section, ConnectionID: "c1", Resource: "Article"})
		if parent == nil || !parent.Same(coll) {
			t.Errorf("Section %s: expected collection parent, got %+v", section, parent)
		}
	}

	prop := Node{Type: ItemPropertyItem, ConnectionID: "c1", Resource: "Article", ItemID: "title"}
	parent = ParentOf(prop)
	if parent == nil || parent.Type != ItemProperties || parent.Resource != "Article" {
		t.Errorf("Expected properties parent, got %+v", parent)
	}
}

func TestParentOf_StatisticsDisambiguation(t *testing.T) {
	// Under a collection.
	parent := ParentOf(Node{Type: ItemStatistics, ConnectionID: "c1", Resource: "Article"})
	if parent == nil || parent.Type != ItemCollection {
		t.Fatalf("Expected collection parent, got %+v", parent)
	}

	// Under a cluster node.
	parent = ParentOf(Node{Type: ItemStatistics, ConnectionID: "c1", ItemID: "node1"})
	if parent == nil || parent.Type != ItemClusterNode || parent.ItemID != "node1" {
		t.Fatalf("Expected cluster node parent, got %+v", parent)
	}
}

func TestParentOf_RBAC(t *testing.T) {
	// A role item reuses the section type with ItemID set.
	parent := ParentOf(Node{Type: ItemRBACRoles, ConnectionID: "c1", ItemID: "admin"})
	if parent == nil || parent.Type != ItemRBACRoles || parent.ItemID != "" {
		t.Fatalf("Expected roles section parent, got %+v", parent)
	}

	parent = ParentOf(Node{Type: ItemRBACRoles, ConnectionID: "c1"})
	if parent == nil || parent.Type != ItemConnection {
		t.Fatalf("Expected connection parent for roles section, got %+v", parent)
	}

	parent = ParentOf(Node{Type: ItemRBACUserDetails, ConnectionID: "c1", ItemID: "alice"})
	if parent == nil || parent.Type != ItemRBACUser || parent.ItemID != "alice" {
		t.Fatalf("Expected user parent carrying the user id, got %+v", parent)
	}

	parent = ParentOf(Node{Type: ItemRBACGroupItem, ConnectionID: "c1", ItemID: "devs"})
	if parent == nil || parent.Type != ItemRBACRoles {
		t.Fatalf("Expected roles section parent for group, got %+v", parent)
	}
}
