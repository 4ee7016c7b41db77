package kgraph

import (
	"errors"
	"testing"
)

func mustAdd(t *testing.T, g *Graph, name string, kind Kind) *Node {
	t.Helper()
	n, err := g.AddNode(NewNode(name, "", kind))
	if err != nil {
		t.Fatalf("AddNode(%q): %v", name, err)
	}
	return n
}

func mustEdge(t *testing.T, g *Graph, a, b *Node) {
	t.Helper()
	if _, err := g.AddEdge(a.ID, b.ID); err != nil {
		t.Fatalf("AddEdge(%s, %s): %v", a.Name, b.Name, err)
	}
}

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(g *Graph)
		node    Node
		wantErr error
	}{
		{
			name: "Valid",
			node: Node{ID: "1", Name: "http://a.com", Kind: KindURL},
		},
		{
			name:    "EmptyID",
			node:    Node{Name: "news", Kind: KindTopic},
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "EmptyName",
			node:    Node{ID: "1", Name: "  ", Kind: KindTopic},
			wantErr: ErrInvalidName,
		},
		{
			name:    "DuplicateID",
			setup:   func(g *Graph) { g.AddNode(Node{ID: "1", Name: "a", Kind: KindURL}) },
			node:    Node{ID: "1", Name: "b", Kind: KindURL},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name:    "DuplicateNameSameKind",
			setup:   func(g *Graph) { g.AddNode(Node{ID: "1", Name: "news", Kind: KindTopic}) },
			node:    Node{ID: "2", Name: "news", Kind: KindTopic},
			wantErr: ErrDuplicateName,
		},
		{
			name:    "DuplicateNameAcrossKinds",
			setup:   func(g *Graph) { g.AddNode(Node{ID: "1", Name: "news", Kind: KindURL}) },
			node:    Node{ID: "2", Name: "news", Kind: KindTopic},
			wantErr: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			if tt.setup != nil {
				tt.setup(g)
			}
			before := g.NodeCount()
			n, err := g.AddNode(tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if g.NodeCount() != before {
					t.Errorf("NodeCount = %d, want unchanged %d", g.NodeCount(), before)
				}
				return
			}
			if n.Degree() != 0 {
				t.Errorf("new node has %d neighbors, want 0", n.Degree())
			}
			if got, ok := g.Node(tt.node.ID); !ok || got != n {
				t.Error("node missing from id index")
			}
			if got, ok := g.NodeByName(tt.node.Name); !ok || got != n {
				t.Error("node missing from name index")
			}
		})
	}
}

func TestLookup(t *testing.T) {
	g := New()
	url := mustAdd(t, g, "http://a.com", KindURL)
	topic := mustAdd(t, g, "news", KindTopic)

	tests := []struct {
		key  string
		want *Node
	}{
		{url.ID, url},
		{"http://a.com", url},
		{topic.ID, topic},
		{"news", topic},
		{"missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := g.Lookup(tt.key)
			if ok != (tt.want != nil) || got != tt.want {
				t.Errorf("Lookup(%q) = %v, %v", tt.key, got, ok)
			}
		})
	}
}

func TestLookupPrefersID(t *testing.T) {
	g := New()
	named, _ := g.AddNode(Node{ID: "x1", Name: "abc", Kind: KindTopic})
	byID, _ := g.AddNode(Node{ID: "abc", Name: "other", Kind: KindTopic})

	got, _ := g.Lookup("abc")
	if got != byID {
		t.Errorf("Lookup(abc) = %s, want the node whose ID is abc (not %s)", got.Name, named.Name)
	}
}

func TestAddEdgeSymmetry(t *testing.T) {
	g := New()
	a := mustAdd(t, g, "http://a.com", KindURL)
	b := mustAdd(t, g, "news", KindTopic)

	e, err := g.AddEdge(a.ID, b.ID)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if e != NewEdge(b.ID, a.ID) {
		t.Errorf("edge %v is not canonical", e)
	}
	if !a.HasNeighbor(b.ID) || !b.HasNeighbor(a.ID) {
		t.Error("adjacency is not symmetric after AddEdge")
	}
	if !g.HasEdge(b.ID, a.ID) {
		t.Error("HasEdge should ignore endpoint order")
	}

	if _, err := g.RemoveEdge(b.ID, a.ID); err != nil {
		t.Fatalf("RemoveEdge: %v", err)
	}
	if a.HasNeighbor(b.ID) || b.HasNeighbor(a.ID) {
		t.Error("adjacency remains after RemoveEdge")
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", g.EdgeCount())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestAddEdgeTwice(t *testing.T) {
	g := New()
	a := mustAdd(t, g, "a", KindURL)
	b := mustAdd(t, g, "b", KindTopic)

	mustEdge(t, g, a, b)
	if _, err := g.AddEdge(a.ID, b.ID); !errors.Is(err, ErrDuplicateEdge) {
		t.Errorf("second AddEdge error = %v, want ErrDuplicateEdge", err)
	}
	if _, err := g.AddEdge(b.ID, a.ID); !errors.Is(err, ErrDuplicateEdge) {
		t.Errorf("reversed AddEdge error = %v, want ErrDuplicateEdge", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if a.Degree() != 1 || b.Degree() != 1 {
		t.Errorf("degrees = %d, %d, want 1, 1", a.Degree(), b.Degree())
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := New()
	a := mustAdd(t, g, "a", KindURL)

	t.Run("SelfLoop", func(t *testing.T) {
		if _, err := g.AddEdge(a.ID, a.ID); !errors.Is(err, ErrSelfLoop) {
			t.Errorf("error = %v, want ErrSelfLoop", err)
		}
		if a.Degree() != 0 || g.EdgeCount() != 0 {
			t.Error("self-loop left state behind")
		}
	})

	t.Run("UnknownSecond", func(t *testing.T) {
		_, err := g.AddEdge(a.ID, "ghost")
		if !errors.Is(err, ErrUnknownNode) {
			t.Fatalf("error = %v, want ErrUnknownNode", err)
		}
		var unk *UnknownNodeError
		if !errors.As(err, &unk) || unk.ID != "ghost" {
			t.Errorf("error should name the missing id, got %v", err)
		}
	})

	t.Run("UnknownFirst", func(t *testing.T) {
		var unk *UnknownNodeError
		_, err := g.AddEdge("ghost", a.ID)
		if !errors.As(err, &unk) || unk.ID != "ghost" {
			t.Errorf("error = %v, want UnknownNodeError{ghost}", err)
		}
	})
}

func TestRemoveEdgeNotFound(t *testing.T) {
	g := New()
	a := mustAdd(t, g, "a", KindURL)
	b := mustAdd(t, g, "b", KindURL)

	if _, err := g.RemoveEdge(a.ID, b.ID); !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("error = %v, want ErrEdgeNotFound", err)
	}
	if _, err := g.RemoveEdge(a.ID, "ghost"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("error = %v, want ErrUnknownNode", err)
	}
}

func TestRemoveNodeCascade(t *testing.T) {
	g := New()
	hub := mustAdd(t, g, "hub", KindTopic)
	var spokes []*Node
	for _, name := range []string{"a", "b", "c"} {
		s := mustAdd(t, g, name, KindURL)
		mustEdge(t, g, hub, s)
		spokes = append(spokes, s)
	}
	mustEdge(t, g, spokes[0], spokes[1])

	removed, err := g.RemoveNode(hub.ID)
	if err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}
	if removed.Name != "hub" {
		t.Errorf("removed %q, want hub", removed.Name)
	}
	for _, s := range spokes {
		if s.HasNeighbor(hub.ID) {
			t.Errorf("%s still lists removed hub", s.Name)
		}
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1 (a-b survives)", g.EdgeCount())
	}
	if _, ok := g.Lookup("hub"); ok {
		t.Error("hub still in name index")
	}
	if _, ok := g.Node(hub.ID); ok {
		t.Error("hub still in id index")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	if _, err := g.RemoveNode(hub.ID); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("second RemoveNode error = %v, want ErrUnknownNode", err)
	}
}

func TestRemoveNodeAllowsNameReuse(t *testing.T) {
	g := New()
	old := mustAdd(t, g, "news", KindTopic)
	if _, err := g.RemoveNode(old.ID); err != nil {
		t.Fatal(err)
	}
	fresh := mustAdd(t, g, "news", KindURL)
	if fresh.ID == old.ID {
		t.Error("reused name should get a fresh id")
	}
}

func TestListingsSortedByName(t *testing.T) {
	g := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		mustAdd(t, g, name, KindTopic)
	}
	mustAdd(t, g, "http://b.com", KindURL)
	mustAdd(t, g, "http://a.com", KindURL)

	names := func(nodes []*Node) []string {
		var out []string
		for _, n := range nodes {
			out = append(out, n.Name)
		}
		return out
	}

	if got := names(g.NodesOfKind(KindTopic)); !equal(got, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("topics = %v", got)
	}
	if got := names(g.NodesOfKind(KindURL)); !equal(got, []string{"http://a.com", "http://b.com"}) {
		t.Errorf("urls = %v", got)
	}
	if got := names(g.Nodes()); len(got) != 5 || got[0] != "alpha" {
		t.Errorf("nodes = %v", got)
	}
}

func TestEdgesCanonicalOrder(t *testing.T) {
	g := New()
	a, _ := g.AddNode(Node{ID: "a", Name: "A", Kind: KindURL})
	b, _ := g.AddNode(Node{ID: "b", Name: "B", Kind: KindURL})
	c, _ := g.AddNode(Node{ID: "c", Name: "C", Kind: KindURL})
	mustEdge(t, g, c, b)
	mustEdge(t, g, c, a)
	mustEdge(t, g, b, a)

	want := []Edge{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	got := g.Edges()
	if len(got) != len(want) {
		t.Fatalf("Edges() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Edges()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
