package kgraph

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrInvalidName is returned by [Graph.AddNode] when the node name is empty.
	ErrInvalidName = errors.New("node name must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateName is returned by [Graph.AddNode] when a node with the same
	// name already exists. URLs and topics share one namespace, so a topic
	// named like an existing URL is rejected too.
	ErrDuplicateName = errors.New("duplicate node name")

	// ErrUnknownNode is returned when an ID does not resolve to a node.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same node.
	ErrSelfLoop = errors.New("edge endpoints must differ")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the two nodes are
	// already connected. The graph is simple: at most one edge per pair.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrEdgeNotFound is returned by [Graph.RemoveEdge] when the two nodes are
	// not connected.
	ErrEdgeNotFound = errors.New("edge not found")
)

// Graph is an undirected simple graph of URL and topic nodes.
//
// Nodes are indexed twice, by ID and by name, and both indices are always
// updated together. Every edge is mirrored in the adjacency sets of both
// endpoints.
//
// The zero value is not usable - use [New]. Graph is not safe for concurrent
// use.
type Graph struct {
	byID   map[string]*Node
	byName map[string]*Node
	edges  map[Edge]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byID:   make(map[string]*Node),
		byName: make(map[string]*Node),
		edges:  make(map[Edge]struct{}),
	}
}

// AddNode inserts a copy of n with an empty adjacency set.
// Returns the stored node, or an error if the ID or name is empty or already
// taken.
func (g *Graph) AddNode(n Node) (*Node, error) {
	if n.ID == "" {
		return nil, ErrInvalidNodeID
	}
	if strings.TrimSpace(n.Name) == "" {
		return nil, ErrInvalidName
	}
	if _, ok := g.byID[n.ID]; ok {
		return nil, ErrDuplicateNodeID
	}
	if _, ok := g.byName[n.Name]; ok {
		return nil, ErrDuplicateName
	}
	n.neighbors = make(map[string]struct{})
	node := &n
	g.byID[node.ID] = node
	g.byName[node.Name] = node
	return node, nil
}

// RemoveNode deletes the node with the given ID together with every incident
// edge. Former neighbors no longer list it in their adjacency sets.
func (g *Graph) RemoveNode(id string) (*Node, error) {
	n, ok := g.byID[id]
	if !ok {
		return nil, ErrUnknownNode
	}
	for _, nb := range n.Neighbors() {
		if other, ok := g.byID[nb]; ok {
			other.unlink(id)
		}
		delete(g.edges, NewEdge(id, nb))
	}
	clear(n.neighbors)
	delete(g.byID, n.ID)
	delete(g.byName, n.Name)
	return n, nil
}

// AddEdge connects two existing nodes.
func (g *Graph) AddEdge(id1, id2 string) (Edge, error) {
	n1, n2, err := g.endpoints(id1, id2)
	if err != nil {
		return Edge{}, err
	}
	if n1 == n2 {
		return Edge{}, ErrSelfLoop
	}
	e := NewEdge(n1.ID, n2.ID)
	if _, ok := g.edges[e]; ok {
		return e, ErrDuplicateEdge
	}
	n1.link(n2.ID)
	n2.link(n1.ID)
	g.edges[e] = struct{}{}
	return e, nil
}

// RemoveEdge disconnects two nodes.
func (g *Graph) RemoveEdge(id1, id2 string) (Edge, error) {
	n1, n2, err := g.endpoints(id1, id2)
	if err != nil {
		return Edge{}, err
	}
	e := NewEdge(n1.ID, n2.ID)
	if _, ok := g.edges[e]; !ok {
		return e, ErrEdgeNotFound
	}
	n1.unlink(n2.ID)
	n2.unlink(n1.ID)
	delete(g.edges, e)
	return e, nil
}

// HasEdge reports whether the two node IDs are connected.
func (g *Graph) HasEdge(id1, id2 string) bool {
	_, ok := g.edges[NewEdge(id1, id2)]
	return ok
}

// endpoints resolves both edge endpoints by ID. The returned error wraps
// ErrUnknownNode and names the first missing ID.
func (g *Graph) endpoints(id1, id2 string) (*Node, *Node, error) {
	n1, ok := g.byID[id1]
	if !ok {
		return nil, nil, &UnknownNodeError{ID: id1}
	}
	n2, ok := g.byID[id2]
	if !ok {
		return nil, nil, &UnknownNodeError{ID: id2}
	}
	return n1, n2, nil
}

// UnknownNodeError reports which identifier failed to resolve.
// It matches [ErrUnknownNode] with errors.Is.
type UnknownNodeError struct {
	ID string
}

func (e *UnknownNodeError) Error() string { return "unknown node " + e.ID }

// Is makes errors.Is(err, ErrUnknownNode) succeed.
func (e *UnknownNodeError) Is(target error) bool { return target == ErrUnknownNode }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// NodeByName returns the node with the given display name.
func (g *Graph) NodeByName(name string) (*Node, bool) {
	n, ok := g.byName[name]
	return n, ok
}

// Lookup resolves key as an ID first and, failing that, as a name.
func (g *Graph) Lookup(key string) (*Node, bool) {
	if n, ok := g.byID[key]; ok {
		return n, true
	}
	return g.NodeByName(key)
}

// Nodes returns every node sorted by name.
func (g *Graph) Nodes() []*Node {
	nodes := slices.Collect(maps.Values(g.byID))
	SortByName(nodes)
	return nodes
}

// NodesOfKind returns the nodes of one kind sorted by name.
func (g *Graph) NodesOfKind(kind Kind) []*Node {
	var nodes []*Node
	for _, n := range g.byID {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
	}
	SortByName(nodes)
	return nodes
}

// Neighbors returns the nodes adjacent to id sorted by name.
// Returns nil if the node doesn't exist.
func (g *Graph) Neighbors(id string) []*Node {
	n, ok := g.byID[id]
	if !ok {
		return nil
	}
	out := make([]*Node, 0, len(n.neighbors))
	for nb := range n.neighbors {
		if other, ok := g.byID[nb]; ok {
			out = append(out, other)
		}
	}
	SortByName(out)
	return out
}

// Edges returns all edges in canonical order (by A, then B).
func (g *Graph) Edges() []Edge {
	return slices.SortedFunc(maps.Keys(g.edges), compareEdges)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.byID) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Validate checks the index and adjacency invariants and returns the first
// violation found. A graph built only through the exported methods always
// validates; the check exists for tests and for documents decoded from disk.
func (g *Graph) Validate() error {
	if len(g.byID) != len(g.byName) {
		return errors.New("id and name indices differ in size")
	}
	for id, n := range g.byID {
		if n.ID != id {
			return errors.New("node " + id + " indexed under a stale id")
		}
		if g.byName[n.Name] != n {
			return errors.New("node " + id + " missing from the name index")
		}
		for nb := range n.neighbors {
			other, ok := g.byID[nb]
			if !ok {
				return errors.New("node " + id + " has dangling neighbor " + nb)
			}
			if !other.HasNeighbor(id) {
				return errors.New("adjacency between " + id + " and " + nb + " is not symmetric")
			}
			if _, ok := g.edges[NewEdge(id, nb)]; !ok {
				return errors.New("adjacency between " + id + " and " + nb + " has no edge")
			}
		}
	}
	for e := range g.edges {
		a, okA := g.byID[e.A]
		b, okB := g.byID[e.B]
		if !okA || !okB {
			return errors.New("edge " + e.String() + " references a missing node")
		}
		if !a.HasNeighbor(e.B) || !b.HasNeighbor(e.A) {
			return errors.New("edge " + e.String() + " is missing from an adjacency set")
		}
	}
	return nil
}
