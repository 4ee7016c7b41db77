package kgraph

import (
	"fmt"
	"strings"
)

// Edge is an undirected connection between two nodes, identified by their IDs.
// Edges are canonical: A is always the lexicographically smaller ID, so
// NewEdge(x, y) == NewEdge(y, x) and Edge values can be used as map keys.
type Edge struct {
	A string
	B string
}

// NewEdge returns the canonical edge between two node IDs.
func NewEdge(id1, id2 string) Edge {
	if id2 < id1 {
		id1, id2 = id2, id1
	}
	return Edge{A: id1, B: id2}
}

// Other returns the endpoint opposite to id, or "" if id is not an endpoint.
func (e Edge) Other(id string) string {
	switch id {
	case e.A:
		return e.B
	case e.B:
		return e.A
	}
	return ""
}

// Has reports whether id is one of the endpoints.
func (e Edge) Has(id string) bool { return e.A == id || e.B == id }

// String returns "{A, B}".
func (e Edge) String() string { return fmt.Sprintf("{%s, %s}", e.A, e.B) }

func compareEdges(x, y Edge) int {
	if c := strings.Compare(x.A, y.A); c != 0 {
		return c
	}
	return strings.Compare(x.B, y.B)
}
