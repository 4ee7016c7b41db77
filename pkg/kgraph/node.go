package kgraph

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Kind distinguishes bookmarked URLs from topics. Both kinds share one name
// namespace inside a [Graph].
type Kind int

const (
	// KindURL is a bookmarked web address. The node name is the URL itself.
	KindURL Kind = iota + 1
	// KindTopic is a free-form subject that URLs and other topics attach to.
	KindTopic
)

// String returns the display tag used in node representations.
func (k Kind) String() string {
	switch k {
	case KindURL:
		return "URL"
	case KindTopic:
		return "TOPIC"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "url" or "topic" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "url", "urls":
		return KindURL, nil
	case "topic", "topics":
		return KindTopic, nil
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

// Node is a vertex of the knowledge graph.
//
// ID is the persistent identity and Name the human-facing one; both are unique
// within a graph and indexed separately. Adjacency is kept as a set of
// neighbor IDs, never as pointers, so removing a node cannot leave a neighbor
// holding a stale reference.
//
// The zero value is not usable - use [NewNode] or set ID, Name and Kind before
// adding the node with [Graph.AddNode].
type Node struct {
	ID          string
	Name        string
	Description string
	Kind        Kind

	neighbors map[string]struct{}
}

// NewNode returns a node with a freshly minted random (v4) UUID and no neighbors.
func NewNode(name, description string, kind Kind) Node {
	return Node{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Kind:        kind,
	}
}

// String renders the node the way the shell and the tree print show it:
//
//	URL:http://a.com, id:1b4e..., description:daily news
func (n *Node) String() string {
	return fmt.Sprintf("%s:%s, id:%s, description:%s", n.Kind, n.Name, n.ID, n.Description)
}

// Neighbors returns the IDs of adjacent nodes in ascending order.
// Use [Graph.Neighbors] for the nodes themselves in name order.
func (n *Node) Neighbors() []string {
	return slices.Sorted(maps.Keys(n.neighbors))
}

// HasNeighbor reports whether the node is adjacent to id.
func (n *Node) HasNeighbor(id string) bool {
	_, ok := n.neighbors[id]
	return ok
}

// Degree returns the number of adjacent nodes.
func (n *Node) Degree() int { return len(n.neighbors) }

func (n *Node) link(id string) {
	if n.neighbors == nil {
		n.neighbors = make(map[string]struct{})
	}
	n.neighbors[id] = struct{}{}
}

func (n *Node) unlink(id string) { delete(n.neighbors, id) }

// CompareByName orders nodes lexicographically by name. It is the ordering
// used for listings and for the neighbor order of [Graph.Walk].
func CompareByName(a, b *Node) int { return strings.Compare(a.Name, b.Name) }

// SortByName sorts nodes in place by name.
func SortByName(nodes []*Node) { slices.SortFunc(nodes, CompareByName) }
