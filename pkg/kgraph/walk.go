package kgraph

import (
	"fmt"
	"io"
	"strings"
)

// indent is the prefix written once per depth level by [WriteTree].
const indent = "  "

// Visit is one line of a bounded-depth walk: a node and the depth at which
// the walk first reached it.
type Visit struct {
	Node  *Node
	Depth int
}

// Walk performs a depth-first walk from startID, descending into neighbors in
// name order, and returns the nodes in the order they are first reached.
//
// A node is emitted when its depth is at most maxDistance (inclusive) and it
// has not been emitted earlier in the same walk; the visited set is shared
// across the whole walk, so the result is a spanning-tree print rather than an
// enumeration of paths. A negative maxDistance yields no visits and 0 yields
// only the start node. The depth of a node is the length of the DFS path that
// reached it first, which can exceed its shortest-path distance but never
// maxDistance.
func (g *Graph) Walk(startID string, maxDistance int) ([]Visit, error) {
	start, ok := g.byID[startID]
	if !ok {
		return nil, &UnknownNodeError{ID: startID}
	}
	w := walker{g: g, max: maxDistance, visited: make(map[string]bool)}
	w.visit(start, 0)
	return w.out, nil
}

type walker struct {
	g       *Graph
	max     int
	visited map[string]bool
	out     []Visit
}

func (w *walker) visit(n *Node, depth int) {
	if depth > w.max || w.visited[n.ID] {
		return
	}
	w.visited[n.ID] = true
	w.out = append(w.out, Visit{Node: n, Depth: depth})
	for _, nb := range w.g.Neighbors(n.ID) {
		w.visit(nb, depth+1)
	}
}

// WriteTree writes one line per visit, indenting each node by two spaces per
// depth level.
func WriteTree(w io.Writer, visits []Visit) error {
	for _, v := range visits {
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(indent, v.Depth), v.Node); err != nil {
			return err
		}
	}
	return nil
}
