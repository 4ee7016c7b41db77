// Package kgraph provides the in-memory knowledge graph behind tabmind.
//
// # Overview
//
// A [Graph] holds two kinds of [Node]: bookmarked URLs ([KindURL]) and
// topics ([KindTopic]). Nodes are connected by undirected [Edge] values.
// The graph is simple: no self-loops and at most one edge per pair of nodes.
//
// # Identity
//
// Every node has two identities, and the graph indexes both:
//
//   - ID: a random UUID minted by [NewNode]. It is what the persisted document
//     and edges refer to.
//   - Name: the display name (the URL itself, or the topic label). Names are
//     unique across both kinds, so a topic cannot share a name with a URL.
//
// [Graph.Lookup] accepts either; IDs win when a string is both.
//
// Ordering is by name everywhere a listing is produced ([Graph.Nodes],
// [Graph.Neighbors], [Graph.Walk]), through the explicit [CompareByName]
// comparator.
//
// # Adjacency
//
// Adjacency is index based: a node stores the IDs of its neighbors, never
// pointers to them. [Graph.AddEdge] and [Graph.RemoveEdge] update both
// endpoints together, and [Graph.RemoveNode] severs every incident edge
// before dropping the node from the indices. [Graph.Validate] checks these
// invariants.
//
// # Traversal
//
// [Graph.Walk] is a bounded-depth depth-first walk that emits each node at
// most once. [WriteTree] prints a walk as an indented tree:
//
//	URL:http://a.com, id:..., description:
//	  TOPIC:news, id:..., description:
//
// # Concurrency
//
// Graph is not safe for concurrent use. tabmind drives it from a single
// interactive session.
package kgraph
