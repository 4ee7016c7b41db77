// Package nodelink renders the knowledge graph as a node-link diagram.
//
// # Overview
//
// URLs are drawn as boxes and topics as ellipses, joined by undirected edges.
// The output is Graphviz DOT, which can be saved as is or rendered to SVG
// in process.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// To draw only the part of the graph reached by a walk:
//
//	visits, _ := g.Walk(start.ID, 2)
//	dot := nodelink.ToDOT(g, nodelink.Options{Visits: visits})
//
// # Options
//
//   - Detailed: labels include the node ID and description
//   - Visits: restrict the diagram to these nodes and the edges among them;
//     the first visit is highlighted as the start node
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
