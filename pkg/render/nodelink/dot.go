package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tabmind/pkg/kgraph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the node ID and description in node labels.
	// When false, only the name is shown.
	Detailed bool

	// Visits limits the diagram to the visited nodes. Nil draws the whole graph.
	Visits []kgraph.Visit
}

// ToDOT converts g to an undirected Graphviz DOT graph.
// Nodes appear sorted by name and edges in canonical order, so equal graphs
// produce equal output.
func ToDOT(g *kgraph.Graph, opts Options) string {
	nodes := g.Nodes()
	var start string
	if opts.Visits != nil {
		nodes = make([]*kgraph.Node, 0, len(opts.Visits))
		for _, v := range opts.Visits {
			nodes = append(nodes, v.Node)
		}
		kgraph.SortByName(nodes)
		if len(opts.Visits) > 0 {
			start = opts.Visits[0].Node.ID
		}
	}
	keep := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		keep[n.ID] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), n.ID == start)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if keep[e.A] && keep[e.B] {
			fmt.Fprintf(&buf, "  %q -- %q;\n", e.A, e.B)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *kgraph.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}
	parts := []string{n.Name, "id: " + n.ID}
	if n.Description != "" {
		parts = append(parts, n.Description)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *kgraph.Node, label string, start bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind {
	case kgraph.KindURL:
		attrs = append(attrs, "shape=box")
	case kgraph.KindTopic:
		attrs = append(attrs, "shape=ellipse", "fillcolor=lightyellow")
	}
	if start {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales from its viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
