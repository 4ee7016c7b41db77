package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tabmind/pkg/kgraph"
)

// Encode serializes g as an indented JSON document.
//
// URLs and topics are written to their own arrays sorted by name, edges as
// two-element ID arrays in canonical order, so saving an unchanged graph twice
// produces identical bytes. Descriptions are written when non-empty and read
// back by [Decode], so they survive a save/load round trip.
func Encode(g *kgraph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes g as JSON and writes it to w.
// The output can be re-read with [ReadJSON].
func WriteJSON(g *kgraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path, replacing any previous content.
// The write is not atomic.
func ExportJSON(g *kgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// WriteYAML writes g in the same shape as [WriteJSON], encoded as YAML.
// YAML output is meant for reading and diffing; it is not a load format.
func WriteYAML(g *kgraph.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(g)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func toDocument(g *kgraph.Graph) outDocument {
	out := outDocument{
		URLs:   []urlEntry{},
		Topics: []topicEntry{},
		Edges:  [][2]string{},
	}
	for _, n := range g.Nodes() {
		switch n.Kind {
		case kgraph.KindURL:
			out.URLs = append(out.URLs, urlEntry{ID: n.ID, URL: n.Name, Description: n.Description})
		case kgraph.KindTopic:
			out.Topics = append(out.Topics, topicEntry{ID: n.ID, Topic: n.Name, Description: n.Description})
		}
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, [2]string{e.A, e.B})
	}
	return out
}
