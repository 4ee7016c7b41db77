package io

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tabmind/pkg/errors"
	"github.com/matzehuels/tabmind/pkg/kgraph"
)

// Result is the outcome of decoding a document.
type Result struct {
	// Graph holds every node of the document and every edge that resolved.
	Graph *kgraph.Graph

	// Skipped lists one MALFORMED_EDGE error per edge entry that was dropped:
	// entries that are not a list of two strings, that reference an unknown
	// node ID, or that connect a node to itself.
	Skipped []error
}

// Decode validates data with [Validate] and builds a graph from it.
//
// Node entries are inserted into both the ID and the name index; a missing
// description defaults to "". A document that repeats an ID or a name is
// rejected with INVALID_DOCUMENT, since it cannot be loaded without breaking
// uniqueness.
//
// Edge entries are resolved by node ID. A dangling or malformed entry is
// recorded in [Result.Skipped] and the load continues with the remaining
// entries. Repeated edges collapse into one.
func Decode(data []byte) (*Result, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}

	g := kgraph.New()
	for _, u := range doc.URLs {
		if err := addEntry(g, u.ID, u.URL, u.Description, kgraph.KindURL); err != nil {
			return nil, err
		}
	}
	for _, t := range doc.Topics {
		if err := addEntry(g, t.ID, t.Topic, t.Description, kgraph.KindTopic); err != nil {
			return nil, err
		}
	}

	res := &Result{Graph: g}
	for i, raw := range doc.Edges {
		if err := addEdgeEntry(g, raw); err != nil {
			res.Skipped = append(res.Skipped,
				errors.Wrap(errors.ErrCodeMalformedEdge, err, "edges[%d] %s skipped", i, compact(raw)))
		}
	}
	return res, nil
}

// ReadJSON decodes a document from r. See [Decode]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Decode(data)
}

// ImportJSON reads and decodes the document at path.
func ImportJSON(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func addEntry(g *kgraph.Graph, id, name, desc string, kind kgraph.Kind) error {
	_, err := g.AddNode(kgraph.Node{ID: id, Name: name, Description: desc, Kind: kind})
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s %q (id %s)", kind, name, id)
}

var errEdgeShape = stderrors.New("edge is not a list of two node ids")

func addEdgeEntry(g *kgraph.Graph, raw json.RawMessage) error {
	var ids []any
	if err := json.Unmarshal(raw, &ids); err != nil || len(ids) < 2 {
		return errEdgeShape
	}
	id1, ok1 := ids[0].(string)
	id2, ok2 := ids[1].(string)
	if !ok1 || !ok2 {
		return errEdgeShape
	}
	_, err := g.AddEdge(id1, id2)
	if stderrors.Is(err, kgraph.ErrDuplicateEdge) {
		return nil
	}
	return err
}

func compact(raw json.RawMessage) string {
	const limit = 120
	s := string(raw)
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
