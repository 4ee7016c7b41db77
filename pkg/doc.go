// Package pkg provides the core libraries for tabmind, a personal knowledge
// graph of bookmarked URLs and topics.
//
// # Overview
//
// A tabmind graph holds two kinds of nodes, URLs and topics, joined by
// undirected edges. Every mutation is written back to a storage backend as a
// single JSON document, so the graph on disk always matches the last
// successful command.
//
// # Architecture
//
// The typical data flow through tabmind:
//
//	storage backend (file, sqlite, redis, mongo, memory)
//	         ↓
//	    [io] package (decode and validate the JSON document)
//	         ↓
//	    [kgraph] package (nodes, edges, walks)
//	         ↓
//	    [store] package (mutations, flush after each change)
//	         ↓
//	    shell output, DOT/SVG diagrams, JSON/YAML exports
//
// # Quick Start
//
// Open a document, add two nodes, connect them and print the walk:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/tabmind/pkg/kgraph"
//	    "github.com/matzehuels/tabmind/pkg/storage"
//	    "github.com/matzehuels/tabmind/pkg/store"
//	)
//
//	ctx := context.Background()
//	st, _ := store.Open(ctx, storage.NewFileBackend("tabs.json"), store.Options{})
//	defer st.Close()
//
//	st.AddURL(ctx, "https://go.dev", "The Go website")
//	st.AddTopic(ctx, "golang", "")
//	st.AddEdge(ctx, "https://go.dev", "golang")
//
//	visits, _ := st.Walk("golang", 1)
//	kgraph.WriteTree(os.Stdout, visits)
//
// # Main Packages
//
// [kgraph] - The in-memory graph: URL and topic nodes indexed by ID and by
// name, canonical undirected edges, and the bounded depth-first walk.
//
// [io] - The persisted JSON document: structural validation, decoding with
// per-edge skipping, deterministic encoding and a YAML view.
//
// [store] - A graph bound to a storage backend. Each mutation validates its
// input, applies the change and flushes the whole document.
//
// [storage] - Snapshot backends behind one interface: a JSON file, a sqlite
// row, a redis key, a mongo document, or memory for tests.
//
// [config] - TOML configuration for the backend, the log level and metrics.
//
// [errors] - Error codes shared by every package, plus input validation.
//
// [observability] - Hooks for store and command events, with a Prometheus
// implementation that writes a textfile.
//
// [render/nodelink] - Graphviz DOT output and SVG rendering.
//
// [buildinfo] - Version information set at build time.
//
// [kgraph]: https://pkg.go.dev/github.com/matzehuels/tabmind/pkg/kgraph
// [io]: https://pkg.go.dev/github.com/matzehuels/tabmind/pkg/io
// [store]: https://pkg.go.dev/github.com/matzehuels/tabmind/pkg/store
// [storage]: https://pkg.go.dev/github.com/matzehuels/tabmind/pkg/storage
// [config]: https://pkg.go.dev/github.com/matzehuels/tabmind/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/tabmind/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tabmind/pkg/observability
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/tabmind/pkg/render/nodelink
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/tabmind/pkg/buildinfo
package pkg
