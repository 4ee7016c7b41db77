// Package store keeps the knowledge graph in memory and persists it after
// every mutation.
//
// A [Store] owns one [kgraph.Graph] and one [storage.Backend]. [Open] loads
// the snapshot; every successful add or remove rewrites the full snapshot
// before returning. Errors carry codes from pkg/errors:
//
//   - INVALID_DOCUMENT: the snapshot is malformed (from [Open] only)
//   - INVALID_INPUT: an empty name, control characters, or a self-loop
//   - NOT_FOUND: a key matches no node, or the edge is absent
//   - ALREADY_EXISTS: a duplicate name or a duplicate edge
//   - STORAGE_ERROR: the backend failed to load or save
//
// A Store is not safe for concurrent use.
package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabmind/pkg/errors"
	"github.com/matzehuels/tabmind/pkg/io"
	"github.com/matzehuels/tabmind/pkg/kgraph"
	"github.com/matzehuels/tabmind/pkg/observability"
	"github.com/matzehuels/tabmind/pkg/storage"
)

// Options configures [Open].
type Options struct {
	// Logger receives flush and load diagnostics. Defaults to log.Default().
	Logger *log.Logger

	// Hooks receives store events. Defaults to observability.Store().
	Hooks observability.StoreHooks
}

// Store is the persisting facade over the graph.
type Store struct {
	graph   *kgraph.Graph
	backend storage.Backend
	logger  *log.Logger
	hooks   observability.StoreHooks
	skipped []error
}

// Open loads the snapshot from backend. A backend with nothing saved yields
// an empty graph. Malformed edge entries are skipped and logged as warnings;
// any other defect in the document fails with INVALID_DOCUMENT.
func Open(ctx context.Context, backend storage.Backend, opts Options) (*Store, error) {
	s := &Store{backend: backend, logger: opts.Logger, hooks: opts.Hooks}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.hooks == nil {
		s.hooks = observability.Store()
	}

	start := time.Now()
	err := s.load(ctx)
	s.hooks.OnLoad(ctx, backend.String(), len(s.skipped), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	s.reportSize(ctx)
	s.logger.Debug("loaded graph", "backend", backend,
		"nodes", s.graph.NodeCount(), "edges", s.graph.EdgeCount(), "skipped", len(s.skipped))
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	data, ok, err := s.backend.Load(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "load %s", s.backend)
	}
	if !ok {
		s.graph = kgraph.New()
		return nil
	}
	res, err := io.Decode(data)
	if err != nil {
		return err
	}
	for _, e := range res.Skipped {
		s.logger.Warn("skipping malformed edge", "err", e)
	}
	s.graph = res.Graph
	s.skipped = res.Skipped
	return nil
}

// Skipped returns the MALFORMED_EDGE errors recorded while loading.
func (s *Store) Skipped() []error { return s.skipped }

// Graph returns the underlying graph. Callers must not mutate it.
func (s *Store) Graph() *kgraph.Graph { return s.graph }

// Backend describes where the snapshot is stored.
func (s *Store) Backend() string { return s.backend.String() }

// Close closes the backend.
func (s *Store) Close() error { return s.backend.Close() }

// Flush writes the full snapshot to the backend.
func (s *Store) Flush(ctx context.Context) error {
	data, err := io.Encode(s.graph)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	start := time.Now()
	err = s.backend.Save(ctx, data)
	s.hooks.OnFlush(ctx, s.backend.String(), len(data), time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save %s", s.backend)
	}
	s.logger.Debug("flushed graph", "backend", s.backend, "bytes", len(data))
	return nil
}

// commit persists a successful mutation and reports it.
func (s *Store) commit(ctx context.Context, op string) error {
	err := s.Flush(ctx)
	s.hooks.OnMutation(ctx, op, err)
	s.reportSize(ctx)
	return err
}

func (s *Store) reportSize(ctx context.Context) {
	s.hooks.OnGraphSize(ctx,
		len(s.graph.NodesOfKind(kgraph.KindURL)),
		len(s.graph.NodesOfKind(kgraph.KindTopic)),
		s.graph.EdgeCount())
}

// fail reports a rejected mutation and passes err through.
func (s *Store) fail(ctx context.Context, op string, err error) error {
	s.hooks.OnMutation(ctx, op, err)
	return err
}

// Lookup resolves key as a node ID, then as a name.
func (s *Store) Lookup(key string) (*kgraph.Node, error) {
	if n, ok := s.graph.Lookup(key); ok {
		return n, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "node %q not found", key)
}

// URLs returns the URL nodes sorted by name.
func (s *Store) URLs() []*kgraph.Node { return s.graph.NodesOfKind(kgraph.KindURL) }

// Topics returns the topic nodes sorted by name.
func (s *Store) Topics() []*kgraph.Node { return s.graph.NodesOfKind(kgraph.KindTopic) }

// Edges returns every edge in canonical order.
func (s *Store) Edges() []kgraph.Edge { return s.graph.Edges() }

// Walk resolves key and walks the graph from it up to maxDistance hops.
// See [kgraph.Graph.Walk].
func (s *Store) Walk(key string, maxDistance int) ([]kgraph.Visit, error) {
	n, err := s.Lookup(key)
	if err != nil {
		return nil, err
	}
	return s.graph.Walk(n.ID, maxDistance)
}

// AddURL adds a URL node and flushes. When the name is taken by any node,
// AddURL returns that node with an ALREADY_EXISTS error and changes nothing.
func (s *Store) AddURL(ctx context.Context, url, description string) (*kgraph.Node, error) {
	return s.addNode(ctx, "add_url", url, description, kgraph.KindURL)
}

// AddTopic adds a topic node and flushes. Duplicates behave as in [Store.AddURL].
func (s *Store) AddTopic(ctx context.Context, topic, description string) (*kgraph.Node, error) {
	return s.addNode(ctx, "add_topic", topic, description, kgraph.KindTopic)
}

func (s *Store) addNode(ctx context.Context, op, name, desc string, kind kgraph.Kind) (*kgraph.Node, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, s.fail(ctx, op, err)
	}
	if err := errors.ValidateDescription(desc); err != nil {
		return nil, s.fail(ctx, op, err)
	}
	if existing, ok := s.graph.NodeByName(name); ok {
		return existing, s.fail(ctx, op,
			errors.New(errors.ErrCodeAlreadyExists, "%q already exists as %s", name, existing.Kind))
	}
	n, err := s.graph.AddNode(kgraph.NewNode(name, desc, kind))
	if err != nil {
		return nil, s.fail(ctx, op, errors.Wrap(errors.ErrCodeInternal, err, "add %s %q", kind, name))
	}
	return n, s.commit(ctx, op)
}

// RemoveURL removes the URL named or identified by key, with all its edges,
// and flushes. A key that matches nothing, or matches a topic, is NOT_FOUND.
func (s *Store) RemoveURL(ctx context.Context, key string) (*kgraph.Node, error) {
	return s.removeNode(ctx, "remove_url", key, kgraph.KindURL)
}

// RemoveTopic is [Store.RemoveURL] for topics.
func (s *Store) RemoveTopic(ctx context.Context, key string) (*kgraph.Node, error) {
	return s.removeNode(ctx, "remove_topic", key, kgraph.KindTopic)
}

func (s *Store) removeNode(ctx context.Context, op, key string, kind kgraph.Kind) (*kgraph.Node, error) {
	n, ok := s.graph.Lookup(key)
	if !ok || n.Kind != kind {
		return nil, s.fail(ctx, op, errors.New(errors.ErrCodeNotFound, "%s %q not found", kind, key))
	}
	removed, err := s.graph.RemoveNode(n.ID)
	if err != nil {
		return nil, s.fail(ctx, op, errors.Wrap(errors.ErrCodeInternal, err, "remove %s %q", kind, key))
	}
	return removed, s.commit(ctx, op)
}

// AddEdge connects the nodes named or identified by k1 and k2, and flushes.
func (s *Store) AddEdge(ctx context.Context, k1, k2 string) (kgraph.Edge, error) {
	const op = "add_edge"
	n1, n2, err := s.endpoints(k1, k2)
	if err != nil {
		return kgraph.Edge{}, s.fail(ctx, op, err)
	}
	e, err := s.graph.AddEdge(n1.ID, n2.ID)
	if err != nil {
		return kgraph.Edge{}, s.fail(ctx, op, edgeError(err, n1, n2))
	}
	return e, s.commit(ctx, op)
}

// RemoveEdge disconnects the nodes named or identified by k1 and k2, and
// flushes. An absent edge is NOT_FOUND.
func (s *Store) RemoveEdge(ctx context.Context, k1, k2 string) (kgraph.Edge, error) {
	const op = "remove_edge"
	n1, n2, err := s.endpoints(k1, k2)
	if err != nil {
		return kgraph.Edge{}, s.fail(ctx, op, err)
	}
	e, err := s.graph.RemoveEdge(n1.ID, n2.ID)
	if err != nil {
		return kgraph.Edge{}, s.fail(ctx, op, edgeError(err, n1, n2))
	}
	return e, s.commit(ctx, op)
}

func (s *Store) endpoints(k1, k2 string) (*kgraph.Node, *kgraph.Node, error) {
	n1, err := s.Lookup(k1)
	if err != nil {
		return nil, nil, err
	}
	n2, err := s.Lookup(k2)
	if err != nil {
		return nil, nil, err
	}
	return n1, n2, nil
}

func edgeError(err error, n1, n2 *kgraph.Node) error {
	switch {
	case stderrors.Is(err, kgraph.ErrSelfLoop):
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot connect %q to itself", n1.Name)
	case stderrors.Is(err, kgraph.ErrDuplicateEdge):
		return errors.Wrap(errors.ErrCodeAlreadyExists, err, "%q and %q are already connected", n1.Name, n2.Name)
	case stderrors.Is(err, kgraph.ErrEdgeNotFound):
		return errors.Wrap(errors.ErrCodeNotFound, err, "%q and %q are not connected", n1.Name, n2.Name)
	case stderrors.Is(err, kgraph.ErrUnknownNode):
		return errors.Wrap(errors.ErrCodeNotFound, err, "edge endpoint not found")
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "edge %q -- %q", n1.Name, n2.Name)
}
