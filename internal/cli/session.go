package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabmind/pkg/errors"
	"github.com/matzehuels/tabmind/pkg/kgraph"
	"github.com/matzehuels/tabmind/pkg/store"
)

// Session runs user-level operations against a store and prints their
// outcome. Both the interactive shell and the one-shot subcommands go
// through a Session.
//
// Successful operations print one line. Failures are returned, not printed,
// except for duplicate adds, which also print the existing node's
// neighborhood.
type Session struct {
	store  *store.Store
	out    *printer
	logger *log.Logger
}

// NewSession binds st to the writer w.
func NewSession(st *store.Store, w io.Writer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{store: st, out: newPrinter(w), logger: logger}
}

// Store returns the underlying store.
func (s *Session) Store() *store.Store { return s.store }

// AddURL adds a URL node. URLs without an http(s) scheme are accepted
// with a warning.
func (s *Session) AddURL(ctx context.Context, url, description string) error {
	if err := errors.ValidateURL(url); err != nil {
		s.logger.Warn("unusual URL", "url", url, "reason", errors.UserMessage(err))
	}
	n, err := s.store.AddURL(ctx, url, description)
	return s.reportAdd(n, err)
}

// AddTopic adds a topic node.
func (s *Session) AddTopic(ctx context.Context, topic, description string) error {
	n, err := s.store.AddTopic(ctx, topic, description)
	return s.reportAdd(n, err)
}

func (s *Session) reportAdd(n *kgraph.Node, err error) error {
	switch {
	case n == nil:
		return err
	case errors.Is(err, errors.ErrCodeAlreadyExists):
		s.out.warning("%s already exists", n.Name)
		if perr := s.PrintNodes(n.ID, 1); perr != nil {
			return perr
		}
		return reportedError{err}
	}
	// the node is in the graph even when the flush failed
	s.out.success("Added %s", n)
	return err
}

// RemoveURL removes a URL node by ID or name, together with its edges.
func (s *Session) RemoveURL(ctx context.Context, key string) error {
	return s.reportRemove(s.store.RemoveURL(ctx, key))
}

// RemoveTopic removes a topic node by ID or name, together with its edges.
func (s *Session) RemoveTopic(ctx context.Context, key string) error {
	return s.reportRemove(s.store.RemoveTopic(ctx, key))
}

func (s *Session) reportRemove(n *kgraph.Node, err error) error {
	if n != nil {
		s.out.success("Removed %s", n)
	}
	return err
}

// AddEdge connects two nodes given by ID or name.
func (s *Session) AddEdge(ctx context.Context, k1, k2 string) error {
	e, err := s.store.AddEdge(ctx, k1, k2)
	return s.reportEdge("Added", e, err)
}

// RemoveEdge disconnects two nodes given by ID or name.
func (s *Session) RemoveEdge(ctx context.Context, k1, k2 string) error {
	e, err := s.store.RemoveEdge(ctx, k1, k2)
	return s.reportEdge("Removed", e, err)
}

func (s *Session) reportEdge(verb string, e kgraph.Edge, err error) error {
	if e == (kgraph.Edge{}) {
		return err
	}
	g := s.store.Graph()
	n1, _ := g.Node(e.A)
	n2, _ := g.Node(e.B)
	if n1 != nil && n2 != nil {
		s.out.success("%s edge between %s and %s", verb, n1, n2)
	}
	return err
}

// PrintURLs prints every URL node sorted by name, one per line.
func (s *Session) PrintURLs() error {
	return s.printList("urls", s.store.URLs())
}

// PrintTopics prints every topic node sorted by name, one per line.
func (s *Session) PrintTopics() error {
	return s.printList("topics", s.store.Topics())
}

func (s *Session) printList(what string, nodes []*kgraph.Node) error {
	if len(nodes) == 0 {
		s.out.info("No %s", what)
		return nil
	}
	for _, n := range nodes {
		s.out.line(n.String())
	}
	return nil
}

// PrintEdges prints every edge as its ID pair followed by the endpoint names.
func (s *Session) PrintEdges() error {
	edges := s.store.Edges()
	if len(edges) == 0 {
		s.out.info("No edges")
		return nil
	}
	g := s.store.Graph()
	for _, e := range edges {
		a, _ := g.Node(e.A)
		b, _ := g.Node(e.B)
		s.out.line(e.String() + "  " + StyleDim.Render(a.Name+" -- "+b.Name))
	}
	return nil
}

// PrintNodes prints the nodes within distance hops of the node named or
// identified by key, as an indented tree. A negative distance prints nothing.
func (s *Session) PrintNodes(key string, distance int) error {
	visits, err := s.store.Walk(key, distance)
	if err != nil {
		return err
	}
	return kgraph.WriteTree(s.out.w, visits)
}

// reportedError marks a failure the session has already printed.
// It unwraps to the original error, so codes are still visible.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func alreadyReported(err error) bool {
	var r reportedError
	return stderrors.As(err, &r)
}
