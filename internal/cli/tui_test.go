package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tabmind/pkg/kgraph"
)

func browseGraph(t *testing.T) *kgraph.Graph {
	t.Helper()
	g := kgraph.New()
	for _, n := range []kgraph.Node{
		{ID: "u1", Name: "http://a.com", Kind: kgraph.KindURL},
		{ID: "t1", Name: "news", Kind: kgraph.KindTopic},
		{ID: "t2", Name: "world", Kind: kgraph.KindTopic},
	} {
		if _, err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	g.AddEdge("u1", "t1")
	g.AddEdge("t1", "t2")
	return g
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m BrowseModel, keys ...string) BrowseModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(BrowseModel)
	}
	return m
}

func TestBrowseModelNavigation(t *testing.T) {
	m := NewBrowseModel(browseGraph(t))
	if len(m.Nodes) != 3 || m.Selected().Name != "http://a.com" {
		t.Fatalf("initial selection = %v of %d", m.Selected(), len(m.Nodes))
	}

	tests := []struct {
		keys []string
		want string
	}{
		{[]string{"down"}, "news"},
		{[]string{"j", "j", "j"}, "world"},
		{[]string{"down", "up"}, "http://a.com"},
		{[]string{"k"}, "http://a.com"},
	}
	for _, tt := range tests {
		got := press(m, tt.keys...)
		if got.Selected().Name != tt.want {
			t.Errorf("after %v selected %q, want %q", tt.keys, got.Selected().Name, tt.want)
		}
	}
}

func TestBrowseModelDepth(t *testing.T) {
	m := NewBrowseModel(browseGraph(t))
	if m.Depth != 1 {
		t.Fatalf("Depth = %d", m.Depth)
	}
	if got := press(m, "-", "-", "-").Depth; got != 0 {
		t.Errorf("Depth after lowering = %d, want 0", got)
	}
	raised := press(m, "+")
	if raised.Depth != 2 {
		t.Errorf("Depth after + = %d", raised.Depth)
	}
	if !strings.Contains(raised.tree.View(), "world") {
		t.Errorf("depth 2 tree misses world:\n%s", raised.tree.View())
	}
	if strings.Contains(m.tree.View(), "world") {
		t.Errorf("depth 1 tree includes world:\n%s", m.tree.View())
	}

	keys := make([]string, 20)
	for i := range keys {
		keys[i] = "l"
	}
	if got := press(m, keys...).Depth; got != browseMaxDepth {
		t.Errorf("Depth = %d, want cap %d", got, browseMaxDepth)
	}
}

func TestBrowseModelFilter(t *testing.T) {
	m := NewBrowseModel(browseGraph(t))

	m = press(m, "down", "tab")
	if m.Filter != kgraph.KindURL || len(m.Nodes) != 1 || m.Cursor != 0 {
		t.Errorf("url filter: %v, %d nodes, cursor %d", m.Filter, len(m.Nodes), m.Cursor)
	}
	m = press(m, "tab")
	if m.Filter != kgraph.KindTopic || len(m.Nodes) != 2 {
		t.Errorf("topic filter: %v, %d nodes", m.Filter, len(m.Nodes))
	}
	if !strings.Contains(m.View(), "Browse topics") {
		t.Errorf("view title:\n%s", m.View())
	}
	m = press(m, "tab")
	if m.Filter != 0 || len(m.Nodes) != 3 {
		t.Errorf("filter did not cycle back: %v", m.Filter)
	}
}

func TestBrowseModelQuit(t *testing.T) {
	m := NewBrowseModel(browseGraph(t))
	for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%q: no command", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: command is not quit", msg.String())
		}
	}
}

func TestBrowseModelEmptyGraph(t *testing.T) {
	m := NewBrowseModel(kgraph.New())
	if m.Selected() != nil {
		t.Error("Selected() on empty graph is not nil")
	}
	m = press(m, "down", "+")
	if !strings.Contains(m.View(), "empty") {
		t.Errorf("empty view:\n%s", m.View())
	}
}

func TestBrowseModelWindowSize(t *testing.T) {
	m := NewBrowseModel(browseGraph(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 10})
	m = next.(BrowseModel)
	if m.Height != browseMinHeight {
		t.Errorf("Height = %d, want minimum %d", m.Height, browseMinHeight)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"https://example.com", 8, "https:/…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
