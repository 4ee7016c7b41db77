package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabmind/pkg/kgraph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listTopicStyle    = lipgloss.NewStyle().Foreground(colorYellow)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

const (
	browseMinHeight = 5
	browseListWidth = 40
	browseMaxDepth  = 9
)

// browseCommand creates the "browse" command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Explore the graph interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *Session) error {
				p := tea.NewProgram(NewBrowseModel(s.Store().Graph()),
					tea.WithAltScreen(), tea.WithContext(cmd.Context()))
				_, err := p.Run()
				return err
			})
		},
	}
}

// =============================================================================
// BrowseModel - Interactive graph explorer
// =============================================================================

// BrowseModel is the bubbletea model for browsing the graph: a node list on
// the left and the walk from the selected node on the right.
type BrowseModel struct {
	Graph  *kgraph.Graph
	Nodes  []*kgraph.Node
	Filter kgraph.Kind // zero shows both kinds
	Cursor int
	Offset int
	Height int
	Depth  int

	tree viewport.Model
}

// NewBrowseModel creates a browse model over g showing one hop.
func NewBrowseModel(g *kgraph.Graph) BrowseModel {
	m := BrowseModel{
		Graph:  g,
		Height: 15,
		Depth:  1,
		tree:   viewport.New(60, 15),
	}
	m.reload()
	return m
}

// Selected returns the node under the cursor, or nil for an empty list.
func (m BrowseModel) Selected() *kgraph.Node {
	if m.Cursor < 0 || m.Cursor >= len(m.Nodes) {
		return nil
	}
	return m.Nodes[m.Cursor]
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "+", "=", "right", "l":
			if m.Depth < browseMaxDepth {
				m.Depth++
			}
		case "-", "left", "h":
			if m.Depth > 0 {
				m.Depth--
			}
		case "tab":
			m.Filter = (m.Filter + 1) % (kgraph.KindTopic + 1)
			m.reload()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.tree, cmd = m.tree.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < browseMinHeight {
			m.Height = browseMinHeight
		}
		m.tree.Width = max(msg.Width-browseListWidth-8, 20)
		m.tree.Height = m.Height
	}
	m.refresh()
	return m, nil
}

// reload rebuilds the node list for the current filter.
func (m *BrowseModel) reload() {
	if m.Filter == 0 {
		m.Nodes = m.Graph.Nodes()
	} else {
		m.Nodes = m.Graph.NodesOfKind(m.Filter)
	}
	m.Cursor, m.Offset = 0, 0
	m.refresh()
}

// refresh renders the walk from the selected node into the tree pane.
func (m *BrowseModel) refresh() {
	n := m.Selected()
	if n == nil {
		m.tree.SetContent(listDimStyle.Render("no nodes"))
		return
	}
	visits, err := m.Graph.Walk(n.ID, m.Depth)
	if err != nil {
		m.tree.SetContent(err.Error())
		return
	}
	var buf bytes.Buffer
	_ = kgraph.WriteTree(&buf, visits)
	m.tree.SetContent(buf.String())
	m.tree.GotoTop()
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse " + m.filterName()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  +/- depth  tab filter  pgup/pgdn scroll  q quit"))
	b.WriteString("\n\n")

	var list strings.Builder
	end := min(m.Offset+m.Height, len(m.Nodes))
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name := truncate(n.Name, browseListWidth-4)
		switch {
		case i == m.Cursor:
			list.WriteString(listSelectedStyle.Render(cursor + name))
		case n.Kind == kgraph.KindTopic:
			list.WriteString(listTopicStyle.Render(cursor + name))
		default:
			list.WriteString(listNormalStyle.Render(cursor + name))
		}
		list.WriteString("\n")
	}
	if len(m.Nodes) == 0 {
		list.WriteString(listDimStyle.Render("empty"))
	}

	left := paneStyle.Width(browseListWidth).Render(strings.TrimRight(list.String(), "\n"))
	right := paneStyle.Render(m.tree.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  depth %d", min(m.Cursor+1, len(m.Nodes)), len(m.Nodes), m.Depth)))

	return b.String()
}

func (m BrowseModel) filterName() string {
	switch m.Filter {
	case kgraph.KindURL:
		return "urls"
	case kgraph.KindTopic:
		return "topics"
	}
	return "all nodes"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
