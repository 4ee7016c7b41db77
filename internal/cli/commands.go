package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabmind/pkg/errors"
	"github.com/matzehuels/tabmind/pkg/io"
	"github.com/matzehuels/tabmind/pkg/kgraph"
)

// shellCommand creates the "shell" command, the same as running tabmind
// without arguments.
func (c *CLI) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShell(cmd.Context())
		},
	}
}

// urlCommand creates the "url" command group.
func (c *CLI) urlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Add or remove bookmarked URLs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "add <url> [description]",
		Short:   "Add a URL",
		Args:    cobra.RangeArgs(1, 2),
		Example: `  tabmind url add https://go.dev "The Go website"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *Session) error {
				return s.AddURL(cmd.Context(), args[0], optional(args, 1))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:               "rm <url|id>",
		Aliases:           []string{"remove"},
		Short:             "Remove a URL and its edges",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNodes(kgraph.KindURL, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *Session) error {
				return s.RemoveURL(cmd.Context(), args[0])
			})
		},
	})
	return cmd
}

// topicCommand creates the "topic" command group.
func (c *CLI) topicCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Add or remove topics",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <topic> [description]",
		Short: "Add a topic",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *Session) error {
				return s.AddTopic(cmd.Context(), args[0], optional(args, 1))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:               "rm <topic|id>",
		Aliases:           []string{"remove"},
		Short:             "Remove a topic and its edges",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNodes(kgraph.KindTopic, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *Session) error {
				return s.RemoveTopic(cmd.Context(), args[0])
			})
		},
	})
	return cmd
}

// edgeCommand creates the "edge" command group.
func (c *CLI) edgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Connect or disconnect nodes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:               "add <node1> <node2>",
		Short:             "Connect two nodes",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeNodes(0, 2),
		Example:           `  tabmind edge add https://go.dev golang`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *Session) error {
				return s.AddEdge(cmd.Context(), args[0], args[1])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:               "rm <node1> <node2>",
		Aliases:           []string{"remove"},
		Short:             "Disconnect two nodes",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeNodes(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *Session) error {
				return s.RemoveEdge(cmd.Context(), args[0], args[1])
			})
		},
	})
	return cmd
}

// lsCommand creates the "ls" command.
func (c *CLI) lsCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "ls <urls|topics|edges>",
		Short:     "List URLs, topics or edges",
		ValidArgs: []string{"urls", "topics", "edges"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *Session) error {
				switch args[0] {
				case "urls":
					return s.PrintURLs()
				case "topics":
					return s.PrintTopics()
				}
				return s.PrintEdges()
			})
		},
	}
}

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "show <node>",
		Short: "Print the nodes within a number of hops of a node",
		Long: `Print the nodes reachable from a node as an indented tree.

The walk is depth-first, visits neighbors in name order and prints every node
at most once.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNodes(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *Session) error {
				return s.PrintNodes(args[0], depth)
			})
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 1, "maximum distance from the node")
	return cmd
}

// validateCommand creates the "validate" command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a file is a well-formed tabmind document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := io.ImportJSON(args[0])
			if err != nil {
				if errors.GetCode(err) == "" {
					return errors.Wrap(errors.ErrCodeStorage, err, "read %s", args[0])
				}
				return err
			}
			p := newPrinter(c.Out)
			p.success("%s is valid", args[0])
			g := res.Graph
			p.stats(len(g.NodesOfKind(kgraph.KindURL)), len(g.NodesOfKind(kgraph.KindTopic)), g.EdgeCount())
			for _, e := range res.Skipped {
				p.warning("%s", errors.UserMessage(e))
			}
			return nil
		},
	}
}
