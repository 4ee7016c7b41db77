package cli

import (
	"bytes"
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabmind/pkg/errors"
	"github.com/matzehuels/tabmind/pkg/io"
	"github.com/matzehuels/tabmind/pkg/kgraph"
	"github.com/matzehuels/tabmind/pkg/render/nodelink"
)

// Export formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format   string // output format: json, yaml, dot or svg
	output   string // output file path; empty writes to stdout
	from     string // start node for a partial diagram (dot and svg only)
	depth    int    // walk depth from the start node
	detailed bool   // include IDs and descriptions in diagram labels
}

// exportCommand creates the "export" command.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{format: formatJSON, depth: 1}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the graph as JSON, YAML, DOT or SVG",
		Example: `  tabmind export -f yaml
  tabmind export -f svg -o graph.svg
  tabmind export -f dot --from golang -d 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withSession(ctx, func(s *Session) error {
				elapsed := startTimer(loggerFromContext(ctx))
				data, err := c.export(ctx, s, opts)
				if err != nil {
					return err
				}
				if opts.output == "" {
					_, err := c.Out.Write(data)
					return err
				}
				if err := os.WriteFile(opts.output, data, 0644); err != nil {
					return errors.Wrap(errors.ErrCodeStorage, err, "write %s", opts.output)
				}
				elapsed.done("exported", "format", opts.format, "path", opts.output, "bytes", len(data))
				p := newPrinter(c.Out)
				p.file(opts.output)
				p.detail("%d bytes", len(data))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json, yaml, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.from, "from", "", "draw only the nodes near this node (dot, svg)")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", opts.depth, "walk depth for --from")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include IDs and descriptions in diagram labels")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatJSON, formatYAML, formatDOT, formatSVG}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) export(ctx context.Context, s *Session, opts exportOpts) ([]byte, error) {
	g := s.Store().Graph()
	if opts.from != "" && (opts.format == formatJSON || opts.format == formatYAML) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--from applies to dot and svg only")
	}

	switch opts.format {
	case formatJSON:
		return io.Encode(g)
	case formatYAML:
		var buf bytes.Buffer
		if err := io.WriteYAML(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatDOT, formatSVG:
		dopts := nodelink.Options{Detailed: opts.detailed}
		if opts.from != "" {
			visits, err := s.Store().Walk(opts.from, opts.depth)
			if err != nil {
				return nil, err
			}
			dopts.Visits = nonNil(visits)
		}
		dot := nodelink.ToDOT(g, dopts)
		if opts.format == formatDOT {
			return []byte(dot), nil
		}
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		return svg, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown export format %q", opts.format)
}

// nonNil keeps an empty walk distinct from "no filter".
func nonNil(visits []kgraph.Visit) []kgraph.Visit {
	if visits == nil {
		return []kgraph.Visit{}
	}
	return visits
}
