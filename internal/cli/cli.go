package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabmind/pkg/buildinfo"
	"github.com/matzehuels/tabmind/pkg/config"
	"github.com/matzehuels/tabmind/pkg/errors"
	"github.com/matzehuels/tabmind/pkg/observability"
	"github.com/matzehuels/tabmind/pkg/storage"
	"github.com/matzehuels/tabmind/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tabmind"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// In and Out are the shell's input and the commands' output. Err
	// receives the connection spinner.
	In  io.Reader
	Out io.Writer
	Err io.Writer

	flags   globalFlags
	cfg     config.Config
	metrics *observability.PromHooks
}

// globalFlags holds the persistent flags of the root command.
type globalFlags struct {
	configPath string
	dataPath   string
	backend    string
	verbose    bool
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level; debug also turns on timestamps.
func (c *CLI) SetLogLevel(level log.Level) {
	setLevel(c.Logger, level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Without a subcommand, tabmind starts the interactive shell.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tabmind keeps a graph of bookmarks and topics",
		Long: `tabmind is a personal knowledge graph: bookmarked URLs and topics joined by
undirected edges, saved after every change.

Run without arguments to start the interactive shell.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShell(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.writeMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tabmind/config.toml)")
	pf.StringVar(&c.flags.dataPath, "data", "", "document path for the file backend (default tabs.json)")
	pf.StringVar(&c.flags.backend, "backend", "", "storage backend: file, sqlite, redis, mongo or memory")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.shellCommand())
	root.AddCommand(c.urlCommand())
	root.AddCommand(c.topicCommand())
	root.AddCommand(c.edgeCommand())
	root.AddCommand(c.lsCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, applies flag overrides and installs
// metrics hooks. It runs before every command.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	path := c.flags.configPath
	explicit := path != ""
	if !explicit {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Read(path, explicit)
	if err != nil {
		return err
	}
	if c.flags.backend != "" {
		cfg.Storage.Backend = c.flags.backend
	}
	if c.flags.dataPath != "" {
		cfg.Storage.Path = c.flags.dataPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	if c.flags.verbose {
		c.SetLogLevel(log.DebugLevel)
	} else if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		c.SetLogLevel(level)
	}

	if cfg.Metrics.Textfile != "" {
		c.metrics = observability.NewPromHooks()
		observability.SetStoreHooks(c.metrics)
		observability.SetCommandHooks(c.metrics)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("configuration loaded", "config", path, "backend", cfg.Storage.Backend)
	return nil
}

// writeMetrics writes the Prometheus textfile when one is configured.
func (c *CLI) writeMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteTextfile(c.cfg.Metrics.Textfile); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write metrics to %s", c.cfg.Metrics.Textfile)
	}
	c.Logger.Debug("metrics written", "path", c.cfg.Metrics.Textfile)
	return nil
}

// openStore opens the configured backend and loads the graph.
// An invalid document aborts here, before any command runs.
func (c *CLI) openStore(ctx context.Context) (*store.Store, error) {
	var spin *spinner
	if b := c.cfg.Storage.Backend; b == config.BackendRedis || b == config.BackendMongo {
		spin = newSpinner(ctx, c.Err, "Connecting to "+b)
		spin.Start()
	}
	backend, err := storage.Open(ctx, c.cfg.Storage)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, backend, store.Options{Logger: c.Logger})
	if err != nil {
		backend.Close()
		return nil, err
	}
	return st, nil
}

// withSession opens the store, runs fn with a session bound to c.Out and
// closes the store afterwards.
func (c *CLI) withSession(ctx context.Context, fn func(*Session) error) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(NewSession(st, c.Out, c.Logger))
}

func (c *CLI) runShell(ctx context.Context) error {
	return c.withSession(ctx, func(s *Session) error {
		p := newPrinter(c.Out)
		p.info("%s %s", StyleTitle.Render(appName), StyleDim.Render(buildinfo.Short()))
		p.keyValue("storage", s.Store().Backend())
		g := s.Store().Graph()
		p.stats(len(s.Store().URLs()), len(s.Store().Topics()), g.EdgeCount())
		if g.NodeCount() == 0 {
			p.nextStep("Add a bookmark", "au, https://go.dev, The Go website")
		}
		return NewShell(s, c.In, c.Out, c.Logger).Run(ctx)
	})
}
