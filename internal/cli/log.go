// Package cli implements the tabmind command-line interface.
//
// Running tabmind without arguments starts an interactive shell that reads
// comma-separated commands ("au, https://go.dev", "pn, golang, 2"). The same
// operations are available as one-shot cobra subcommands for scripting. The
// CLI is built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
//   - shell: the interactive shell (the default)
//   - url, topic, edge: add and remove nodes and edges
//   - ls, show: list nodes and edges, print the neighborhood of a node
//   - export: write the graph as JSON, YAML, DOT or SVG
//   - browse: explore the graph in a terminal UI
//   - validate: check a document without loading it into the store
//
// # Logging
//
// Logs go to stderr and stay quiet at info level: the shell owns stdout.
// --verbose (-v) or `[log] level = "debug"` turns on debug messages with
// timestamps. Loggers are passed through context.Context so helpers deep in
// a command can log with the command's logger.
//
// # Example
//
//	import "github.com/matzehuels/tabmind/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level. Timestamps are only
// shown at debug level, see [setLevel].
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{TimeFormat: "15:04:05.00"})
	setLevel(l, level)
	return l
}

// setLevel changes the level of l and shows timestamps for debug output.
func setLevel(l *log.Logger, level log.Level) {
	l.SetLevel(level)
	l.SetReportTimestamp(level <= log.DebugLevel)
}

// timer measures one operation and logs its completion with the elapsed
// time as a structured field.
type timer struct {
	logger *log.Logger
	start  time.Time
}

func startTimer(l *log.Logger) timer {
	return timer{logger: l, start: time.Now()}
}

// done logs msg and keyvals followed by elapsed=<duration>, e.g.
//
//	INFO exported format=svg path=graph.svg bytes=5120 elapsed=1.234s
func (t timer) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(t.start).Round(time.Millisecond))
	t.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by [withLogger], or
// log.Default() when setup did not run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
