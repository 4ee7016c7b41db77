package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabmind/pkg/errors"
	"github.com/matzehuels/tabmind/pkg/observability"
)

// prompt is printed before every shell command.
const prompt = "enter command (? for options): "

// shellCommand describes one verb of the interactive shell.
type shellCommand struct {
	usage   string
	help    string
	minArgs int
	maxArgs int
	run     func(ctx context.Context, args []string) error
}

// Shell is the line-oriented interactive front end. Each input line is a
// verb followed by comma-separated arguments, e.g. "ae, http://a.com, news".
type Shell struct {
	session  *Session
	in       io.Reader
	out      *printer
	logger   *log.Logger
	commands map[string]shellCommand
	order    []string
}

// NewShell creates a shell reading commands from in and writing to w.
func NewShell(session *Session, in io.Reader, w io.Writer, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.Default()
	}
	sh := &Shell{session: session, in: in, out: newPrinter(w), logger: logger}
	sh.register()
	return sh
}

func (sh *Shell) register() {
	s := sh.session
	sh.commands = make(map[string]shellCommand)
	add := func(verb string, c shellCommand) {
		sh.commands[verb] = c
		sh.order = append(sh.order, verb)
	}

	add("?", shellCommand{usage: "?", help: "print available commands",
		run: func(context.Context, []string) error { sh.printHelp(); return nil }})
	add("pu", shellCommand{usage: "pu", help: "print urls",
		run: func(context.Context, []string) error { return s.PrintURLs() }})
	add("pt", shellCommand{usage: "pt", help: "print topics",
		run: func(context.Context, []string) error { return s.PrintTopics() }})
	add("pe", shellCommand{usage: "pe", help: "print edges",
		run: func(context.Context, []string) error { return s.PrintEdges() }})
	add("pn", shellCommand{usage: "pn, <node>, <n>", help: "print nodes within n hops of the node", minArgs: 2, maxArgs: 2,
		run: func(_ context.Context, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "distance %q is not an integer", args[1])
			}
			return s.PrintNodes(args[0], n)
		}})
	add("au", shellCommand{usage: "au, <url>, <description>", help: "add url", minArgs: 1, maxArgs: 2,
		run: func(ctx context.Context, args []string) error { return s.AddURL(ctx, args[0], optional(args, 1)) }})
	add("at", shellCommand{usage: "at, <topic>, <description>", help: "add topic", minArgs: 1, maxArgs: 2,
		run: func(ctx context.Context, args []string) error { return s.AddTopic(ctx, args[0], optional(args, 1)) }})
	add("ae", shellCommand{usage: "ae, <node1>, <node2>", help: "add edge between two nodes", minArgs: 2, maxArgs: 2,
		run: func(ctx context.Context, args []string) error { return s.AddEdge(ctx, args[0], args[1]) }})
	add("ru", shellCommand{usage: "ru, <url>", help: "remove url", minArgs: 1, maxArgs: 1,
		run: func(ctx context.Context, args []string) error { return s.RemoveURL(ctx, args[0]) }})
	add("rt", shellCommand{usage: "rt, <topic>", help: "remove topic", minArgs: 1, maxArgs: 1,
		run: func(ctx context.Context, args []string) error { return s.RemoveTopic(ctx, args[0]) }})
	add("re", shellCommand{usage: "re, <node1>, <node2>", help: "remove edge between two nodes", minArgs: 2, maxArgs: 2,
		run: func(ctx context.Context, args []string) error { return s.RemoveEdge(ctx, args[0], args[1]) }})
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func isQuit(verb string) bool {
	return verb == "q" || verb == "quit" || verb == "exit"
}

func (sh *Shell) printHelp() {
	for _, verb := range sh.order {
		c := sh.commands[verb]
		sh.out.line(c.usage + " - " + c.help)
	}
	sh.out.line("q - quit")
}

// Run reads and executes commands until EOF, a quit verb, or ctx is done.
// A failed command prints "Command failed" with the reason, unless the
// session already reported it, and the loop continues.
func (sh *Shell) Run(ctx context.Context) error {
	// releases the reader goroutine when Run returns on a quit verb
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(sh.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(sh.out.w, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(sh.out.w)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(sh.out.w)
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if isQuit(strings.TrimSpace(line)) {
				return nil
			}
			if err := sh.Execute(ctx, line); err != nil {
				if !alreadyReported(err) {
					sh.out.failure("Command failed: %s", errors.UserMessage(err))
				}
				sh.logger.Debug("command failed", "line", line, "code", causeCode(err))
			}
		}
	}
}

// Execute parses and runs one command line. Blank lines do nothing.
// Every failure is returned as COMMAND_FAILED wrapping the cause.
func (sh *Shell) Execute(ctx context.Context, line string) error {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	verb, args := fields[0], fields[1:]
	if verb == "" && len(args) == 0 {
		return nil
	}

	c, ok := sh.commands[verb]
	if !ok {
		return errors.Wrap(errors.ErrCodeCommandFailed,
			errors.New(errors.ErrCodeInvalidInput, "unknown command %q", verb),
			"unknown command %q (? for options)", verb)
	}
	if len(args) < c.minArgs || len(args) > c.maxArgs {
		return errors.Wrap(errors.ErrCodeCommandFailed,
			errors.New(errors.ErrCodeInvalidInput, "got %d arguments", len(args)),
			"wrong number of arguments for command %q, usage: %s", verb, c.usage)
	}

	start := time.Now()
	err := c.run(ctx, args)
	observability.Command().OnCommand(ctx, verb, time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCommandFailed, err, "%s", errors.UserMessage(err))
	}
	return nil
}

// causeCode returns the code of the error wrapped by a COMMAND_FAILED.
func causeCode(err error) errors.Code {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		if code := errors.GetCode(e.Cause); code != "" {
			return code
		}
	}
	return errors.GetCode(err)
}
