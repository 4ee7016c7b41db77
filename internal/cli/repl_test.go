package cli

import (
	"context"
	stderrors "errors"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/tabmind/pkg/errors"
)

func TestShellRunScenario(t *testing.T) {
	s, out, _ := newTestSession(t)
	input := strings.Join([]string{
		"au, http://a.com",
		"at, news, headlines",
		"",
		"ae, http://a.com, news",
		"pn, http://a.com, 1",
		"bogus",
		"pn, http://a.com",
		"pn, http://a.com, far",
		"re,http://a.com,news",
		"q",
		"au, http://never.com",
	}, "\n")

	sh := NewShell(s, strings.NewReader(input), out, s.logger)
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	a, err := s.Store().Lookup("http://a.com")
	if err != nil {
		t.Fatal(err)
	}
	news, _ := s.Store().Lookup("news")
	if news.Description != "headlines" {
		t.Errorf("description = %q", news.Description)
	}
	tree := a.String() + "\n  " + news.String() + "\n"
	if !strings.Contains(out.String(), tree) {
		t.Errorf("output missing walk tree:\n%s", out.String())
	}
	if s.Store().Graph().EdgeCount() != 0 {
		t.Error("re did not remove the edge")
	}
	if _, err := s.Store().Lookup("http://never.com"); err == nil {
		t.Error("command after q was executed")
	}
	if got := strings.Count(out.String(), "Command failed"); got != 3 {
		t.Errorf("printed %d failures, want 3:\n%s", got, out.String())
	}
	if !strings.Contains(out.String(), prompt) {
		t.Error("prompt not printed")
	}
}

func TestShellRunEOF(t *testing.T) {
	s, out, _ := newTestSession(t)
	sh := NewShell(s, strings.NewReader("at, news"), out, s.logger)
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := s.Store().Lookup("news"); err != nil {
		t.Error("last line without newline was not executed")
	}
}

func TestShellRunQuitReleasesReader(t *testing.T) {
	s, out, _ := newTestSession(t)
	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		sh := NewShell(s, strings.NewReader("q\npu\npt\n"), out, s.logger)
		if err := sh.Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if after := runtime.NumGoroutine(); after > before {
		t.Errorf("goroutines before=%d after=%d, reader goroutines left running", before, after)
	}
}

func TestShellDuplicateReportedOnce(t *testing.T) {
	s, out, _ := newTestSession(t)
	input := "at, news\nat, news\nau, http://a.com\nae, news, http://a.com\nae, http://a.com, news\n"
	if err := NewShell(s, strings.NewReader(input), out, s.logger).Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if n := strings.Count(got, "news already exists"); n != 1 {
		t.Errorf("duplicate node notice printed %d times:\n%s", n, got)
	}
	// the duplicate node is reported by the session, the duplicate edge by the shell
	if n := strings.Count(got, "Command failed"); n != 1 {
		t.Errorf("printed %d failures, want 1 for the duplicate edge:\n%s", n, got)
	}
	if !strings.Contains(got, "already connected") {
		t.Errorf("duplicate edge not reported:\n%s", got)
	}
}

func TestShellRunCancel(t *testing.T) {
	s, out, _ := newTestSession(t)
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewShell(s, r, out, s.logger).Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !stderrors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestShellExecuteErrors(t *testing.T) {
	s, out, _ := newTestSession(t)
	sh := NewShell(s, strings.NewReader(""), out, s.logger)
	ctx := context.Background()
	sh.Execute(ctx, "at, news")

	tests := []struct {
		line  string
		cause errors.Code
	}{
		{"zz", errors.ErrCodeInvalidInput},
		{"au", errors.ErrCodeInvalidInput},
		{"au, a, b, c", errors.ErrCodeInvalidInput},
		{"ae, news", errors.ErrCodeInvalidInput},
		{"ru", errors.ErrCodeInvalidInput},
		{"pn, news, two", errors.ErrCodeInvalidInput},
		{"ru, http://missing", errors.ErrCodeNotFound},
		{"rt, ghost", errors.ErrCodeNotFound},
		{"re, news, ghost", errors.ErrCodeNotFound},
		{"at, news", errors.ErrCodeAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := sh.Execute(ctx, tt.line)
			if !errors.Is(err, errors.ErrCodeCommandFailed) {
				t.Fatalf("Execute(%q) error = %v, want COMMAND_FAILED", tt.line, err)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("Execute(%q) error = %v, want cause %s", tt.line, err, tt.cause)
			}
			if got := causeCode(err); got != tt.cause {
				t.Errorf("causeCode() = %s, want %s", got, tt.cause)
			}
		})
	}
}

func TestShellExecuteBlankAndHelp(t *testing.T) {
	s, out, _ := newTestSession(t)
	sh := NewShell(s, strings.NewReader(""), out, s.logger)
	ctx := context.Background()

	for _, line := range []string{"", "   ", " \t "} {
		if err := sh.Execute(ctx, line); err != nil {
			t.Errorf("Execute(%q) error = %v", line, err)
		}
	}
	// a lone comma is an empty verb with one argument
	if err := sh.Execute(ctx, " , "); !errors.Is(err, errors.ErrCodeCommandFailed) {
		t.Errorf("Execute(\" , \") error = %v, want COMMAND_FAILED", err)
	}

	out.Reset()
	if err := sh.Execute(ctx, "?"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"pu - print urls", "au, <url>, <description> - add url", "re, <node1>, <node2>", "q - quit"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help missing %q:\n%s", want, out.String())
		}
	}
}
