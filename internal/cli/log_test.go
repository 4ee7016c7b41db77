package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("skipping malformed edge") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("flushed graph") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("flushed graph") }, true},
		{"info at error level", log.ErrorLevel, func(l *log.Logger) { l.Info("loaded graph") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	startTimer(newLogger(&buf, log.InfoLevel)).done("exported", "format", "json", "bytes", 42)

	out := buf.String()
	for _, want := range []string{"exported", "format=json", "bytes=42", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("timer output %q missing %q", out, want)
		}
	}
}

func TestTimestampsOnlyAtDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	l.Info("loaded graph")
	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Errorf("info output = %q, want no timestamp", buf.String())
	}

	buf.Reset()
	setLevel(l, log.DebugLevel)
	l.Debug("flushed graph")
	if out := buf.String(); out == "" || out[0] < '0' || out[0] > '9' {
		t.Errorf("debug output = %q, want a leading timestamp", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	got.Info("attached")
	if buf.Len() == 0 {
		t.Error("attached logger should write to its buffer")
	}
}

func TestSetupLogLevel(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfg, []byte("[storage]\nbackend = \"memory\"\n[log]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want log.Level
	}{
		{"config level", []string{"ls", "urls"}, log.ErrorLevel},
		{"verbose wins", []string{"-v", "ls", "urls"}, log.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			c := New(&logs, LogInfo)
			c.Out = &bytes.Buffer{}
			root := c.RootCommand()
			root.SetArgs(append([]string{"--config", cfg}, tt.args...))
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}
			if got := c.Logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}
