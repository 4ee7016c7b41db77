package observability

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopStoreHooks{}
	s.OnLoad(ctx, "file:tabs.json", 2, time.Millisecond, nil)
	s.OnMutation(ctx, "add_url", nil)
	s.OnFlush(ctx, "file:tabs.json", 128, time.Millisecond, errors.New("disk full"))
	s.OnGraphSize(ctx, 1, 2, 3)

	c := NoopCommandHooks{}
	c.OnCommand(ctx, "au", time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Command().(NoopCommandHooks); !ok {
		t.Error("Command() should return NoopCommandHooks by default")
	}

	prom := NewPromHooks()
	SetStoreHooks(prom)
	SetCommandHooks(prom)
	if Store() != StoreHooks(prom) {
		t.Error("SetStoreHooks should set custom hooks")
	}
	if Command() != CommandHooks(prom) {
		t.Error("SetCommandHooks should set custom hooks")
	}

	// nil is ignored
	SetStoreHooks(nil)
	if Store() != StoreHooks(prom) {
		t.Error("SetStoreHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Reset() should restore NoopStoreHooks")
	}
}

func TestPromHooks(t *testing.T) {
	ctx := context.Background()
	h := NewPromHooks()

	h.OnLoad(ctx, "memory", 3, time.Millisecond, nil)
	h.OnMutation(ctx, "add_url", nil)
	h.OnMutation(ctx, "add_url", nil)
	h.OnMutation(ctx, "add_url", errors.New("duplicate"))
	h.OnFlush(ctx, "memory", 256, time.Millisecond, nil)
	h.OnFlush(ctx, "memory", 512, time.Millisecond, errors.New("disk full"))
	h.OnGraphSize(ctx, 4, 2, 5)
	h.OnCommand(ctx, "pu", time.Millisecond, nil)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"loads ok", testutil.ToFloat64(h.loads.WithLabelValues("ok")), 1},
		{"skipped", testutil.ToFloat64(h.skipped), 3},
		{"add_url ok", testutil.ToFloat64(h.mutations.WithLabelValues("add_url", "ok")), 2},
		{"add_url error", testutil.ToFloat64(h.mutations.WithLabelValues("add_url", "error")), 1},
		{"flush ok", testutil.ToFloat64(h.flushes.WithLabelValues("ok")), 1},
		{"flush error", testutil.ToFloat64(h.flushes.WithLabelValues("error")), 1},
		{"snapshot bytes", testutil.ToFloat64(h.flushSize), 256},
		{"url nodes", testutil.ToFloat64(h.nodes.WithLabelValues("url")), 4},
		{"topic nodes", testutil.ToFloat64(h.nodes.WithLabelValues("topic")), 2},
		{"edges", testutil.ToFloat64(h.edges), 5},
		{"commands", testutil.ToFloat64(h.commands.WithLabelValues("pu", "ok")), 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestPromHooksWriteTextfile(t *testing.T) {
	h := NewPromHooks()
	h.OnMutation(context.Background(), "add_topic", nil)

	path := filepath.Join(t.TempDir(), "tabmind.prom")
	if err := h.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `tabmind_mutations_total{op="add_topic",result="ok"} 1`) {
		t.Errorf("textfile missing mutation counter:\n%s", data)
	}
}
