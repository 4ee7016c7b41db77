// Package observability provides hooks for metrics and tracing.
//
// The store and the shell emit events through small hook interfaces instead of
// depending on a metrics library directly. No-op implementations are
// installed by default; main registers real ones at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    prom := observability.NewPromHooks()
//	    observability.SetStoreHooks(prom)
//	    observability.SetCommandHooks(prom)
//	    // ... run application
//	    _ = prom.WriteTextfile("/var/lib/node_exporter/tabmind.prom")
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	err := backend.Save(ctx, data)
//	observability.Store().OnFlush(ctx, backend.String(), len(data), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from the knowledge-graph store.
type StoreHooks interface {
	// OnLoad records the initial load of the snapshot. skipped counts the
	// malformed edge entries that were dropped.
	OnLoad(ctx context.Context, backend string, skipped int, duration time.Duration, err error)

	// OnMutation records one add or remove operation, e.g. "add_url".
	OnMutation(ctx context.Context, op string, err error)

	// OnFlush records one snapshot write of size bytes.
	OnFlush(ctx context.Context, backend string, size int, duration time.Duration, err error)

	// OnGraphSize reports the node and edge counts after a load or a mutation.
	OnGraphSize(ctx context.Context, urls, topics, edges int)
}

// =============================================================================
// Command Hooks
// =============================================================================

// CommandHooks receives events from the interactive shell.
type CommandHooks interface {
	// OnCommand records one dispatched shell command, e.g. "au".
	OnCommand(ctx context.Context, name string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, int, time.Duration, error)  {}
func (NoopStoreHooks) OnMutation(context.Context, string, error)                  {}
func (NoopStoreHooks) OnFlush(context.Context, string, int, time.Duration, error) {}
func (NoopStoreHooks) OnGraphSize(context.Context, int, int, int)                 {}

// NoopCommandHooks is a no-op implementation of CommandHooks.
type NoopCommandHooks struct{}

func (NoopCommandHooks) OnCommand(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	storeHooks   StoreHooks   = NoopStoreHooks{}
	commandHooks CommandHooks = NoopCommandHooks{}
	hooksMu      sync.RWMutex
)

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before the store is opened.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetCommandHooks registers custom command hooks.
func SetCommandHooks(h CommandHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		commandHooks = h
	}
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Command returns the registered command hooks.
func Command() CommandHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return commandHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storeHooks = NoopStoreHooks{}
	commandHooks = NoopCommandHooks{}
}
