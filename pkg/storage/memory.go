package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend keeps the document in memory. It is safe for concurrent use.
type MemoryBackend struct {
	mu    sync.Mutex
	data  []byte
	saved bool
	fail  error
}

// NewMemoryBackend returns a backend preloaded with data. A nil data starts
// empty, as if nothing had been saved.
func NewMemoryBackend(data []byte) *MemoryBackend {
	return &MemoryBackend{data: slices.Clone(data), saved: data != nil}
}

// Load returns a copy of the last saved document.
func (b *MemoryBackend) Load(ctx context.Context) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.saved {
		return nil, false, nil
	}
	return slices.Clone(b.data), true, nil
}

// Save stores a copy of data. It returns the error set by FailWith, if any.
func (b *MemoryBackend) Save(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return b.fail
	}
	b.data = slices.Clone(data)
	b.saved = true
	return nil
}

// FailWith makes every following Save return err. Pass nil to clear.
func (b *MemoryBackend) FailWith(err error) {
	b.mu.Lock()
	b.fail = err
	b.mu.Unlock()
}

// Close does nothing.
func (b *MemoryBackend) Close() error { return nil }

func (b *MemoryBackend) String() string { return "memory" }

var _ Backend = (*MemoryBackend)(nil)
