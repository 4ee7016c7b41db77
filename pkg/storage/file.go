package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FileBackend keeps the document in a single file.
// Writes replace the file in place and are not atomic.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend for the document at path.
// Nothing is touched on disk until the first Save.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the document path.
func (b *FileBackend) Path() string { return b.path }

// Load reads the file. A missing file reports not found.
func (b *FileBackend) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Save writes data to the file, creating parent directories as needed.
func (b *FileBackend) Save(ctx context.Context, data []byte) error {
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(b.path, data, 0644)
}

// Close does nothing.
func (b *FileBackend) Close() error { return nil }

func (b *FileBackend) String() string { return location("file", b.path) }

var _ Backend = (*FileBackend)(nil)
