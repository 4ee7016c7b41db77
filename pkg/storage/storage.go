// Package storage persists the serialized knowledge graph.
//
// A [Backend] stores exactly one document: the JSON snapshot produced by the
// codec in pkg/io. The store rewrites the whole snapshot after every mutation,
// so backends only need a load and a replace operation.
//
// Backends:
//   - [FileBackend]: a JSON file on disk (the default)
//   - [MemoryBackend]: an in-process buffer for tests and scratch sessions
//   - [SQLiteBackend]: one row in a local SQLite database
//   - [RedisBackend]: one string key in Redis
//   - [MongoBackend]: one document in a MongoDB collection
//
// Use [Open] to build the backend selected in the configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/matzehuels/tabmind/pkg/config"
	"github.com/matzehuels/tabmind/pkg/errors"
)

// Backend loads and saves the snapshot document.
type Backend interface {
	// Load returns the stored document. The boolean is false when nothing
	// has been saved yet; that is not an error.
	Load(ctx context.Context) ([]byte, bool, error)

	// Save replaces the stored document with data.
	Save(ctx context.Context, data []byte) error

	// Close releases connections held by the backend.
	Close() error

	// String describes the backend location for logs, e.g. "file:tabs.json".
	String() string
}

// Open creates the backend selected by cfg.Backend.
// Network backends verify their connection before returning.
func Open(ctx context.Context, cfg config.Storage) (Backend, error) {
	var (
		b   Backend
		err error
	)
	switch cfg.Backend {
	case config.BackendFile, "":
		b = NewFileBackend(cfg.Path)
	case config.BackendMemory:
		b = NewMemoryBackend(nil)
	case config.BackendSQLite:
		b, err = NewSQLiteBackend(ctx, cfg.SQLite.Path)
	case config.BackendRedis:
		b, err = NewRedisBackend(ctx, cfg.Redis)
	case config.BackendMongo:
		b, err = NewMongoBackend(ctx, cfg.Mongo)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open %s backend", cfg.Backend)
	}
	return b, nil
}

func location(kind, where string) string {
	return fmt.Sprintf("%s:%s", kind, where)
}
