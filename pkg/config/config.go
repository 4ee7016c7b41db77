// Package config loads tabmind settings from a TOML file.
//
// Every key is optional. A missing file yields [Default], and keys that are
// absent from an existing file keep their default values:
//
//	[storage]
//	backend = "file"          # file | sqlite | redis | mongo | memory
//	path    = "tabs.json"     # document path for the file backend
//
//	[storage.sqlite]
//	path = "tabmind.db"
//
//	[storage.redis]
//	addr = "localhost:6379"
//	key  = "tabmind:graph"
//
//	[storage.mongo]
//	uri        = "mongodb://localhost:27017"
//	database   = "tabmind"
//	collection = "graphs"
//	document   = "default"
//
//	[log]
//	level = "info"            # debug | info | warn | error
//
//	[metrics]
//	textfile = ""             # write Prometheus metrics here on exit
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/tabmind/pkg/errors"
)

// Storage backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// DefaultDocumentPath is the document written by the file backend when no
// path is configured.
const DefaultDocumentPath = "tabs.json"

// Config is the full tabmind configuration.
type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
	Metrics Metrics `toml:"metrics"`
}

// Storage selects and configures the snapshot backend.
type Storage struct {
	Backend string `toml:"backend" validate:"oneof=file sqlite redis mongo memory"`
	Path    string `toml:"path"`
	SQLite  SQLite `toml:"sqlite"`
	Redis   Redis  `toml:"redis"`
	Mongo   Mongo  `toml:"mongo"`
}

// SQLite configures the sqlite backend.
type SQLite struct {
	Path string `toml:"path"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"gte=0,lte=15"`
	Key      string `toml:"key"`
}

// Mongo configures the mongo backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
	Document   string `toml:"document"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// Metrics configures the Prometheus textfile export.
type Metrics struct {
	Textfile string `toml:"textfile"`
}

var validate = validator.New()

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend: BackendFile,
			Path:    DefaultDocumentPath,
			SQLite:  SQLite{Path: "tabmind.db"},
			Redis:   Redis{Addr: "localhost:6379", Key: "tabmind:graph"},
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   "tabmind",
				Collection: "graphs",
				Document:   "default",
			},
		},
		Log: Log{Level: "info"},
	}
}

// DefaultPath returns the per-user config file location,
// $XDG_CONFIG_HOME/tabmind/config.toml or its platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tabmind", "config.toml"), nil
}

// Load reads the TOML file at path on top of [Default] and validates the
// result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := Read(path, false)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Read decodes the TOML file at path on top of [Default] without validating
// it, so callers can apply overrides first. A missing file yields the
// defaults unless mustExist is set, in which case it is INVALID_CONFIG.
func Read(path string, mustExist bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Default(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", keys[0].String(), path)
	}
	return cfg, nil
}

// Validate checks field values and the settings the selected backend needs.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	s := c.Storage
	var required []setting
	switch s.Backend {
	case BackendFile:
		required = []setting{{"storage.path", s.Path}}
	case BackendSQLite:
		required = []setting{{"storage.sqlite.path", s.SQLite.Path}}
	case BackendRedis:
		required = []setting{
			{"storage.redis.addr", s.Redis.Addr},
			{"storage.redis.key", s.Redis.Key},
		}
	case BackendMongo:
		required = []setting{
			{"storage.mongo.uri", s.Mongo.URI},
			{"storage.mongo.database", s.Mongo.Database},
			{"storage.mongo.collection", s.Mongo.Collection},
			{"storage.mongo.document", s.Mongo.Document},
		}
	}
	for _, r := range required {
		if err := validate.Var(r.value, "required"); err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "%s is required for the %s backend", r.name, s.Backend)
		}
	}
	return nil
}

type setting struct{ name, value string }
