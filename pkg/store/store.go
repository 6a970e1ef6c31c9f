package store

import (
	"fmt"

	"github.com/lunebank/openfin-go/pkg/config"
)

const (
	DefaultJSONPath   = "./snapshots.json"
	DefaultSQLitePath = "./openfin.db"
)

// Store abstracts snapshot persistence.
type Store interface {
	LoadItems() ([]ItemSnapshot, error)
	DumpItems(items []ItemSnapshot) error
	Close() error
}

// NewStoreWithBackend creates a Store for the given backend and optional path.
func NewStoreWithBackend(backend, path string) (Store, error) {
	return NewStore(config.Storage{Backend: backend, Path: path})
}

// NewStore creates a Store based on the storage configuration.
func NewStore(cfg config.Storage) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = "json"
	}

	switch backend {
	case "json":
		path := cfg.Path
		if path == "" {
			path = DefaultJSONPath
		}
		return NewJSONStore(path), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = DefaultSQLitePath
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
