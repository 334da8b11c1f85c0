package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/s9b/memenem/internal/config"
)

// ErrNotFound is returned by GetItem for a key that was never set.
var ErrNotFound = errors.New("key not found")

// KVStore is a string key/value store with browser local-storage semantics:
// whole values are read and replaced, never patched.
type KVStore interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// OpenKVStore opens the store selected by cfg.Driver.
func OpenKVStore(cfg *config.StorageConfig) (KVStore, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileKV(cfg.Path)
	case "sqlite", "postgres":
		db, err := InitDB(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormKV(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
