package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/tasks/internal/config"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value stored under key. found is false when the key
	// has never been set.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases backend resources.
	Close() error
}

// Backends returns the accepted backend names.
func Backends() []string {
	return []string{BackendFile, BackendMemory, BackendRedis, BackendSQLite}
}

// Open creates the store selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		if err := os.MkdirAll(filepath.Dir(cfg.StoragePath()), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return NewFile(cfg.StoragePath()), nil
	case BackendRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown backend %q, must be one of: %s", cfg.Backend, strings.Join(Backends(), ", "))
	}
}
