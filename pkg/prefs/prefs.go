// Package prefs provides the process-wide key-value configuration the
// level store reads its settings from.
//
// Backends:
//   - FileStore: a TOML document on disk, for the CLI
//   - MemoryStore: in-process storage for tests and embedding
//   - RedisStore: Redis-backed storage for setups that share one
//     configuration between several processes
//
// Values are plain strings. A missing key is not an error: Get reports it
// with ok == false.
package prefs

import (
	"context"
	"strings"

	"github.com/matzehuels/levelkit/pkg/errors"
)

// FolderKey holds the URI of the user-chosen external levels folder.
const FolderKey = "folder_uri"

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open picks a backend for location:
//   - "" or "mem:" returns a new MemoryStore
//   - "redis://..." and "rediss://..." connect a RedisStore
//   - anything else is the path of a TOML FileStore
func Open(ctx context.Context, location string) (Store, error) {
	switch {
	case location == "" || location == "mem:":
		return NewMemoryStore(), nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return NewRedisStore(ctx, RedisConfig{URL: location})
	default:
		return NewFileStore(location)
	}
}

func validateKey(key string) error {
	if key == "" {
		return errors.New(errors.ErrCodeInvalidInput, "empty preference key")
	}
	return nil
}
