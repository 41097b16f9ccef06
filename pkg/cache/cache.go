// Package cache stores rendered graph artifacts.
//
// Rendering SVG and PNG through Graphviz dominates the cost of a pipeline
// run, while the output depends only on the document records and the graph
// options. Artifacts are therefore cached under a content-derived key (see
// [Key]) and never go stale; TTLs only bound storage.
//
// # Backends
//
//   - [NullCache]: stores nothing
//   - [MemoryCache]: process-local, for the HTTP server
//   - [FileCache]: one file per entry, for the CLI
//   - [RedisCache]: shared between server instances
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend string // one of the Backend constants; empty means memory
	Dir     string // FileCache directory
	URL     string // Redis URL, e.g. redis://localhost:6379/0
}

// Open creates the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendMemory:
		return NewMemoryCache(), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, doctreeerrors.New(doctreeerrors.ErrCodeInvalidConfig, "file cache needs a directory")
		}
		return NewFileCache(opts.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.URL)
	default:
		return nil, doctreeerrors.New(doctreeerrors.ErrCodeInvalidConfig,
			"unknown cache backend %q (must be none, memory, file or redis)", opts.Backend)
	}
}

// Key derives a cache key from prefix and the JSON encoding of parts.
// The format is prefix:sha256(parts).
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
