// Package cache provides the key/value cache used by the comment service
// for response caching and task existence results.
package cache

import (
	"context"
	"time"
)

// Store is a JSON value cache with per-entry TTL.
type Store interface {
	// Get decodes the cached value of key into dest. It reports false on miss.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key. A zero ttl disables caching for the call.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
	Close() error
}
