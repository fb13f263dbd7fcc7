// Package cache provides a small key-value cache abstraction with Redis and
// in-memory implementations. Services use it to keep hot coupon and store
// reads off MongoDB.
package cache

import (
	"context"
	"time"
)

// Cache is the storage-agnostic cache contract. Values are serialized as
// JSON by the implementations, so callers pass plain Go values.
type Cache interface {
	// Get loads the value stored under key into dest. Returns ErrCacheMiss
	// when the key is absent or expired.
	Get(ctx context.Context, key string, dest any) error

	// Set stores value under key for the given TTL. A zero TTL stores the
	// value without expiration.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// DeletePrefix removes every key sharing the given prefix. Used for
	// coarse invalidation after writes.
	DeletePrefix(ctx context.Context, prefix string) error
}
