// Package ratelimit implements a token-bucket rate limiter with pluggable
// storage and an HTTP middleware that enforces per-client limits.
package ratelimit

import (
	"context"
	"time"
)

// Config describes a token bucket.
type Config struct {
	// Capacity is the burst size, the maximum tokens a bucket can hold.
	Capacity int64 `env:"RATELIMIT_CAPACITY" envDefault:"60"`
	// RefillRate is how many tokens are added per RefillInterval.
	RefillRate int64 `env:"RATELIMIT_REFILL_RATE" envDefault:"60"`
	// RefillInterval is the period over which RefillRate tokens are restored.
	RefillInterval time.Duration `env:"RATELIMIT_REFILL_INTERVAL" envDefault:"1m"`
}

// Result reports the outcome of a single token request.
type Result struct {
	Allowed   bool
	Remaining int64
	// RetryAfter is how long the caller should wait before retrying. Zero
	// when the request was allowed.
	RetryAfter time.Duration
}

// Store persists bucket state keyed by client identity.
type Store interface {
	// Take attempts to consume one token from the bucket identified by key,
	// creating the bucket at full capacity on first sight.
	Take(ctx context.Context, key string, cfg Config) (Result, error)
}

// Limiter couples a Store with a Config.
type Limiter struct {
	store Store
	cfg   Config
}

// New creates a Limiter backed by the given store.
func New(store Store, cfg Config) *Limiter {
	return &Limiter{store: store, cfg: cfg}
}

// Allow consumes one token for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	return l.store.Take(ctx, key, l.cfg)
}

// Capacity exposes the configured burst size for response headers.
func (l *Limiter) Capacity() int64 {
	return l.cfg.Capacity
}
