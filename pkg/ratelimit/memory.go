package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	tokens   int64
	lastFill time.Time
}

// MemoryStore keeps bucket state in process memory. Suitable for tests and
// single-instance deployments.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory bucket store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (s *MemoryStore) Take(_ context.Context, key string, cfg Config) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: cfg.Capacity, lastFill: now}
		s.buckets[key] = b
	}

	refill(b, cfg, now)

	if b.tokens <= 0 {
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: timePerToken(cfg),
		}, nil
	}

	b.tokens--
	return Result{Allowed: true, Remaining: b.tokens}, nil
}

func refill(b *bucket, cfg Config, now time.Time) {
	elapsed := now.Sub(b.lastFill)
	if elapsed <= 0 || cfg.RefillRate <= 0 {
		return
	}

	per := timePerToken(cfg)
	earned := int64(elapsed / per)
	if earned <= 0 {
		return
	}

	b.tokens = min(cfg.Capacity, b.tokens+earned)
	b.lastFill = b.lastFill.Add(time.Duration(earned) * per)
}

func timePerToken(cfg Config) time.Duration {
	if cfg.RefillRate <= 0 {
		return cfg.RefillInterval
	}
	return cfg.RefillInterval / time.Duration(cfg.RefillRate)
}
