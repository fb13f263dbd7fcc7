package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// takeScript implements an atomic token-bucket take. State is stored per key
// as a hash with token count and last-refill timestamp in microseconds.
var takeScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local per_token_us = tonumber(ARGV[2])
local now_us = tonumber(ARGV[3])
local ttl_s = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_fill')
local tokens = tonumber(state[1])
local last_fill = tonumber(state[2])

if tokens == nil then
  tokens = capacity
  last_fill = now_us
end

local elapsed = now_us - last_fill
if elapsed > 0 and per_token_us > 0 then
  local earned = math.floor(elapsed / per_token_us)
  if earned > 0 then
    tokens = math.min(capacity, tokens + earned)
    last_fill = last_fill + earned * per_token_us
  end
end

local allowed = 0
if tokens > 0 then
  tokens = tokens - 1
  allowed = 1
end

redis.call('HSET', key, 'tokens', tokens, 'last_fill', last_fill)
redis.call('EXPIRE', key, ttl_s)

return {allowed, tokens}
`)

// RedisStore keeps bucket state in Redis so limits hold across instances.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed bucket store with the given key prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Take(ctx context.Context, key string, cfg Config) (Result, error) {
	perToken := timePerToken(cfg)

	// Buckets idle for two full refill windows are safe to expire.
	ttl := max(int64((2 * cfg.RefillInterval).Seconds()), 1)

	raw, err := takeScript.Run(ctx, s.client,
		[]string{s.prefix + ":" + key},
		cfg.Capacity,
		perToken.Microseconds(),
		time.Now().UnixMicro(),
		ttl,
	).Int64Slice()
	if err != nil {
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(raw) != 2 {
		return Result{}, ErrStoreUnavailable
	}

	res := Result{Allowed: raw[0] == 1, Remaining: raw[1]}
	if !res.Allowed {
		res.RetryAfter = perToken
	}
	return res, nil
}
