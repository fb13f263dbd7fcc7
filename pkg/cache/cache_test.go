package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealkit/dealkit/pkg/cache"
)

type cachedCoupon struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}

func newRedisCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, "dealkit"), mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		c, _ := newRedisCache(t)

		want := cachedCoupon{ID: "664f1a7e2ab79c0012345678", Code: "SAVE20", Title: "20% off"}
		require.NoError(t, c.Set(ctx, "coupon:SAVE20", want, time.Minute))

		var got cachedCoupon
		require.NoError(t, c.Get(ctx, "coupon:SAVE20", &got))
		assert.Equal(t, want, got)
	})

	t.Run("miss on absent key", func(t *testing.T) {
		c, _ := newRedisCache(t)

		var got cachedCoupon
		assert.ErrorIs(t, c.Get(ctx, "coupon:NOPE", &got), cache.ErrCacheMiss)
	})

	t.Run("miss after ttl expires", func(t *testing.T) {
		c, mr := newRedisCache(t)

		require.NoError(t, c.Set(ctx, "coupon:SHORT", cachedCoupon{Code: "SHORT"}, time.Second))
		mr.FastForward(2 * time.Second)

		var got cachedCoupon
		assert.ErrorIs(t, c.Get(ctx, "coupon:SHORT", &got), cache.ErrCacheMiss)
	})

	t.Run("delete", func(t *testing.T) {
		c, _ := newRedisCache(t)

		require.NoError(t, c.Set(ctx, "coupon:DEL", cachedCoupon{Code: "DEL"}, 0))
		require.NoError(t, c.Delete(ctx, "coupon:DEL"))

		var got cachedCoupon
		assert.ErrorIs(t, c.Get(ctx, "coupon:DEL", &got), cache.ErrCacheMiss)
	})

	t.Run("delete prefix", func(t *testing.T) {
		c, _ := newRedisCache(t)

		require.NoError(t, c.Set(ctx, "store:acme:coupons", []string{"A"}, 0))
		require.NoError(t, c.Set(ctx, "store:acme:meta", cachedCoupon{}, 0))
		require.NoError(t, c.Set(ctx, "store:other", cachedCoupon{Code: "KEEP"}, 0))

		require.NoError(t, c.DeletePrefix(ctx, "store:acme"))

		var keep cachedCoupon
		require.NoError(t, c.Get(ctx, "store:other", &keep))
		assert.Equal(t, "KEEP", keep.Code)

		var gone []string
		assert.ErrorIs(t, c.Get(ctx, "store:acme:coupons", &gone), cache.ErrCacheMiss)
	})
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip and delete", func(t *testing.T) {
		c := cache.NewMemoryCache()

		want := cachedCoupon{Code: "MEM10"}
		require.NoError(t, c.Set(ctx, "coupon:MEM10", want, 0))

		var got cachedCoupon
		require.NoError(t, c.Get(ctx, "coupon:MEM10", &got))
		assert.Equal(t, want, got)

		require.NoError(t, c.Delete(ctx, "coupon:MEM10"))
		assert.ErrorIs(t, c.Get(ctx, "coupon:MEM10", &got), cache.ErrCacheMiss)
	})

	t.Run("expired entry misses", func(t *testing.T) {
		c := cache.NewMemoryCache()

		require.NoError(t, c.Set(ctx, "coupon:TTL", cachedCoupon{Code: "TTL"}, time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		var got cachedCoupon
		assert.ErrorIs(t, c.Get(ctx, "coupon:TTL", &got), cache.ErrCacheMiss)
	})

	t.Run("delete prefix", func(t *testing.T) {
		c := cache.NewMemoryCache()

		require.NoError(t, c.Set(ctx, "store:acme:1", cachedCoupon{}, 0))
		require.NoError(t, c.Set(ctx, "store:zeta:1", cachedCoupon{Code: "KEEP"}, 0))

		require.NoError(t, c.DeletePrefix(ctx, "store:acme"))

		var got cachedCoupon
		assert.ErrorIs(t, c.Get(ctx, "store:acme:1", &got), cache.ErrCacheMiss)
		require.NoError(t, c.Get(ctx, "store:zeta:1", &got))
	})
}
