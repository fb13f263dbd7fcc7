package analytics

import (
	"context"

	"github.com/dealkit/dealkit/modules/cashback"
	"github.com/dealkit/dealkit/modules/coupon"
	"github.com/dealkit/dealkit/pkg/queue"
)

// NewCouponViewedHandler counts coupon view events.
func NewCouponViewedHandler(counters CounterStore) queue.Handler {
	return queue.NewHandler(coupon.EventViewed, func(ctx context.Context, event CouponEvent) error {
		return counters.Increment(ctx, MetricViews, event.CouponID)
	})
}

// NewCouponRedeemedHandler counts coupon redemption events.
func NewCouponRedeemedHandler(counters CounterStore) queue.Handler {
	return queue.NewHandler(coupon.EventRedeemed, func(ctx context.Context, event CouponEvent) error {
		return counters.Increment(ctx, MetricRedemptions, event.CouponID)
	})
}

// NewCashbackTrackedHandler counts tracked purchases per offer.
func NewCashbackTrackedHandler(counters CounterStore) queue.Handler {
	return queue.NewHandler(cashback.EventTracked, func(ctx context.Context, event CashbackEvent) error {
		return counters.Increment(ctx, MetricCashbackTracked, event.OfferID)
	})
}
