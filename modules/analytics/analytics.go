// Package analytics persists queued usage events and aggregates them into
// per-coupon counters. Events arrive through the task queue so recording
// never blocks a user-facing request.
package analytics

import "context"

// Counter metrics tracked per entity.
const (
	MetricViews           = "coupon_views"
	MetricRedemptions     = "coupon_redemptions"
	MetricCashbackTracked = "cashback_tracked"
)

// CouponEvent is the payload shape of coupon analytics events.
type CouponEvent struct {
	CouponID string `json:"coupon_id"`
	Code     string `json:"code,omitempty"`
	UserID   string `json:"user_id,omitempty"`
}

// CashbackEvent is the payload shape of cashback analytics events.
type CashbackEvent struct {
	OfferID       string `json:"offer_id"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// CounterStore is the storage contract for aggregated counters.
type CounterStore interface {
	Increment(ctx context.Context, metric, key string) error
	Totals(ctx context.Context, metric string) (map[string]int64, error)
}
