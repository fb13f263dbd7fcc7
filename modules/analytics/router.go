package analytics

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/dealkit/dealkit"
)

// CouponStats is the aggregated view of one coupon's activity.
type CouponStats struct {
	CouponID    string `json:"couponId"`
	Views       int64  `json:"views"`
	Redemptions int64  `json:"redemptions"`
}

// Router mounts the analytics read endpoints.
func Router(counters CounterStore) chi.Router {
	r := chi.NewRouter()
	r.Get("/coupons", handleCouponStats(counters))
	return r
}

func handleCouponStats(counters CounterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := counters.Totals(r.Context(), MetricViews)
		if err != nil {
			_ = dealkit.JSONError(w, err)
			return
		}
		redemptions, err := counters.Totals(r.Context(), MetricRedemptions)
		if err != nil {
			_ = dealkit.JSONError(w, err)
			return
		}

		byID := make(map[string]*CouponStats, len(views))
		for id, n := range views {
			byID[id] = &CouponStats{CouponID: id, Views: n}
		}
		for id, n := range redemptions {
			if s, ok := byID[id]; ok {
				s.Redemptions = n
				continue
			}
			byID[id] = &CouponStats{CouponID: id, Redemptions: n}
		}

		stats := make([]CouponStats, 0, len(byID))
		for _, s := range byID {
			stats = append(stats, *s)
		}
		sort.Slice(stats, func(i, j int) bool { return stats[i].CouponID < stats[j].CouponID })
		_ = dealkit.JSON(w, http.StatusOK, stats, nil)
	}
}
