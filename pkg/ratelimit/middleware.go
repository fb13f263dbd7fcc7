package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/dealkit/dealkit"
)

// KeyFunc derives the rate-limit identity from a request.
type KeyFunc func(r *http.Request) string

// KeyByIP buckets requests by client IP, honoring X-Forwarded-For when a
// proxy sits in front of the service.
func KeyByIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware enforces the limiter on every request, setting X-RateLimit
// headers and answering 429 when the bucket is empty. Store failures fail
// open so a Redis outage never takes the API down with it.
func Middleware(limiter *Limiter, keyFn KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = KeyByIP
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), keyFn(r))
			if err != nil {
				log.ErrorContext(r.Context(), "rate limit store failure", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limiter.Capacity(), 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))

			if !res.Allowed {
				if res.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.FormatInt(max(int64(res.RetryAfter.Seconds()), 1), 10))
				}
				_ = dealkit.JSONError(w, dealkit.ErrTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
