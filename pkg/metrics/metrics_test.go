package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealkit/dealkit/pkg/metrics"
)

func TestMiddleware(t *testing.T) {
	m := metrics.New("dealkit")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/v1/coupons/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/v1/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/v1/coupons/abc", "/v1/coupons/def", "/v1/missing"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `dealkit_http_requests_total{method="GET",route="/v1/coupons/{id}",status="200"} 2`)
	assert.Contains(t, body, `dealkit_http_requests_total{method="GET",route="/v1/missing",status="404"} 1`)
	assert.Contains(t, body, "dealkit_http_request_duration_seconds_bucket")
}
