package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealkit/dealkit/binder"
)

func TestBindJSON(t *testing.T) {
	type createCoupon struct {
		Code     string  `json:"code"`
		Discount float64 `json:"discount"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"SAVE20","discount":20}`))

		var dst createCoupon
		require.NoError(t, binder.BindJSON(req, &dst))
		assert.Equal(t, "SAVE20", dst.Code)
		assert.Equal(t, 20.0, dst.Discount)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"X","admin":true}`))

		var dst createCoupon
		assert.ErrorIs(t, binder.BindJSON(req, &dst), binder.ErrInvalidJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		var dst createCoupon
		assert.ErrorIs(t, binder.BindJSON(req, &dst), binder.ErrEmptyBody)
	})

	t.Run("trailing garbage rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"X"}{"code":"Y"}`))

		var dst createCoupon
		assert.ErrorIs(t, binder.BindJSON(req, &dst), binder.ErrInvalidJSON)
	})
}

func TestBindJSONMap(t *testing.T) {
	t.Run("decodes into generic map", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"SAVE20","discount":20}`))

		payload, err := binder.BindJSONMap(req)
		require.NoError(t, err)
		assert.Equal(t, "SAVE20", payload["code"])
		assert.Equal(t, 20.0, payload["discount"])
	})

	t.Run("empty body yields empty map", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		payload, err := binder.BindJSONMap(req)
		require.NoError(t, err)
		assert.Empty(t, payload)
	})

	t.Run("malformed body errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":`))

		_, err := binder.BindJSONMap(req)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})
}

func TestBindQuery(t *testing.T) {
	type listParams struct {
		Page     int      `query:"page"`
		PerPage  int      `query:"per_page"`
		Active   bool     `query:"active"`
		MinValue float64  `query:"min_value"`
		Tags     []string `query:"tags"`
		Skipped  string   `query:"-"`
		NoTag    string
	}

	t.Run("binds typed parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?page=2&per_page=50&active=true&min_value=9.5&tags=a&tags=b", nil)

		var dst listParams
		require.NoError(t, binder.BindQuery(req, &dst))
		assert.Equal(t, 2, dst.Page)
		assert.Equal(t, 50, dst.PerPage)
		assert.True(t, dst.Active)
		assert.Equal(t, 9.5, dst.MinValue)
		assert.Equal(t, []string{"a", "b"}, dst.Tags)
	})

	t.Run("missing parameters keep zero values", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		var dst listParams
		require.NoError(t, binder.BindQuery(req, &dst))
		assert.Zero(t, dst.Page)
	})

	t.Run("unparsable value errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?page=abc", nil)

		var dst listParams
		assert.ErrorIs(t, binder.BindQuery(req, &dst), binder.ErrInvalidQueryParam)
	})

	t.Run("non-struct target errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		var n int
		assert.ErrorIs(t, binder.BindQuery(req, &n), binder.ErrNotStructPointer)
	})
}
