package rulesets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealkit/dealkit/pkg/rules"
	"github.com/dealkit/dealkit/rulesets"
)

func TestRegistryCompiles(t *testing.T) {
	registry, err := rulesets.NewRegistry()
	require.NoError(t, err)

	for _, name := range []string{
		rulesets.UserRegister,
		rulesets.UserLogin,
		rulesets.CouponCreate,
		rulesets.CouponUpdate,
		rulesets.CouponRedeem,
		rulesets.CouponList,
		rulesets.CashbackCreate,
		rulesets.CashbackUpdate,
		rulesets.StoreCreate,
		rulesets.StoreUpdate,
		rulesets.TransactionCreate,
		rulesets.TransactionTransition,
		rulesets.ReviewCreate,
		rulesets.BlogCreate,
		rulesets.BlogUpdate,
		rulesets.Pagination,
	} {
		assert.True(t, registry.Has(name), "missing rule set %s", name)
	}
}

func TestCouponCreate(t *testing.T) {
	registry := rulesets.MustNewRegistry()

	valid := map[string]any{
		"title":        "20% off everything",
		"code":         "SAVE20",
		"discount":     20.0,
		"discountType": "percentage",
		"storeId":      "664f1a7e2ab79c0012345678",
		"category":     "electronics",
	}

	t.Run("valid payload passes", func(t *testing.T) {
		outcome, err := registry.Apply(rulesets.CouponCreate, rules.Request{Body: valid})
		require.NoError(t, err)
		assert.True(t, outcome.Valid())
	})

	t.Run("negative discount reports one message for the chain", func(t *testing.T) {
		payload := map[string]any{}
		for k, v := range valid {
			payload[k] = v
		}
		payload["discount"] = -5.0

		outcome, err := registry.Apply(rulesets.CouponCreate, rules.Request{Body: payload})
		require.NoError(t, err)
		assert.False(t, outcome.Valid())
		assert.Equal(t, []string{"Discount must be a positive number"}, outcome.Errors["discount"])
	})

	t.Run("all failing fields are collected", func(t *testing.T) {
		outcome, err := registry.Apply(rulesets.CouponCreate, rules.Request{Body: map[string]any{
			"code":     "bad code!",
			"discount": "not-a-number",
		}})
		require.NoError(t, err)
		assert.False(t, outcome.Valid())
		assert.Contains(t, outcome.Errors, "title")
		assert.Contains(t, outcome.Errors, "code")
		assert.Contains(t, outcome.Errors, "discount")
		assert.Contains(t, outcome.Errors, "storeId")
	})

	t.Run("optional category skipped when absent", func(t *testing.T) {
		payload := map[string]any{}
		for k, v := range valid {
			payload[k] = v
		}
		delete(payload, "category")

		outcome, err := registry.Apply(rulesets.CouponCreate, rules.Request{Body: payload})
		require.NoError(t, err)
		assert.True(t, outcome.Valid())
	})
}

func TestCouponList(t *testing.T) {
	registry := rulesets.MustNewRegistry()

	t.Run("numeric query strings coerce", func(t *testing.T) {
		outcome, err := registry.Apply(rulesets.CouponList, rules.Request{Query: map[string]any{
			"page":    "2",
			"perPage": "50",
		}})
		require.NoError(t, err)
		assert.True(t, outcome.Valid())
	})

	t.Run("page zero fails", func(t *testing.T) {
		outcome, err := registry.Apply(rulesets.CouponList, rules.Request{Query: map[string]any{
			"page": "0",
		}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Page must be a positive integer"}, outcome.Errors["page"])
	})
}

func TestTransactionTransition(t *testing.T) {
	registry := rulesets.MustNewRegistry()

	t.Run("unknown status fails", func(t *testing.T) {
		outcome, err := registry.Apply(rulesets.TransactionTransition, rules.Request{
			Params: map[string]any{"id": "664f1a7e2ab79c0012345678"},
			Body:   map[string]any{"status": "refunded"},
		})
		require.NoError(t, err)
		assert.False(t, outcome.Valid())
		assert.Contains(t, outcome.Errors, "status")
	})

	t.Run("valid transition passes", func(t *testing.T) {
		outcome, err := registry.Apply(rulesets.TransactionTransition, rules.Request{
			Params: map[string]any{"id": "664f1a7e2ab79c0012345678"},
			Body:   map[string]any{"status": "approved"},
		})
		require.NoError(t, err)
		assert.True(t, outcome.Valid())
	})
}

func TestProfileSchema(t *testing.T) {
	s := rulesets.ProfileSchema()

	t.Run("normalizes email and strips unknown keys", func(t *testing.T) {
		normalized, outcome := s.Validate(map[string]any{
			"name":    "Dana",
			"email":   "  Dana@Example.COM ",
			"isAdmin": true,
		})
		assert.True(t, outcome.Valid())
		assert.Equal(t, "dana@example.com", normalized["email"])
		assert.Equal(t, "USD", normalized["currency"])
		assert.NotContains(t, normalized, "isAdmin")
	})

	t.Run("nested address violations use dotted keys", func(t *testing.T) {
		_, outcome := s.Validate(map[string]any{
			"name":  "Dana",
			"email": "dana@example.com",
			"address": map[string]any{
				"zip": "!",
			},
		})
		assert.False(t, outcome.Valid())
		assert.Contains(t, outcome.Errors, "address.city")
		assert.Contains(t, outcome.Errors, "address.zip")
	})
}

func TestPaginationSchema(t *testing.T) {
	s := rulesets.PaginationSchema()

	t.Run("defaults applied", func(t *testing.T) {
		normalized, outcome := s.Validate(map[string]any{})
		assert.True(t, outcome.Valid())
		assert.Equal(t, int64(1), normalized["page"])
		assert.Equal(t, int64(20), normalized["perPage"])
		assert.Equal(t, "newest", normalized["sort"])
	})

	t.Run("end date before start date reported on endDate", func(t *testing.T) {
		_, outcome := s.Validate(map[string]any{
			"startDate": "2026-03-01",
			"endDate":   "2026-02-01",
		})
		assert.False(t, outcome.Valid())
		assert.Equal(t, []string{"End date must not be before start date"}, outcome.Errors["endDate"])
	})

	t.Run("valid window passes", func(t *testing.T) {
		_, outcome := s.Validate(map[string]any{
			"startDate": "2026-02-01",
			"endDate":   "2026-03-01",
		})
		assert.True(t, outcome.Valid())
	})
}
