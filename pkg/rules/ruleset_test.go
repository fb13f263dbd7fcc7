package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealkit/dealkit/pkg/rules"
)

func couponCreate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "body.title",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isString"), rules.MaxLength(140)},
			Message: "Title is required and must be at most 140 characters",
		},
		{
			Field:   "body.discount",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isFloat"), rules.Min(0)},
			Message: "Discount must be a positive number",
		},
		{
			Field:   "query.page",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isInt"), rules.Min(1)},
			Message: "Page must be a positive integer",
		},
	}
}

func TestNewRegistry(t *testing.T) {
	t.Run("compiles a valid table", func(t *testing.T) {
		registry, err := rules.NewRegistry(map[string]rules.RuleSet{
			"coupon.create": couponCreate(),
		})
		require.NoError(t, err)
		assert.True(t, registry.Has("coupon.create"))
		assert.Equal(t, []string{"coupon.create"}, registry.Names())
	})

	t.Run("unknown token fails construction with full context", func(t *testing.T) {
		_, err := rules.NewRegistry(map[string]rules.RuleSet{
			"coupon.create": {
				{Field: "body.title", Rules: []rules.Token{rules.Bare("isEmal")}, Message: "bad"},
			},
		})
		require.Error(t, err)

		var cfgErr *rules.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "coupon.create", cfgErr.RuleSet)
		assert.Equal(t, "body.title", cfgErr.Field)
		assert.Equal(t, "isEmal", cfgErr.Token)
	})

	t.Run("invalid pattern fails construction", func(t *testing.T) {
		_, err := rules.NewRegistry(map[string]rules.RuleSet{
			"store.create": {
				{Field: "body.website", Rules: []rules.Token{rules.Matches("[unclosed")}, Message: "bad url"},
			},
		})
		require.Error(t, err)
	})
}

func TestRegistryApply(t *testing.T) {
	registry := rules.MustNewRegistry(map[string]rules.RuleSet{
		"coupon.create": couponCreate(),
	})

	t.Run("valid payload yields empty outcome", func(t *testing.T) {
		outcome, err := registry.Apply("coupon.create", rules.Request{
			Body:  map[string]any{"title": "10% off sneakers", "discount": 10.0},
			Query: map[string]any{"page": "2"},
		})
		require.NoError(t, err)
		assert.True(t, outcome.Valid())
		assert.Empty(t, outcome.Errors)
	})

	t.Run("single message per chain even with several checks", func(t *testing.T) {
		outcome, err := registry.Apply("coupon.create", rules.Request{
			Body: map[string]any{"title": "10% off", "discount": -5.0},
		})
		require.NoError(t, err)

		assert.False(t, outcome.Valid())
		assert.Equal(t, []string{"Discount must be a positive number"}, outcome.Errors["discount"])
	})

	t.Run("missing required field reports its chain message", func(t *testing.T) {
		outcome, err := registry.Apply("coupon.create", rules.Request{
			Body: map[string]any{"discount": 5.0},
		})
		require.NoError(t, err)

		assert.False(t, outcome.Valid())
		assert.NotEmpty(t, outcome.Errors["title"])
	})

	t.Run("all failing fields are collected, not just the first", func(t *testing.T) {
		outcome, err := registry.Apply("coupon.create", rules.Request{
			Body:  map[string]any{},
			Query: map[string]any{"page": "0"},
		})
		require.NoError(t, err)

		assert.Contains(t, outcome.Errors, "title")
		assert.Contains(t, outcome.Errors, "discount")
		assert.Contains(t, outcome.Errors, "page")
	})

	t.Run("optional field absent skips the rest of the chain", func(t *testing.T) {
		outcome, err := registry.Apply("coupon.create", rules.Request{
			Body: map[string]any{"title": "10% off", "discount": 1.0},
		})
		require.NoError(t, err)
		assert.True(t, outcome.Valid())
	})

	t.Run("validation is idempotent", func(t *testing.T) {
		req := rules.Request{Body: map[string]any{"discount": -5.0}}

		first, err := registry.Apply("coupon.create", req)
		require.NoError(t, err)
		second, err := registry.Apply("coupon.create", req)
		require.NoError(t, err)

		assert.Equal(t, first.Errors, second.Errors)
	})

	t.Run("unknown rule set name is an error", func(t *testing.T) {
		_, err := registry.Apply("coupon.delete", rules.Request{})
		assert.ErrorIs(t, err, rules.ErrUnknownRuleSet)
	})
}

func TestCompileSetOrder(t *testing.T) {
	rs := couponCreate()
	validators, err := rules.CompileSet(rs)
	require.NoError(t, err)

	require.Len(t, validators, len(rs))
	assert.Equal(t, "title", validators[0].Field())
	assert.Equal(t, "discount", validators[1].Field())
	assert.Equal(t, "page", validators[2].Field())
	assert.Equal(t, rules.LocationQuery, validators[2].Location())
}

func TestCustomToken(t *testing.T) {
	even := rules.Custom(func(v any, present bool) bool {
		n, ok := v.(float64)
		return present && ok && int(n)%2 == 0
	})

	registry := rules.MustNewRegistry(map[string]rules.RuleSet{
		"test.even": {
			{Field: "body.count", Rules: []rules.Token{even}, Message: "Count must be even"},
		},
	})

	outcome, err := registry.Apply("test.even", rules.Request{Body: map[string]any{"count": 3.0}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Count must be even"}, outcome.Errors["count"])

	outcome, err = registry.Apply("test.even", rules.Request{Body: map[string]any{"count": 4.0}})
	require.NoError(t, err)
	assert.True(t, outcome.Valid())
}
