package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealkit/dealkit/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Run("returns nil when all rules pass", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("email", "user@example.com"),
			validator.ValidEmail("email", "user@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure without short-circuiting", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("email", ""),
			validator.ValidEmail("email", ""),
			validator.MinNum("amount", -1.0, 0.0),
		)
		require.Error(t, err)

		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 3)
		assert.Equal(t, "email", errs[0].Field)
		assert.Equal(t, "field is required", errs[0].Message)
		assert.Equal(t, "amount", errs[2].Field)
	})

	t.Run("by-field grouping preserves rule order", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("code", ""),
			validator.MinLenString("code", "", 3),
		)
		require.Error(t, err)

		byField := validator.ExtractValidationErrors(err).ByField()
		require.Len(t, byField["code"], 2)
		assert.Equal(t, "field is required", byField["code"][0])
	})
}

func TestIsValidationError(t *testing.T) {
	err := validator.Apply(validator.RequiredString("name", ""))
	assert.True(t, validator.IsValidationError(err))
	assert.False(t, validator.IsValidationError(assert.AnError))
	assert.False(t, validator.IsValidationError(nil))
}

func TestStrongPassword(t *testing.T) {
	cfg := validator.DefaultPasswordConfig

	assert.True(t, validator.StrongPassword("password", "correct-h0rse", cfg).Check())
	assert.True(t, validator.StrongPassword("password", "Tr0ub4dor", cfg).Check())
	assert.False(t, validator.StrongPassword("password", "short1", cfg).Check())
	assert.False(t, validator.StrongPassword("password", "alllowercase", cfg).Check())
}
