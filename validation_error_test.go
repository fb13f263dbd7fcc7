package dealkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealkit/dealkit"
)

func TestValidationError(t *testing.T) {
	t.Run("empty error reports validation failed", func(t *testing.T) {
		e := dealkit.NewValidationError()
		assert.True(t, e.IsEmpty())
		assert.Equal(t, "validation failed", e.Error())
	})

	t.Run("add preserves message order per field", func(t *testing.T) {
		e := dealkit.NewValidationError()
		e.Add("discount", "must not be empty")
		e.Add("discount", "must be a number")

		assert.Equal(t, []string{"must not be empty", "must be a number"}, e["discount"])
		assert.Equal(t, "must not be empty", e.Get("discount"))
	})

	t.Run("has and fields", func(t *testing.T) {
		e := dealkit.NewValidationError()
		e.Add("title", "field is required")
		e.Add("code", "invalid format")

		assert.True(t, e.Has("title"))
		assert.False(t, e.Has("discount"))
		assert.Equal(t, []string{"code", "title"}, e.Fields())
	})

	t.Run("merge copies every message", func(t *testing.T) {
		e := dealkit.NewValidationError()
		e.Add("title", "field is required")
		e.Merge(map[string][]string{
			"title": {"must be a string"},
			"code":  {"invalid format"},
		})

		assert.Equal(t, []string{"field is required", "must be a string"}, e["title"])
		assert.Equal(t, []string{"invalid format"}, e["code"])
	})

	t.Run("error message includes fields deterministically", func(t *testing.T) {
		e := dealkit.NewValidationError()
		e.Add("b", "second")
		e.Add("a", "first")
		assert.Equal(t, "validation failed: a: first; b: second", e.Error())
	})
}
