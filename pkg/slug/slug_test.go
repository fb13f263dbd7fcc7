package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealkit/dealkit/pkg/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Summer Sale", "summer-sale"},
		{"punctuation collapses", "50% Off -- Everything!", "50-off-everything"},
		{"accents transliterate", "Café Déjà Vu", "cafe-deja-vu"},
		{"leading and trailing noise", "  ...Best Deals...  ", "best-deals"},
		{"already a slug", "electronics-store", "electronics-store"},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.title))
		})
	}

	t.Run("long titles are truncated", func(t *testing.T) {
		got := slug.Make(strings.Repeat("electronics ", 20))
		assert.LessOrEqual(t, len(got), 96)
		assert.False(t, strings.HasSuffix(got, "-"))
	})
}

func TestMakeUnique(t *testing.T) {
	assert.Equal(t, "summer-sale-7f3a", slug.MakeUnique("Summer Sale", "7f3a"))
	assert.Equal(t, "7f3a", slug.MakeUnique("!!!", "7f3a"))
	assert.Equal(t, "summer-sale", slug.MakeUnique("Summer Sale", ""))
}
