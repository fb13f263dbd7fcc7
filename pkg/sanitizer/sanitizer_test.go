package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealkit/dealkit/pkg/sanitizer"
)

func TestApply(t *testing.T) {
	got := sanitizer.Apply("  Foo@Bar.COM  ", sanitizer.Trim, sanitizer.ToLower)
	assert.Equal(t, "foo@bar.com", got)
}

func TestCompose(t *testing.T) {
	normalize := sanitizer.Compose(sanitizer.Trim, sanitizer.CollapseWhitespace)
	assert.Equal(t, "summer sale", normalize("  summer   sale "))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "foo@bar.com", sanitizer.NormalizeEmail(" Foo@Bar.com "))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE20", sanitizer.NormalizeCode(" save 20 "))
	assert.Equal(t, "BACK-TO-SCHOOL", sanitizer.NormalizeCode("back-to-school"))
}
