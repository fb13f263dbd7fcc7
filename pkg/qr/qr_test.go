package qr_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealkit/dealkit/pkg/qr"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestGenerate(t *testing.T) {
	t.Run("renders a png", func(t *testing.T) {
		png, err := qr.Generate("https://dealkit.example/redeem/SAVE20", 256)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngHeader))
	})

	t.Run("tiny size falls back to default", func(t *testing.T) {
		png, err := qr.Generate("https://dealkit.example/redeem/SAVE20", 10)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngHeader))
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		_, err := qr.Generate("", 256)
		assert.ErrorIs(t, err, qr.ErrEmptyContent)
	})
}

func TestGenerateDataURL(t *testing.T) {
	url, err := qr.GenerateDataURL("https://dealkit.example/redeem/SAVE20", 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}
