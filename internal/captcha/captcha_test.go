package captcha

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/butiken/storefront/internal/dependencies/random"
)

func TestNewCodeLengthAndAlphabet(t *testing.T) {
	rnd := random.New()

	for i := 0; i < 20; i++ {
		code := NewCode(rnd)
		require.Len(t, code, 6)
		for _, ch := range code {
			require.True(t, strings.ContainsRune(random.CaptchaAlphabet, ch),
				"unexpected character %q in code %q", ch, code)
		}
	}
}

func TestNewCodesDiffer(t *testing.T) {
	rnd := random.New()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		seen[NewCode(rnd)] = true
	}
	require.Greater(t, len(seen), 1, "codes should not repeat every time")
}

func TestRenderProducesPNG(t *testing.T) {
	rnd := random.New()

	img, err := Render(NewCode(rnd), rnd)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)

	bounds := decoded.Bounds()
	require.Equal(t, Width, bounds.Dx())
	require.Equal(t, Height, bounds.Dy())
}
