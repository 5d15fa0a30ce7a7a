package captcha

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/butiken/storefront/internal/dependencies/random"
)

// Image dimensions and per-glyph layout
const (
	Width  = 230
	Height = 80

	codeLength  = 6
	glyphStride = 32
	leftMargin  = 10
)

// NewCode draws a fresh challenge code. The alphabet deliberately omits
// glyphs that render ambiguously when rotated (o/O/0, s/S/5, c/C, v/V,
// w/W, x/X, z/Z, 1/l).
func NewCode(rnd random.Random) string {
	return rnd.String(codeLength, random.CaptchaAlphabet)
}

// Render draws the code as a PNG, each glyph at a random size and tilt so
// the image defeats naive OCR while staying human-readable
func Render(code string, rnd random.Random) ([]byte, error) {
	dc := gg.NewContext(Width, Height)
	dc.SetRGB255(250, 250, 250)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	for i, ch := range code {
		size := float64(12 + rnd.Intn(21))
		face, err := loadFace(size)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)

		x := float64(leftMargin + i*glyphStride)
		y := 5 + size + float64(rnd.Intn(26))
		angle := gg.Radians(float64(rnd.Intn(67) - 33))

		dc.Push()
		dc.RotateAbout(angle, x, y)
		dc.DrawString(string(ch), x, y)
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode captcha png: %w", err)
	}
	return buf.Bytes(), nil
}

func loadFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse captcha font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size: size,
		DPI:  72,
	})
	if err != nil {
		return nil, fmt.Errorf("create captcha font face: %w", err)
	}
	return face, nil
}
