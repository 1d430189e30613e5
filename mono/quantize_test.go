package mono

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gradient(w, h int) *image.RGBA {
	return fill(image.Rect(0, 0, w, h), func(x, y int) color.Color {
		return color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), uint8((x + y) * 4), 0xff}
	})
}

func TestQuantize(t *testing.T) {
	src := gradient(32, 32)

	for _, depth := range []int{2, 4} {
		pm := Quantize(src, depth)
		assert.Equal(t, src.Bounds(), pm.Bounds())
		assert.True(t, len(pm.Palette) <= 1<<uint(depth), "depth %d has %d colors", depth, len(pm.Palette))
		assert.NotEmpty(t, pm.Palette)
	}
}

func TestQuantizeBilevel(t *testing.T) {
	pm := Quantize(gradient(16, 16), 1)
	assert.Equal(t, color.Palette{color.Black, color.White}, pm.Palette)
}

func TestDither(t *testing.T) {
	red := color.RGBA{0xff, 0x00, 0x00, 0xff}
	pm := Dither(gradient(16, 16), color.Palette{red, color.White})

	for _, i := range pm.Pix {
		assert.True(t, i < 2)
	}
}
