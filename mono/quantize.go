package mono

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// Dither returns a copy of m reduced to the colors in p using Floyd-Steinberg
// error diffusion.
func Dither(m image.Image, p color.Palette) *image.Paletted {
	b := m.Bounds()
	pm := image.NewPaletted(b, p)
	draw.FloydSteinberg.Draw(pm, b, m, b.Min)
	return pm
}

// Quantize returns a copy of m using no more than 1<<depth colors. A depth of
// 1 dithers to black and white; deeper images get a median cut palette.
func Quantize(m image.Image, depth int) *image.Paletted {
	if depth <= 1 {
		return Dither(m, color.Palette{color.Black, color.White})
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, 1<<uint(depth)), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}
