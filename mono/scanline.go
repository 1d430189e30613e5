package mono

import (
	"image"
	"image/color"
	"io"
	"log"
)

func rowBytes(width, depth int) int {
	return (width*depth + 7) / 8
}

func sameColor(c1, c2 color.Color) bool {
	r1, g1, b1, a1 := c1.RGBA()
	r2, g2, b2, a2 := c2.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

// packer turns the rows of an image into bit-packed scanlines.
type packer struct {
	m      image.Image
	depth  int
	ink    color.Color
	table  *paletteTable // nil for the 1-bit path
	logger *log.Logger

	// Resolved indices per source palette entry, -1 until first seen
	paletted image.PalettedImage
	palette  color.Palette
	lookup   []int

	overflow bool
}

func newPacker(m image.Image, depth int, ink color.Color, logger *log.Logger) *packer {
	p := &packer{
		m:      m,
		depth:  depth,
		ink:    ink,
		logger: logger,
	}
	if depth > 1 {
		p.table = newPaletteTable(depth)
	}
	if pm, ok := m.(image.PalettedImage); ok {
		if cp, ok := pm.ColorModel().(color.Palette); ok {
			p.paletted = pm
			p.palette = cp
			p.lookup = make([]int, len(cp))
			for i := range p.lookup {
				p.lookup[i] = -1
			}
		}
	}
	return p
}

func (p *packer) colorIndex(c color.Color, x, y int) uint8 {
	if p.table == nil {
		if sameColor(c, p.ink) {
			return 0
		}
		return 1
	}

	i, ok := p.table.index(c)
	if !ok && !p.overflow {
		p.overflow = true
		p.logger.Printf("mono: more than %d colors, substituting index 0 from (%d, %d)\n", p.table.size, x, y)
	}
	return i
}

func (p *packer) indexAt(x, y int) uint8 {
	if p.lookup != nil {
		if ci := int(p.paletted.ColorIndexAt(x, y)); ci < len(p.lookup) {
			if p.lookup[ci] < 0 {
				p.lookup[ci] = int(p.colorIndex(p.palette[ci], x, y))
			}
			return uint8(p.lookup[ci])
		}
	}
	return p.colorIndex(p.m.At(x, y), x, y)
}

// packRow packs row y most significant bit first. Unused trailing bits are
// left as zero.
func (p *packer) packRow(y int, row []byte) {
	for i := range row {
		row[i] = 0
	}

	b := p.m.Bounds()
	perByte := 8 / p.depth
	for x := b.Min.X; x < b.Max.X; x++ {
		i := x - b.Min.X
		shift := uint(8 - (i%perByte+1)*p.depth)
		row[i/perByte] |= p.indexAt(x, y) << shift
	}
}

// pack writes every row of the image to w, each one prefixed with the type
// of f and transformed by it.
func (p *packer) pack(w io.Writer, f Filter) error {
	b := p.m.Bounds()
	n := rowBytes(b.Dx(), p.depth)

	cur, prev := make([]byte, n), make([]byte, n)
	out := make([]byte, 1+n)
	out[0] = byte(f)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		p.packRow(y, cur)
		f.apply(out[1:], cur, prev)
		if _, err := w.Write(out); err != nil {
			return err
		}
		cur, prev = prev, cur
	}
	return nil
}
