package mono

import "image/color"

// The fixed palette of the 1-bit path, ink first.
var bilevelPalette = []byte{
	0x00, 0x00, 0x00,
	0xff, 0xff, 0xff,
}

// paletteTable assigns indices to colors on first sight. It holds at most
// 1<<depth entries.
type paletteTable struct {
	colors []color.NRGBA
	size   int
}

func newPaletteTable(depth int) *paletteTable {
	size := 1 << uint(depth)
	return &paletteTable{
		colors: make([]color.NRGBA, 0, size),
		size:   size,
	}
}

// index returns the index of c, assigning the next free one if c is new. If
// c is new and the table is full, it returns 0 and false.
func (t *paletteTable) index(c color.Color) (uint8, bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	for i, p := range t.colors {
		if p == n {
			return uint8(i), true
		}
	}
	if len(t.colors) == t.size {
		return 0, false
	}
	t.colors = append(t.colors, n)
	return uint8(len(t.colors) - 1), true
}

// payload returns the PLTE chunk payload, always at least one entry.
func (t *paletteTable) payload() []byte {
	if len(t.colors) == 0 {
		return []byte{0x00, 0x00, 0x00}
	}
	b := make([]byte, 0, 3*len(t.colors))
	for _, c := range t.colors {
		b = append(b, c.R, c.G, c.B)
	}
	return b
}
