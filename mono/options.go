package mono

import (
	"image/color"
	"log"
)

// ColorType is the IHDR color type.
type ColorType uint8

// Supported color types.
const (
	ColorTypeGrayscale ColorType = 0
	ColorTypePaletted  ColorType = 3
)

// DefaultCompressionLevel is the zlib level used unless one is configured.
const DefaultCompressionLevel = 9

type config struct {
	level     int
	filter    Filter
	depth     int
	ink       color.Color
	colorType ColorType
	dither    bool
	logger    *log.Logger

	newCompressor compressorFunc
}

// Option configures an Encoder.
type Option func(*config)

func validLevel(level int) bool {
	return level >= 0 && level <= 9
}

// WithCompressionLevel sets the zlib level, 0 for none through 9 for the
// best. Levels outside that range are ignored.
func WithCompressionLevel(level int) Option {
	return func(c *config) {
		if validLevel(level) {
			c.level = level
		}
	}
}

// WithFilter sets the scanline filter, see SetFilter.
func WithFilter(f Filter) Option {
	return func(c *config) {
		c.filter = normalizeFilter(f)
	}
}

// WithBitDepth selects 1, 2, 4 or 8 bits per pixel. Any other value is
// ignored. Depths above 1 always use the paletted color type.
func WithBitDepth(depth int) Option {
	return func(c *config) {
		switch depth {
		case 1, 2, 4, 8:
			c.depth = depth
		}
	}
}

// WithInk sets the color encoded as 0 on the 1-bit path. The default is
// color.Black.
func WithInk(ink color.Color) Option {
	return func(c *config) {
		if ink != nil {
			c.ink = ink
		}
	}
}

// WithColorType selects the IHDR color type. ColorTypeGrayscale omits the
// PLTE chunk and only applies to a bit depth of 1.
func WithColorType(t ColorType) Option {
	return func(c *config) {
		switch t {
		case ColorTypeGrayscale, ColorTypePaletted:
			c.colorType = t
		}
	}
}

// WithDither reduces the image to the colors available at the configured
// depth before packing, rather than substituting unknown colors.
func WithDither(dither bool) Option {
	return func(c *config) {
		c.dither = dither
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func withCompressor(f compressorFunc) Option {
	return func(c *config) {
		c.newCompressor = f
	}
}
