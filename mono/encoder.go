package mono

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"
	"log"
	"os"
)

var (
	// ErrNoImage is returned when encoding without an image.
	ErrNoImage = errors.New("mono: no image set")
	// ErrNotEncoded is returned when saving before anything was encoded.
	ErrNotEncoded = errors.New("mono: nothing encoded")
	// ErrEmptyImage is returned for images with no pixels.
	ErrEmptyImage = errors.New("mono: image has no pixels")
	// ErrTooLarge is returned when a dimension exceeds what IHDR can hold.
	ErrTooLarge = errors.New("mono: image is too large")
)

// State is the lifecycle position of an Encoder.
type State int

// Encoder states.
const (
	StateEmpty State = iota
	StateReady
	StateEncoded
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	case StateEncoded:
		return "encoded"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Encoder holds the encoding settings, the current image and the output of
// the last Encode. Every encode builds its own buffer and CRC state, so
// EncodeImage may be called concurrently as long as the settings are not
// being changed. The remaining methods must not be.
type Encoder struct {
	config

	image  image.Image
	output []byte
}

// NewEncoder returns an Encoder with no image set.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		config: config{
			level:         DefaultCompressionLevel,
			filter:        FilterNone,
			depth:         1,
			ink:           color.Black,
			colorType:     ColorTypePaletted,
			logger:        log.New(ioutil.Discard, "", 0),
			newCompressor: newZlibWriter,
		},
	}
	for _, o := range opts {
		o(&e.config)
	}
	return e
}

// SetImage replaces the current image and discards any previous output. A
// nil image returns the encoder to StateEmpty.
func (e *Encoder) SetImage(m image.Image) {
	e.image = m
	e.output = nil
}

// SetCompressionLevel sets the zlib level. Values outside 0 to 9 are
// ignored.
func (e *Encoder) SetCompressionLevel(level int) {
	if validLevel(level) {
		e.level = level
	}
}

// CompressionLevel returns the zlib level.
func (e *Encoder) CompressionLevel() int {
	return e.level
}

// SetFilter sets the scanline filter. Values beyond FilterLast become
// FilterNone.
func (e *Encoder) SetFilter(f Filter) {
	e.filter = normalizeFilter(f)
}

// Filter returns the scanline filter.
func (e *Encoder) Filter() Filter {
	return e.filter
}

// State returns the lifecycle state.
func (e *Encoder) State() State {
	switch {
	case e.image == nil:
		return StateEmpty
	case e.output == nil:
		return StateReady
	default:
		return StateEncoded
	}
}

// Settings describes everything that influences the output for a given
// image.
func (e *Encoder) Settings() string {
	r, g, b, a := e.ink.RGBA()
	return fmt.Sprintf("level=%d filter=%s depth=%d color=%d ink=%04x%04x%04x%04x dither=%t", e.level, e.filter, e.depth, e.colorType, r, g, b, a, e.dither)
}

// Encode encodes the current image. It returns ErrNoImage if none is set.
// The result is kept for SaveFile and must not be modified.
func (e *Encoder) Encode() ([]byte, error) {
	if e.image == nil {
		e.logger.Println("mono: encode requested with no image set")
		return nil, ErrNoImage
	}

	b, err := e.EncodeImage(e.image)
	if err != nil {
		return nil, err
	}
	e.output = b

	return b, nil
}

// EncodeImage encodes m with the current settings without touching the
// current image or the last output.
func (e *Encoder) EncodeImage(m image.Image) ([]byte, error) {
	if m == nil {
		return nil, ErrNoImage
	}

	b := m.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		return nil, ErrTooLarge
	}

	if e.dither {
		if e.depth == 1 {
			m = Dither(m, color.Palette{e.ink, color.White})
		} else {
			m = Quantize(m, e.depth)
		}
	}

	return newSession(e.config, m).encode()
}

// SaveFile writes the output of the last Encode to file.
func (e *Encoder) SaveFile(file string) error {
	if e.output == nil {
		return ErrNotEncoded
	}
	return os.WriteFile(file, e.output, 0644)
}

// session is the state of a single encode.
type session struct {
	config

	m      image.Image
	packer *packer
	buf    *buffer
	cw     *chunkWriter
}

func newSession(c config, m image.Image) *session {
	// Anything deeper than one bit needs a palette
	if c.depth > 1 {
		c.colorType = ColorTypePaletted
	}

	b := m.Bounds()
	buf := newBuffer(b.Dx()*b.Dy()*c.depth/8 + headerSlack)

	return &session{
		config: c,
		m:      m,
		packer: newPacker(m, c.depth, c.ink, c.logger),
		buf:    buf,
		cw:     newChunkWriter(buf),
	}
}

func (s *session) writeHeader() error {
	b := s.m.Bounds()

	var tmp [headerLength]byte
	binary.BigEndian.PutUint32(tmp[0:4], uint32(b.Dx()))
	binary.BigEndian.PutUint32(tmp[4:8], uint32(b.Dy()))
	tmp[8] = byte(s.depth)
	tmp[9] = byte(s.colorType)
	tmp[10] = compressionDeflate
	tmp[11] = filterAdaptive
	tmp[12] = interlaceNone

	return s.cw.writeChunk(chunkIHDR, tmp[:])
}

func (s *session) writePalette() error {
	if s.packer.table == nil {
		return s.cw.writeChunk(chunkPLTE, bilevelPalette)
	}
	return s.cw.writeChunk(chunkPLTE, s.packer.table.payload())
}

func (s *session) encode() ([]byte, error) {
	if _, err := io.WriteString(s.buf, signature); err != nil {
		return nil, err
	}

	if err := s.writeHeader(); err != nil {
		return nil, err
	}

	// The palette of the indexed path is only known once every pixel
	// has been seen
	data := s.compress()

	if s.colorType == ColorTypePaletted {
		if err := s.writePalette(); err != nil {
			return nil, err
		}
	}

	if err := s.cw.writeChunk(chunkIDAT, data); err != nil {
		return nil, err
	}

	if err := s.cw.writeChunk(chunkIEND, nil); err != nil {
		return nil, err
	}

	return s.buf.Bytes(), nil
}

// Encode writes the Image m to w as a minimal monochrome PNG.
func Encode(w io.Writer, m image.Image, opts ...Option) error {
	b, err := NewEncoder(opts...).EncodeImage(m)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
