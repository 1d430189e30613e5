package mono

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/bodgit/monopng/crc32"
	"github.com/klauspost/compress/zlib"
)

var (
	// ErrBadSignature is returned when a stream does not start with the
	// PNG signature.
	ErrBadSignature = errors.New("mono: invalid signature")
	// ErrBadCRC is returned when a chunk fails its CRC check.
	ErrBadCRC = errors.New("mono: chunk CRC mismatch")

	errNoHeader   = errors.New("mono: missing IHDR chunk")
	errBadHeader  = errors.New("mono: invalid IHDR chunk")
	errInterlaced = errors.New("mono: interlacing is not supported")
	errTooMuch    = errors.New("mono: too much image data")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Chunk is a single section of a PNG stream.
type Chunk struct {
	Type string
	Data []byte
	CRC  uint32
}

// ReadChunks reads and CRC checks every chunk from r up to and including
// IEND.
func ReadChunks(r io.Reader) ([]Chunk, error) {
	var tmp [8]byte
	if err := readFull(r, tmp[:]); err != nil {
		return nil, err
	}
	if string(tmp[:]) != signature {
		return nil, ErrBadSignature
	}

	var chunks []Chunk
	h := crc32.New()
	for {
		if err := readFull(r, tmp[:]); err != nil {
			return nil, err
		}

		length := binary.BigEndian.Uint32(tmp[:4])
		if length > maxDimension {
			return nil, errChunkTooLarge
		}

		c := Chunk{Type: string(tmp[4:8])}

		b := new(bytes.Buffer)
		if _, err := io.CopyN(b, r, int64(length)); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		c.Data = b.Bytes()

		if err := readFull(r, tmp[:4]); err != nil {
			return nil, err
		}
		c.CRC = binary.BigEndian.Uint32(tmp[:4])

		h.Reset()
		h.Write([]byte(c.Type))
		h.Write(c.Data)
		if h.Sum32() != c.CRC {
			return nil, fmt.Errorf("%w in %s chunk", ErrBadCRC, c.Type)
		}

		chunks = append(chunks, c)
		if c.Type == string(chunkIEND[:]) {
			return chunks, nil
		}
	}
}

// Header is the decoded IHDR chunk.
type Header struct {
	Width, Height int
	BitDepth      int
	ColorType     ColorType
	Compression   uint8
	Filter        uint8
	Interlace     uint8
}

func parseHeader(b []byte) (Header, error) {
	if len(b) != headerLength {
		return Header{}, errBadHeader
	}
	h := Header{
		Width:       int(binary.BigEndian.Uint32(b[0:4])),
		Height:      int(binary.BigEndian.Uint32(b[4:8])),
		BitDepth:    int(b[8]),
		ColorType:   ColorType(b[9]),
		Compression: b[10],
		Filter:      b[11],
		Interlace:   b[12],
	}
	if h.Width == 0 || h.Height == 0 {
		return Header{}, errBadHeader
	}
	switch h.BitDepth {
	case 1, 2, 4, 8:
	default:
		return Header{}, errBadHeader
	}
	if h.Interlace != interlaceNone {
		return Header{}, errInterlaced
	}
	return h, nil
}

// Raster is the content of a stream as packed, unfiltered scanlines.
type Raster struct {
	Header
	Palette color.Palette
	Filters []Filter
	Rows    [][]byte
}

// Unpack decompresses the IDAT chunks and reverses each scanline filter.
func Unpack(chunks []Chunk) (*Raster, error) {
	if len(chunks) == 0 || chunks[0].Type != string(chunkIHDR[:]) {
		return nil, errNoHeader
	}

	h, err := parseHeader(chunks[0].Data)
	if err != nil {
		return nil, err
	}
	r := &Raster{Header: h}

	var data []byte
	for _, c := range chunks[1:] {
		switch c.Type {
		case string(chunkPLTE[:]):
			for i := 0; i+2 < len(c.Data); i += 3 {
				r.Palette = append(r.Palette, color.RGBA{c.Data[i], c.Data[i+1], c.Data[i+2], 0xff})
			}
		case string(chunkIDAT[:]):
			data = append(data, c.Data...)
		}
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	n := rowBytes(h.Width, h.BitDepth)
	prev := make([]byte, n)
	for y := 0; y < h.Height; y++ {
		row := make([]byte, 1+n)
		if err := readFull(zr, row); err != nil {
			return nil, err
		}

		f := Filter(row[0])
		if err := f.reverse(row[1:], prev); err != nil {
			return nil, err
		}
		r.Filters = append(r.Filters, f)
		r.Rows = append(r.Rows, row[1:])
		prev = row[1:]
	}

	var extra [1]byte
	if n, err := zr.Read(extra[:]); n != 0 || (err != nil && err != io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errTooMuch
	}

	return r, nil
}
