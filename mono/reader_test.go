package mono

import (
	"bytes"
	"errors"
	"image/color"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadChunks(t *testing.T) {
	b, err := NewEncoder().EncodeImage(checker(24, 8))
	require.Nil(t, err)

	chunks, err := ReadChunks(bytes.NewReader(b))
	require.Nil(t, err)
	require.Len(t, chunks, 4)

	assert.Equal(t, "IHDR", chunks[0].Type)
	assert.Len(t, chunks[0].Data, headerLength)
	assert.Equal(t, "PLTE", chunks[1].Type)
	assert.Equal(t, "IDAT", chunks[2].Type)
	assert.Equal(t, "IEND", chunks[3].Type)
	assert.Equal(t, uint32(0xae426082), chunks[3].CRC)
}

func TestReadChunksErrors(t *testing.T) {
	b, err := NewEncoder().EncodeImage(checker(24, 8))
	require.Nil(t, err)

	_, err = ReadChunks(bytes.NewReader(append([]byte("GIF89a.."), b[8:]...)))
	assert.Equal(t, ErrBadSignature, err)

	_, err = ReadChunks(bytes.NewReader(b[:4]))
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	_, err = ReadChunks(bytes.NewReader(b[:len(b)-6]))
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	_, err = ReadChunks(bytes.NewReader(b[:len(b)-12]))
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	// Flip a bit in the IHDR width
	dup := append([]byte(nil), b...)
	dup[8+8+3] ^= 0x01
	_, err = ReadChunks(bytes.NewReader(dup))
	assert.True(t, errors.Is(err, ErrBadCRC))
}

func TestUnpack(t *testing.T) {
	const w, h = 20, 6

	for _, f := range []Filter{FilterNone, FilterSub, FilterUp} {
		t.Run(f.String(), func(t *testing.T) {
			b, err := NewEncoder(WithFilter(f)).EncodeImage(uniform(w, h, color.Black))
			require.Nil(t, err)

			chunks, err := ReadChunks(bytes.NewReader(b))
			require.Nil(t, err)

			r, err := Unpack(chunks)
			require.Nil(t, err)

			assert.Equal(t, w, r.Width)
			assert.Equal(t, h, r.Height)
			assert.Equal(t, 1, r.BitDepth)
			assert.Equal(t, ColorTypePaletted, r.ColorType)
			assert.Equal(t, color.Palette{
				color.RGBA{0x00, 0x00, 0x00, 0xff},
				color.RGBA{0xff, 0xff, 0xff, 0xff},
			}, r.Palette)

			require.Len(t, r.Rows, h)
			for y, row := range r.Rows {
				assert.Equal(t, f, r.Filters[y])
				assert.Equal(t, make([]byte, rowBytes(w, 1)), row)
			}
		})
	}
}

func TestUnpackBackground(t *testing.T) {
	b, err := NewEncoder(WithFilter(FilterUp)).EncodeImage(uniform(16, 3, color.White))
	require.Nil(t, err)

	chunks, err := ReadChunks(bytes.NewReader(b))
	require.Nil(t, err)

	r, err := Unpack(chunks)
	require.Nil(t, err)
	for _, row := range r.Rows {
		assert.Equal(t, []byte{0xff, 0xff}, row)
	}
}

func TestUnpackErrors(t *testing.T) {
	_, err := Unpack(nil)
	assert.Equal(t, errNoHeader, err)

	_, err = Unpack([]Chunk{{Type: "IHDR", Data: []byte{1, 2, 3}}})
	assert.Equal(t, errBadHeader, err)

	ihdr := []byte{0, 0, 0, 8, 0, 0, 0, 1, 1, 3, 0, 0, 1}
	_, err = Unpack([]Chunk{{Type: "IHDR", Data: ihdr}})
	assert.Equal(t, errInterlaced, err)

	ihdr[12] = 0
	_, err = Unpack([]Chunk{{Type: "IHDR", Data: ihdr}, {Type: "IDAT", Data: []byte{1, 2}}})
	assert.NotNil(t, err)
}
