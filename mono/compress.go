package mono

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

type compressorFunc func(w io.Writer, level int) (io.WriteCloser, error)

func newZlibWriter(w io.Writer, level int) (io.WriteCloser, error) {
	zw, err := zlib.NewWriterLevel(w, level)
	if err != nil {
		return nil, err
	}
	return zw, nil
}

// compress runs every scanline through the compressor and returns the whole
// stream as one payload. A failure is logged and yields an empty payload.
func (s *session) compress() []byte {
	b := new(bytes.Buffer)

	zw, err := s.newCompressor(b, s.level)
	if err != nil {
		s.logger.Printf("mono: compression failed: %v\n", err)
		return []byte{}
	}

	if err := s.packer.pack(zw, s.filter); err != nil {
		s.logger.Printf("mono: compression failed: %v\n", err)
		return []byte{}
	}

	if err := zw.Close(); err != nil {
		s.logger.Printf("mono: compression failed: %v\n", err)
		return []byte{}
	}

	return b.Bytes()
}
