package mono

import (
	"encoding/binary"
	"errors"
	"hash"
	"io"

	"github.com/bodgit/monopng/crc32"
)

var errChunkTooLarge = errors.New("mono: chunk payload too large")

// chunkWriter frames payloads as PNG chunks: a big-endian length, the type,
// the payload and the CRC of type and payload.
type chunkWriter struct {
	w   io.Writer
	crc hash.Hash32
	tmp [8]byte
}

func newChunkWriter(w io.Writer) *chunkWriter {
	return &chunkWriter{
		w:   w,
		crc: crc32.New(),
	}
}

func (cw *chunkWriter) writeChunk(typ [4]byte, payload []byte) error {
	if len(payload) > maxDimension {
		return errChunkTooLarge
	}

	binary.BigEndian.PutUint32(cw.tmp[:4], uint32(len(payload)))
	copy(cw.tmp[4:], typ[:])
	if _, err := cw.w.Write(cw.tmp[:8]); err != nil {
		return err
	}
	if _, err := cw.w.Write(payload); err != nil {
		return err
	}

	cw.crc.Reset()
	cw.crc.Write(typ[:])
	cw.crc.Write(payload)

	_, err := cw.w.Write(cw.crc.Sum(cw.tmp[:0]))
	return err
}
