/*
Package crc32 implements the 32-bit cyclic redundancy check, or CRC-32,
checksum used to protect each chunk of a PNG stream.

It is the standard reflected IEEE polynomial. A digest is reset at the start
of every chunk and fed the chunk type followed by the payload; nothing is
carried over from one chunk to the next.
*/
package crc32

import (
	"hash"
	crc "hash/crc32"
)

// Size of a CRC-32 checksum in bytes.
const Size = crc.Size

var table = crc.MakeTable(crc.IEEE)

type digest struct {
	crc uint32
	tab *crc.Table
}

// New creates a new hash.Hash32 computing the CRC-32 checksum. Its Sum
// method will lay the value out in big-endian byte order.
func New() hash.Hash32 {
	return &digest{0, table}
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 1 }

func (d *digest) Reset() { d.crc = 0 }

// Update returns the result of adding the bytes in p to the crc.
func Update(crc uint32, p []byte) uint32 {
	return update(crc, table, p)
}

func update(c uint32, tab *crc.Table, p []byte) uint32 {
	return crc.Update(c, tab, p)
}

func (d *digest) Write(p []byte) (n int, err error) {
	d.crc = update(d.crc, d.tab, p)
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return d.crc }

func (d *digest) Sum(in []byte) []byte {
	s := d.Sum32()
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// Checksum returns the CRC-32 checksum of data.
func Checksum(data []byte) uint32 { return Update(0, data) }
