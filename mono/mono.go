/*
Package mono implements a PNG encoder for monochrome images destined for small
LCD and e-paper displays.

The output is the smallest stream a conforming decoder accepts: the 8 byte
signature, an IHDR chunk, a PLTE chunk holding black and white, a single IDAT
chunk of zlib compressed scanlines and finally an IEND chunk. Each scanline is
a filter type byte followed by the row packed at one bit per pixel, most
significant bit first, where 0 is ink and 1 is background. Rows whose width
is not a multiple of 8 are padded with zero bits.

Bit depths of 2, 4 and 8 are available through an indexed path that builds the
palette from the colors it meets, in the order it meets them. There is no
support for ancillary chunks, alpha or interlacing, and the compressed data is
always written as one IDAT chunk regardless of its size.
*/
package mono

const (
	signature = "\x89PNG\r\n\x1a\n"

	headerLength = 13

	// Headroom added to the initial buffer for the signature and the
	// fixed size chunks
	headerSlack = 200

	// Minimum number of bytes the output buffer grows by
	growIncrement = 1000

	maxDimension = 1<<31 - 1

	compressionDeflate = 0
	filterAdaptive     = 0
	interlaceNone      = 0
)

var (
	chunkIHDR = [4]byte{'I', 'H', 'D', 'R'}
	chunkPLTE = [4]byte{'P', 'L', 'T', 'E'}
	chunkIDAT = [4]byte{'I', 'D', 'A', 'T'}
	chunkIEND = [4]byte{'I', 'E', 'N', 'D'}
)
