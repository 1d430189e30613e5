package mono

// buffer is an append-only byte sequence. The number of bytes written is
// tracked separately from the allocation, which grows in steps of at least
// growIncrement bytes.
type buffer struct {
	b []byte
	n int
}

func newBuffer(capacity int) *buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &buffer{b: make([]byte, capacity)}
}

// Len returns the number of bytes written so far.
func (b *buffer) Len() int { return b.n }

// Cap returns the current allocation.
func (b *buffer) Cap() int { return len(b.b) }

func (b *buffer) grow(n int) {
	dup := make([]byte, len(b.b)+max(growIncrement, n))
	copy(dup, b.b[:b.n])
	b.b = dup
}

// Write appends p to the buffer. It never fails.
func (b *buffer) Write(p []byte) (int, error) {
	if b.n+len(p) > len(b.b) {
		b.grow(len(p))
	}
	copy(b.b[b.n:], p)
	b.n += len(p)
	return len(p), nil
}

// Bytes returns a copy of everything written, never any of the unused
// allocation.
func (b *buffer) Bytes() []byte {
	out := make([]byte, b.n)
	copy(out, b.b)
	return out
}
