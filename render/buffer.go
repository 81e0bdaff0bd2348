// Package render provides the bounded message-formatting subsystem for
// assertion diagnostics: a fixed-capacity truncating buffer and the Renderer
// capability that fills it.
//
// Buffers never grow and never fail; output beyond a buffer's usable capacity
// is silently discarded. Renderers are interchangeable implementations of the
// same capability, selected at configuration time.
package render

// Buffer is a fixed-capacity byte buffer that silently truncates overflow.
//
// One byte of the configured capacity is reserved and never written, so a
// buffer constructed with capacity n accepts at most n-1 bytes. A Buffer is
// reentrant for a single owner but must not be shared between two goroutines;
// exclusivity is the owner's responsibility.
type Buffer struct {
	data []byte
	n    int
}

// NewBuffer returns a buffer with the given total capacity in bytes. A
// capacity of 0 or 1 yields a buffer that accepts no bytes at all.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}

	return &Buffer{data: make([]byte, capacity)}
}

// Write appends p to the buffer, discarding any bytes past the usable
// capacity. It always reports len(p) written: truncation is not a failure.
func (b *Buffer) Write(p []byte) (int, error) {
	free := b.Cap() - b.n
	if free > 0 {
		b.n += copy(b.data[b.n:b.n+free], p)
	}

	return len(p), nil
}

// WriteString appends s, with the same truncation behavior as Write.
func (b *Buffer) WriteString(s string) (int, error) {
	free := b.Cap() - b.n
	if free > 0 {
		b.n += copy(b.data[b.n:b.n+free], s)
	}

	return len(s), nil
}

// WriteByte appends a single byte, discarding it when the buffer is full.
func (b *Buffer) WriteByte(c byte) error {
	if b.n < b.Cap() {
		b.data[b.n] = c
		b.n++
	}

	return nil
}

// Bytes returns the written contents. The slice aliases the buffer's storage
// and is invalidated by the next Reset or write.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.n]
}

// String returns the written contents as a string.
func (b *Buffer) String() string {
	return string(b.data[:b.n])
}

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int {
	return b.n
}

// Cap returns the usable capacity: total capacity minus the reserved byte.
func (b *Buffer) Cap() int {
	if len(b.data) == 0 {
		return 0
	}

	return len(b.data) - 1
}

// Reset discards the contents, keeping the storage for reuse.
func (b *Buffer) Reset() {
	b.n = 0
}
