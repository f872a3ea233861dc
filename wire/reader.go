package wire

// Reader is a position-tracked view over a single contiguous encoded buffer.
// All decode primitives consume from the front; Remaining shrinks toward zero
// and is what MergeLoop uses to detect frame boundaries.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a reader over data. The reader does not copy; callers
// must keep data alive and unmodified for the reader's lifetime.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// HasRemaining reports whether any unconsumed bytes are left.
func (r *Reader) HasRemaining() bool {
	return r.pos < len(r.buf)
}

// ReadByte consumes and returns one byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, errUnexpectedEOF()
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadSlice consumes n bytes and returns them as a subslice of the backing
// buffer. The result aliases the reader's data and must be copied by callers
// that retain it.
func (r *Reader) ReadSlice(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, errUnexpectedEOF()
	}
	s := r.buf[r.pos : r.pos+n]
	r.pos += n
	return s, nil
}

// Skip advances past n bytes without reading them.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.Remaining() < n {
		return errUnexpectedEOF()
	}
	r.pos += n
	return nil
}
