package wire

import "encoding/binary"

// RevWriter is a byte buffer that grows backward: writes proceed from the
// end of the allocation toward the front. This makes single-pass encoding of
// length-prefixed nested frames possible: a nested payload is written first,
// then its length prefix and key are "prepended" by simply continuing the
// same backward walk. Mark/WrittenSince measure emitted bytes in O(1).
//
// The valid window is buf[pos:len(buf)]. Growth doubles the allocation and
// copies the suffix once; no other bytes ever move until the final
// compaction in FinishTight.
type RevWriter struct {
	buf []byte
	pos int
}

const revWriterMinGrow = 64

// NewRevWriter allocates a writer with the given capacity and the write
// cursor at the end of the allocation.
func NewRevWriter(capacity int) *RevWriter {
	if capacity < 0 {
		capacity = 0
	}
	return &RevWriter{buf: make([]byte, capacity), pos: capacity}
}

// Mark captures the current write position for later measurement.
type Mark int

// Mark returns the current position; pass it to WrittenSince.
func (w *RevWriter) Mark() Mark {
	return Mark(w.pos)
}

// WrittenSince returns the number of bytes emitted since mark, in O(1).
func (w *RevWriter) WrittenSince(m Mark) int {
	return int(m) - w.pos
}

// Len returns the total number of valid bytes written so far.
func (w *RevWriter) Len() int {
	return len(w.buf) - w.pos
}

// Start returns the offset of the first valid byte within the raw buffer
// returned by FinishRaw.
func (w *RevWriter) Start() int {
	return w.pos
}

// ensure makes room for need more bytes in front of the valid window,
// growing exponentially and copying the already written suffix to the tail
// of the new allocation.
func (w *RevWriter) ensure(need int) {
	if w.pos >= need {
		return
	}
	used := len(w.buf) - w.pos
	newCap := len(w.buf) * 2
	if newCap < revWriterMinGrow {
		newCap = revWriterMinGrow
	}
	for newCap < used+need {
		newCap *= 2
	}
	grown := make([]byte, newCap)
	copy(grown[newCap-used:], w.buf[w.pos:])
	w.buf = grown
	w.pos = newCap - used
}

// PutU8 writes one byte.
func (w *RevWriter) PutU8(b byte) {
	w.ensure(1)
	w.pos--
	w.buf[w.pos] = b
}

// PutSlice writes s so it reads forward in the final output.
func (w *RevWriter) PutSlice(s []byte) {
	if len(s) == 0 {
		return
	}
	w.ensure(len(s))
	w.pos -= len(s)
	copy(w.buf[w.pos:], s)
}

// PutString writes s so it reads forward in the final output.
func (w *RevWriter) PutString(s string) {
	if len(s) == 0 {
		return
	}
	w.ensure(len(s))
	w.pos -= len(s)
	copy(w.buf[w.pos:], s)
}

// PutVarint writes v as a varint. The bytes land in normal forward varint
// order even though the cursor moves backward.
func (w *RevWriter) PutVarint(v uint64) {
	var scratch [10]byte
	n := len(AppendVarint(scratch[:0], v))
	w.ensure(n)
	w.pos -= n
	copy(w.buf[w.pos:], scratch[:n])
}

// PutKey writes the field key for tag and wt.
func (w *RevWriter) PutKey(tag uint32, wt Type) {
	w.PutVarint(MakeKey(tag, wt))
}

// PutFixed32 writes v as 4 little-endian bytes.
func (w *RevWriter) PutFixed32(v uint32) {
	w.ensure(4)
	w.pos -= 4
	binary.LittleEndian.PutUint32(w.buf[w.pos:], v)
}

// PutFixed64 writes v as 8 little-endian bytes.
func (w *RevWriter) PutFixed64(v uint64) {
	w.ensure(8)
	w.pos -= 8
	binary.LittleEndian.PutUint64(w.buf[w.pos:], v)
}

// FinishTight moves the valid window to offset 0 with a single copy and
// returns a normally-ordered byte slice of exactly the written length. When
// the initial capacity was exact the copy degenerates to a no-op.
func (w *RevWriter) FinishTight() []byte {
	if w.pos == 0 {
		return w.buf
	}
	n := copy(w.buf, w.buf[w.pos:])
	w.pos = 0
	return w.buf[:n]
}

// FinishRaw returns the backing buffer as-is: the valid region ends at the
// allocation's tail and starts at Start(). Callers that can carry an offset
// avoid the final compaction copy entirely.
func (w *RevWriter) FinishRaw() []byte {
	return w.buf
}
