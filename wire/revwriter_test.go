package wire

import (
	"bytes"
	"testing"
)

func TestRevWriterForwardOrder(t *testing.T) {
	w := NewRevWriter(16)
	w.PutSlice([]byte("world"))
	w.PutU8(' ')
	w.PutString("hello")

	if got := w.FinishTight(); !bytes.Equal(got, []byte("hello world")) {
		t.Errorf("FinishTight() = %q, want %q", got, "hello world")
	}
}

func TestRevWriterVarintByteOrder(t *testing.T) {
	// Varint bytes must land in forward order, not mirrored.
	w := NewRevWriter(4)
	w.PutVarint(300)
	if got, want := w.FinishTight(), []byte{0xAC, 0x02}; !bytes.Equal(got, want) {
		t.Errorf("PutVarint(300) = %x, want %x", got, want)
	}
}

func TestRevWriterNestedFrame(t *testing.T) {
	// Payload first, then length and key, the single-pass archive order.
	w := NewRevWriter(8)
	mark := w.Mark()
	w.PutString("abc")
	w.PutVarint(uint64(w.WrittenSince(mark)))
	w.PutKey(2, TypeBytes)

	want := []byte{0x12, 0x03, 'a', 'b', 'c'}
	if got := w.FinishTight(); !bytes.Equal(got, want) {
		t.Errorf("nested frame = %x, want %x", got, want)
	}
}

func TestRevWriterMark(t *testing.T) {
	w := NewRevWriter(32)
	mark := w.Mark()
	if got := w.WrittenSince(mark); got != 0 {
		t.Errorf("WrittenSince(fresh mark) = %d, want 0", got)
	}
	w.PutFixed32(1)
	w.PutFixed64(2)
	if got := w.WrittenSince(mark); got != 12 {
		t.Errorf("WrittenSince = %d, want 12", got)
	}
	if got := w.Len(); got != 12 {
		t.Errorf("Len = %d, want 12", got)
	}
}

func TestRevWriterGrowth(t *testing.T) {
	w := NewRevWriter(2)
	var want []byte
	for i := 0; i < 100; i++ {
		w.PutU8(byte(i))
		want = append([]byte{byte(i)}, want...)
	}
	if got := w.FinishTight(); !bytes.Equal(got, want) {
		t.Errorf("grown buffer mismatch: got %x, want %x", got, want)
	}
}

func TestRevWriterFinishRaw(t *testing.T) {
	w := NewRevWriter(8)
	w.PutString("tail")
	raw := w.FinishRaw()
	if got := raw[w.Start():]; !bytes.Equal(got, []byte("tail")) {
		t.Errorf("FinishRaw()[Start():] = %q, want %q", got, "tail")
	}
	if w.Start() != len(raw)-4 {
		t.Errorf("Start() = %d, want %d", w.Start(), len(raw)-4)
	}
}

func TestRevWriterExactCapacity(t *testing.T) {
	// A correctly pre-sized writer finishes without moving bytes.
	w := NewRevWriter(3)
	w.PutString("xyz")
	if w.Start() != 0 {
		t.Fatalf("Start() = %d, want 0 at exact capacity", w.Start())
	}
	if got := w.FinishTight(); !bytes.Equal(got, []byte("xyz")) {
		t.Errorf("FinishTight() = %q, want %q", got, "xyz")
	}
}
