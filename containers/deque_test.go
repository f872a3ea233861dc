package containers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/protosun/protosun/wire"
)

func TestDequeOps(t *testing.T) {
	d := NewDeque[int](2)
	d.PushBack(2)
	d.PushBack(3)
	d.PushFront(1) // forces growth through the wrap point
	require.Equal(t, 3, d.Len())
	require.Equal(t, 1, d.At(0))
	require.Equal(t, 3, d.At(2))

	v, ok := d.PopFront()
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = d.PopBack()
	require.True(t, ok)
	require.Equal(t, 3, v)

	_, _ = d.PopFront()
	_, ok = d.PopFront()
	require.False(t, ok)
}

func TestDequeCodecRoundTrip(t *testing.T) {
	c := DequeCodec(wire.Uint32)
	d := NewDeque[uint32](0)
	d.PushBack(1)
	d.PushBack(2)
	d.PushBack(3)

	data := encodeField(c, 3, d)
	// Same wire form as the equivalent slice.
	require.Equal(t, []byte{0x1A, 0x03, 0x01, 0x02, 0x03}, data)

	got := mergeField(t, c, data)
	require.Equal(t, 3, got.Len())
	require.Equal(t, uint32(1), got.At(0))
	require.Equal(t, uint32(3), got.At(2))
}

func TestDequeCodecStrings(t *testing.T) {
	c := DequeCodec(wire.String)
	d := NewDeque[string](0)
	d.PushBack("x")
	d.PushBack("y")

	got := mergeField(t, c, encodeField(c, 1, d))
	require.Equal(t, "x", got.At(0))
	require.Equal(t, "y", got.At(1))
}

func TestByteDequeBulkCopy(t *testing.T) {
	c := ByteDequeCodec()
	d := NewDeque[byte](0)
	for _, b := range []byte("ring") {
		d.PushBack(b)
	}

	data := encodeField(c, 2, d)
	// Bytes kind, not a per-element loop.
	require.Equal(t, []byte{0x12, 0x04, 'r', 'i', 'n', 'g'}, data)

	got := mergeField(t, c, data)
	require.Equal(t, 4, got.Len())
	b, _ := got.PopFront()
	require.Equal(t, byte('r'), b)
}
