package containers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/protosun/protosun/wire"
)

func TestArrayRoundTrip(t *testing.T) {
	c := ArrayCodec(wire.Uint32, 3)
	v := c.Default()
	v.Set(0, 10)
	v.Set(1, 20)
	v.Set(2, 30)

	data := encodeField(c, 1, v)
	require.Equal(t, []byte{0x0A, 0x03, 0x0A, 0x14, 0x1E}, data)

	got := mergeField(t, c, data)
	require.Equal(t, []uint32{10, 20, 30}, got.Slice())
}

func TestArrayUnderSupplyLeavesDefaults(t *testing.T) {
	c := ArrayCodec(wire.Uint32, 4)
	// Packed blob with two of four elements.
	data := []byte{0x0A, 0x02, 0x05, 0x06}
	got := mergeField(t, c, data)
	require.Equal(t, []uint32{5, 6, 0, 0}, got.Slice())
}

func TestArrayOverSupplyFails(t *testing.T) {
	c := ArrayCodec(wire.Uint32, 2)
	data := []byte{0x0A, 0x03, 0x01, 0x02, 0x03}
	v := c.Default()
	err := mergeInto(c, data, &v)
	require.Error(t, err)
	require.Contains(t, err.Error(), "too many elements")
}

func TestArrayUnpackedPositionalFill(t *testing.T) {
	c := ArrayCodec(wire.Uint32, 3)
	var buf []byte
	buf = wire.AppendKey(buf, 1, wire.TypeVarint)
	buf = wire.AppendVarint(buf, 1)
	buf = wire.AppendKey(buf, 1, wire.TypeVarint)
	buf = wire.AppendVarint(buf, 2)

	got := mergeField(t, c, buf)
	require.Equal(t, []uint32{1, 2, 0}, got.Slice())
}

func TestArrayAllDefaultsStillSized(t *testing.T) {
	c := ArrayCodec(wire.Uint32, 3)
	v := c.Default()
	require.True(t, c.IsDefault(v))
	// Force-written, all slots present as zeros.
	require.Equal(t, 3, c.SizeRaw(1, v))
}

func TestFixedBytesRoundTrip(t *testing.T) {
	c := FixedBytesCodec(4)
	v := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	data := encodeField(c, 5, v)
	require.Equal(t, []byte{0x2A, 0x04, 0xDE, 0xAD, 0xBE, 0xEF}, data)
	require.Equal(t, v, mergeField(t, c, data))
}

func TestFixedBytesLengthMismatch(t *testing.T) {
	c := FixedBytesCodec(4)
	data := []byte{0x2A, 0x02, 0x01, 0x02}
	v := c.Default()
	err := mergeInto(c, data, &v)
	require.Error(t, err)
	require.Contains(t, err.Error(), "length mismatch")
}

func TestFixedBytesShortValuePads(t *testing.T) {
	c := FixedBytesCodec(4)
	data := encodeField(c, 1, []byte{0xAA})
	require.Equal(t, []byte{0x0A, 0x04, 0xAA, 0x00, 0x00, 0x00}, data)
}
