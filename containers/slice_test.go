package containers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/protosun/protosun/wire"
)

func TestSlicePackedEncode(t *testing.T) {
	c := SliceCodec(wire.Uint32)
	data := encodeField(c, 3, []uint32{1, 2, 3})
	require.Equal(t, []byte{0x1A, 0x03, 0x01, 0x02, 0x03}, data)

	got := mergeField(t, c, data)
	require.Equal(t, []uint32{1, 2, 3}, got)
}

func TestSliceAcceptsLegacyUnpacked(t *testing.T) {
	// Per-element occurrences of a packable field, interleaved with an
	// unrelated field, must decode identically to the packed blob.
	var buf []byte
	buf = wire.AppendKey(buf, 3, wire.TypeVarint)
	buf = wire.AppendVarint(buf, 1)
	buf = wire.AppendKey(buf, 3, wire.TypeVarint)
	buf = wire.AppendVarint(buf, 2)
	buf = wire.AppendKey(buf, 3, wire.TypeVarint)
	buf = wire.AppendVarint(buf, 3)

	c := SliceCodec(wire.Uint32)
	got := mergeField(t, c, buf)
	require.Equal(t, []uint32{1, 2, 3}, got)
}

func TestSliceMixedPackedAndUnpacked(t *testing.T) {
	c := SliceCodec(wire.Uint32)
	var buf []byte
	buf = append(buf, encodeField(c, 3, []uint32{1, 2})...)
	buf = wire.AppendKey(buf, 3, wire.TypeVarint)
	buf = wire.AppendVarint(buf, 9)

	got := mergeField(t, c, buf)
	require.Equal(t, []uint32{1, 2, 9}, got)
}

func TestSliceOfStrings(t *testing.T) {
	c := SliceCodec(wire.String)
	v := []string{"a", "", "ccc"}
	data := encodeField(c, 2, v)
	// One tagged occurrence per element; the empty element still encodes.
	require.Equal(t, []byte{
		0x12, 0x01, 'a',
		0x12, 0x00,
		0x12, 0x03, 'c', 'c', 'c',
	}, data)
	require.Equal(t, v, mergeField(t, c, data))
}

func TestSliceOfSint(t *testing.T) {
	c := SliceCodec(wire.Sint64)
	v := []int64{-1, 1, -64}
	require.Equal(t, v, mergeField(t, c, encodeField(c, 1, v)))
}

func TestEmptySliceElided(t *testing.T) {
	c := SliceCodec(wire.Uint32)
	require.Empty(t, encodeField(c, 3, nil))
}

func TestSliceMergeAppends(t *testing.T) {
	c := SliceCodec(wire.Uint32)
	v := []uint32{7}
	require.NoError(t, mergeInto(c, encodeField(c, 3, []uint32{8, 9}), &v))
	require.Equal(t, []uint32{7, 8, 9}, v)
}
