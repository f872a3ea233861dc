package containers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/protosun/protosun/wire"
)

func TestOptionAbsentElided(t *testing.T) {
	c := OptionCodec(wire.Uint32)
	require.Empty(t, encodeField(c, 1, nil))
}

func TestOptionPresentDefaultEncodes(t *testing.T) {
	// Explicit presence: Some(0) must reach the wire even though 0 is the
	// type default.
	c := OptionCodec(wire.Uint32)
	zero := uint32(0)
	data := encodeField(c, 1, &zero)
	require.Equal(t, []byte{0x08, 0x00}, data)

	got := mergeField(t, c, data)
	require.NotNil(t, got)
	require.Equal(t, uint32(0), *got)
}

func TestOptionRoundTrip(t *testing.T) {
	c := OptionCodec(wire.String)
	v := "maybe"
	got := mergeField(t, c, encodeField(c, 2, &v))
	require.NotNil(t, got)
	require.Equal(t, "maybe", *got)
}

func TestBoxTransparent(t *testing.T) {
	c := BoxCodec(wire.Uint32)
	v := uint32(9)
	data := encodeField(c, 1, &v)
	// Identical bytes to the unboxed field.
	require.Equal(t, encodeField(wire.Uint32, 1, uint32(9)), data)

	got := mergeField(t, c, data)
	require.NotNil(t, got)
	require.Equal(t, uint32(9), *got)
}

func TestBoxDefaultWhenNilOrZero(t *testing.T) {
	c := BoxCodec(wire.Uint32)
	require.True(t, c.IsDefault(nil))
	zero := uint32(0)
	require.True(t, c.IsDefault(&zero))
	require.Empty(t, encodeField(c, 1, &zero))
}

func TestBoxMergesInPlace(t *testing.T) {
	c := BoxCodec(wire.Uint32)
	v := uint32(1)
	p := &v
	require.NoError(t, mergeInto(c, encodeField(wire.Uint32, 1, uint32(5)), &p))
	require.Same(t, &v, p)
	require.Equal(t, uint32(5), v)
}
