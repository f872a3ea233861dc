package zerocopy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/protosun/protosun/wire"
)

func captureRaw(t *testing.T, c wire.Codec[Raw], data []byte) (Raw, error) {
	t.Helper()
	r := wire.NewReader(data)
	_, wt, err := wire.DecodeKey(r)
	require.NoError(t, err)
	v := c.Default()
	err = c.Merge(wt, &v, r, wire.NewDecodeContext())
	return v, err
}

func reencodeRaw(c wire.Codec[Raw], tag uint32, v Raw) []byte {
	w := wire.NewRevWriter(wire.FieldLen(c, tag, v))
	wire.EncodeField(w, c, tag, v)
	return w.FinishTight()
}

func TestRawCaptureVarint(t *testing.T) {
	c := RawCodec(wire.KindPrimitive(wire.PrimUint64))
	var buf []byte
	buf = wire.AppendKey(buf, 1, wire.TypeVarint)
	buf = wire.AppendVarint(buf, 300)

	v, err := captureRaw(t, c, buf)
	require.NoError(t, err)
	require.Equal(t, wire.TypeVarint, v.WireType())
	// Exact varint bytes, not a re-encoded value.
	require.Equal(t, []byte{0xAC, 0x02}, v.Payload())
	require.Equal(t, buf, reencodeRaw(c, 1, v))
}

func TestRawRejectsForeignWireType(t *testing.T) {
	// A varint-declared capture must not swallow a length-delimited
	// payload; re-emitting it under a varint key would corrupt the stream.
	c := RawCodec(wire.KindPrimitive(wire.PrimUint64))
	var buf []byte
	buf = wire.AppendKey(buf, 1, wire.TypeBytes)
	buf = wire.AppendVarint(buf, 3)
	buf = append(buf, 'a', 'b', 'c')

	v, err := captureRaw(t, c, buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "wire type")
	require.Empty(t, v.Payload())

	// And the reverse: bytes-declared capture rejects a varint occurrence.
	c = RawCodec(wire.KindString)
	buf = wire.AppendKey(nil, 1, wire.TypeVarint)
	buf = wire.AppendVarint(buf, 7)
	_, err = captureRaw(t, c, buf)
	require.Error(t, err)
}

func TestRawCaptureFixed(t *testing.T) {
	c32 := RawCodec(wire.KindPrimitive(wire.PrimFixed32))
	var buf []byte
	buf = wire.AppendKey(buf, 2, wire.TypeFixed32)
	buf = append(buf, 1, 2, 3, 4)
	v, err := captureRaw(t, c32, buf)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, v.Payload())
	require.Equal(t, buf, reencodeRaw(c32, 2, v))

	c64 := RawCodec(wire.KindPrimitive(wire.PrimDouble))
	buf = wire.AppendKey(nil, 3, wire.TypeFixed64)
	buf = append(buf, 1, 2, 3, 4, 5, 6, 7, 8)
	v, err = captureRaw(t, c64, buf)
	require.NoError(t, err)
	require.Len(t, v.Payload(), 8)
	require.Equal(t, buf, reencodeRaw(c64, 3, v))
}

func TestRawCaptureBytes(t *testing.T) {
	c := RawCodec(wire.KindString)
	var buf []byte
	buf = wire.AppendKey(buf, 4, wire.TypeBytes)
	buf = wire.AppendVarint(buf, 3)
	buf = append(buf, 'a', 'b', 'c')

	v, err := captureRaw(t, c, buf)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v.Payload())
	require.Equal(t, buf, reencodeRaw(c, 4, v))
	require.NotZero(t, v.Checksum())
}

func TestRawRejectsGroups(t *testing.T) {
	c := RawCodec(wire.KindMessage)
	buf := wire.AppendKey(nil, 5, wire.TypeStartGroup)

	_, err := captureRaw(t, c, buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "group")
}

func TestRawCaptureDoesNotAlias(t *testing.T) {
	c := RawCodec(wire.KindBytes)
	var buf []byte
	buf = wire.AppendKey(buf, 1, wire.TypeBytes)
	buf = wire.AppendVarint(buf, 2)
	buf = append(buf, 0x11, 0x22)

	v, err := captureRaw(t, c, buf)
	require.NoError(t, err)
	buf[len(buf)-1] = 0x99
	require.Equal(t, []byte{0x11, 0x22}, v.Payload())
}
