package containers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/protosun/protosun/wire"
)

func TestMapRoundTrip(t *testing.T) {
	c := MapCodec(wire.String, wire.Uint32)
	v := map[string]uint32{"a": 1, "b": 2, "c": 3}
	require.Equal(t, v, mergeField(t, c, encodeField(c, 4, v)))
}

func TestSortedMapDeterministic(t *testing.T) {
	c := SortedMapCodec(wire.Uint32, wire.String)
	v := map[uint32]string{3: "c", 1: "a", 2: "b"}
	data := encodeField(c, 1, v)

	// Entries in ascending key order: {1:"a"} {2:"b"} {3:"c"}.
	require.Equal(t, []byte{
		0x0A, 0x05, 0x08, 0x01, 0x12, 0x01, 'a',
		0x0A, 0x05, 0x08, 0x02, 0x12, 0x01, 'b',
		0x0A, 0x05, 0x08, 0x03, 0x12, 0x01, 'c',
	}, data)
	require.Equal(t, v, mergeField(t, c, data))
}

func TestMapDuplicateKeyLastWins(t *testing.T) {
	c := MapCodec(wire.Uint32, wire.String)
	var buf []byte
	buf = append(buf, encodeField(c, 1, map[uint32]string{7: "old"})...)
	buf = append(buf, encodeField(c, 1, map[uint32]string{7: "new"})...)

	got := mergeField(t, c, buf)
	require.Equal(t, map[uint32]string{7: "new"}, got)
}

func TestMapEntryDefaultElision(t *testing.T) {
	c := SortedMapCodec(wire.Uint32, wire.String)

	// Default key and default value both drop out of their entry.
	data := encodeField(c, 1, map[uint32]string{0: "x"})
	require.Equal(t, []byte{0x0A, 0x03, 0x12, 0x01, 'x'}, data)
	require.Equal(t, map[uint32]string{0: "x"}, mergeField(t, c, data))

	data = encodeField(c, 1, map[uint32]string{5: ""})
	require.Equal(t, []byte{0x0A, 0x02, 0x08, 0x05}, data)
	require.Equal(t, map[uint32]string{5: ""}, mergeField(t, c, data))
}

func TestMapEmptyEntryDecodes(t *testing.T) {
	// A zero-length entry yields the all-default pair.
	c := MapCodec(wire.Uint32, wire.String)
	data := []byte{0x0A, 0x00}
	require.Equal(t, map[uint32]string{0: ""}, mergeField(t, c, data))
}

func TestMapUnknownEntryFieldSkipped(t *testing.T) {
	c := MapCodec(wire.Uint32, wire.String)
	// Entry with an extra field 3 spliced in.
	data := []byte{0x0A, 0x06, 0x08, 0x09, 0x18, 0x01, 0x12, 0x00}
	require.Equal(t, map[uint32]string{9: ""}, mergeField(t, c, data))
}

func TestMapMessageValues(t *testing.T) {
	inner := MapCodec(wire.String, wire.String)
	v := map[string]string{"k": "v"}
	require.Equal(t, v, mergeField(t, inner, encodeField(inner, 2, v)))
}

func TestSwissMapRoundTrip(t *testing.T) {
	c := SwissMapCodec(wire.Uint32, wire.String)

	m := mergeField(t, c, encodeField(c, 1, newSwiss(map[uint32]string{1: "a", 2: "b"})))
	require.Equal(t, 2, m.Count())
	got, ok := m.Get(2)
	require.True(t, ok)
	require.Equal(t, "b", got)
}

func TestSwissMapDuplicateKeyLastWins(t *testing.T) {
	c := SwissMapCodec(wire.Uint32, wire.String)
	var buf []byte
	buf = append(buf, encodeField(c, 1, newSwiss(map[uint32]string{7: "old"}))...)
	buf = append(buf, encodeField(c, 1, newSwiss(map[uint32]string{7: "new"}))...)

	m := mergeField(t, c, buf)
	require.Equal(t, 1, m.Count())
	got, _ := m.Get(7)
	require.Equal(t, "new", got)
}

func TestSyncMapRoundTrip(t *testing.T) {
	c := SyncMapCodec(wire.String, wire.Uint32)

	src := c.Default()
	require.True(t, c.IsDefault(src))

	data := encodeField(c, 1, newSync(map[string]uint32{"a": 1, "b": 2}))
	m := mergeField(t, c, data)
	require.Equal(t, 2, m.Size())
	got, ok := m.Load("b")
	require.True(t, ok)
	require.Equal(t, uint32(2), got)
}
