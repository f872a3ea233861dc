package zerocopy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/protosun/protosun/wire"
)

// testEvent is the payload message relayed without parsing.
type testEvent struct {
	seq  uint64 // tag 1
	body []byte // tag 2
}

func (e *testEvent) EncodedLen() int {
	return wire.FieldLen(wire.Uint64, 1, e.seq) + wire.FieldLen(wire.Bytes, 2, e.body)
}

func (e *testEvent) EncodeRaw(w *wire.RevWriter) {
	wire.EncodeField(w, wire.Bytes, 2, e.body)
	wire.EncodeField(w, wire.Uint64, 1, e.seq)
}

func (e *testEvent) MergeField(tag uint32, wt wire.Type, r *wire.Reader, ctx wire.DecodeContext) error {
	switch tag {
	case 1:
		return wire.Uint64.Merge(wt, &e.seq, r, ctx)
	case 2:
		return wire.Bytes.Merge(wt, &e.body, r, ctx)
	default:
		return wire.SkipField(wt, tag, r, ctx)
	}
}

// testEnvelope carries an event it never needs to parse.
type testEnvelope struct {
	route   string                          // tag 1
	payload *ZeroCopy[testEvent, *testEvent] // tag 2
}

var payloadCodec = Codec[testEvent, *testEvent]()

func (e *testEnvelope) EncodedLen() int {
	return wire.FieldLen(wire.String, 1, e.route) + wire.FieldLen(payloadCodec, 2, e.payload)
}

func (e *testEnvelope) EncodeRaw(w *wire.RevWriter) {
	wire.EncodeField(w, payloadCodec, 2, e.payload)
	wire.EncodeField(w, wire.String, 1, e.route)
}

func (e *testEnvelope) MergeField(tag uint32, wt wire.Type, r *wire.Reader, ctx wire.DecodeContext) error {
	switch tag {
	case 1:
		return wire.String.Merge(wt, &e.route, r, ctx)
	case 2:
		return payloadCodec.Merge(wt, &e.payload, r, ctx)
	default:
		return wire.SkipField(wt, tag, r, ctx)
	}
}

func encodeMessage(m wire.Message) []byte {
	w := wire.NewRevWriter(m.EncodedLen())
	m.EncodeRaw(w)
	return w.FinishTight()
}

func TestFromMessageDecode(t *testing.T) {
	src := &testEvent{seq: 7, body: []byte("payload")}
	z := FromMessage[testEvent](src)

	require.Equal(t, encodeMessage(src), z.Bytes())
	require.Equal(t, len(z.Bytes()), z.Len())
	require.False(t, z.IsEmpty())

	got, err := z.Decode()
	require.NoError(t, err)
	require.Equal(t, src.seq, got.seq)
	require.Equal(t, src.body, got.body)
}

func TestFromBytesIsLazy(t *testing.T) {
	// Garbage is accepted at construction and only rejected at Decode.
	z := FromBytes[testEvent, *testEvent]([]byte{0xFF, 0xFF})
	require.Equal(t, 2, z.Len())

	_, err := z.Decode()
	require.Error(t, err)
}

func TestDecodeRepeatable(t *testing.T) {
	z := FromMessage[testEvent](&testEvent{seq: 1})
	first, err := z.Decode()
	require.NoError(t, err)
	second, err := z.Decode()
	require.NoError(t, err)
	require.Equal(t, first.seq, second.seq)
	require.False(t, z.IsEmpty())
}

func TestIntoBytesDetaches(t *testing.T) {
	z := FromMessage[testEvent](&testEvent{seq: 1})
	b := z.IntoBytes()
	require.NotEmpty(t, b)
	require.True(t, z.IsEmpty())
}

func TestFieldCaptureForwardsVerbatim(t *testing.T) {
	event := &testEvent{seq: 42, body: []byte("abc")}
	env := &testEnvelope{route: "r1", payload: FromMessage[testEvent](event)}
	data := encodeMessage(env)

	// The relay decodes the envelope without ever parsing the payload.
	var relay testEnvelope
	require.NoError(t, wire.MergeMessage(&relay, wire.NewReader(data), wire.NewDecodeContext()))
	require.Equal(t, "r1", relay.route)
	require.Equal(t, encodeMessage(event), relay.payload.Bytes())

	// Re-encoding the relayed envelope is byte-identical.
	require.Equal(t, data, encodeMessage(&relay))

	// The consumer at the end of the chain parses it.
	got, err := relay.payload.Decode()
	require.NoError(t, err)
	require.Equal(t, uint64(42), got.seq)
}

func TestFieldCaptureMergesOccurrences(t *testing.T) {
	// Two occurrences of the payload field concatenate, matching message
	// merge semantics.
	a := encodeMessage(&testEvent{seq: 5})
	b := encodeMessage(&testEvent{body: []byte("late")})

	var buf []byte
	buf = wire.AppendKey(buf, 2, wire.TypeBytes)
	buf = wire.AppendVarint(buf, uint64(len(a)))
	buf = append(buf, a...)
	buf = wire.AppendKey(buf, 2, wire.TypeBytes)
	buf = wire.AppendVarint(buf, uint64(len(b)))
	buf = append(buf, b...)

	var env testEnvelope
	require.NoError(t, wire.MergeMessage(&env, wire.NewReader(buf), wire.NewDecodeContext()))

	got, err := env.payload.Decode()
	require.NoError(t, err)
	require.Equal(t, uint64(5), got.seq)
	require.Equal(t, []byte("late"), got.body)
}

func TestChecksum(t *testing.T) {
	a := FromMessage[testEvent](&testEvent{seq: 1, body: []byte("x")})
	b := FromMessage[testEvent](&testEvent{seq: 1, body: []byte("x")})
	c := FromMessage[testEvent](&testEvent{seq: 2})

	require.Equal(t, a.Checksum(), b.Checksum())
	require.NotEqual(t, a.Checksum(), c.Checksum())
}

func TestMetadata(t *testing.T) {
	z := FromMessage[testEvent](&testEvent{seq: 1})
	z.Metadata = Metadata{}
	z.Metadata.Set("content-type", "application/proto")
	z.Metadata.Add("via", "relay-a")
	z.Metadata.Add("via", "relay-b")

	require.Equal(t, "application/proto", z.Metadata.Get("content-type"))
	require.Len(t, z.Metadata["via"], 2)
	require.Equal(t, "", z.Metadata.Get("missing"))
}
