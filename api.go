// Package protosun encodes and decodes Protocol Buffers wire format without
// runtime reflection. Message types implement wire.Message (by hand or by a
// generator); the functions here are the stable entry points transports
// build on.
//
// Encoding is single-pass: the message reports its exact size, a reverse
// writer of that capacity is filled back-to-front, and the result needs no
// compaction copy. Decoding merges field-by-field into an existing value,
// skipping unknown tags.
package protosun

import (
	"github.com/protosun/protosun/wire"
)

// EncodeToVec encodes m into a freshly allocated buffer of exactly the
// right size.
func EncodeToVec(m wire.Message) []byte {
	w := wire.NewRevWriter(m.EncodedLen())
	m.EncodeRaw(w)
	return w.FinishTight()
}

// Encode encodes m into buf and returns the number of bytes written. If buf
// is too small nothing is written and an EncodeError reports the shortfall.
func Encode(m wire.Message, buf []byte) (int, error) {
	n := m.EncodedLen()
	if n > len(buf) {
		return 0, wire.NewEncodeError(n, len(buf))
	}
	w := wire.NewRevWriter(n)
	m.EncodeRaw(w)
	return copy(buf, w.FinishTight()), nil
}

// EncodeLengthDelimitedToVec encodes m preceded by a varint of its encoded
// length, the framing used for streaming and for nested message fields.
func EncodeLengthDelimitedToVec(m wire.Message) []byte {
	n := m.EncodedLen()
	w := wire.NewRevWriter(n + wire.VarintSize(uint64(n)))
	m.EncodeRaw(w)
	w.PutVarint(uint64(n))
	return w.FinishTight()
}

// EncodeLengthDelimited encodes m with its varint length prefix into buf and
// returns the number of bytes written. If buf is too small nothing is written
// and an EncodeError reports the shortfall.
func EncodeLengthDelimited(m wire.Message, buf []byte) (int, error) {
	n := m.EncodedLen()
	total := n + wire.VarintSize(uint64(n))
	if total > len(buf) {
		return 0, wire.NewEncodeError(total, len(buf))
	}
	w := wire.NewRevWriter(total)
	m.EncodeRaw(w)
	w.PutVarint(uint64(n))
	return copy(buf, w.FinishTight()), nil
}

// EncodeEnumToVec encodes a bare enum value as a one-field message holding
// the discriminant as field 1. The discriminant is written even when zero so
// the result is never empty.
func EncodeEnumToVec[E ~int32](c wire.Codec[E], v E) []byte {
	w := wire.NewRevWriter(wire.FieldLenAlways(c, 1, v))
	wire.EncodeFieldAlways(w, c, 1, v)
	return w.FinishTight()
}

// DecodeEnum decodes a bare enum previously written by EncodeEnumToVec.
func DecodeEnum[E ~int32](c wire.Codec[E], data []byte) (E, error) {
	var v E
	r := wire.NewReader(data)
	ctx := wire.NewDecodeContext()
	for r.Remaining() > 0 {
		tag, wt, err := wire.DecodeKey(r)
		if err != nil {
			return v, err
		}
		if tag != 1 {
			if err := wire.SkipField(wt, tag, r, ctx); err != nil {
				return v, err
			}
			continue
		}
		if err := c.Merge(wt, &v, r, ctx); err != nil {
			return v, err
		}
	}
	return v, nil
}

// Decode merges the entire contents of data into m. Fields already present
// in m keep protobuf merge semantics: scalars are overwritten, repeated
// fields are appended to. Call Clear first for a from-scratch decode.
func Decode(m wire.Message, data []byte) error {
	return wire.MergeMessage(m, wire.NewReader(data), wire.NewDecodeContext())
}

// DecodeLengthDelimited reads one varint-length-prefixed message from data
// and merges it into m, returning the total number of bytes consumed.
func DecodeLengthDelimited(m wire.Message, data []byte) (int, error) {
	r := wire.NewReader(data)
	length, err := wire.DecodeVarint(r)
	if err != nil {
		return 0, err
	}
	consumed := len(data) - r.Remaining()
	body, err := r.ReadSlice(int(length))
	if err != nil {
		return 0, err
	}
	if err := wire.MergeMessage(m, wire.NewReader(body), wire.NewDecodeContext()); err != nil {
		return 0, err
	}
	return consumed + int(length), nil
}

// Clear resets m to its all-defaults state.
func Clear[M any, P wire.MessagePtr[M]](m P) {
	var zero M
	*m = zero
}
