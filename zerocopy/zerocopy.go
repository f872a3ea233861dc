// Package zerocopy defers protobuf decoding: a value holds already encoded
// bytes and optional per-call protocol metadata, and parsing happens only
// when explicitly asked for. Proxy and relay paths use it to forward
// message fields byte-for-byte without ever materializing them.
package zerocopy

import (
	"github.com/cespare/xxhash/v2"

	"github.com/protosun/protosun/wire"
)

// Metadata carries protocol headers or extensions for a single in-flight
// request or response. It travels alongside the bytes, never on the wire.
type Metadata map[string][]string

// Get returns the first value for key, or "".
func (m Metadata) Get(key string) string {
	v := m[key]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// Set replaces all values for key.
func (m Metadata) Set(key, value string) {
	m[key] = []string{value}
}

// Add appends a value for key.
func (m Metadata) Add(key, value string) {
	m[key] = append(m[key], value)
}

// ZeroCopy wraps the encoded bytes of a message of type M as its bare
// field stream. Construction from a value encodes exactly once;
// construction from bytes never parses at all. The bytes stay opaque until
// Decode.
//
// Captured as a field of a parent message, repeated occurrences append
// their payloads; concatenated field streams are exactly protobuf message
// merge semantics, so the wrapper stays forwardable without being parsed.
type ZeroCopy[M any, P wire.MessagePtr[M]] struct {
	buf []byte

	Metadata Metadata
}

// FromMessage encodes m once through the archive path and wraps the result.
func FromMessage[M any, P wire.MessagePtr[M]](m P) *ZeroCopy[M, P] {
	w := wire.NewRevWriter(m.EncodedLen())
	m.EncodeRaw(w)
	return &ZeroCopy[M, P]{buf: w.FinishTight()}
}

// FromBytes wraps an already encoded field stream without copying or
// validating it. Malformed input surfaces later, at Decode.
func FromBytes[M any, P wire.MessagePtr[M]](data []byte) *ZeroCopy[M, P] {
	return &ZeroCopy[M, P]{buf: data}
}

// Bytes returns the stored bytes, aliased not copied.
func (z *ZeroCopy[M, P]) Bytes() []byte {
	if z == nil {
		return nil
	}
	return z.buf
}

// IntoBytes returns the stored bytes and detaches them from the wrapper.
func (z *ZeroCopy[M, P]) IntoBytes() []byte {
	b := z.buf
	z.buf = nil
	return b
}

// Len returns the stored byte length.
func (z *ZeroCopy[M, P]) Len() int {
	if z == nil {
		return 0
	}
	return len(z.buf)
}

// IsEmpty reports whether no bytes are stored.
func (z *ZeroCopy[M, P]) IsEmpty() bool { return z.Len() == 0 }

// Checksum returns a 64-bit content hash of the stored bytes, independent
// of how they were captured. Relays use it to deduplicate forwarded
// payloads without decoding them.
func (z *ZeroCopy[M, P]) Checksum() uint64 {
	return xxhash.Sum64(z.Bytes())
}

// Decode parses the stored bytes into a fresh M with the ordinary merge
// machinery. The wrapper is left untouched and may be decoded again.
func (z *ZeroCopy[M, P]) Decode() (*M, error) {
	var m M
	if z == nil || len(z.buf) == 0 {
		return &m, nil
	}
	if err := wire.MergeMessage(P(&m), wire.NewReader(z.buf), wire.NewDecodeContext()); err != nil {
		return nil, err
	}
	return &m, nil
}
