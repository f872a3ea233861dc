package zerocopy

import (
	"github.com/cespare/xxhash/v2"

	"github.com/protosun/protosun/wire"
)

// Codec lets a ZeroCopy sit in a parent message as an ordinary message
// field. Encoding forwards the stored bytes verbatim inside the usual
// key+length frame; decoding captures the field's payload without parsing
// it, appending across repeated occurrences.
func Codec[M any, P wire.MessagePtr[M]]() wire.Codec[*ZeroCopy[M, P]] {
	return codec[M, P]{}
}

type codec[M any, P wire.MessagePtr[M]] struct{}

func (codec[M, P]) Kind() wire.Kind { return wire.KindMessage }

func (codec[M, P]) Default() *ZeroCopy[M, P] { return nil }

func (codec[M, P]) IsDefault(v *ZeroCopy[M, P]) bool { return v.IsEmpty() }

func (codec[M, P]) SizeRaw(_ uint32, v *ZeroCopy[M, P]) int { return v.Len() }

func (codec[M, P]) EncodeRaw(w *wire.RevWriter, _ uint32, v *ZeroCopy[M, P]) {
	w.PutSlice(v.Bytes())
}

func (codec[M, P]) Merge(wt wire.Type, v **ZeroCopy[M, P], r *wire.Reader, _ wire.DecodeContext) error {
	if err := wire.CheckType(wire.TypeBytes, wt); err != nil {
		return err
	}
	length, err := wire.DecodeVarint(r)
	if err != nil {
		return err
	}
	body, err := r.ReadSlice(int(length))
	if err != nil {
		return err
	}
	if *v == nil {
		*v = &ZeroCopy[M, P]{}
	}
	(*v).buf = append((*v).buf, body...)
	return nil
}

// Raw captures one field occurrence of any non-message kind as uninterpreted
// payload bytes, remembering the wire type it arrived with so it can be
// re-emitted bit-exactly. Group wire types are rejected; a group has no
// self-contained payload to capture.
type Raw struct {
	wt      wire.Type
	payload []byte
}

// WireType returns the wire type the payload was captured with.
func (x Raw) WireType() wire.Type { return x.wt }

// Payload returns the captured bytes, aliased not copied.
func (x Raw) Payload() []byte { return x.payload }

// Checksum returns a 64-bit content hash of the captured payload.
func (x Raw) Checksum() uint64 { return xxhash.Sum64(x.payload) }

// RawCodec builds a capture codec for a declared non-message kind. The
// framing decisions here work on raw bytes per wire type rather than typed
// values, so each wire type is handled locally.
func RawCodec(kind wire.Kind) wire.Codec[Raw] {
	return rawCodec{kind: kind}
}

type rawCodec struct {
	kind wire.Kind
}

func (c rawCodec) Kind() wire.Kind { return c.kind }

func (c rawCodec) Default() Raw { return Raw{wt: c.kind.WireType()} }

func (c rawCodec) IsDefault(v Raw) bool { return len(v.payload) == 0 }

func (c rawCodec) SizeRaw(_ uint32, v Raw) int { return len(v.payload) }

func (c rawCodec) EncodeRaw(w *wire.RevWriter, _ uint32, v Raw) {
	w.PutSlice(v.payload)
}

func (c rawCodec) Merge(wt wire.Type, v *Raw, r *wire.Reader, _ wire.DecodeContext) error {
	if wt == wire.TypeStartGroup || wt == wire.TypeEndGroup {
		return wire.NewDecodeError("cannot capture group wire type")
	}
	// Capture only the declared kind's wire type. Accepting a foreign one
	// would re-emit its payload under the declared key and corrupt the
	// stream for downstream parsers.
	if err := wire.CheckType(c.kind.WireType(), wt); err != nil {
		return err
	}
	var body []byte
	switch wt {
	case wire.TypeVarint:
		// Capture the exact varint bytes, not the decoded value.
		for i := 0; i < 10; i++ {
			b, err := r.ReadByte()
			if err != nil {
				return err
			}
			body = append(body, b)
			if b < 0x80 {
				break
			}
		}
		if len(body) == 0 || body[len(body)-1] >= 0x80 {
			return wire.NewDecodeError("invalid varint")
		}
	case wire.TypeFixed32:
		b, err := r.ReadSlice(4)
		if err != nil {
			return err
		}
		body = b
	case wire.TypeFixed64:
		b, err := r.ReadSlice(8)
		if err != nil {
			return err
		}
		body = b
	case wire.TypeBytes:
		length, err := wire.DecodeVarint(r)
		if err != nil {
			return err
		}
		b, err := r.ReadSlice(int(length))
		if err != nil {
			return err
		}
		body = b
	default:
		return wire.NewDecodeError("invalid wire type")
	}
	v.wt = wt
	v.payload = append([]byte(nil), body...)
	return nil
}
