package wire

import "fmt"

// ===== PROTOBUF WIRE FORMAT TYPES =====

// Type represents a protobuf wire type code.
type Type int8

const (
	TypeVarint     Type = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	TypeFixed64    Type = 1 // fixed64, sfixed64, double
	TypeBytes      Type = 2 // string, bytes, embedded messages, packed repeated fields
	TypeStartGroup Type = 3 // deprecated group start, skip-only
	TypeEndGroup   Type = 4 // deprecated group end, skip-only
	TypeFixed32    Type = 5 // fixed32, sfixed32, float
)

// ParseType validates a raw 3-bit wire code.
func ParseType(v uint64) (Type, error) {
	if v > 5 {
		return 0, NewDecodeError(fmt.Sprintf("invalid wire type value: %d", v))
	}
	return Type(v), nil
}

// String returns the proto name of the wire type.
func (t Type) String() string {
	switch t {
	case TypeVarint:
		return "varint"
	case TypeFixed64:
		return "64-bit"
	case TypeBytes:
		return "length-delimited"
	case TypeStartGroup:
		return "start-group"
	case TypeEndGroup:
		return "end-group"
	case TypeFixed32:
		return "32-bit"
	default:
		return fmt.Sprintf("wire-type(%d)", int8(t))
	}
}

// CheckType returns a decode error unless the observed wire type matches the
// expected one. Wire types are never coerced.
func CheckType(expected, actual Type) error {
	if expected != actual {
		return NewDecodeError(fmt.Sprintf("invalid wire type: %v (expected %v)", actual, expected))
	}
	return nil
}

// Valid field tags occupy [1, 2^29-1]; tag 0 is reserved and rejected.
const (
	MinTag uint32 = 1
	MaxTag uint32 = (1 << 29) - 1
)

// ===== STATIC KIND CLASSIFICATION =====

// PrimitiveKind identifies a scalar protobuf type within ClassPrimitive.
type PrimitiveKind int8

const (
	PrimBool PrimitiveKind = iota
	PrimInt32
	PrimInt64
	PrimUint32
	PrimUint64
	PrimSint32
	PrimSint64
	PrimFixed32
	PrimFixed64
	PrimSfixed32
	PrimSfixed64
	PrimFloat
	PrimDouble
)

// KindClass is the coarse classification of a wire-encodable type.
type KindClass int8

const (
	ClassPrimitive KindClass = iota
	ClassSimpleEnum
	ClassMessage
	ClassBytes
	ClassString
	ClassRepeated
)

// Kind statically classifies a wire-encodable type. Exactly one Kind exists
// per concrete codec and it is never mutated; it drives the packed-vs-unpacked
// and bytes-vs-loop decisions.
type Kind struct {
	Class KindClass
	Prim  PrimitiveKind // valid when Class == ClassPrimitive
	Elem  *Kind         // valid when Class == ClassRepeated
}

// Prebuilt kinds for the non-parameterised classes.
var (
	KindSimpleEnum = Kind{Class: ClassSimpleEnum}
	KindMessage    = Kind{Class: ClassMessage}
	KindBytes      = Kind{Class: ClassBytes}
	KindString     = Kind{Class: ClassString}
)

// KindPrimitive returns the Kind of a scalar type.
func KindPrimitive(p PrimitiveKind) Kind {
	return Kind{Class: ClassPrimitive, Prim: p}
}

// KindRepeated returns the Kind of a repeated container over elem.
func KindRepeated(elem Kind) Kind {
	e := elem
	return Kind{Class: ClassRepeated, Elem: &e}
}

// Packable reports whether repeated values of this kind may use the packed
// wire form. Protobuf forbids packing strings, bytes and messages.
func (k Kind) Packable() bool {
	return k.Class == ClassPrimitive || k.Class == ClassSimpleEnum
}

// SelfFraming reports whether a codec of this kind emits its own per-element
// field keys, so the field helpers must not add an outer key/length frame.
func (k Kind) SelfFraming() bool {
	return k.Class == ClassRepeated && !k.Elem.Packable()
}

// WireType returns the wire type values of this kind are encoded with.
func (k Kind) WireType() Type {
	switch k.Class {
	case ClassPrimitive:
		switch k.Prim {
		case PrimFixed32, PrimSfixed32, PrimFloat:
			return TypeFixed32
		case PrimFixed64, PrimSfixed64, PrimDouble:
			return TypeFixed64
		default:
			return TypeVarint
		}
	case ClassSimpleEnum:
		return TypeVarint
	default:
		return TypeBytes
	}
}

// String returns a debug name for the kind.
func (k Kind) String() string {
	switch k.Class {
	case ClassPrimitive:
		return "primitive"
	case ClassSimpleEnum:
		return "enum"
	case ClassMessage:
		return "message"
	case ClassBytes:
		return "bytes"
	case ClassString:
		return "string"
	case ClassRepeated:
		return "repeated " + k.Elem.String()
	default:
		return fmt.Sprintf("kind(%d)", int8(k.Class))
	}
}

// MakeKey packs a field tag and wire type into a single key value.
func MakeKey(tag uint32, wt Type) uint64 {
	return uint64(tag)<<3 | uint64(wt)
}

// SplitKey splits a key value into field tag and raw wire type code.
func SplitKey(key uint64) (uint32, uint64) {
	return uint32(key >> 3), key & 0x7
}
