package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// ===== SCALAR CODECS =====

// One stateless singleton per protobuf scalar type.
var (
	Bool     Codec[bool]    = boolCodec{}
	Int32    Codec[int32]   = int32Codec{}
	Int64    Codec[int64]   = int64Codec{}
	Uint32   Codec[uint32]  = uint32Codec{}
	Uint64   Codec[uint64]  = uint64Codec{}
	Sint32   Codec[int32]   = sint32Codec{}
	Sint64   Codec[int64]   = sint64Codec{}
	Fixed32  Codec[uint32]  = fixed32Codec{}
	Fixed64  Codec[uint64]  = fixed64Codec{}
	Sfixed32 Codec[int32]   = sfixed32Codec{}
	Sfixed64 Codec[int64]   = sfixed64Codec{}
	Float    Codec[float32] = floatCodec{}
	Double   Codec[float64] = doubleCodec{}
	String   Codec[string]  = stringCodec{}
	Bytes    Codec[[]byte]  = bytesCodec{}
)

type boolCodec struct{}

func (boolCodec) Kind() Kind            { return KindPrimitive(PrimBool) }
func (boolCodec) Default() bool         { return false }
func (boolCodec) IsDefault(v bool) bool { return !v }
func (boolCodec) SizeRaw(_ uint32, _ bool) int {
	return 1
}
func (boolCodec) EncodeRaw(w *RevWriter, _ uint32, v bool) {
	if v {
		w.PutU8(1)
	} else {
		w.PutU8(0)
	}
}
func (boolCodec) Merge(wt Type, v *bool, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeVarint, wt); err != nil {
		return err
	}
	n, err := DecodeVarint(r)
	if err != nil {
		return err
	}
	*v = n != 0
	return nil
}

type int32Codec struct{}

func (int32Codec) Kind() Kind             { return KindPrimitive(PrimInt32) }
func (int32Codec) Default() int32         { return 0 }
func (int32Codec) IsDefault(v int32) bool { return v == 0 }
func (int32Codec) SizeRaw(_ uint32, v int32) int {
	// Negative int32 sign-extends to 64 bits on the wire (10 bytes).
	return VarintSize(uint64(int64(v)))
}
func (int32Codec) EncodeRaw(w *RevWriter, _ uint32, v int32) {
	w.PutVarint(uint64(int64(v)))
}
func (int32Codec) Merge(wt Type, v *int32, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeVarint, wt); err != nil {
		return err
	}
	n, err := DecodeVarint(r)
	if err != nil {
		return err
	}
	*v = int32(n)
	return nil
}

type int64Codec struct{}

func (int64Codec) Kind() Kind                    { return KindPrimitive(PrimInt64) }
func (int64Codec) Default() int64                { return 0 }
func (int64Codec) IsDefault(v int64) bool        { return v == 0 }
func (int64Codec) SizeRaw(_ uint32, v int64) int { return VarintSize(uint64(v)) }
func (int64Codec) EncodeRaw(w *RevWriter, _ uint32, v int64) {
	w.PutVarint(uint64(v))
}
func (int64Codec) Merge(wt Type, v *int64, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeVarint, wt); err != nil {
		return err
	}
	n, err := DecodeVarint(r)
	if err != nil {
		return err
	}
	*v = int64(n)
	return nil
}

type uint32Codec struct{}

func (uint32Codec) Kind() Kind                     { return KindPrimitive(PrimUint32) }
func (uint32Codec) Default() uint32                { return 0 }
func (uint32Codec) IsDefault(v uint32) bool        { return v == 0 }
func (uint32Codec) SizeRaw(_ uint32, v uint32) int { return VarintSize(uint64(v)) }
func (uint32Codec) EncodeRaw(w *RevWriter, _ uint32, v uint32) {
	w.PutVarint(uint64(v))
}
func (uint32Codec) Merge(wt Type, v *uint32, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeVarint, wt); err != nil {
		return err
	}
	n, err := DecodeVarint(r)
	if err != nil {
		return err
	}
	*v = uint32(n)
	return nil
}

type uint64Codec struct{}

func (uint64Codec) Kind() Kind                     { return KindPrimitive(PrimUint64) }
func (uint64Codec) Default() uint64                { return 0 }
func (uint64Codec) IsDefault(v uint64) bool        { return v == 0 }
func (uint64Codec) SizeRaw(_ uint32, v uint64) int { return VarintSize(v) }
func (uint64Codec) EncodeRaw(w *RevWriter, _ uint32, v uint64) {
	w.PutVarint(v)
}
func (uint64Codec) Merge(wt Type, v *uint64, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeVarint, wt); err != nil {
		return err
	}
	n, err := DecodeVarint(r)
	if err != nil {
		return err
	}
	*v = n
	return nil
}

type sint32Codec struct{}

func (sint32Codec) Kind() Kind                    { return KindPrimitive(PrimSint32) }
func (sint32Codec) Default() int32                { return 0 }
func (sint32Codec) IsDefault(v int32) bool        { return v == 0 }
func (sint32Codec) SizeRaw(_ uint32, v int32) int { return VarintSize(EncodeZigZag32(v)) }
func (sint32Codec) EncodeRaw(w *RevWriter, _ uint32, v int32) {
	w.PutVarint(EncodeZigZag32(v))
}
func (sint32Codec) Merge(wt Type, v *int32, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeVarint, wt); err != nil {
		return err
	}
	n, err := DecodeVarint(r)
	if err != nil {
		return err
	}
	*v = DecodeZigZag32(n)
	return nil
}

type sint64Codec struct{}

func (sint64Codec) Kind() Kind                    { return KindPrimitive(PrimSint64) }
func (sint64Codec) Default() int64                { return 0 }
func (sint64Codec) IsDefault(v int64) bool        { return v == 0 }
func (sint64Codec) SizeRaw(_ uint32, v int64) int { return VarintSize(EncodeZigZag64(v)) }
func (sint64Codec) EncodeRaw(w *RevWriter, _ uint32, v int64) {
	w.PutVarint(EncodeZigZag64(v))
}
func (sint64Codec) Merge(wt Type, v *int64, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeVarint, wt); err != nil {
		return err
	}
	n, err := DecodeVarint(r)
	if err != nil {
		return err
	}
	*v = DecodeZigZag64(n)
	return nil
}

type fixed32Codec struct{}

func (fixed32Codec) Kind() Kind                     { return KindPrimitive(PrimFixed32) }
func (fixed32Codec) Default() uint32                { return 0 }
func (fixed32Codec) IsDefault(v uint32) bool        { return v == 0 }
func (fixed32Codec) SizeRaw(_ uint32, _ uint32) int { return 4 }
func (fixed32Codec) EncodeRaw(w *RevWriter, _ uint32, v uint32) {
	w.PutFixed32(v)
}
func (fixed32Codec) Merge(wt Type, v *uint32, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeFixed32, wt); err != nil {
		return err
	}
	n, err := decodeFixed32(r)
	if err != nil {
		return err
	}
	*v = n
	return nil
}

type fixed64Codec struct{}

func (fixed64Codec) Kind() Kind                     { return KindPrimitive(PrimFixed64) }
func (fixed64Codec) Default() uint64                { return 0 }
func (fixed64Codec) IsDefault(v uint64) bool        { return v == 0 }
func (fixed64Codec) SizeRaw(_ uint32, _ uint64) int { return 8 }
func (fixed64Codec) EncodeRaw(w *RevWriter, _ uint32, v uint64) {
	w.PutFixed64(v)
}
func (fixed64Codec) Merge(wt Type, v *uint64, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeFixed64, wt); err != nil {
		return err
	}
	n, err := decodeFixed64(r)
	if err != nil {
		return err
	}
	*v = n
	return nil
}

type sfixed32Codec struct{}

func (sfixed32Codec) Kind() Kind                    { return KindPrimitive(PrimSfixed32) }
func (sfixed32Codec) Default() int32                { return 0 }
func (sfixed32Codec) IsDefault(v int32) bool        { return v == 0 }
func (sfixed32Codec) SizeRaw(_ uint32, _ int32) int { return 4 }
func (sfixed32Codec) EncodeRaw(w *RevWriter, _ uint32, v int32) {
	w.PutFixed32(uint32(v))
}
func (sfixed32Codec) Merge(wt Type, v *int32, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeFixed32, wt); err != nil {
		return err
	}
	n, err := decodeFixed32(r)
	if err != nil {
		return err
	}
	*v = int32(n)
	return nil
}

type sfixed64Codec struct{}

func (sfixed64Codec) Kind() Kind                    { return KindPrimitive(PrimSfixed64) }
func (sfixed64Codec) Default() int64                { return 0 }
func (sfixed64Codec) IsDefault(v int64) bool        { return v == 0 }
func (sfixed64Codec) SizeRaw(_ uint32, _ int64) int { return 8 }
func (sfixed64Codec) EncodeRaw(w *RevWriter, _ uint32, v int64) {
	w.PutFixed64(uint64(v))
}
func (sfixed64Codec) Merge(wt Type, v *int64, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeFixed64, wt); err != nil {
		return err
	}
	n, err := decodeFixed64(r)
	if err != nil {
		return err
	}
	*v = int64(n)
	return nil
}

type floatCodec struct{}

func (floatCodec) Kind() Kind { return KindPrimitive(PrimFloat) }

func (floatCodec) Default() float32 { return 0 }

// IsDefault deliberately treats negative zero as non-default so its sign bit
// survives a round trip.
func (floatCodec) IsDefault(v float32) bool {
	return math.Float32bits(v) == 0
}
func (floatCodec) SizeRaw(_ uint32, _ float32) int { return 4 }
func (floatCodec) EncodeRaw(w *RevWriter, _ uint32, v float32) {
	w.PutFixed32(math.Float32bits(v))
}
func (floatCodec) Merge(wt Type, v *float32, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeFixed32, wt); err != nil {
		return err
	}
	n, err := decodeFixed32(r)
	if err != nil {
		return err
	}
	*v = math.Float32frombits(n)
	return nil
}

type doubleCodec struct{}

func (doubleCodec) Kind() Kind       { return KindPrimitive(PrimDouble) }
func (doubleCodec) Default() float64 { return 0 }
func (doubleCodec) IsDefault(v float64) bool {
	return math.Float64bits(v) == 0
}
func (doubleCodec) SizeRaw(_ uint32, _ float64) int { return 8 }
func (doubleCodec) EncodeRaw(w *RevWriter, _ uint32, v float64) {
	w.PutFixed64(math.Float64bits(v))
}
func (doubleCodec) Merge(wt Type, v *float64, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeFixed64, wt); err != nil {
		return err
	}
	n, err := decodeFixed64(r)
	if err != nil {
		return err
	}
	*v = math.Float64frombits(n)
	return nil
}

type stringCodec struct{}

func (stringCodec) Kind() Kind                     { return KindString }
func (stringCodec) Default() string                { return "" }
func (stringCodec) IsDefault(v string) bool        { return v == "" }
func (stringCodec) SizeRaw(_ uint32, v string) int { return len(v) }
func (stringCodec) EncodeRaw(w *RevWriter, _ uint32, v string) {
	w.PutString(v)
}

// Merge reads the raw bytes first and validates UTF-8 before committing; on
// any failure the target is left empty rather than holding a partial value.
func (stringCodec) Merge(wt Type, v *string, r *Reader, _ DecodeContext) error {
	*v = ""
	if err := CheckType(TypeBytes, wt); err != nil {
		return err
	}
	b, err := decodeDelimited(r)
	if err != nil {
		return err
	}
	if !utf8.Valid(b) {
		return NewDecodeError("invalid UTF-8 string")
	}
	*v = string(b)
	return nil
}

type bytesCodec struct{}

func (bytesCodec) Kind() Kind                     { return KindBytes }
func (bytesCodec) Default() []byte                { return nil }
func (bytesCodec) IsDefault(v []byte) bool        { return len(v) == 0 }
func (bytesCodec) SizeRaw(_ uint32, v []byte) int { return len(v) }
func (bytesCodec) EncodeRaw(w *RevWriter, _ uint32, v []byte) {
	w.PutSlice(v)
}
func (bytesCodec) Merge(wt Type, v *[]byte, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeBytes, wt); err != nil {
		return err
	}
	b, err := decodeDelimited(r)
	if err != nil {
		return err
	}
	// Copy out of the input buffer so the decoded message owns its bytes.
	*v = append([]byte(nil), b...)
	return nil
}

// ===== RAW READ HELPERS =====

func decodeFixed32(r *Reader) (uint32, error) {
	b, err := r.ReadSlice(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func decodeFixed64(r *Reader) (uint64, error) {
	b, err := r.ReadSlice(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// decodeDelimited reads a length-prefixed payload, aliasing the input buffer.
func decodeDelimited(r *Reader) ([]byte, error) {
	n, err := DecodeVarint(r)
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Remaining()) {
		return nil, errUnexpectedEOF()
	}
	return r.ReadSlice(int(n))
}
