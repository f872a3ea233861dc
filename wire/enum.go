package wire

import "fmt"

// EnumCodec builds a codec for a simple enum type: a named int32 with a
// fixed set of discriminants and no payload. valid reports whether a raw
// discriminant names a known variant; an unknown discriminant on the wire
// is a decode error, matching closed-enum semantics.
func EnumCodec[E ~int32](valid func(E) bool) Codec[E] {
	return enumCodec[E]{valid: valid}
}

type enumCodec[E ~int32] struct {
	valid func(E) bool
}

func (enumCodec[E]) Kind() Kind         { return KindSimpleEnum }
func (enumCodec[E]) Default() E         { return 0 }
func (enumCodec[E]) IsDefault(v E) bool { return v == 0 }

func (enumCodec[E]) SizeRaw(_ uint32, v E) int {
	return VarintSize(uint64(int64(v)))
}

func (enumCodec[E]) EncodeRaw(w *RevWriter, _ uint32, v E) {
	w.PutVarint(uint64(int64(v)))
}

func (c enumCodec[E]) Merge(wt Type, v *E, r *Reader, _ DecodeContext) error {
	if err := CheckType(TypeVarint, wt); err != nil {
		return err
	}
	n, err := DecodeVarint(r)
	if err != nil {
		return err
	}
	e := E(int32(n))
	if c.valid != nil && !c.valid(e) {
		return NewDecodeError(fmt.Sprintf("unknown enum discriminant: %d", int32(e)))
	}
	*v = e
	return nil
}
