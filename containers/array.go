package containers

import (
	"fmt"

	"github.com/protosun/protosun/wire"
)

// Array is a fixed-capacity sequence decoded positionally. It stands in for
// fixed-size arrays, which Go generics cannot parameterise by length. A
// zero Array lazily materialises its slots on first use.
type Array[T any] struct {
	elems  []T
	filled int
}

// Len returns the fixed capacity once materialised, 0 before.
func (a *Array[T]) Len() int { return len(a.elems) }

// At returns the element at index i.
func (a *Array[T]) At(i int) T { return a.elems[i] }

// Set stores e at index i.
func (a *Array[T]) Set(i int, e T) { a.elems[i] = e }

// Slice returns the backing slice, aliased not copied.
func (a *Array[T]) Slice() []T { return a.elems }

// ArrayCodec adapts an element codec into a codec for a fixed-capacity
// array of n elements. All n slots always encode, defaults included, so
// the wire length is position-preserving. Decode pre-fills every slot with
// the element default and fills positionally; under-supply leaves trailing
// slots default, over-supply is a decode error.
func ArrayCodec[T any](elem wire.Codec[T], n int) wire.Codec[Array[T]] {
	return arrayCodec[T]{elem: elem, n: n}
}

type arrayCodec[T any] struct {
	elem wire.Codec[T]
	n    int
}

func (c arrayCodec[T]) materialize(a *Array[T]) {
	if a.elems != nil {
		return
	}
	a.elems = make([]T, c.n)
	for i := range a.elems {
		a.elems[i] = c.elem.Default()
	}
	a.filled = 0
}

func (c arrayCodec[T]) Kind() wire.Kind { return wire.KindRepeated(c.elem.Kind()) }

func (c arrayCodec[T]) Default() Array[T] {
	var a Array[T]
	c.materialize(&a)
	return a
}

func (c arrayCodec[T]) IsDefault(v Array[T]) bool {
	for _, e := range v.elems {
		if !c.elem.IsDefault(e) {
			return false
		}
	}
	return true
}

func (c arrayCodec[T]) SizeRaw(tag uint32, v Array[T]) int {
	c.materialize(&v)
	n := 0
	if c.elem.Kind().Packable() {
		for _, e := range v.elems {
			n += c.elem.SizeRaw(0, e)
		}
		return n
	}
	for _, e := range v.elems {
		n += wire.FieldLenAlways(c.elem, tag, e)
	}
	return n
}

func (c arrayCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v Array[T]) {
	c.materialize(&v)
	if c.elem.Kind().Packable() {
		for i := len(v.elems) - 1; i >= 0; i-- {
			c.elem.EncodeRaw(w, 0, v.elems[i])
		}
		return
	}
	for i := len(v.elems) - 1; i >= 0; i-- {
		wire.EncodeFieldAlways(w, c.elem, tag, v.elems[i])
	}
}

func (c arrayCodec[T]) Merge(wt wire.Type, v *Array[T], r *wire.Reader, ctx wire.DecodeContext) error {
	c.materialize(v)
	ek := c.elem.Kind()
	if ek.Packable() && wt == wire.TypeBytes {
		ewt := ek.WireType()
		return wire.MergeLoop(r, ctx, func(r *wire.Reader, ctx wire.DecodeContext) error {
			if v.filled >= c.n {
				return c.overflow()
			}
			if err := c.elem.Merge(ewt, &v.elems[v.filled], r, ctx); err != nil {
				return err
			}
			v.filled++
			return nil
		})
	}
	if err := wire.CheckType(ek.WireType(), wt); err != nil {
		return err
	}
	if v.filled >= c.n {
		return c.overflow()
	}
	if err := c.elem.Merge(wt, &v.elems[v.filled], r, ctx); err != nil {
		return err
	}
	v.filled++
	return nil
}

func (c arrayCodec[T]) overflow() error {
	return wire.NewDecodeError(fmt.Sprintf("too many elements for fixed-size array of %d", c.n))
}

// FixedBytesCodec encodes an exactly n-byte value with the bytes wire kind,
// the bulk-copy special case for fixed byte arrays. Decode rejects any
// payload whose length differs from n.
func FixedBytesCodec(n int) wire.Codec[[]byte] {
	return fixedBytesCodec{n: n}
}

type fixedBytesCodec struct {
	n int
}

func (c fixedBytesCodec) Kind() wire.Kind { return wire.KindBytes }

func (c fixedBytesCodec) Default() []byte { return make([]byte, c.n) }

func (c fixedBytesCodec) IsDefault(v []byte) bool {
	for _, b := range v {
		if b != 0 {
			return false
		}
	}
	return true
}

func (c fixedBytesCodec) SizeRaw(_ uint32, _ []byte) int { return c.n }

func (c fixedBytesCodec) EncodeRaw(w *wire.RevWriter, _ uint32, v []byte) {
	if len(v) >= c.n {
		w.PutSlice(v[:c.n])
		return
	}
	// Short values zero-pad at the tail to keep the fixed width.
	for i := c.n - len(v); i > 0; i-- {
		w.PutU8(0)
	}
	w.PutSlice(v)
}

func (c fixedBytesCodec) Merge(wt wire.Type, v *[]byte, r *wire.Reader, _ wire.DecodeContext) error {
	if err := wire.CheckType(wire.TypeBytes, wt); err != nil {
		return err
	}
	length, err := wire.DecodeVarint(r)
	if err != nil {
		return err
	}
	if length != uint64(c.n) {
		return wire.NewDecodeError(fmt.Sprintf("fixed byte array length mismatch: got %d, want %d", length, c.n))
	}
	b, err := r.ReadSlice(c.n)
	if err != nil {
		return err
	}
	*v = append([]byte(nil), b...)
	return nil
}
