// Package containers provides wire codecs for Go container shapes: slices,
// fixed arrays, deques, maps, sets, optional pointers and synchronization
// wrappers. Every adapter is generic over its element codec and adds no
// wire framing of its own beyond what the protobuf repeated/map forms
// require.
package containers

import (
	"github.com/protosun/protosun/wire"
)

// SliceCodec adapts an element codec into a repeated-field codec. Packable
// elements (primitives and enums) use the packed wire form on encode and
// accept both the packed and the legacy unpacked forms on decode; string,
// bytes and message elements always use one tagged occurrence per element.
func SliceCodec[T any](elem wire.Codec[T]) wire.Codec[[]T] {
	return sliceCodec[T]{elem: elem}
}

type sliceCodec[T any] struct {
	elem wire.Codec[T]
}

func (c sliceCodec[T]) Kind() wire.Kind { return wire.KindRepeated(c.elem.Kind()) }

func (c sliceCodec[T]) Default() []T { return nil }

func (c sliceCodec[T]) IsDefault(v []T) bool { return len(v) == 0 }

func (c sliceCodec[T]) SizeRaw(tag uint32, v []T) int {
	n := 0
	if c.elem.Kind().Packable() {
		for _, e := range v {
			n += c.elem.SizeRaw(0, e)
		}
		return n
	}
	for _, e := range v {
		n += wire.FieldLenAlways(c.elem, tag, e)
	}
	return n
}

func (c sliceCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v []T) {
	// Elements are archived back-to-front so the output reads in order.
	if c.elem.Kind().Packable() {
		for i := len(v) - 1; i >= 0; i-- {
			c.elem.EncodeRaw(w, 0, v[i])
		}
		return
	}
	for i := len(v) - 1; i >= 0; i-- {
		wire.EncodeFieldAlways(w, c.elem, tag, v[i])
	}
}

func (c sliceCodec[T]) Merge(wt wire.Type, v *[]T, r *wire.Reader, ctx wire.DecodeContext) error {
	ek := c.elem.Kind()
	if ek.Packable() && wt == wire.TypeBytes {
		// Packed blob: concatenated raw element encodings.
		ewt := ek.WireType()
		return wire.MergeLoop(r, ctx, func(r *wire.Reader, ctx wire.DecodeContext) error {
			e := c.elem.Default()
			if err := c.elem.Merge(ewt, &e, r, ctx); err != nil {
				return err
			}
			*v = append(*v, e)
			return nil
		})
	}
	if err := wire.CheckType(ek.WireType(), wt); err != nil {
		return err
	}
	e := c.elem.Default()
	if err := c.elem.Merge(wt, &e, r, ctx); err != nil {
		return err
	}
	*v = append(*v, e)
	return nil
}
