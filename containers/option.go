package containers

import (
	"github.com/protosun/protosun/wire"
)

// OptionCodec layers explicit presence over an element codec: a nil pointer
// is absent and never encodes, a non-nil pointer always encodes even when
// the pointee equals the element default. Decode treats any occurrence of
// the field as presence, allocating on first sight. No extra framing is
// added; the element's kind is reused as-is.
func OptionCodec[T any](elem wire.Codec[T]) wire.Codec[*T] {
	return optionCodec[T]{elem: elem}
}

type optionCodec[T any] struct {
	elem wire.Codec[T]
}

func (c optionCodec[T]) Kind() wire.Kind { return c.elem.Kind() }

func (c optionCodec[T]) Default() *T { return nil }

func (c optionCodec[T]) IsDefault(v *T) bool { return v == nil }

func (c optionCodec[T]) SizeRaw(tag uint32, v *T) int {
	if v == nil {
		return 0
	}
	return c.elem.SizeRaw(tag, *v)
}

func (c optionCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v *T) {
	if v == nil {
		return
	}
	c.elem.EncodeRaw(w, tag, *v)
}

func (c optionCodec[T]) Merge(wt wire.Type, v **T, r *wire.Reader, ctx wire.DecodeContext) error {
	if *v == nil {
		e := c.elem.Default()
		*v = &e
	}
	return c.elem.Merge(wt, *v, r, ctx)
}

// BoxCodec is a wire-transparent pointer: the pointee encodes exactly as if
// it were stored inline, and a nil pointer counts as the default value.
// Decode mutates the existing pointee in place, allocating only when nil.
// It covers owned and shared boxes alike; with a garbage collector there is
// no uniqueness to enforce before mutating.
func BoxCodec[T any](elem wire.Codec[T]) wire.Codec[*T] {
	return boxCodec[T]{elem: elem}
}

type boxCodec[T any] struct {
	elem wire.Codec[T]
}

func (c boxCodec[T]) Kind() wire.Kind { return c.elem.Kind() }

func (c boxCodec[T]) Default() *T { return nil }

func (c boxCodec[T]) IsDefault(v *T) bool {
	return v == nil || c.elem.IsDefault(*v)
}

func (c boxCodec[T]) SizeRaw(tag uint32, v *T) int {
	if v == nil {
		return c.elem.SizeRaw(tag, c.elem.Default())
	}
	return c.elem.SizeRaw(tag, *v)
}

func (c boxCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v *T) {
	if v == nil {
		c.elem.EncodeRaw(w, tag, c.elem.Default())
		return
	}
	c.elem.EncodeRaw(w, tag, *v)
}

func (c boxCodec[T]) Merge(wt wire.Type, v **T, r *wire.Reader, ctx wire.DecodeContext) error {
	if *v == nil {
		e := c.elem.Default()
		*v = &e
	}
	return c.elem.Merge(wt, *v, r, ctx)
}
