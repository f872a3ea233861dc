package containers

import (
	"golang.org/x/sys/cpu"

	"github.com/protosun/protosun/wire"
)

// Padded pads its value out to a cache line so two hot fields updated by
// different cores do not false-share. Wire-invisible: only V encodes.
type Padded[T any] struct {
	V T
	_ cpu.CacheLinePad
}

// PaddedCodec delegates everything to the element codec on the V field.
func PaddedCodec[T any](elem wire.Codec[T]) wire.Codec[Padded[T]] {
	return paddedCodec[T]{elem: elem}
}

type paddedCodec[T any] struct {
	elem wire.Codec[T]
}

func (c paddedCodec[T]) Kind() wire.Kind { return c.elem.Kind() }

func (c paddedCodec[T]) Default() Padded[T] {
	return Padded[T]{V: c.elem.Default()}
}

func (c paddedCodec[T]) IsDefault(v Padded[T]) bool {
	return c.elem.IsDefault(v.V)
}

func (c paddedCodec[T]) SizeRaw(tag uint32, v Padded[T]) int {
	return c.elem.SizeRaw(tag, v.V)
}

func (c paddedCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v Padded[T]) {
	c.elem.EncodeRaw(w, tag, v.V)
}

func (c paddedCodec[T]) Merge(wt wire.Type, v *Padded[T], r *wire.Reader, ctx wire.DecodeContext) error {
	return c.elem.Merge(wt, &v.V, r, ctx)
}
