package containers

import (
	"go.uber.org/atomic"

	"github.com/protosun/protosun/wire"
)

// Swap is an atomically replaceable value. Readers load a stable snapshot
// pointer; writers publish a fresh value wholesale. It mirrors the
// read-mostly shared-state pattern where a decoded update must become
// visible to concurrent readers without locking.
type Swap[T any] struct {
	p atomic.Pointer[T]
}

// NewSwap returns a Swap holding v.
func NewSwap[T any](v T) *Swap[T] {
	s := &Swap[T]{}
	s.p.Store(&v)
	return s
}

// Load returns the current snapshot. The pointee must be treated as
// read-only; publish changes with Store.
func (s *Swap[T]) Load() *T {
	return s.p.Load()
}

// Store publishes v as the new current value.
func (s *Swap[T]) Store(v T) {
	s.p.Store(&v)
}

// SwapCodec makes a Swap wire-transparent. Encode loads one atomic snapshot
// per call; decode merges into a private copy of the snapshot and publishes
// the result, so concurrent readers never observe a half-merged value.
func SwapCodec[T any](elem wire.Codec[T]) wire.Codec[*Swap[T]] {
	return swapCodec[T]{elem: elem}
}

type swapCodec[T any] struct {
	elem wire.Codec[T]
}

func (c swapCodec[T]) Kind() wire.Kind { return c.elem.Kind() }

func (c swapCodec[T]) Default() *Swap[T] { return nil }

func (c swapCodec[T]) snapshot(v *Swap[T]) T {
	if v != nil {
		if p := v.Load(); p != nil {
			return *p
		}
	}
	return c.elem.Default()
}

func (c swapCodec[T]) IsDefault(v *Swap[T]) bool {
	return c.elem.IsDefault(c.snapshot(v))
}

func (c swapCodec[T]) SizeRaw(tag uint32, v *Swap[T]) int {
	return c.elem.SizeRaw(tag, c.snapshot(v))
}

func (c swapCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v *Swap[T]) {
	c.elem.EncodeRaw(w, tag, c.snapshot(v))
}

func (c swapCodec[T]) Merge(wt wire.Type, v **Swap[T], r *wire.Reader, ctx wire.DecodeContext) error {
	if *v == nil {
		*v = NewSwap(c.elem.Default())
	}
	e := c.snapshot(*v)
	if err := c.elem.Merge(wt, &e, r, ctx); err != nil {
		return err
	}
	(*v).Store(e)
	return nil
}

// SwapOption is a Swap whose empty state is distinguishable: a nil snapshot
// means absent. Its codec has explicit-presence semantics like OptionCodec.
type SwapOption[T any] struct {
	p atomic.Pointer[T]
}

// NewSwapOption returns an empty SwapOption.
func NewSwapOption[T any]() *SwapOption[T] {
	return &SwapOption[T]{}
}

// Load returns the current snapshot, nil when absent.
func (s *SwapOption[T]) Load() *T {
	return s.p.Load()
}

// Store publishes v as the new current value.
func (s *SwapOption[T]) Store(v T) {
	s.p.Store(&v)
}

// Clear resets the option to absent.
func (s *SwapOption[T]) Clear() {
	s.p.Store(nil)
}

// SwapOptionCodec combines Swap atomicity with Option presence: absent
// never encodes, present always encodes even when the inner value is the
// element default, and any wire occurrence makes the option present.
func SwapOptionCodec[T any](elem wire.Codec[T]) wire.Codec[*SwapOption[T]] {
	return swapOptionCodec[T]{elem: elem}
}

type swapOptionCodec[T any] struct {
	elem wire.Codec[T]
}

func (c swapOptionCodec[T]) Kind() wire.Kind { return c.elem.Kind() }

func (c swapOptionCodec[T]) Default() *SwapOption[T] { return nil }

func (c swapOptionCodec[T]) IsDefault(v *SwapOption[T]) bool {
	return v == nil || v.Load() == nil
}

func (c swapOptionCodec[T]) SizeRaw(tag uint32, v *SwapOption[T]) int {
	if v == nil {
		return 0
	}
	p := v.Load()
	if p == nil {
		return 0
	}
	return c.elem.SizeRaw(tag, *p)
}

func (c swapOptionCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v *SwapOption[T]) {
	if v == nil {
		return
	}
	p := v.Load()
	if p == nil {
		return
	}
	c.elem.EncodeRaw(w, tag, *p)
}

func (c swapOptionCodec[T]) Merge(wt wire.Type, v **SwapOption[T], r *wire.Reader, ctx wire.DecodeContext) error {
	if *v == nil {
		*v = NewSwapOption[T]()
	}
	e := c.elem.Default()
	if p := (*v).Load(); p != nil {
		e = *p
	}
	if err := c.elem.Merge(wt, &e, r, ctx); err != nil {
		return err
	}
	(*v).Store(e)
	return nil
}
