package containers

import (
	"sync"

	"github.com/protosun/protosun/wire"
)

// Guarded is a mutex-protected value with a wire-transparent codec. The
// lock is held only for the duration of reading or writing the one field;
// the engine imposes no cross-field locking, so an encode observing two
// independently guarded fields may see values that were never
// simultaneously consistent.
type Guarded[T any] struct {
	mu sync.Mutex
	v  T
}

// NewGuarded returns a guard around v.
func NewGuarded[T any](v T) *Guarded[T] {
	return &Guarded[T]{v: v}
}

// Load returns a copy of the guarded value.
func (g *Guarded[T]) Load() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.v
}

// Store replaces the guarded value.
func (g *Guarded[T]) Store(v T) {
	g.mu.Lock()
	g.v = v
	g.mu.Unlock()
}

// With runs f on the guarded value while holding the lock.
func (g *Guarded[T]) With(f func(*T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f(&g.v)
}

// GuardedCodec makes a Guarded wire-transparent: the pointee encodes as if
// stored inline and a nil guard counts as default. Sizing and encoding each
// take their own locked snapshot; if the value grows between the two calls
// the writer simply grows with it.
func GuardedCodec[T any](elem wire.Codec[T]) wire.Codec[*Guarded[T]] {
	return guardedCodec[T]{elem: elem}
}

type guardedCodec[T any] struct {
	elem wire.Codec[T]
}

func (c guardedCodec[T]) Kind() wire.Kind { return c.elem.Kind() }

func (c guardedCodec[T]) Default() *Guarded[T] { return nil }

func (c guardedCodec[T]) IsDefault(v *Guarded[T]) bool {
	return v == nil || c.elem.IsDefault(v.Load())
}

func (c guardedCodec[T]) SizeRaw(tag uint32, v *Guarded[T]) int {
	if v == nil {
		return c.elem.SizeRaw(tag, c.elem.Default())
	}
	return c.elem.SizeRaw(tag, v.Load())
}

func (c guardedCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v *Guarded[T]) {
	if v == nil {
		c.elem.EncodeRaw(w, tag, c.elem.Default())
		return
	}
	v.With(func(e *T) {
		c.elem.EncodeRaw(w, tag, *e)
	})
}

func (c guardedCodec[T]) Merge(wt wire.Type, v **Guarded[T], r *wire.Reader, ctx wire.DecodeContext) error {
	if *v == nil {
		*v = NewGuarded(c.elem.Default())
	}
	var err error
	(*v).With(func(e *T) {
		err = c.elem.Merge(wt, e, r, ctx)
	})
	return err
}

// RWGuarded is Guarded with a reader/writer lock, for values read far more
// often than they are stored.
type RWGuarded[T any] struct {
	mu sync.RWMutex
	v  T
}

// NewRWGuarded returns a guard around v.
func NewRWGuarded[T any](v T) *RWGuarded[T] {
	return &RWGuarded[T]{v: v}
}

// Load returns a copy of the guarded value under the read lock.
func (g *RWGuarded[T]) Load() T {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.v
}

// Store replaces the guarded value under the write lock.
func (g *RWGuarded[T]) Store(v T) {
	g.mu.Lock()
	g.v = v
	g.mu.Unlock()
}

// With runs f on the guarded value while holding the write lock.
func (g *RWGuarded[T]) With(f func(*T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f(&g.v)
}

// RWGuardedCodec is GuardedCodec over an RWGuarded; encode takes only the
// read lock.
func RWGuardedCodec[T any](elem wire.Codec[T]) wire.Codec[*RWGuarded[T]] {
	return rwGuardedCodec[T]{elem: elem}
}

type rwGuardedCodec[T any] struct {
	elem wire.Codec[T]
}

func (c rwGuardedCodec[T]) Kind() wire.Kind { return c.elem.Kind() }

func (c rwGuardedCodec[T]) Default() *RWGuarded[T] { return nil }

func (c rwGuardedCodec[T]) IsDefault(v *RWGuarded[T]) bool {
	return v == nil || c.elem.IsDefault(v.Load())
}

func (c rwGuardedCodec[T]) SizeRaw(tag uint32, v *RWGuarded[T]) int {
	if v == nil {
		return c.elem.SizeRaw(tag, c.elem.Default())
	}
	return c.elem.SizeRaw(tag, v.Load())
}

func (c rwGuardedCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v *RWGuarded[T]) {
	if v == nil {
		c.elem.EncodeRaw(w, tag, c.elem.Default())
		return
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	c.elem.EncodeRaw(w, tag, v.v)
}

func (c rwGuardedCodec[T]) Merge(wt wire.Type, v **RWGuarded[T], r *wire.Reader, ctx wire.DecodeContext) error {
	if *v == nil {
		*v = NewRWGuarded(c.elem.Default())
	}
	var err error
	(*v).With(func(e *T) {
		err = c.elem.Merge(wt, e, r, ctx)
	})
	return err
}
