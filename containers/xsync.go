package containers

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/protosun/protosun/wire"
)

// SyncMapCodec adapts a lock-free concurrent map to the map wire form.
// Encode ranges over a weakly consistent snapshot; entries stored while an
// encode is in flight may or may not be observed. Decode stores entries
// one at a time without coordinating beyond the map's own guarantees.
func SyncMapCodec[K comparable, V any](key wire.Codec[K], val wire.Codec[V]) wire.Codec[*xsync.MapOf[K, V]] {
	return syncMapCodec[K, V]{key: key, val: val}
}

type syncMapCodec[K comparable, V any] struct {
	key wire.Codec[K]
	val wire.Codec[V]
}

func (c syncMapCodec[K, V]) Kind() wire.Kind { return wire.KindRepeated(wire.KindMessage) }

func (c syncMapCodec[K, V]) Default() *xsync.MapOf[K, V] { return nil }

func (c syncMapCodec[K, V]) IsDefault(v *xsync.MapOf[K, V]) bool {
	return v == nil || v.Size() == 0
}

func (c syncMapCodec[K, V]) SizeRaw(tag uint32, v *xsync.MapOf[K, V]) int {
	if v == nil {
		return 0
	}
	n := 0
	v.Range(func(k K, e V) bool {
		n += mapEntryFieldLen(c.key, c.val, tag, k, e)
		return true
	})
	return n
}

func (c syncMapCodec[K, V]) EncodeRaw(w *wire.RevWriter, tag uint32, v *xsync.MapOf[K, V]) {
	if v == nil {
		return
	}
	v.Range(func(k K, e V) bool {
		encodeMapEntry(w, c.key, c.val, tag, k, e)
		return true
	})
}

func (c syncMapCodec[K, V]) Merge(wt wire.Type, v **xsync.MapOf[K, V], r *wire.Reader, ctx wire.DecodeContext) error {
	k, e, err := mergeMapEntry(c.key, c.val, wt, r, ctx)
	if err != nil {
		return err
	}
	if *v == nil {
		*v = xsync.NewMapOf[K, V]()
	}
	(*v).Store(k, e)
	return nil
}

// SyncSetCodec adapts a lock-free concurrent set, represented as a MapOf
// with empty struct values. Encodes exactly like a repeated field of the
// element kind; wire-level duplicates coalesce on insert.
func SyncSetCodec[T comparable](elem wire.Codec[T]) wire.Codec[*xsync.MapOf[T, struct{}]] {
	return syncSetCodec[T]{elem: elem}
}

type syncSetCodec[T comparable] struct {
	elem wire.Codec[T]
}

func (c syncSetCodec[T]) Kind() wire.Kind { return wire.KindRepeated(c.elem.Kind()) }

func (c syncSetCodec[T]) Default() *xsync.MapOf[T, struct{}] { return nil }

func (c syncSetCodec[T]) IsDefault(v *xsync.MapOf[T, struct{}]) bool {
	return v == nil || v.Size() == 0
}

func (c syncSetCodec[T]) SizeRaw(tag uint32, v *xsync.MapOf[T, struct{}]) int {
	if v == nil {
		return 0
	}
	n := 0
	packable := c.elem.Kind().Packable()
	v.Range(func(e T, _ struct{}) bool {
		if packable {
			n += c.elem.SizeRaw(0, e)
		} else {
			n += wire.FieldLenAlways(c.elem, tag, e)
		}
		return true
	})
	return n
}

func (c syncSetCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v *xsync.MapOf[T, struct{}]) {
	if v == nil {
		return
	}
	packable := c.elem.Kind().Packable()
	v.Range(func(e T, _ struct{}) bool {
		if packable {
			c.elem.EncodeRaw(w, 0, e)
		} else {
			wire.EncodeFieldAlways(w, c.elem, tag, e)
		}
		return true
	})
}

func (c syncSetCodec[T]) Merge(wt wire.Type, v **xsync.MapOf[T, struct{}], r *wire.Reader, ctx wire.DecodeContext) error {
	if *v == nil {
		*v = xsync.NewMapOf[T, struct{}]()
	}
	s := *v
	ek := c.elem.Kind()
	if ek.Packable() && wt == wire.TypeBytes {
		ewt := ek.WireType()
		return wire.MergeLoop(r, ctx, func(r *wire.Reader, ctx wire.DecodeContext) error {
			e := c.elem.Default()
			if err := c.elem.Merge(ewt, &e, r, ctx); err != nil {
				return err
			}
			s.Store(e, struct{}{})
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
	s.Store(e, struct{}{})
	return nil
}
