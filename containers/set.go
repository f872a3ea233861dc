package containers

import (
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/protosun/protosun/wire"
)

// SetCodec adapts an element codec into a codec for a hash set, represented
// as map[T]struct{}. Sets encode exactly like a repeated field of the same
// element kind, in nondeterministic order; decode inserts, so wire-level
// duplicates silently coalesce.
func SetCodec[T comparable](elem wire.Codec[T]) wire.Codec[map[T]struct{}] {
	return setCodec[T]{elem: elem}
}

type setCodec[T comparable] struct {
	elem wire.Codec[T]
}

func (c setCodec[T]) Kind() wire.Kind { return wire.KindRepeated(c.elem.Kind()) }

func (c setCodec[T]) Default() map[T]struct{} { return nil }

func (c setCodec[T]) IsDefault(v map[T]struct{}) bool { return len(v) == 0 }

func (c setCodec[T]) SizeRaw(tag uint32, v map[T]struct{}) int {
	n := 0
	if c.elem.Kind().Packable() {
		for e := range v {
			n += c.elem.SizeRaw(0, e)
		}
		return n
	}
	for e := range v {
		n += wire.FieldLenAlways(c.elem, tag, e)
	}
	return n
}

func (c setCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v map[T]struct{}) {
	if c.elem.Kind().Packable() {
		for e := range v {
			c.elem.EncodeRaw(w, 0, e)
		}
		return
	}
	for e := range v {
		wire.EncodeFieldAlways(w, c.elem, tag, e)
	}
}

func (c setCodec[T]) Merge(wt wire.Type, v *map[T]struct{}, r *wire.Reader, ctx wire.DecodeContext) error {
	if *v == nil {
		*v = make(map[T]struct{})
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
			s[e] = struct{}{}
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
	s[e] = struct{}{}
	return nil
}

// SortedSetCodec is SetCodec with deterministic output: elements encode in
// ascending order, the tree-set behaviour. Decode is identical.
func SortedSetCodec[T constraints.Ordered](elem wire.Codec[T]) wire.Codec[map[T]struct{}] {
	return sortedSetCodec[T]{setCodec[T]{elem: elem}}
}

type sortedSetCodec[T constraints.Ordered] struct {
	setCodec[T]
}

func (c sortedSetCodec[T]) sorted(v map[T]struct{}) []T {
	elems := make([]T, 0, len(v))
	for e := range v {
		elems = append(elems, e)
	}
	sort.Slice(elems, func(i, j int) bool { return elems[i] < elems[j] })
	return elems
}

func (c sortedSetCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v map[T]struct{}) {
	elems := c.sorted(v)
	if c.elem.Kind().Packable() {
		for i := len(elems) - 1; i >= 0; i-- {
			c.elem.EncodeRaw(w, 0, elems[i])
		}
		return
	}
	for i := len(elems) - 1; i >= 0; i-- {
		wire.EncodeFieldAlways(w, c.elem, tag, elems[i])
	}
}
