package containers

import (
	"github.com/dolthub/swiss"

	"github.com/protosun/protosun/wire"
)

// SwissMapCodec adapts a swiss-table map to the map wire form. Same entry
// framing and duplicate-key behaviour as MapCodec; encode order follows the
// table's iteration order and is nondeterministic.
func SwissMapCodec[K comparable, V any](key wire.Codec[K], val wire.Codec[V]) wire.Codec[*swiss.Map[K, V]] {
	return swissMapCodec[K, V]{key: key, val: val}
}

type swissMapCodec[K comparable, V any] struct {
	key wire.Codec[K]
	val wire.Codec[V]
}

func (c swissMapCodec[K, V]) Kind() wire.Kind { return wire.KindRepeated(wire.KindMessage) }

func (c swissMapCodec[K, V]) Default() *swiss.Map[K, V] { return nil }

func (c swissMapCodec[K, V]) IsDefault(v *swiss.Map[K, V]) bool {
	return v == nil || v.Count() == 0
}

func (c swissMapCodec[K, V]) SizeRaw(tag uint32, v *swiss.Map[K, V]) int {
	if v == nil {
		return 0
	}
	n := 0
	v.Iter(func(k K, e V) bool {
		n += mapEntryFieldLen(c.key, c.val, tag, k, e)
		return false
	})
	return n
}

func (c swissMapCodec[K, V]) EncodeRaw(w *wire.RevWriter, tag uint32, v *swiss.Map[K, V]) {
	if v == nil {
		return
	}
	v.Iter(func(k K, e V) bool {
		encodeMapEntry(w, c.key, c.val, tag, k, e)
		return false
	})
}

func (c swissMapCodec[K, V]) Merge(wt wire.Type, v **swiss.Map[K, V], r *wire.Reader, ctx wire.DecodeContext) error {
	k, e, err := mergeMapEntry(c.key, c.val, wt, r, ctx)
	if err != nil {
		return err
	}
	if *v == nil {
		*v = swiss.NewMap[K, V](8)
	}
	(*v).Put(k, e)
	return nil
}
