package containers

import (
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/protosun/protosun/wire"
)

// Map fields encode as repeated entry submessages: field 1 carries the key,
// field 2 the value, and either sub-field is elided when it equals its own
// default. Wire order is unconstrained and duplicate keys resolve
// last-one-wins on decode.

func mapEntryLen[K, V any](kc wire.Codec[K], vc wire.Codec[V], k K, v V) int {
	return wire.FieldLen(kc, 1, k) + wire.FieldLen(vc, 2, v)
}

func mapEntryFieldLen[K, V any](kc wire.Codec[K], vc wire.Codec[V], tag uint32, k K, v V) int {
	n := mapEntryLen(kc, vc, k, v)
	return wire.KeyLen(tag) + wire.VarintSize(uint64(n)) + n
}

func encodeMapEntry[K, V any](w *wire.RevWriter, kc wire.Codec[K], vc wire.Codec[V], tag uint32, k K, v V) {
	mark := w.Mark()
	wire.EncodeField(w, vc, 2, v)
	wire.EncodeField(w, kc, 1, k)
	w.PutVarint(uint64(w.WrittenSince(mark)))
	w.PutKey(tag, wire.TypeBytes)
}

func mergeMapEntry[K, V any](kc wire.Codec[K], vc wire.Codec[V], wt wire.Type, r *wire.Reader, ctx wire.DecodeContext) (K, V, error) {
	k, v := kc.Default(), vc.Default()
	if err := wire.CheckType(wire.TypeBytes, wt); err != nil {
		return k, v, err
	}
	ctx = ctx.EnterRecursion()
	if err := ctx.LimitReached(); err != nil {
		return k, v, err
	}
	err := wire.MergeLoop(r, ctx, func(r *wire.Reader, ctx wire.DecodeContext) error {
		tag, wt, err := wire.DecodeKey(r)
		if err != nil {
			return err
		}
		switch tag {
		case 1:
			return kc.Merge(wt, &k, r, ctx)
		case 2:
			return vc.Merge(wt, &v, r, ctx)
		default:
			return wire.SkipField(wt, tag, r, ctx)
		}
	})
	return k, v, err
}

// MapCodec adapts a key and a value codec into a codec for a built-in map.
// Encode order follows Go map iteration and is therefore nondeterministic;
// use SortedMapCodec when byte-stable output matters.
func MapCodec[K comparable, V any](key wire.Codec[K], val wire.Codec[V]) wire.Codec[map[K]V] {
	return mapCodec[K, V]{key: key, val: val}
}

type mapCodec[K comparable, V any] struct {
	key wire.Codec[K]
	val wire.Codec[V]
}

func (c mapCodec[K, V]) Kind() wire.Kind { return wire.KindRepeated(wire.KindMessage) }

func (c mapCodec[K, V]) Default() map[K]V { return nil }

func (c mapCodec[K, V]) IsDefault(v map[K]V) bool { return len(v) == 0 }

func (c mapCodec[K, V]) SizeRaw(tag uint32, v map[K]V) int {
	n := 0
	for k, e := range v {
		n += mapEntryFieldLen(c.key, c.val, tag, k, e)
	}
	return n
}

func (c mapCodec[K, V]) EncodeRaw(w *wire.RevWriter, tag uint32, v map[K]V) {
	for k, e := range v {
		encodeMapEntry(w, c.key, c.val, tag, k, e)
	}
}

func (c mapCodec[K, V]) Merge(wt wire.Type, v *map[K]V, r *wire.Reader, ctx wire.DecodeContext) error {
	k, e, err := mergeMapEntry(c.key, c.val, wt, r, ctx)
	if err != nil {
		return err
	}
	if *v == nil {
		*v = make(map[K]V)
	}
	(*v)[k] = e
	return nil
}

// SortedMapCodec is MapCodec with deterministic output: entries encode in
// ascending key order, the tree-map behaviour. Decode is identical.
func SortedMapCodec[K constraints.Ordered, V any](key wire.Codec[K], val wire.Codec[V]) wire.Codec[map[K]V] {
	return sortedMapCodec[K, V]{mapCodec[K, V]{key: key, val: val}}
}

type sortedMapCodec[K constraints.Ordered, V any] struct {
	mapCodec[K, V]
}

func (c sortedMapCodec[K, V]) sortedKeys(v map[K]V) []K {
	keys := make([]K, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (c sortedMapCodec[K, V]) EncodeRaw(w *wire.RevWriter, tag uint32, v map[K]V) {
	keys := c.sortedKeys(v)
	// Backward walk over sorted keys keeps the output ascending.
	for i := len(keys) - 1; i >= 0; i-- {
		encodeMapEntry(w, c.key, c.val, tag, keys[i], v[keys[i]])
	}
}
