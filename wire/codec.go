package wire

// Codec is the wire contract every encodable type implements: scalar,
// container adapter or generated message alike. A codec is stateless; one
// instance serves all values of its type.
//
// The contract splits a type's life across three representations: the value
// handed to EncodeRaw is the encode-time view (often borrowed storage, or a
// snapshot taken under a lock by wrapper codecs), Merge builds the owned
// decode output in place, and conversion between a wire-facing shadow type
// and a differently shaped domain type is layered on with Bridge.
type Codec[T any] interface {
	// Kind statically classifies the codec's type; it never changes.
	Kind() Kind

	// Default returns the protobuf zero value.
	Default() T

	// IsDefault reports whether v equals the type default. Implicit-presence
	// fields equal to their default are elided from the wire entirely.
	IsDefault(v T) bool

	// SizeRaw returns the raw payload size without key or length prefix.
	// Self-framing codecs (repeated non-packable) include their per-element
	// keys and prefixes and therefore need the field tag.
	SizeRaw(tag uint32, v T) int

	// EncodeRaw writes the raw payload back-to-front into w. Callable only
	// once the caller has decided encoding is required; the default check
	// belongs to EncodeField. Self-framing codecs use tag, all others
	// ignore it.
	EncodeRaw(w *RevWriter, tag uint32, v T)

	// Merge decodes one wire occurrence of the field into v. The wire type
	// is the one observed on the wire; mismatches are errors, never
	// coercions.
	Merge(wt Type, v *T, r *Reader, ctx DecodeContext) error
}

// EncodeField archives one tagged field: payload first, then length prefix
// and key, continuing the writer's backward walk. Values equal to the type
// default are elided entirely.
func EncodeField[T any](w *RevWriter, c Codec[T], tag uint32, v T) {
	if c.IsDefault(v) {
		return
	}
	EncodeFieldAlways(w, c, tag, v)
}

// EncodeFieldAlways archives one tagged field regardless of whether the
// value equals its default. This is the force-write path used for fields
// whose presence itself carries meaning, e.g. enum variant discriminants.
func EncodeFieldAlways[T any](w *RevWriter, c Codec[T], tag uint32, v T) {
	kind := c.Kind()
	if kind.SelfFraming() {
		c.EncodeRaw(w, tag, v)
		return
	}
	mark := w.Mark()
	c.EncodeRaw(w, 0, v)
	if kind.WireType() == TypeBytes {
		w.PutVarint(uint64(w.WrittenSince(mark)))
	}
	w.PutKey(tag, kind.WireType())
}

// FieldLen returns the full encoded length of one tagged field, or 0 when
// the value is default-elided. Used by size-computing entry points to
// allocate exactly.
func FieldLen[T any](c Codec[T], tag uint32, v T) int {
	if c.IsDefault(v) {
		return 0
	}
	return FieldLenAlways(c, tag, v)
}

// FieldLenAlways returns the full encoded length of one tagged field
// without the default check.
func FieldLenAlways[T any](c Codec[T], tag uint32, v T) int {
	kind := c.Kind()
	n := c.SizeRaw(tag, v)
	if kind.SelfFraming() {
		return n
	}
	if kind.WireType() == TypeBytes {
		return KeyLen(tag) + VarintSize(uint64(n)) + n
	}
	return KeyLen(tag) + n
}

// ===== SHADOW / SUN CONVERSION =====

// Bridge joins a wire-facing shadow codec to a differently shaped domain
// type via explicit conversions: toSun finalises a decoded shadow into the
// owned domain value and may reject it, fromSun produces the encode-time
// view and is total. The bridged codec keeps the shadow's kind and wire
// behaviour unchanged.
func Bridge[S, T any](shadow Codec[S], toSun func(S) (T, error), fromSun func(T) S) Codec[T] {
	return bridgeCodec[S, T]{shadow: shadow, toSun: toSun, fromSun: fromSun}
}

type bridgeCodec[S, T any] struct {
	shadow  Codec[S]
	toSun   func(S) (T, error)
	fromSun func(T) S
}

func (c bridgeCodec[S, T]) Kind() Kind { return c.shadow.Kind() }

func (c bridgeCodec[S, T]) Default() T {
	v, err := c.toSun(c.shadow.Default())
	if err != nil {
		// The shadow default must always convert; a type whose default is
		// unrepresentable cannot satisfy protobuf zero-value semantics.
		panic("wire: shadow default does not convert: " + err.Error())
	}
	return v
}

func (c bridgeCodec[S, T]) IsDefault(v T) bool {
	return c.shadow.IsDefault(c.fromSun(v))
}

func (c bridgeCodec[S, T]) SizeRaw(tag uint32, v T) int {
	return c.shadow.SizeRaw(tag, c.fromSun(v))
}

func (c bridgeCodec[S, T]) EncodeRaw(w *RevWriter, tag uint32, v T) {
	c.shadow.EncodeRaw(w, tag, c.fromSun(v))
}

func (c bridgeCodec[S, T]) Merge(wt Type, v *T, r *Reader, ctx DecodeContext) error {
	shadow := c.fromSun(*v)
	if err := c.shadow.Merge(wt, &shadow, r, ctx); err != nil {
		return err
	}
	sun, err := c.toSun(shadow)
	if err != nil {
		return err
	}
	*v = sun
	return nil
}
