package containers

import (
	"github.com/protosun/protosun/wire"
)

// Deque is a growable double-ended queue backed by a ring buffer. It exists
// so repeated fields that are consumed front-to-back can decode straight
// into queue storage without an intermediate slice.
type Deque[T any] struct {
	buf  []T
	head int
	len  int
}

// NewDeque returns a deque with room for capacity elements before growth.
func NewDeque[T any](capacity int) *Deque[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Deque[T]{buf: make([]T, capacity)}
}

// Len returns the number of queued elements.
func (d *Deque[T]) Len() int { return d.len }

// At returns the i-th element from the front.
func (d *Deque[T]) At(i int) T {
	return d.buf[(d.head+i)%len(d.buf)]
}

func (d *Deque[T]) grow() {
	capacity := len(d.buf) * 2
	if capacity < 8 {
		capacity = 8
	}
	buf := make([]T, capacity)
	for i := 0; i < d.len; i++ {
		buf[i] = d.At(i)
	}
	d.buf = buf
	d.head = 0
}

// PushBack appends e at the back.
func (d *Deque[T]) PushBack(e T) {
	if d.len == len(d.buf) {
		d.grow()
	}
	d.buf[(d.head+d.len)%len(d.buf)] = e
	d.len++
}

// PushFront prepends e at the front.
func (d *Deque[T]) PushFront(e T) {
	if d.len == len(d.buf) {
		d.grow()
	}
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = e
	d.len++
}

// PopFront removes and returns the front element; ok is false when empty.
func (d *Deque[T]) PopFront() (e T, ok bool) {
	if d.len == 0 {
		return e, false
	}
	e = d.buf[d.head]
	var zero T
	d.buf[d.head] = zero
	d.head = (d.head + 1) % len(d.buf)
	d.len--
	return e, true
}

// PopBack removes and returns the back element; ok is false when empty.
func (d *Deque[T]) PopBack() (e T, ok bool) {
	if d.len == 0 {
		return e, false
	}
	i := (d.head + d.len - 1) % len(d.buf)
	e = d.buf[i]
	var zero T
	d.buf[i] = zero
	d.len--
	return e, true
}

// DequeCodec adapts an element codec into a repeated-field codec over a
// deque, with the same packed/unpacked behaviour as SliceCodec.
func DequeCodec[T any](elem wire.Codec[T]) wire.Codec[*Deque[T]] {
	return dequeCodec[T]{elem: elem}
}

type dequeCodec[T any] struct {
	elem wire.Codec[T]
}

func (c dequeCodec[T]) Kind() wire.Kind { return wire.KindRepeated(c.elem.Kind()) }

func (c dequeCodec[T]) Default() *Deque[T] { return nil }

func (c dequeCodec[T]) IsDefault(v *Deque[T]) bool { return v == nil || v.Len() == 0 }

func (c dequeCodec[T]) SizeRaw(tag uint32, v *Deque[T]) int {
	if v == nil {
		return 0
	}
	n := 0
	if c.elem.Kind().Packable() {
		for i := 0; i < v.Len(); i++ {
			n += c.elem.SizeRaw(0, v.At(i))
		}
		return n
	}
	for i := 0; i < v.Len(); i++ {
		n += wire.FieldLenAlways(c.elem, tag, v.At(i))
	}
	return n
}

func (c dequeCodec[T]) EncodeRaw(w *wire.RevWriter, tag uint32, v *Deque[T]) {
	if v == nil {
		return
	}
	if c.elem.Kind().Packable() {
		for i := v.Len() - 1; i >= 0; i-- {
			c.elem.EncodeRaw(w, 0, v.At(i))
		}
		return
	}
	for i := v.Len() - 1; i >= 0; i-- {
		wire.EncodeFieldAlways(w, c.elem, tag, v.At(i))
	}
}

func (c dequeCodec[T]) Merge(wt wire.Type, v **Deque[T], r *wire.Reader, ctx wire.DecodeContext) error {
	if *v == nil {
		*v = NewDeque[T](0)
	}
	d := *v
	ek := c.elem.Kind()
	if ek.Packable() && wt == wire.TypeBytes {
		ewt := ek.WireType()
		return wire.MergeLoop(r, ctx, func(r *wire.Reader, ctx wire.DecodeContext) error {
			e := c.elem.Default()
			if err := c.elem.Merge(ewt, &e, r, ctx); err != nil {
				return err
			}
			d.PushBack(e)
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
	d.PushBack(e)
	return nil
}

// ByteDequeCodec treats a byte deque as a single bytes field, bulk copied
// instead of looped per element.
func ByteDequeCodec() wire.Codec[*Deque[byte]] {
	return byteDequeCodec{}
}

type byteDequeCodec struct{}

func (byteDequeCodec) Kind() wire.Kind { return wire.KindBytes }

func (byteDequeCodec) Default() *Deque[byte] { return nil }

func (byteDequeCodec) IsDefault(v *Deque[byte]) bool { return v == nil || v.Len() == 0 }

func (byteDequeCodec) SizeRaw(_ uint32, v *Deque[byte]) int {
	if v == nil {
		return 0
	}
	return v.Len()
}

func (byteDequeCodec) EncodeRaw(w *wire.RevWriter, _ uint32, v *Deque[byte]) {
	if v == nil {
		return
	}
	for i := v.Len() - 1; i >= 0; i-- {
		w.PutU8(v.At(i))
	}
}

func (byteDequeCodec) Merge(wt wire.Type, v **Deque[byte], r *wire.Reader, _ wire.DecodeContext) error {
	if err := wire.CheckType(wire.TypeBytes, wt); err != nil {
		return err
	}
	length, err := wire.DecodeVarint(r)
	if err != nil {
		return err
	}
	if length > uint64(r.Remaining()) {
		return wire.NewDecodeError("buffer underflow")
	}
	b, err := r.ReadSlice(int(length))
	if err != nil {
		return err
	}
	if *v == nil {
		*v = NewDeque[byte](len(b))
	}
	for _, x := range b {
		(*v).PushBack(x)
	}
	return nil
}
