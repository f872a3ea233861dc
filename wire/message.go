package wire

// ===== MESSAGE CONTRACT =====

// Message is implemented by every concrete protobuf message type. Hand
// written or generated, a message knows its own encoded size, archives its
// fields back-to-front, and merges one wire field at a time. Everything
// else (framing, keys, recursion accounting) lives in the engine.
type Message interface {
	// EncodedLen returns the exact byte length EncodeRaw will emit,
	// excluding any outer key and length prefix.
	EncodedLen() int

	// EncodeRaw archives all non-default fields into w. Fields are written
	// in reverse declaration order so the final output reads in ascending
	// tag order.
	EncodeRaw(w *RevWriter)

	// MergeField merges a single field occurrence. Unknown tags must be
	// skipped with SkipField, never rejected.
	MergeField(tag uint32, wt Type, r *Reader, ctx DecodeContext) error
}

// MessagePtr constrains P to be a pointer to M that implements Message.
// It lets codecs stay value-typed while the Message methods use pointer
// receivers.
type MessagePtr[M any] interface {
	*M
	Message
}

// MessageCodec adapts any Message type into a Codec usable as a field,
// map value, or container element.
func MessageCodec[M any, P MessagePtr[M]]() Codec[M] {
	return messageCodec[M, P]{}
}

type messageCodec[M any, P MessagePtr[M]] struct{}

func (messageCodec[M, P]) Kind() Kind { return KindMessage }

func (messageCodec[M, P]) Default() M {
	var m M
	return m
}

// IsDefault holds exactly when every field is default, which is exactly
// when the message encodes to zero bytes.
func (messageCodec[M, P]) IsDefault(v M) bool {
	return P(&v).EncodedLen() == 0
}

func (messageCodec[M, P]) SizeRaw(_ uint32, v M) int {
	return P(&v).EncodedLen()
}

func (messageCodec[M, P]) EncodeRaw(w *RevWriter, _ uint32, v M) {
	P(&v).EncodeRaw(w)
}

func (messageCodec[M, P]) Merge(wt Type, v *M, r *Reader, ctx DecodeContext) error {
	if err := CheckType(TypeBytes, wt); err != nil {
		return err
	}
	ctx = ctx.EnterRecursion()
	if err := ctx.LimitReached(); err != nil {
		return err
	}
	return MergeLoop(r, ctx, func(r *Reader, ctx DecodeContext) error {
		tag, wt, err := DecodeKey(r)
		if err != nil {
			return err
		}
		return P(v).MergeField(tag, wt, r, ctx)
	})
}

// MergeMessage decodes an unframed message body: the reader's entire
// remaining content is treated as the field stream. This is the top-level
// entry used on whole buffers, where no length prefix exists.
func MergeMessage(m Message, r *Reader, ctx DecodeContext) error {
	for r.HasRemaining() {
		tag, wt, err := DecodeKey(r)
		if err != nil {
			return err
		}
		if err := m.MergeField(tag, wt, r, ctx); err != nil {
			return err
		}
	}
	return nil
}
