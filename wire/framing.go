package wire

// MergeLoop reads a varint length prefix and repeatedly invokes merge until
// exactly that many bytes have been consumed. Consumption that under- or
// overshoots the frame boundary is a decode error.
func MergeLoop(r *Reader, ctx DecodeContext, merge func(*Reader, DecodeContext) error) error {
	length, err := DecodeVarint(r)
	if err != nil {
		return err
	}
	remaining := r.Remaining()
	if length > uint64(remaining) {
		return errUnexpectedEOF()
	}

	limit := remaining - int(length)
	for r.Remaining() > limit {
		if err := merge(r, ctx); err != nil {
			return err
		}
	}
	if r.Remaining() != limit {
		return errDelimitedLength()
	}
	return nil
}

// SkipField discards an unknown field's payload according to its wire type.
// Unknown fields are never an error; skipping one keeps decoding forward
// compatible. Groups are skipped recursively until the matching end-group
// tag, which is the only group support this engine provides.
func SkipField(wt Type, tag uint32, r *Reader, ctx DecodeContext) error {
	if err := ctx.LimitReached(); err != nil {
		return err
	}
	switch wt {
	case TypeVarint:
		_, err := DecodeVarint(r)
		return err
	case TypeFixed32:
		return r.Skip(4)
	case TypeFixed64:
		return r.Skip(8)
	case TypeBytes:
		length, err := DecodeVarint(r)
		if err != nil {
			return err
		}
		if length > uint64(r.Remaining()) {
			return errUnexpectedEOF()
		}
		return r.Skip(int(length))
	case TypeStartGroup:
		for {
			innerTag, innerType, err := DecodeKey(r)
			if err != nil {
				return err
			}
			if innerType == TypeEndGroup {
				if innerTag != tag {
					return NewDecodeError("unexpected end group tag")
				}
				return nil
			}
			if err := SkipField(innerType, innerTag, r, ctx.EnterRecursion()); err != nil {
				return err
			}
		}
	case TypeEndGroup:
		return NewDecodeError("unexpected end group tag")
	default:
		return NewDecodeError("invalid wire type")
	}
}
