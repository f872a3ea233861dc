package wire

// AppendVarint appends v to buf using base-128 varint encoding and returns
// the extended buffer. At most 10 bytes are written for the 64-bit domain.
func AppendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// DecodeVarint decodes a varint from the current position. It fails on an
// unterminated sequence (more than 10 bytes without a terminating byte) or
// buffer exhaustion.
func DecodeVarint(r *Reader) (uint64, error) {
	var result uint64
	var shift uint

	for i := 0; i < 10; i++ {
		if r.pos >= len(r.buf) {
			return 0, errUnexpectedEOF()
		}
		b := r.buf[r.pos]
		r.pos++

		if shift == 63 && b > 1 {
			return 0, errInvalidVarint()
		}
		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, errInvalidVarint()
}

// VarintSize returns the number of bytes needed to encode v as a varint.
func VarintSize(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}

// ===== ZIGZAG TRANSFORM =====
//
// Zigzag maps signed values onto the unsigned varint scheme so that
// small-magnitude negatives stay compact: (n<<1)^(n>>bits-1).

// EncodeZigZag32 encodes a signed 32-bit integer using zigzag encoding.
func EncodeZigZag32(v int32) uint64 {
	return uint64((uint32(v) << 1) ^ uint32(v>>31))
}

// EncodeZigZag64 encodes a signed 64-bit integer using zigzag encoding.
func EncodeZigZag64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// DecodeZigZag32 decodes a zigzag-encoded 32-bit integer.
func DecodeZigZag32(encoded uint64) int32 {
	v := uint32(encoded)
	return int32(v>>1) ^ -int32(v&1)
}

// DecodeZigZag64 decodes a zigzag-encoded 64-bit integer.
func DecodeZigZag64(encoded uint64) int64 {
	return int64(encoded>>1) ^ -int64(encoded&1)
}
