package wire

import (
	"fmt"
	"math"
)

// AppendKey appends a field key, which packs the field tag with the wire
// type designator: varint((tag<<3)|wire_type).
func AppendKey(buf []byte, tag uint32, wt Type) []byte {
	return AppendVarint(buf, MakeKey(tag, wt))
}

// DecodeKey decodes a field key from the reader, returning the field tag and
// wire type. Keys above the u32 domain, unknown wire codes and tag 0 are all
// rejected.
func DecodeKey(r *Reader) (uint32, Type, error) {
	key, err := DecodeVarint(r)
	if err != nil {
		return 0, 0, err
	}
	if key > math.MaxUint32 {
		return 0, 0, NewDecodeError(fmt.Sprintf("invalid key value: %d", key))
	}
	tag, raw := SplitKey(key)
	wt, err := ParseType(raw)
	if err != nil {
		return 0, 0, err
	}
	if tag < MinTag {
		return 0, 0, NewDecodeError("invalid tag value: 0")
	}
	return tag, wt, nil
}

// KeyLen returns the encoded width of a field key with the given tag,
// between 1 and 5 bytes inclusive.
func KeyLen(tag uint32) int {
	return VarintSize(uint64(tag) << 3)
}
