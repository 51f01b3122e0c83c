// Package codec implements the canonical encoding of primitive scalars:
// fixed-width little-endian integers and single-byte booleans, no length prefixes.
package codec

import (
	"encoding/binary"

	"github.com/CosmWasm/cellvm/types"
)

// Codec converts values of T to and from their stored form.
type Codec[T any] interface {
	Encode(v T) []byte
	Decode(bz []byte) (T, error)
}

// U32 encodes uint32 as 4 little-endian bytes.
type U32 struct{}

var _ Codec[uint32] = U32{}

func (U32) Encode(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(make([]byte, 0, 4), v)
}

func (U32) Decode(bz []byte) (uint32, error) {
	if len(bz) != 4 {
		return 0, types.NewDecodeError("u32", "expected 4 bytes, got %d", len(bz))
	}
	return binary.LittleEndian.Uint32(bz), nil
}

// U64 encodes uint64 as 8 little-endian bytes.
type U64 struct{}

var _ Codec[uint64] = U64{}

func (U64) Encode(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(make([]byte, 0, 8), v)
}

func (U64) Decode(bz []byte) (uint64, error) {
	if len(bz) != 8 {
		return 0, types.NewDecodeError("u64", "expected 8 bytes, got %d", len(bz))
	}
	return binary.LittleEndian.Uint64(bz), nil
}

// Bool encodes a bool as a single 0 or 1 byte.
type Bool struct{}

var _ Codec[bool] = Bool{}

func (Bool) Encode(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

func (Bool) Decode(bz []byte) (bool, error) {
	if len(bz) != 1 {
		return false, types.NewDecodeError("bool", "expected 1 byte, got %d", len(bz))
	}
	switch bz[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, types.NewDecodeError("bool", "invalid byte 0x%02x", bz[0])
	}
}
