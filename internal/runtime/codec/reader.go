package codec

import (
	"encoding/binary"

	"github.com/CosmWasm/cellvm/types"
)

// Reader consumes a buffer front to back. Every read past the end of the
// buffer fails with a decode error naming target.
type Reader struct {
	target string
	buf    []byte
	pos    int
}

// NewReader creates a Reader over buf. target names the type being decoded in errors.
func NewReader(target string, buf []byte) *Reader {
	return &Reader{target: target, buf: buf}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, types.NewDecodeError(r.target, "truncated input: need %d bytes at offset %d, have %d", n, r.pos, r.Remaining())
	}
	bz := r.buf[r.pos : r.pos+n]
	r.pos += n
	return bz, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	bz, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return bz[0], nil
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	bz, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bz), nil
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	bz, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(bz), nil
}
