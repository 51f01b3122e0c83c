// Package alloc hands out storage addresses for typed cells.
//
// The "arena" is the host key-value store and an address is an index into it,
// so allocation never touches memory or storage: it only moves a cursor.
package alloc

import (
	"github.com/CosmWasm/cellvm/types"
)

// Allocator assigns fresh, non-overlapping addresses.
type Allocator interface {
	// Next returns a fresh address and reserves footprint slots starting at it.
	Next(footprint uint64) types.Address
}

// BumpAllocator is a cursor over the address space.
// Given the same origin and the same sequence of Next calls it always produces
// the same addresses.
type BumpAllocator struct {
	cursor types.Address
}

var _ Allocator = (*BumpAllocator)(nil)

// FromOrigin creates an allocator positioned at origin.
func FromOrigin(origin types.Address) *BumpAllocator {
	return &BumpAllocator{cursor: origin}
}

// Next returns the current cursor and advances it by footprint slots.
// A footprint of zero still consumes one slot.
func (a *BumpAllocator) Next(footprint uint64) types.Address {
	if footprint == 0 {
		footprint = 1
	}
	addr := a.cursor
	a.cursor = offset(a.cursor, footprint)
	return addr
}

// Cursor reports the address the next allocation will return.
func (a *BumpAllocator) Cursor() types.Address {
	return a.cursor
}

// Offset returns the address n slots after addr.
func Offset(addr types.Address, n uint64) types.Address {
	return offset(addr, n)
}

// offset adds n to addr, reading it as a big-endian 256-bit integer.
// Overflow wraps around.
func offset(addr types.Address, n uint64) types.Address {
	carry := n
	for i := types.AddressLen - 1; i >= 0 && carry > 0; i-- {
		sum := uint64(addr[i]) + (carry & 0xff)
		addr[i] = byte(sum)
		carry = (carry >> 8) + (sum >> 8)
	}
	return addr
}
