// Package storage provides typed, lazily loaded, write-back storage cells and
// the capabilities composite structures are built from.
package storage

import (
	"fmt"

	"github.com/CosmWasm/cellvm/internal/runtime/alloc"
	"github.com/CosmWasm/cellvm/internal/runtime/codec"
	"github.com/CosmWasm/cellvm/types"
)

// CellFootprint is the number of address slots one cell occupies.
const CellFootprint = 1

type cellState uint8

const (
	stateUnloaded cellState = iota
	stateClean
	stateDirty
)

// Cell caches the decoded value stored at one address.
//
// The first Get loads from the backend. Set only touches the cache and marks
// the cell dirty; Flush writes dirty values back.
type Cell[T any] struct {
	addr    types.Address
	backend Backend
	codec   codec.Codec[T]
	state   cellState
	value   T
}

var _ Flusher = (*Cell[uint32])(nil)

// Allocate takes one address from a for a new cell. It does not read storage.
func Allocate[T any](a alloc.Allocator, backend Backend, c codec.Codec[T]) *Cell[T] {
	return newCell(a.Next(CellFootprint), backend, c)
}

func newCell[T any](addr types.Address, backend Backend, c codec.Codec[T]) *Cell[T] {
	return &Cell[T]{
		addr:    addr,
		backend: backend,
		codec:   c,
	}
}

// Address returns the address the cell is stored at.
func (c *Cell[T]) Address() types.Address {
	return c.addr
}

// Loaded reports whether the cell holds a value in memory.
func (c *Cell[T]) Loaded() bool {
	return c.state != stateUnloaded
}

// Dirty reports whether the cached value still has to be flushed.
func (c *Cell[T]) Dirty() bool {
	return c.state == stateDirty
}

// Get returns the cached value, loading it on first access.
// A missing or undecodable stored value is returned as a *types.StorageError.
func (c *Cell[T]) Get() (T, error) {
	if c.state == stateUnloaded {
		if err := c.load(); err != nil {
			var zero T
			return zero, err
		}
	}
	return c.value, nil
}

func (c *Cell[T]) load() error {
	bz, err := c.backend.Read(c.addr)
	if err != nil {
		return err
	}
	if bz == nil {
		return &types.StorageError{Address: c.addr, Err: types.ErrMissingValue}
	}
	v, err := c.codec.Decode(bz)
	if err != nil {
		return &types.StorageError{Address: c.addr, Err: fmt.Errorf("%w: %w", types.ErrCorruptStorage, err)}
	}
	c.value = v
	c.state = stateClean
	return nil
}

// Set overwrites the cached value and marks the cell dirty.
func (c *Cell[T]) Set(v T) {
	c.value = v
	c.state = stateDirty
}

// Mutate loads the current value, applies fn and stores the result in the cache.
func (c *Cell[T]) Mutate(fn func(T) T) error {
	v, err := c.Get()
	if err != nil {
		return err
	}
	c.Set(fn(v))
	return nil
}

// Flush writes the value back if it is dirty. Clean and unloaded cells are not written.
func (c *Cell[T]) Flush() error {
	if c.state != stateDirty {
		return nil
	}
	if err := c.backend.Write(c.addr, c.codec.Encode(c.value)); err != nil {
		return err
	}
	c.state = stateClean
	return nil
}
