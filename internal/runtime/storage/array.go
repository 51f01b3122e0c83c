package storage

import (
	"fmt"

	"github.com/CosmWasm/cellvm/internal/runtime/alloc"
	"github.com/CosmWasm/cellvm/internal/runtime/codec"
)

// Array is a fixed-length run of cells on consecutive addresses.
type Array[T any] struct {
	cells []*Cell[T]
}

var _ Flusher = (*Array[uint32])(nil)

// AllocateArray reserves length slots from a in one step and lays the cells out over them.
func AllocateArray[T any](a alloc.Allocator, backend Backend, c codec.Codec[T], length uint64) *Array[T] {
	base := a.Next(length * CellFootprint)
	cells := make([]*Cell[T], length)
	for i := range cells {
		cells[i] = newCell(alloc.Offset(base, uint64(i)*CellFootprint), backend, c)
	}
	return &Array[T]{cells: cells}
}

// Len returns the number of cells.
func (a *Array[T]) Len() int {
	return len(a.cells)
}

// At returns the cell at index i.
func (a *Array[T]) At(i int) *Cell[T] {
	if i < 0 || i >= len(a.cells) {
		panic(fmt.Sprintf("array index %d out of range [0, %d)", i, len(a.cells)))
	}
	return a.cells[i]
}

// Initialize sets every cell to v.
func (a *Array[T]) Initialize(v T) {
	for _, c := range a.cells {
		c.Set(v)
	}
}

func (a *Array[T]) Flush() error {
	for _, c := range a.cells {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	return nil
}
