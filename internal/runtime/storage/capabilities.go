package storage

import (
	"github.com/CosmWasm/cellvm/internal/runtime/alloc"
)

// AllocateFunc assigns addresses to every cell of a composite, in field order,
// without touching storage. Running it twice from the same origin must yield
// the same layout.
type AllocateFunc[S any] func(a alloc.Allocator, backend Backend) S

// Initializer writes the starting values of a freshly allocated composite into
// its cells. It runs once, at first-time setup.
type Initializer[A any] interface {
	Initialize(args A)
}

// Flusher commits dirty values to storage.
type Flusher interface {
	Flush() error
}

// FlushAll flushes every f in order and stops at the first error.
func FlushAll(fs ...Flusher) error {
	for _, f := range fs {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	return nil
}
