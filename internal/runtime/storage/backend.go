package storage

import (
	"github.com/CosmWasm/cellvm/types"
)

// Backend is the storage seen by cells. Implementations may fail, for example
// when they meter gas, and cells pass those failures up unchanged.
type Backend interface {
	// Read returns the bytes stored at addr, or nil if nothing is stored there.
	Read(addr types.Address) ([]byte, error)
	Write(addr types.Address, value []byte) error
}

// KVBackend exposes a plain KVStore as a Backend that never fails.
type KVBackend struct {
	KV types.KVStore
}

var _ Backend = KVBackend{}

func (b KVBackend) Read(addr types.Address) ([]byte, error) {
	return b.KV.Get(addr.Bytes()), nil
}

func (b KVBackend) Write(addr types.Address, value []byte) error {
	b.KV.Set(addr.Bytes(), value)
	return nil
}
