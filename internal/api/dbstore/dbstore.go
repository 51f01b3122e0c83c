// Package dbstore adapts a cometbft-db database to types.KVStore.
package dbstore

import (
	"fmt"

	dbm "github.com/cometbft/cometbft-db"

	"github.com/CosmWasm/cellvm/types"
)

// Lookup wraps a dbm.DB. The KVStore methods panic on database errors, as
// the host store contract has no error channel; WriteBatch returns them.
// Much of this code is borrowed from Cosmos-SDK store/transient.go
type Lookup struct {
	db dbm.DB
}

var (
	_ types.KVStore     = Lookup{}
	_ types.BatchWriter = Lookup{}
)

// Wrap creates a Lookup over db.
func Wrap(db dbm.DB) Lookup {
	return Lookup{db: db}
}

// NewMemLookup creates a Lookup over a fresh dbm.MemDB.
func NewMemLookup() Lookup {
	return Wrap(dbm.NewMemDB())
}

// Open opens (or creates) the database name of the given backend in dir.
func Open(name, backend, dir string) (Lookup, error) {
	db, err := dbm.NewDB(name, dbm.BackendType(backend), dir)
	if err != nil {
		return Lookup{}, fmt.Errorf("open %s database %q in %s: %w", backend, name, dir, err)
	}
	return Wrap(db), nil
}

// DB returns the wrapped database.
func (l Lookup) DB() dbm.DB {
	return l.db
}

// Close closes the wrapped database.
func (l Lookup) Close() error {
	return l.db.Close()
}

// Get wraps the underlying DB's Get method panicing on error.
func (l Lookup) Get(key []byte) []byte {
	v, err := l.db.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Set wraps the underlying DB's Set method panicing on error.
func (l Lookup) Set(key, value []byte) {
	if err := l.db.Set(key, value); err != nil {
		panic(err)
	}
}

// Delete wraps the underlying DB's Delete method panicing on error.
func (l Lookup) Delete(key []byte) {
	if err := l.db.Delete(key); err != nil {
		panic(err)
	}
}

// Iterator wraps the underlying DB's Iterator method panicing on error.
func (l Lookup) Iterator(start, end []byte) types.Iterator {
	iter, err := l.db.Iterator(start, end)
	if err != nil {
		panic(err)
	}
	return iter
}

// ReverseIterator wraps the underlying DB's ReverseIterator method panicing on error.
func (l Lookup) ReverseIterator(start, end []byte) types.Iterator {
	iter, err := l.db.ReverseIterator(start, end)
	if err != nil {
		panic(err)
	}
	return iter
}

// WriteBatch applies the writes in one synced dbm.Batch.
func (l Lookup) WriteBatch(sets []types.Pair, deletes [][]byte) (err error) {
	batch := l.db.NewBatch()
	defer func() {
		if cerr := batch.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for _, p := range sets {
		if err := batch.Set(p.Key, p.Value); err != nil {
			return fmt.Errorf("batch set: %w", err)
		}
	}
	for _, k := range deletes {
		if err := batch.Delete(k); err != nil {
			return fmt.Errorf("batch delete: %w", err)
		}
	}
	return batch.WriteSync()
}
