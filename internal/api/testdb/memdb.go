// Package testdb provides an in-memory, btree backed KVStore.
package testdb

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/google/btree"

	"github.com/CosmWasm/cellvm/types"
)

const (
	// The approximate number of items and children per B-tree node. Tuned with benchmarks.
	bTreeDegree = 32
)

// item is a btree.Item with byte slices as keys and values
type item struct {
	key   []byte
	value []byte
}

// Less implements btree.Item.
func (i *item) Less(other btree.Item) bool {
	// this considers nil == []byte{}, but that's ok since we handle nil endpoints
	// in iterators specially anyway
	return bytes.Compare(i.key, other.(*item).key) == -1
}

// newKey creates a new key item.
func newKey(key []byte) *item {
	return &item{key: key}
}

// newPair creates a new pair item.
func newPair(key, value []byte) *item {
	return &item{key: key, value: value}
}

// MemDB is an in-memory KVStore backed by a B-tree.
// Keys and values are copied on the way in and on the way out.
//
// It also counts reads and writes so tests can assert which operations
// touched the store.
type MemDB struct {
	mtx   sync.RWMutex
	btree *btree.BTree

	reads   int
	writes  int
	deletes int
}

var (
	_ types.KVStore     = (*MemDB)(nil)
	_ types.BatchWriter = (*MemDB)(nil)
)

// NewMemDB creates a new in-memory database.
func NewMemDB() *MemDB {
	return &MemDB{
		btree: btree.New(bTreeDegree),
	}
}

// Get implements types.KVStore. It returns nil for a missing key.
func (db *MemDB) Get(key []byte) []byte {
	mustKey(key)
	db.mtx.Lock()
	defer db.mtx.Unlock()
	db.reads++

	i := db.btree.Get(newKey(key))
	if i == nil {
		return nil
	}
	return bytes.Clone(i.(*item).value)
}

// Has reports whether key is present without counting as a read.
func (db *MemDB) Has(key []byte) bool {
	mustKey(key)
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return db.btree.Has(newKey(key))
}

// Set implements types.KVStore.
func (db *MemDB) Set(key []byte, value []byte) {
	mustKey(key)
	if value == nil {
		panic(ErrValueNil)
	}
	db.mtx.Lock()
	defer db.mtx.Unlock()
	db.set(key, value)
}

func (db *MemDB) set(key, value []byte) {
	db.writes++
	db.btree.ReplaceOrInsert(newPair(bytes.Clone(key), bytes.Clone(value)))
}

// Delete implements types.KVStore.
func (db *MemDB) Delete(key []byte) {
	mustKey(key)
	db.mtx.Lock()
	defer db.mtx.Unlock()
	db.delete(key)
}

func (db *MemDB) delete(key []byte) {
	db.deletes++
	db.btree.Delete(newKey(key))
}

// WriteBatch implements types.BatchWriter. All writes become visible at once.
func (db *MemDB) WriteBatch(sets []types.Pair, deletes [][]byte) error {
	for _, p := range sets {
		if len(p.Key) == 0 {
			return ErrKeyEmpty
		}
		if p.Value == nil {
			return ErrValueNil
		}
	}
	for _, k := range deletes {
		if len(k) == 0 {
			return ErrKeyEmpty
		}
	}
	db.mtx.Lock()
	defer db.mtx.Unlock()
	for _, p := range sets {
		db.set(p.Key, p.Value)
	}
	for _, k := range deletes {
		db.delete(k)
	}
	return nil
}

// Iterator implements types.KVStore.
// It iterates a snapshot taken under a read-lock; later writes are not seen.
func (db *MemDB) Iterator(start, end []byte) Iterator {
	mustDomain(start, end)
	return newMemDBIterator(db, start, end, false)
}

// ReverseIterator implements types.KVStore.
// It iterates a snapshot taken under a read-lock; later writes are not seen.
func (db *MemDB) ReverseIterator(start, end []byte) Iterator {
	mustDomain(start, end)
	return newMemDBIterator(db, start, end, true)
}

// Len returns the number of stored keys.
func (db *MemDB) Len() int {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return db.btree.Len()
}

// Stats reports how many reads, writes and deletes the store served.
func (db *MemDB) Stats() (reads, writes, deletes int) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return db.reads, db.writes, db.deletes
}

// ResetStats zeroes the operation counters.
func (db *MemDB) ResetStats() {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	db.reads, db.writes, db.deletes = 0, 0, 0
}

func mustKey(key []byte) {
	if len(key) == 0 {
		panic(ErrKeyEmpty)
	}
}

func mustDomain(start, end []byte) {
	if (start != nil && len(start) == 0) || (end != nil && len(end) == 0) {
		panic(ErrKeyEmpty)
	}
	if start != nil && end != nil && bytes.Compare(start, end) > 0 {
		panic(fmt.Sprintf("invalid iterator domain: start %X after end %X", start, end))
	}
}
