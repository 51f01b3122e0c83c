// Package db layers thread safety and transactional write buffering over a host KVStore.
package db

import (
	"bytes"
	"sync"

	"github.com/CosmWasm/cellvm/types"
)

// Store implements a thread-safe key-value store
type Store struct {
	mu    sync.RWMutex
	store types.KVStore
}

var _ types.KVStore = (*Store)(nil)

// New creates a new store instance
func New(store types.KVStore) *Store {
	return &Store{
		store: store,
	}
}

// Get retrieves a value by key
func (s *Store) Get(key []byte) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Get(key)
}

// Set stores a key-value pair
func (s *Store) Set(key, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Set(key, value)
}

// Delete removes a key-value pair
func (s *Store) Delete(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Delete(key)
}

// WriteBatch applies sets and deletes under one lock. The wrapped store's own
// batch support is used when it has one.
func (s *Store) WriteBatch(sets []types.Pair, deletes [][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeTo(s.store, sets, deletes)
}

// Iterator creates an iterator over a domain of keys
func (s *Store) Iterator(start, end []byte) types.Iterator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Iterator(start, end)
}

// ReverseIterator creates a reverse iterator over a domain of keys
func (s *Store) ReverseIterator(start, end []byte) types.Iterator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.ReverseIterator(start, end)
}

// PrefixIterator creates an iterator over a domain of keys with a prefix
func (s *Store) PrefixIterator(prefix []byte) types.Iterator {
	return s.Iterator(prefixDomain(prefix))
}

// ReversePrefixIterator creates a reverse iterator over a domain of keys with a prefix
func (s *Store) ReversePrefixIterator(prefix []byte) types.Iterator {
	return s.ReverseIterator(prefixDomain(prefix))
}

// prefixDomain returns the [start, end) domain covering every key with prefix.
// An empty prefix covers the whole store.
func prefixDomain(prefix []byte) (start, end []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	return prefix, calculatePrefixEnd(prefix)
}

// calculatePrefixEnd returns the end key for prefix iteration, or nil when no
// key sorts after every key with the prefix (all 0xff).
func calculatePrefixEnd(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// writeTo applies the writes to kv, as a batch when kv supports it.
func writeTo(kv types.KVStore, sets []types.Pair, deletes [][]byte) error {
	if bw, ok := kv.(types.BatchWriter); ok {
		return bw.WriteBatch(sets, deletes)
	}
	for _, p := range sets {
		kv.Set(p.Key, p.Value)
	}
	for _, k := range deletes {
		kv.Delete(k)
	}
	return nil
}
