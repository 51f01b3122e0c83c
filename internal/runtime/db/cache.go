package db

import (
	"bytes"
	"errors"
	"slices"
	"sync"

	"github.com/CosmWasm/cellvm/types"
)

type cValue struct {
	value   []byte
	deleted bool
}

// CacheStore buffers writes on top of a parent store. Reads see the buffered
// writes first. Nothing reaches the parent before Write; Discard drops the
// buffer. One CacheStore backs one entry point.
type CacheStore struct {
	mu     sync.Mutex
	parent types.KVStore
	cache  map[string]cValue
}

var _ types.KVStore = (*CacheStore)(nil)

// NewCacheStore creates an empty write buffer over parent.
func NewCacheStore(parent types.KVStore) *CacheStore {
	return &CacheStore{
		parent: parent,
		cache:  make(map[string]cValue),
	}
}

// Get returns the buffered value for key, falling back to the parent.
func (c *CacheStore) Get(key []byte) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cv, ok := c.cache[string(key)]; ok {
		if cv.deleted {
			return nil
		}
		return bytes.Clone(cv.value)
	}
	return c.parent.Get(key)
}

// Set buffers a write.
func (c *CacheStore) Set(key, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[string(key)] = cValue{value: bytes.Clone(value)}
}

// Delete buffers a delete.
func (c *CacheStore) Delete(key []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[string(key)] = cValue{deleted: true}
}

// Pending returns the number of buffered writes and deletes.
func (c *CacheStore) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Write flushes the buffer to the parent in key order and empties it.
func (c *CacheStore) Write() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cache) == 0 {
		return nil
	}

	keys := make([]string, 0, len(c.cache))
	for k := range c.cache {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sets []types.Pair
	var deletes [][]byte
	for _, k := range keys {
		cv := c.cache[k]
		if cv.deleted {
			deletes = append(deletes, []byte(k))
		} else {
			sets = append(sets, types.Pair{Key: []byte(k), Value: cv.value})
		}
	}
	if err := writeTo(c.parent, sets, deletes); err != nil {
		return err
	}
	clear(c.cache)
	return nil
}

// Discard drops every buffered write.
func (c *CacheStore) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.cache)
}

// Iterator merges the parent's keys with the buffer over [start, end).
func (c *CacheStore) Iterator(start, end []byte) types.Iterator {
	return c.merged(start, end, false)
}

// ReverseIterator is Iterator in descending key order.
func (c *CacheStore) ReverseIterator(start, end []byte) types.Iterator {
	return c.merged(start, end, true)
}

func (c *CacheStore) merged(start, end []byte, reverse bool) types.Iterator {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := make(map[string][]byte)
	parentIter := c.parent.Iterator(start, end)
	for ; parentIter.Valid(); parentIter.Next() {
		view[string(parentIter.Key())] = parentIter.Value()
	}
	err := errors.Join(parentIter.Error(), parentIter.Close())

	for k, cv := range c.cache {
		if !inDomain([]byte(k), start, end) {
			continue
		}
		if cv.deleted {
			delete(view, k)
		} else {
			view[k] = bytes.Clone(cv.value)
		}
	}

	pairs := make([]types.Pair, 0, len(view))
	for k, v := range view {
		pairs = append(pairs, types.Pair{Key: []byte(k), Value: v})
	}
	slices.SortFunc(pairs, func(a, b types.Pair) int {
		if reverse {
			return bytes.Compare(b.Key, a.Key)
		}
		return bytes.Compare(a.Key, b.Key)
	})
	return &sliceIterator{pairs: pairs, start: start, end: end, err: err}
}

func inDomain(key, start, end []byte) bool {
	if start != nil && bytes.Compare(key, start) < 0 {
		return false
	}
	if end != nil && bytes.Compare(key, end) >= 0 {
		return false
	}
	return true
}

// sliceIterator iterates a sorted snapshot.
type sliceIterator struct {
	pairs      []types.Pair
	pos        int
	start, end []byte
	err        error
}

var _ types.Iterator = (*sliceIterator)(nil)

func (i *sliceIterator) Domain() ([]byte, []byte) { return i.start, i.end }
func (i *sliceIterator) Valid() bool              { return i.pos < len(i.pairs) }
func (i *sliceIterator) Error() error             { return i.err }

func (i *sliceIterator) Close() error {
	i.pairs = nil
	return nil
}

func (i *sliceIterator) Next() {
	i.assertIsValid()
	i.pos++
}

func (i *sliceIterator) Key() []byte {
	i.assertIsValid()
	return i.pairs[i.pos].Key
}

func (i *sliceIterator) Value() []byte {
	i.assertIsValid()
	return i.pairs[i.pos].Value
}

func (i *sliceIterator) assertIsValid() {
	if !i.Valid() {
		panic("iterator is invalid")
	}
}
