package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/cellvm/internal/api/testdb"
	"github.com/CosmWasm/cellvm/types"
)

func TestCacheStoreBuffersWrites(t *testing.T) {
	parent := testdb.NewMemDB()
	parent.Set([]byte("a"), []byte{1})
	parent.Set([]byte("b"), []byte{2})

	cache := NewCacheStore(parent)
	cache.Set([]byte("a"), []byte{10})
	cache.Set([]byte("c"), []byte{3})
	cache.Delete([]byte("b"))

	// reads see the buffer
	assert.Equal(t, []byte{10}, cache.Get([]byte("a")))
	assert.Nil(t, cache.Get([]byte("b")))
	assert.Equal(t, []byte{3}, cache.Get([]byte("c")))
	assert.Equal(t, 3, cache.Pending())

	// the parent does not
	assert.Equal(t, []byte{1}, parent.Get([]byte("a")))
	assert.Equal(t, []byte{2}, parent.Get([]byte("b")))
	assert.Nil(t, parent.Get([]byte("c")))

	require.NoError(t, cache.Write())
	assert.Zero(t, cache.Pending())
	assert.Equal(t, []byte{10}, parent.Get([]byte("a")))
	assert.Nil(t, parent.Get([]byte("b")))
	assert.Equal(t, []byte{3}, parent.Get([]byte("c")))
}

func TestCacheStoreDiscard(t *testing.T) {
	parent := testdb.NewMemDB()
	parent.Set([]byte("a"), []byte{1})

	cache := NewCacheStore(parent)
	cache.Set([]byte("a"), []byte{2})
	cache.Discard()
	require.NoError(t, cache.Write())

	assert.Equal(t, []byte{1}, cache.Get([]byte("a")))
	assert.Equal(t, []byte{1}, parent.Get([]byte("a")))
	_, writes, _ := parent.Stats()
	assert.Equal(t, 1, writes)
}

func TestCacheStoreEmptyWriteTouchesNothing(t *testing.T) {
	parent := testdb.NewMemDB()
	cache := NewCacheStore(parent)
	require.NoError(t, cache.Write())
	_, writes, deletes := parent.Stats()
	assert.Zero(t, writes+deletes)
}

func TestCacheStoreCopiesValues(t *testing.T) {
	cache := NewCacheStore(testdb.NewMemDB())
	v := []byte{1}
	cache.Set([]byte("a"), v)
	v[0] = 2
	assert.Equal(t, []byte{1}, cache.Get([]byte("a")))
}

func TestCacheStoreIterator(t *testing.T) {
	parent := testdb.NewMemDB()
	for _, k := range []string{"a", "b", "d"} {
		parent.Set([]byte(k), []byte(k))
	}
	cache := NewCacheStore(parent)
	cache.Set([]byte("c"), []byte("c"))
	cache.Set([]byte("e"), []byte("e"))
	cache.Delete([]byte("b"))

	assert.Equal(t, []string{"a", "c", "d", "e"}, keys(t, cache.Iterator(nil, nil)))
	assert.Equal(t, []string{"e", "d", "c", "a"}, keys(t, cache.ReverseIterator(nil, nil)))
	assert.Equal(t, []string{"c", "d"}, keys(t, cache.Iterator([]byte("b"), []byte("e"))))

	iter := cache.Iterator([]byte("c"), nil)
	start, end := iter.Domain()
	assert.Equal(t, []byte("c"), start)
	assert.Nil(t, end)
	require.True(t, iter.Valid())
	assert.Equal(t, []byte("c"), iter.Value())
	require.NoError(t, iter.Close())
	assert.Panics(t, func() { iter.Key() })
}

var errClose = errors.New("close failed")

// closeFailingDB hands out iterators whose Close fails.
type closeFailingDB struct {
	*testdb.MemDB
}

func (db closeFailingDB) Iterator(start, end []byte) types.Iterator {
	return closeFailingIterator{db.MemDB.Iterator(start, end)}
}

type closeFailingIterator struct {
	types.Iterator
}

func (closeFailingIterator) Close() error {
	return errClose
}

func TestCacheStoreIteratorReportsParentCloseError(t *testing.T) {
	parent := testdb.NewMemDB()
	parent.Set([]byte("a"), []byte("a"))
	cache := NewCacheStore(closeFailingDB{parent})

	iter := cache.Iterator(nil, nil)
	require.True(t, iter.Valid())
	assert.Equal(t, []byte("a"), iter.Key())
	require.ErrorIs(t, iter.Error(), errClose)
	require.NoError(t, iter.Close())
}
