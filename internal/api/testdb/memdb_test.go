package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/cellvm/types"
)

func fill(t *testing.T, db *MemDB, keys ...string) {
	t.Helper()
	for _, k := range keys {
		db.Set([]byte(k), []byte("v"+k))
	}
}

func collect(t *testing.T, iter Iterator) []string {
	t.Helper()
	defer func() {
		require.NoError(t, iter.Close())
	}()
	var keys []string
	for ; iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
		require.Equal(t, "v"+string(iter.Key()), string(iter.Value()))
	}
	require.NoError(t, iter.Error())
	return keys
}

func TestMemDBGetSetDelete(t *testing.T) {
	db := NewMemDB()
	require.Nil(t, db.Get([]byte("a")))

	db.Set([]byte("a"), []byte{1})
	require.Equal(t, []byte{1}, db.Get([]byte("a")))
	require.True(t, db.Has([]byte("a")))

	// empty values are stored, not treated as missing
	db.Set([]byte("b"), []byte{})
	require.NotNil(t, db.Get([]byte("b")))

	db.Delete([]byte("a"))
	require.Nil(t, db.Get([]byte("a")))
	require.Equal(t, 1, db.Len())
}

func TestMemDBCopiesValues(t *testing.T) {
	db := NewMemDB()
	value := []byte{1, 2, 3}
	db.Set([]byte("k"), value)
	value[0] = 9

	got := db.Get([]byte("k"))
	require.Equal(t, []byte{1, 2, 3}, got)
	got[1] = 9
	require.Equal(t, []byte{1, 2, 3}, db.Get([]byte("k")))
}

func TestMemDBRejectsInvalidInput(t *testing.T) {
	db := NewMemDB()
	require.PanicsWithValue(t, ErrKeyEmpty, func() { db.Get(nil) })
	require.PanicsWithValue(t, ErrKeyEmpty, func() { db.Set([]byte{}, []byte{1}) })
	require.PanicsWithValue(t, ErrValueNil, func() { db.Set([]byte("k"), nil) })
}

func TestMemDBStats(t *testing.T) {
	db := NewMemDB()
	db.Set([]byte("a"), []byte{1})
	db.Get([]byte("a"))
	db.Get([]byte("b"))
	db.Delete([]byte("a"))

	reads, writes, deletes := db.Stats()
	assert.Equal(t, 2, reads)
	assert.Equal(t, 1, writes)
	assert.Equal(t, 1, deletes)

	db.ResetStats()
	reads, writes, deletes = db.Stats()
	assert.Zero(t, reads+writes+deletes)
}

func TestMemDBWriteBatch(t *testing.T) {
	db := NewMemDB()
	fill(t, db, "a", "b")

	err := db.WriteBatch([]types.Pair{{Key: []byte("c"), Value: []byte("vc")}}, [][]byte{[]byte("a")})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, collect(t, db.Iterator(nil, nil)))

	// invalid batches are rejected as a whole
	err = db.WriteBatch([]types.Pair{{Key: []byte("d"), Value: []byte("vd")}, {Key: nil, Value: []byte{1}}}, nil)
	require.ErrorIs(t, err, ErrKeyEmpty)
	require.Nil(t, db.Get([]byte("d")))
}

func TestMemDBIterator(t *testing.T) {
	db := NewMemDB()
	fill(t, db, "a", "b", "c", "d", "e")

	specs := map[string]struct {
		start, end []byte
		want       []string
		wantRev    []string
	}{
		"full range": {
			want:    []string{"a", "b", "c", "d", "e"},
			wantRev: []string{"e", "d", "c", "b", "a"},
		},
		"open end": {
			start:   []byte("c"),
			want:    []string{"c", "d", "e"},
			wantRev: []string{"e", "d", "c"},
		},
		"open start": {
			end:     []byte("c"),
			want:    []string{"a", "b"},
			wantRev: []string{"b", "a"},
		},
		"bounded": {
			start:   []byte("b"),
			end:     []byte("d"),
			want:    []string{"b", "c"},
			wantRev: []string{"c", "b"},
		},
		"keys between items": {
			start:   []byte("bb"),
			end:     []byte("dd"),
			want:    []string{"c", "d"},
			wantRev: []string{"d", "c"},
		},
		"empty": {
			start: []byte("x"),
			end:   []byte("y"),
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, spec.want, collect(t, db.Iterator(spec.start, spec.end)))
			assert.Equal(t, spec.wantRev, collect(t, db.ReverseIterator(spec.start, spec.end)))
		})
	}
}

func TestMemDBIteratorSnapshot(t *testing.T) {
	db := NewMemDB()
	fill(t, db, "a", "b")

	iter := db.Iterator(nil, nil)
	start, end := iter.Domain()
	require.Nil(t, start)
	require.Nil(t, end)

	db.Set([]byte("c"), []byte("vc"))
	require.Equal(t, []string{"a", "b"}, collect(t, iter))
	require.Panics(t, func() { iter.Next() })

	// an open iterator holds no lock
	rev := db.ReverseIterator(nil, nil)
	db.Delete([]byte("a"))
	require.Equal(t, []string{"c", "b", "a"}, collect(t, rev))
	require.Equal(t, []string{"b", "c"}, collect(t, db.Iterator(nil, nil)))
}
