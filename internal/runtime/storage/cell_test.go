package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/cellvm/internal/api/testdb"
	"github.com/CosmWasm/cellvm/internal/runtime/alloc"
	"github.com/CosmWasm/cellvm/internal/runtime/codec"
	"github.com/CosmWasm/cellvm/types"
)

func newU32Cell(kv types.KVStore) *Cell[uint32] {
	return Allocate[uint32](alloc.FromOrigin(types.Address{}), KVBackend{KV: kv}, codec.U32{})
}

func TestAllocateDoesNotTouchStorage(t *testing.T) {
	kv := testdb.NewMemDB()
	a := alloc.FromOrigin(types.Address{})
	first := Allocate[uint32](a, KVBackend{KV: kv}, codec.U32{})
	second := Allocate[uint64](a, KVBackend{KV: kv}, codec.U64{})

	reads, writes, _ := kv.Stats()
	assert.Zero(t, reads)
	assert.Zero(t, writes)
	assert.NotEqual(t, first.Address(), second.Address())
	assert.False(t, first.Loaded())
	assert.False(t, first.Dirty())
}

func TestCellLazyLoad(t *testing.T) {
	kv := testdb.NewMemDB()
	cell := newU32Cell(kv)
	kv.Set(cell.Address().Bytes(), codec.U32{}.Encode(7))
	kv.ResetStats()

	v, err := cell.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
	assert.True(t, cell.Loaded())
	assert.False(t, cell.Dirty())

	// the loaded value is authoritative: no second read
	kv.Set(cell.Address().Bytes(), codec.U32{}.Encode(8))
	v, err = cell.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
	reads, _, _ := kv.Stats()
	assert.Equal(t, 1, reads)
}

func TestCellSetDoesNotWrite(t *testing.T) {
	kv := testdb.NewMemDB()
	cell := newU32Cell(kv)

	cell.Set(5)
	assert.True(t, cell.Dirty())
	assert.Zero(t, kv.Len())

	v, err := cell.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(5), v)
	reads, writes, _ := kv.Stats()
	assert.Zero(t, reads)
	assert.Zero(t, writes)
}

func TestCellWriteBack(t *testing.T) {
	kv := testdb.NewMemDB()
	cell := newU32Cell(kv)

	cell.Set(43)
	require.NoError(t, cell.Flush())
	assert.False(t, cell.Dirty())
	assert.Equal(t, codec.U32{}.Encode(43), kv.Get(cell.Address().Bytes()))

	// clean now: a second flush writes nothing
	kv.ResetStats()
	require.NoError(t, cell.Flush())
	_, writes, _ := kv.Stats()
	assert.Zero(t, writes)
}

func TestCellNoSuperfluousWrites(t *testing.T) {
	kv := testdb.NewMemDB()
	unloaded := newU32Cell(kv)
	require.NoError(t, unloaded.Flush())

	kv.Set(unloaded.Address().Bytes(), codec.U32{}.Encode(1))
	kv.ResetStats()
	clean := newU32Cell(kv)
	_, err := clean.Get()
	require.NoError(t, err)
	require.NoError(t, clean.Flush())

	_, writes, _ := kv.Stats()
	assert.Zero(t, writes)
}

func TestCellMutate(t *testing.T) {
	kv := testdb.NewMemDB()
	cell := newU32Cell(kv)
	kv.Set(cell.Address().Bytes(), codec.U32{}.Encode(1))

	require.NoError(t, cell.Mutate(func(v uint32) uint32 { return v + 42 }))
	assert.True(t, cell.Dirty())
	v, err := cell.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(43), v)
}

func TestCellMissingValue(t *testing.T) {
	cell := newU32Cell(testdb.NewMemDB())

	_, err := cell.Get()
	require.ErrorIs(t, err, types.ErrMissingValue)
	var storageErr *types.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, cell.Address(), storageErr.Address)
	assert.False(t, cell.Loaded())

	err = cell.Mutate(func(v uint32) uint32 { return v + 1 })
	require.ErrorIs(t, err, types.ErrMissingValue)
	assert.False(t, cell.Dirty())
}

func TestCellCorruptValue(t *testing.T) {
	kv := testdb.NewMemDB()
	cell := newU32Cell(kv)
	kv.Set(cell.Address().Bytes(), []byte{1, 2})

	_, err := cell.Get()
	require.ErrorIs(t, err, types.ErrCorruptStorage)
	require.ErrorIs(t, err, types.ErrDecode)
	assert.False(t, cell.Loaded())
}

type failingBackend struct {
	err error
}

func (f failingBackend) Read(types.Address) ([]byte, error) { return nil, f.err }
func (f failingBackend) Write(types.Address, []byte) error  { return f.err }

func TestCellBackendErrors(t *testing.T) {
	boom := errors.New("boom")
	cell := Allocate[uint32](alloc.FromOrigin(types.Address{}), failingBackend{err: boom}, codec.U32{})

	_, err := cell.Get()
	require.ErrorIs(t, err, boom)

	cell.Set(1)
	require.ErrorIs(t, cell.Flush(), boom)
	assert.True(t, cell.Dirty(), "a failed flush leaves the cell dirty")
}

func TestFlushAllStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	kv := testdb.NewMemDB()
	a := alloc.FromOrigin(types.Address{})
	ok := Allocate[uint32](a, KVBackend{KV: kv}, codec.U32{})
	bad := Allocate[uint32](a, failingBackend{err: boom}, codec.U32{})
	after := Allocate[uint32](a, KVBackend{KV: kv}, codec.U32{})
	ok.Set(1)
	bad.Set(2)
	after.Set(3)

	require.ErrorIs(t, FlushAll(ok, bad, after), boom)
	assert.False(t, ok.Dirty())
	assert.True(t, after.Dirty())
}
