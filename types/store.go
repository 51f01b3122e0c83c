package types

// KVStore is the host key-value store that backs all storage cells.
type KVStore interface {
	Get(key []byte) []byte
	Set(key, value []byte)
	Delete(key []byte)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid.
	// Iterator must be closed by caller.
	// CONTRACT: No writes may happen within a domain while an iterator exists over it.
	Iterator(start, end []byte) Iterator

	// ReverseIterator over a domain of keys in descending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid.
	// Iterator must be closed by caller.
	ReverseIterator(start, end []byte) Iterator
}

// Iterator represents an iterator over a domain of keys.
type Iterator interface {
	// Domain returns the start (inclusive) and end (exclusive) limits of the iterator.
	Domain() (start []byte, end []byte)
	// Valid returns whether the current iterator is valid. Once invalid, the Iterator remains
	// invalid forever.
	Valid() bool
	// Next moves the iterator to the next key in the database, as defined by order of iteration.
	// If Valid returns false, this method will panic.
	Next()
	// Key returns the key at the current position. Panics if the iterator is invalid.
	Key() (key []byte)
	// Value returns the value at the current position. Panics if the iterator is invalid.
	Value() (value []byte)
	// Error returns the last error encountered by the iterator, if any.
	Error() error
	// Close closes the iterator, releasing any allocated resources.
	Close() error
}

// Pair is one key-value write.
type Pair struct {
	Key   []byte
	Value []byte
}

// BatchWriter is implemented by stores that can apply a set of writes atomically.
// Transactions prefer it over one Set call per key when the host store offers it.
type BatchWriter interface {
	WriteBatch(sets []Pair, deletes [][]byte) error
}
