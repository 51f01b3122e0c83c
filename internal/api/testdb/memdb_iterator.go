package testdb

import (
	"bytes"

	"github.com/google/btree"
)

// memDBIterator walks a snapshot of the items in [start, end).
// The snapshot is taken under the read lock when the iterator is created, so
// writes made while iterating are not observed.
type memDBIterator struct {
	items []*item
	pos   int
	start []byte
	end   []byte
}

var _ Iterator = (*memDBIterator)(nil)

func newMemDBIterator(db *MemDB, start, end []byte, reverse bool) *memDBIterator {
	iter := &memDBIterator{
		start: start,
		end:   end,
	}

	db.mtx.RLock()
	defer db.mtx.RUnlock()
	if reverse {
		db.traverseDescending(start, end, iter.visitor)
	} else {
		db.traverseAscending(start, end, iter.visitor)
	}
	return iter
}

func (i *memDBIterator) visitor(bi btree.Item) bool {
	i.items = append(i.items, bi.(*item))
	return true
}

// traverseAscending visits [start, end) in ascending order
func (db *MemDB) traverseAscending(start, end []byte, visit btree.ItemIterator) {
	switch {
	case start == nil && end == nil:
		db.btree.Ascend(visit)
	case end == nil:
		db.btree.AscendGreaterOrEqual(newKey(start), visit)
	case start == nil:
		db.btree.AscendLessThan(newKey(end), visit)
	default:
		db.btree.AscendRange(newKey(start), newKey(end), visit)
	}
}

// traverseDescending visits [start, end) in descending order. The btree
// descends over (start, end], so end is skipped and start is checked by hand.
func (db *MemDB) traverseDescending(start, end []byte, visit btree.ItemIterator) {
	bounded := func(bi btree.Item) bool {
		key := bi.(*item).key
		if end != nil && bytes.Equal(key, end) {
			return true
		}
		if start != nil && bytes.Compare(key, start) < 0 {
			return false
		}
		return visit(bi)
	}
	if end == nil {
		db.btree.Descend(bounded)
	} else {
		db.btree.DescendLessOrEqual(newKey(end), bounded)
	}
}

// Close implements Iterator.
func (i *memDBIterator) Close() error {
	i.items = nil
	return nil
}

// Domain implements Iterator.
func (i *memDBIterator) Domain() (start []byte, end []byte) {
	return i.start, i.end
}

// Valid implements Iterator.
func (i *memDBIterator) Valid() bool {
	return i.pos < len(i.items)
}

// Next implements Iterator.
func (i *memDBIterator) Next() {
	i.assertIsValid()
	i.pos++
}

// Error implements Iterator.
func (*memDBIterator) Error() error {
	return nil
}

// Key implements Iterator.
func (i *memDBIterator) Key() []byte {
	i.assertIsValid()
	return bytes.Clone(i.items[i.pos].key)
}

// Value implements Iterator.
func (i *memDBIterator) Value() []byte {
	i.assertIsValid()
	return bytes.Clone(i.items[i.pos].value)
}

func (i *memDBIterator) assertIsValid() {
	if !i.Valid() {
		panic("iterator is invalid")
	}
}
