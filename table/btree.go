package table

import (
	"github.com/google/btree"
)

const (
	btreeDegree = 32

	// A node holds up to 2*degree-1 items and 2*degree child pointers.
	btreeNodeItems = 2*btreeDegree - 1
	btreeNodeBytes = btreeNodeItems*entryBytes + 2*btreeDegree*8 + 48
)

type kv struct {
	k Key
	v Value
}

func kvLess(a, b kv) bool { return a.k < b.k }

// btreeTable adapts a generic B-tree to the Table contract. An ordered
// container pays O(log n) per operation, giving the suite a deliberately
// different cost shape to compare the hash-shaped variants against.
// Footprint assumes the steady-state node fill of roughly one degree's worth
// of items per node.
type btreeTable struct {
	t *btree.BTreeG[kv]
}

func newBTreeTable() Table {
	return &btreeTable{t: btree.NewG(btreeDegree, kvLess)}
}

func (t *btreeTable) Set(k Key, v Value) {
	t.t.ReplaceOrInsert(kv{k: k, v: v})
}

func (t *btreeTable) Get(k Key) Value {
	item, ok := t.t.Get(kv{k: k})
	if !ok {
		return 0
	}

	return item.v
}

func (t *btreeTable) Remove(k Key) bool {
	_, ok := t.t.Delete(kv{k: k})

	return ok
}

func (t *btreeTable) ByteSize(opt ByteSizeOption) uint64 {
	count := uint64(t.t.Len())
	nodes := count/btreeDegree + 1

	if opt == BytesAllocated {
		return nodes * btreeNodeBytes
	}

	return nodes*48 + count*entryBytes
}
