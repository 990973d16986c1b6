package table

import (
	lru "github.com/hashicorp/golang-lru/v2/simplelru"
)

// lruCapacity is pinned far above any operation count the scheduler reaches,
// so the backing LRU never evicts and behaves as a plain map with an
// intrusive recency list.
const lruCapacity = 1 << 31

// Per-entry allocation of the backing store's list entry: key, value, and
// two sibling pointers plus the list back-pointer, rounded up to the
// allocator's 48-byte size class.
const lruEntryAllocBytes = 48

// lruTable adapts hashicorp's simplelru to the Table contract. The backing
// structure keeps a map from key to list entry, so the footprint model is
// the builtin map model (pointer-sized slots) plus one heap allocation per
// entry.
type lruTable struct {
	l       *lru.LRU[Key, Value]
	buckets uint64
}

func newLRUTable() Table {
	l, err := lru.NewLRU[Key, Value](lruCapacity, nil)
	if err != nil {
		// Only reachable with a non-positive capacity.
		panic(err)
	}

	return &lruTable{l: l, buckets: 1}
}

func (t *lruTable) Set(k Key, v Value) {
	existed := t.l.Contains(k)
	t.l.Add(k, v)

	if !existed {
		for mapLoadDen*uint64(t.l.Len()) > mapLoadNum*t.buckets {
			t.buckets *= 2
		}
	}
}

func (t *lruTable) Get(k Key) Value {
	v, ok := t.l.Get(k)
	if !ok {
		return 0
	}

	return v
}

func (t *lruTable) Remove(k Key) bool {
	return t.l.Remove(k)
}

func (t *lruTable) ByteSize(opt ByteSizeOption) uint64 {
	count := uint64(t.l.Len())

	if opt == BytesAllocated {
		return mapHeaderBytes + t.buckets*mapBucketBytes +
			count*lruEntryAllocBytes
	}

	// Map slot, tophash byte, and the written fields of the list entry.
	return mapHeaderBytes + count*(entryBytes+1+40)
}
