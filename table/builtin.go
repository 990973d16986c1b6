package table

// Footprint constants for the builtin map model. The numbers follow the
// runtime's bucket layout: 8 slots of key/value data, one tophash byte per
// slot, and an overflow pointer, with growth triggered at an average load of
// 6.5 entries per bucket.
const (
	mapSlotsPerBucket = 8
	mapBucketBytes    = mapSlotsPerBucket*entryBytes + mapSlotsPerBucket + 8
	mapHeaderBytes    = 48

	// Load factor 6.5 expressed as a fraction, to keep the accounting in
	// integer arithmetic: grow when 2*count > 13*buckets.
	mapLoadNum = 13
	mapLoadDen = 2
)

// mapTable adapts Go's native map to the Table contract. Footprint is
// answered from an accounting model of the runtime's bucket growth rather
// than heap introspection, so queries stay O(1) and deterministic.
type mapTable struct {
	m       map[Key]Value
	buckets uint64
}

func newMapTable() Table {
	return &mapTable{m: make(map[Key]Value), buckets: 1}
}

func (t *mapTable) Set(k Key, v Value) {
	_, existed := t.m[k]
	t.m[k] = v

	if !existed {
		for mapLoadDen*uint64(len(t.m)) > mapLoadNum*t.buckets {
			t.buckets *= 2
		}
	}
}

func (t *mapTable) Get(k Key) Value {
	return t.m[k]
}

func (t *mapTable) Remove(k Key) bool {
	if _, ok := t.m[k]; !ok {
		return false
	}

	delete(t.m, k)

	return true
}

func (t *mapTable) ByteSize(opt ByteSizeOption) uint64 {
	if opt == BytesAllocated {
		return mapHeaderBytes + t.buckets*mapBucketBytes
	}

	// One tophash byte is touched alongside each entry.
	return mapHeaderBytes + uint64(len(t.m))*(entryBytes+1)
}
