// Package table defines the capability contract every container under
// benchmark must satisfy, and the registry of interchangeable container
// variants. The harness never implements a hash table itself; each variant
// adapts an existing data structure to the contract.
package table

import (
	"fmt"
	"strings"
)

// Key and Value are fixed-width integers used both as map keys and as opaque
// payload. The zero Value is the reserved sentinel meaning "absent".
type (
	Key   = uint64
	Value = uint64
)

// entryBytes is the logical size of one stored entry: 8-byte key plus
// 8-byte value.
const entryBytes = 16

// ByteSizeOption selects which footprint metric a container reports.
type ByteSizeOption int

const (
	// BytesAllocated counts memory reserved by the container, including
	// unused capacity.
	BytesAllocated ByteSizeOption = iota
	// BytesWritten counts bytes of live entry data actually stored.
	BytesWritten
)

// Table is the contract a container under benchmark must satisfy. Lookups of
// absent keys return the zero Value. ByteSize must be cheap enough to call
// after every insertion.
type Table interface {
	Set(k Key, v Value)
	Get(k Key) Value
	Remove(k Key) bool
	ByteSize(opt ByteSizeOption) uint64
}

// Variant names a container implementation and knows how to construct a
// fresh, empty instance of it.
type Variant struct {
	Name string
	New  func() Table
}

// All returns the default variant registry. The scheduler and profiler treat
// this set purely as data; column order in space-profile output follows
// registry order.
func All() []Variant {
	return []Variant{
		{Name: "builtin", New: newMapTable},
		{Name: "lru", New: newLRUTable},
		{Name: "btree", New: newBTreeTable},
	}
}

// Select filters the registry down to the named variants, preserving
// registry order. An empty name list selects every variant.
func Select(names []string) ([]Variant, error) {
	all := All()
	if len(names) == 0 {
		return all, nil
	}

	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[name] = true
	}

	selected := make([]Variant, 0, len(names))

	for _, v := range all {
		if want[v.Name] {
			selected = append(selected, v)
			delete(want, v.Name)
		}
	}

	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for name := range want {
			unknown = append(unknown, name)
		}

		return nil, fmt.Errorf("unknown table variant: %s",
			strings.Join(unknown, ", "))
	}

	return selected, nil
}
