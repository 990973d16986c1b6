// Package workload defines the deterministic benchmark behaviors run against
// each container variant. Every workload is a pure function of its operation
// count n: given the same n, it performs a byte-identical operation sequence
// on every invocation, so samples taken at varying sizes stay comparable
// across runs and across container implementations.
package workload

import (
	"fmt"

	"github.com/weiihann/hashmark/table"
)

// Key streams. Both recurrences are seeded at k = 1 and are fixed and public
// on purpose: a cryptographic or OS-provided source would break
// reproducibility.
const (
	lcgMul = 1103515245
	lcgAdd = 12345

	mulFactor  = 31
	mulModulus = 8675310 // 8675309, a prime, plus 1
)

// lcgNext advances the linear-congruential stream. The multiplier is 1 mod 4
// and the increment is odd, so the recurrence permutes the full 64-bit key
// space and never repeats a key within a workload horizon.
func lcgNext(k table.Key) table.Key { return k*lcgMul + lcgAdd }

// mulNext advances the multiplicative stream modulo mulModulus.
func mulNext(k table.Key) table.Key { return k * mulFactor % mulModulus }

// Trial-count classes. Workloads whose timing curves are noisier get more
// samples.
const (
	goodTrials      = 10
	squirrelyTrials = 25
)

// Fixture is one workload invocation bound to fresh container state. Setup
// builds whatever the timed phase needs; Run performs the timed operation
// sequence and returns an error on the first correctness violation.
type Fixture interface {
	Setup(n int)
	Run(n int) error
}

// Workload describes a named deterministic behavior. New constructs a fresh
// Fixture; containers it creates are scoped to that single invocation.
type Workload struct {
	Name   string
	Trials int
	New    func(newTable func() table.Table) Fixture
}

// All returns the full suite in execution order.
func All() []Workload {
	return []Workload{
		{Name: "InsertLarge", Trials: squirrelyTrials,
			New: func(nt func() table.Table) Fixture {
				return &insertLarge{table: nt()}
			}},
		{Name: "InsertSmall", Trials: goodTrials,
			New: func(nt func() table.Table) Fixture {
				return &insertSmall{newTable: nt}
			}},
		{Name: "LookupHit", Trials: goodTrials,
			New: func(nt func() table.Table) Fixture {
				return &lookupHit{table: nt()}
			}},
		{Name: "LookupMiss", Trials: goodTrials,
			New: func(nt func() table.Table) Fixture {
				return &lookupMiss{table: nt()}
			}},
		{Name: "Worklist", Trials: goodTrials,
			New: func(nt func() table.Table) Fixture {
				return &worklist{table: nt()}
			}},
		{Name: "Delete", Trials: squirrelyTrials,
			New: func(nt func() table.Table) Fixture {
				return &deleteAll{table: nt()}
			}},
		{Name: "LookupAfterDelete", Trials: goodTrials,
			New: func(nt func() table.Table) Fixture {
				return &lookupAfterDelete{table: nt()}
			}},
		{Name: "InsertAfterDelete", Trials: goodTrials,
			New: func(nt func() table.Table) Fixture {
				return &insertAfterDelete{table: nt()}
			}},
	}
}

// Find returns the named workload.
func Find(name string) (Workload, bool) {
	for _, w := range All() {
		if w.Name == name {
			return w, true
		}
	}

	return Workload{}, false
}

// insertLarge grows one long-lived container by n pseudorandom keys.
type insertLarge struct {
	table table.Table
}

func (f *insertLarge) Setup(int) {}

func (f *insertLarge) Run(n int) error {
	k := table.Key(1)
	for i := 0; i < n; i++ {
		f.table.Set(k, k)
		k = lcgNext(k)
	}

	return nil
}

// insertSmall repeatedly builds a fresh container of pseudorandom size
// (exponentially distributed, median around 100 entries) and discards it,
// until n total insertions have been done.
//
// Building containers of one particular size would be simpler, but every
// implementation has particular sizes at which it rehashes, an expensive
// step that is meant to be amortized across the other inserts. Varying the
// container size keeps the benchmark from rewarding or punishing any one
// rehashing threshold.
type insertSmall struct {
	newTable func() table.Table
}

func (f *insertSmall) Setup(int) {}

func (f *insertSmall) Run(n int) error {
	k := table.Key(1)
	for n > 0 {
		t := f.newTable()

		for {
			t.Set(k, k)
			k = lcgNext(k)
			n--

			if n == 0 || k%145 == 0 {
				break
			}
		}
	}

	return nil
}

// lookupHit reads back every key inserted along the multiplicative stream.
type lookupHit struct {
	table table.Table
}

func (f *lookupHit) Setup(n int) {
	k := table.Key(1)
	for i := 0; i < n; i++ {
		f.table.Set(k, k)

		k = mulNext(k)
		if k == 1 {
			break
		}
	}
}

func (f *lookupHit) Run(n int) error {
	k := table.Key(1)
	for i := 0; i < n; i++ {
		if got := f.table.Get(k); got != k {
			return fmt.Errorf("lookup of key %d returned %d, want %d",
				k, got, k)
		}

		k = mulNext(k)
	}

	return nil
}

// lookupMiss queries keys offset past the stream's modulus, which are
// guaranteed never to have been inserted.
type lookupMiss struct {
	table table.Table
}

func (f *lookupMiss) Setup(n int) {
	k := table.Key(1)
	for i := 0; i < n; i++ {
		f.table.Set(k, k)

		k = mulNext(k)
		if k == 1 {
			break
		}
	}
}

func (f *lookupMiss) Run(n int) error {
	k := table.Key(1)
	for i := 0; i < n; i++ {
		if got := f.table.Get(k + mulModulus); got != 0 {
			return fmt.Errorf("lookup of absent key %d returned %d",
				k+mulModulus, got)
		}

		k = mulNext(k)
	}

	return nil
}

// worklistPending is the steady-state size of the worklist's inserted-but-
// not-yet-removed set.
const worklistPending = 700

// worklist adds and removes entries in FIFO order, holding the pending set
// at a constant size while keys churn through the container.
type worklist struct {
	table table.Table
	r, w  table.Key
}

func (f *worklist) Setup(int) {
	f.r = 1
	f.w = 1

	for i := 0; i < worklistPending; i++ {
		f.table.Set(f.w, f.w)
		f.w = lcgNext(f.w)
	}
}

func (f *worklist) Run(n int) error {
	for i := 0; i < n; i++ {
		f.table.Set(f.w, f.w)
		f.w = lcgNext(f.w)

		if !f.table.Remove(f.r) {
			return fmt.Errorf("removal of pending key %d failed", f.r)
		}
		f.r = lcgNext(f.r)
	}

	return nil
}

// coprimeTo7And11 bumps n upward until it shares no factor with the setup
// and removal strides, so both walks visit every residue of [0, n).
func coprimeTo7And11(n int) int {
	for n%7 == 0 || n%11 == 0 {
		n++
	}

	return n
}

// deleteAll fills a container via a stride-7 walk over the key space and
// then empties it via a stride-11 walk, exercising bulk eviction.
type deleteAll struct {
	table table.Table
}

func (f *deleteAll) Setup(n int) {
	n = coprimeTo7And11(n)

	k := 0
	for i := 0; i < n; i++ {
		f.table.Set(table.Key(k+1), 0)
		k = (k + 7) % n
	}
}

func (f *deleteAll) Run(n int) error {
	n = coprimeTo7And11(n)

	k := 0
	for i := 0; i < n; i++ {
		if !f.table.Remove(table.Key(k + 1)) {
			return fmt.Errorf("removal of inserted key %d failed", k+1)
		}
		k = (k + 11) % n
	}

	return nil
}

// survivorSpan is the key range lookupAfterDelete fills and then thins out.
const survivorSpan = 50000

// lookupAfterDelete reads a sparse surviving set: setup keeps only every
// 256th key, so most lookups land on deleted slots.
type lookupAfterDelete struct {
	table table.Table
}

func (f *lookupAfterDelete) Setup(int) {
	for i := 1; i <= survivorSpan; i++ {
		f.table.Set(table.Key(i), table.Value(i))
	}

	for i := 1; i <= survivorSpan; i++ {
		if i&0xff != 0 {
			f.table.Remove(table.Key(i))
		}
	}
}

func (f *lookupAfterDelete) Run(n int) error {
	for i := 1; i <= n; i++ {
		k := table.Key(i % survivorSpan)

		var want table.Value
		if k&0xff == 0 {
			want = table.Value(k)
		}

		if got := f.table.Get(k); got != want {
			return fmt.Errorf("lookup of key %d returned %d, want %d",
				k, got, want)
		}
	}

	return nil
}

// insertAfterDelete removes and immediately reinserts each key of a filled
// container, exercising the delete/reinsert path without net growth.
type insertAfterDelete struct {
	table table.Table
}

func (f *insertAfterDelete) Setup(n int) {
	for i := 1; i <= n; i++ {
		f.table.Set(table.Key(i), table.Value(i))
	}
}

func (f *insertAfterDelete) Run(n int) error {
	for i := 1; i <= n; i++ {
		k := table.Key(i)
		f.table.Remove(k)
		f.table.Set(k, k)
	}

	return nil
}
