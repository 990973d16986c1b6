// Package report emits benchmark results as nested brace/bracket text meant
// for offline plotting. Output streams incrementally so partial results stay
// visible while a long suite runs; comma placement is handled uniformly so
// every code path emits well-formed structure.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/weiihann/hashmark/harness"
)

// Emitter writes suite output. A full suite is a brace-delimited object of
// workloads, each of which is an object of per-variant trial arrays:
//
//	{
//	"InsertLarge": {
//		"builtin": [
//			[123, 0.1042],
//			...
//		],
//		...
//	},
//	...
//	}
//
// A single-workload run uses BeginGroup/EndGroup directly and emits just the
// variant object. The first write error sticks and suppresses further
// output; check Err after finishing.
type Emitter struct {
	w         io.Writer
	workloads int
	variants  int
	err       error
}

// NewEmitter creates an Emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

func (e *Emitter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}

	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// BeginSuite opens the outer object of a full-suite run.
func (e *Emitter) BeginSuite() {
	e.workloads = 0
	e.printf("{\n")
}

// BeginWorkload opens the named workload's variant object.
func (e *Emitter) BeginWorkload(name string) {
	if e.workloads > 0 {
		e.printf(",\n")
	}
	e.workloads++

	e.printf("%q: ", name)
	e.BeginGroup()
}

// EndWorkload closes the current workload's variant object.
func (e *Emitter) EndWorkload() {
	e.EndGroup()
}

// EndSuite closes the outer object and terminates the line.
func (e *Emitter) EndSuite() {
	e.printf("\n}")
	e.Finish()
}

// BeginGroup opens a variant object.
func (e *Emitter) BeginGroup() {
	e.variants = 0
	e.printf("{\n")
}

// EndGroup closes a variant object.
func (e *Emitter) EndGroup() {
	e.printf("\n}")
}

// WriteTrials emits one variant's trial array inside the current group.
func (e *Emitter) WriteTrials(variant string, recs []harness.TrialRecord) {
	if e.variants > 0 {
		e.printf(",\n")
	}
	e.variants++

	e.printf("\t%q: [\n", variant)

	for i, r := range recs {
		sep := ","
		if i == len(recs)-1 {
			sep = ""
		}

		e.printf("\t\t[%d, %s]%s\n", r.Ops,
			strconv.FormatFloat(r.Seconds, 'g', -1, 64), sep)
	}

	e.printf("\t]")
}

// Finish terminates the output with a newline.
func (e *Emitter) Finish() {
	e.printf("\n")
}

// Err reports the first write error, if any.
func (e *Emitter) Err() error {
	return e.err
}
