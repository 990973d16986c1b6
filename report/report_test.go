package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/weiihann/hashmark/harness"
)

var sampleTrials = []harness.TrialRecord{
	{Ops: 123, Seconds: 0.1042},
	{Ops: 250, Seconds: 0.2511},
	{Ops: 1000, Seconds: 1.003},
}

func TestSuiteOutputParses(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	e.BeginSuite()
	e.BeginWorkload("InsertLarge")
	e.WriteTrials("builtin", sampleTrials)
	e.WriteTrials("lru", sampleTrials[:1])
	e.EndWorkload()
	e.BeginWorkload("Delete")
	e.WriteTrials("builtin", sampleTrials[:2])
	e.EndWorkload()
	e.EndSuite()

	if err := e.Err(); err != nil {
		t.Fatalf("emitter error: %v", err)
	}

	var parsed map[string]map[string][][]float64
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("suite output does not parse: %v\noutput:\n%s",
			err, buf.String())
	}

	if len(parsed) != 2 {
		t.Fatalf("got %d workloads, want 2", len(parsed))
	}

	trials := parsed["InsertLarge"]["builtin"]
	if len(trials) != 3 {
		t.Fatalf("got %d trials, want 3", len(trials))
	}
	if trials[0][0] != 123 || trials[0][1] != 0.1042 {
		t.Errorf("first trial = %v, want [123 0.1042]", trials[0])
	}

	if len(parsed["Delete"]["builtin"]) != 2 {
		t.Errorf("Delete/builtin trials = %d, want 2",
			len(parsed["Delete"]["builtin"]))
	}
}

func TestSingleWorkloadOutputParses(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	e.BeginGroup()
	e.WriteTrials("builtin", sampleTrials)
	e.WriteTrials("btree", sampleTrials)
	e.EndGroup()
	e.Finish()

	if err := e.Err(); err != nil {
		t.Fatalf("emitter error: %v", err)
	}

	var parsed map[string][][]float64
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("group output does not parse: %v\noutput:\n%s",
			err, buf.String())
	}

	if len(parsed) != 2 {
		t.Fatalf("got %d variants, want 2", len(parsed))
	}
	if len(parsed["btree"]) != 3 {
		t.Errorf("btree trials = %d, want 3", len(parsed["btree"]))
	}
}

func TestEmptyTrialArray(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	e.BeginGroup()
	e.WriteTrials("builtin", nil)
	e.EndGroup()
	e.Finish()

	var parsed map[string][][]float64
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output does not parse: %v\noutput:\n%s",
			err, buf.String())
	}
	if len(parsed["builtin"]) != 0 {
		t.Errorf("trials = %v, want empty", parsed["builtin"])
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestWriteErrorSticks(t *testing.T) {
	e := NewEmitter(failWriter{})

	e.BeginSuite()
	e.BeginWorkload("InsertLarge")
	e.WriteTrials("builtin", sampleTrials)
	e.EndWorkload()
	e.EndSuite()

	if e.Err() == nil {
		t.Error("expected sticky write error")
	}
}
