package harness

// TrialRecord is one timed measurement: the operation count requested of the
// workload and the wall-clock seconds its run phase took. Within one
// scheduled sequence, Ops is strictly increasing.
type TrialRecord struct {
	Ops     int
	Seconds float64
}
