// Package harness schedules timed benchmark trials and profiles container
// memory footprints. Everything runs on a single logical thread: each
// calibration probe, scheduled trial, and profiler insertion completes
// before the next begins.
package harness

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/weiihann/hashmark/table"
	"github.com/weiihann/hashmark/workload"
)

// Default wall-clock budget for one trial. Targets are spread linearly
// between the two bounds.
const (
	DefaultMinDuration = 100 * time.Millisecond
	DefaultMaxDuration = time.Second
)

// calibrationLimit bounds the doubling probe. A fixture that cannot reach
// MinDuration below this many operations is reported as an error rather
// than probed forever.
const calibrationLimit = 1 << 30

// Scheduler produces a sequence of trial records whose wall-clock durations
// are spread across [MinDuration, MaxDuration].
//
// Trial sizes are intentionally not spaced exponentially: containers have
// performance-falls-off-a-cliff points (table resizes) at exponentially
// spaced sizes, and exponential sampling could straddle or systematically
// miss them. Linear spacing in duration gives near-linear spacing in size,
// with dense coverage where the cliffs are.
type Scheduler struct {
	MinDuration time.Duration
	MaxDuration time.Duration
	Logger      *slog.Logger

	// measure runs one fresh (Setup, timed Run) cycle. Tests substitute a
	// simulated clock here.
	measure func(w workload.Workload, newTable func() table.Table,
		n int) (time.Duration, error)
}

// NewScheduler creates a Scheduler with the default duration bounds.
func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		MinDuration: DefaultMinDuration,
		MaxDuration: DefaultMaxDuration,
		Logger:      logger,
		measure:     measureOnce,
	}
}

// measureOnce builds a fresh fixture, runs its untimed setup, and times one
// run of size n. time.Now carries a monotonic reading, so the measurement is
// immune to system-time adjustments.
func measureOnce(w workload.Workload, newTable func() table.Table,
	n int,
) (time.Duration, error) {
	f := w.New(newTable)
	f.Setup(n)

	start := time.Now()
	err := f.Run(n)

	return time.Since(start), err
}

// Run calibrates throughput for the workload against the given container
// constructor, then runs w.Trials timed trials at sizes derived from
// linearly spaced target durations. Each trial gets an independent fixture;
// no state survives between trials. The first correctness violation aborts
// the whole sequence.
func (s *Scheduler) Run(w workload.Workload,
	newTable func() table.Table,
) ([]TrialRecord, error) {
	if w.Trials < 2 {
		return nil, fmt.Errorf(
			"workload %s: trial count %d, need at least 2", w.Name, w.Trials)
	}

	speed, err := s.calibrate(w, newTable)
	if err != nil {
		return nil, err
	}

	minSec := s.MinDuration.Seconds()
	maxSec := s.MaxDuration.Seconds()

	records := make([]TrialRecord, 0, w.Trials)
	prev := 0

	for i := 0; i < w.Trials; i++ {
		target := minSec +
			float64(i)/float64(w.Trials-1)*(maxSec-minSec)

		n := int(math.Ceil(speed * target))
		if n <= prev {
			// Keep trial sizes strictly increasing even when the
			// throughput estimate is too small for ceil to separate
			// adjacent targets.
			n = prev + 1
		}
		prev = n

		dt, err := s.measure(w, newTable, n)
		if err != nil {
			return nil, fmt.Errorf("trial n=%d: %w", n, err)
		}

		s.Logger.Info("trial complete",
			slog.Int("ops", n),
			slog.Duration("elapsed", dt),
		)

		records = append(records, TrialRecord{Ops: n, Seconds: dt.Seconds()})
	}

	return records, nil
}

// calibrate doubles the operation count from 1 until one run takes at least
// MinDuration, then derives operations per second from that run. The probe
// itself may overshoot MaxDuration; that waste is bounded to roughly one
// doubling past the threshold.
func (s *Scheduler) calibrate(w workload.Workload,
	newTable func() table.Table,
) (float64, error) {
	for n := 1; n <= calibrationLimit; n *= 2 {
		dt, err := s.measure(w, newTable, n)
		if err != nil {
			return 0, fmt.Errorf("calibration n=%d: %w", n, err)
		}

		if dt >= s.MinDuration {
			speed := float64(n) / dt.Seconds()

			s.Logger.Info("calibrated",
				slog.Int("ops", n),
				slog.Duration("elapsed", dt),
				slog.Float64("ops_per_sec", speed),
			)

			return speed, nil
		}
	}

	return 0, fmt.Errorf(
		"workload %s: no run reached %s within %d operations",
		w.Name, s.MinDuration, calibrationLimit)
}
