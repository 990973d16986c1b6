package harness

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/weiihann/hashmark/table"
)

// DefaultSpaceInserts is the number of sequential insertions the space
// profiler performs per container.
const DefaultSpaceInserts = 100000

// SpaceConfig controls a space-profiling run.
type SpaceConfig struct {
	// Inserts is the number of insertions; DefaultSpaceInserts when zero.
	Inserts int
	// Metric selects which footprint each container reports.
	Metric table.ByteSizeOption
}

// SpaceProfile creates one container per variant and inserts the sequence
// (i+1, i) into all of them in lock-step, emitting one tab-separated row per
// insertion: the insert index followed by each container's footprint,
// queried before the insert. Row order matches insertion order exactly, so
// footprint curves of different containers overlay as a function of logical
// entry count. No correctness assertions happen here; the mode produces
// data only.
func SpaceProfile(w io.Writer, variants []table.Variant, cfg SpaceConfig,
	logger *slog.Logger,
) error {
	if len(variants) == 0 {
		return fmt.Errorf("no table variants selected")
	}

	inserts := cfg.Inserts
	if inserts <= 0 {
		inserts = DefaultSpaceInserts
	}

	tables := make([]table.Table, len(variants))
	for i, v := range variants {
		tables[i] = v.New()
	}

	logger.Info("space profile starting",
		slog.Int("inserts", inserts),
		slog.Int("variants", len(variants)),
	)

	bw := bufio.NewWriter(w)

	for i := 0; i < inserts; i++ {
		if _, err := fmt.Fprintf(bw, "%d", i); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}

		for _, t := range tables {
			if _, err := fmt.Fprintf(bw, "\t%d",
				t.ByteSize(cfg.Metric)); err != nil {
				return fmt.Errorf("write row %d: %w", i, err)
			}
		}

		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}

		for _, t := range tables {
			t.Set(table.Key(i+1), table.Value(i))
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush space profile: %w", err)
	}

	logger.Info("space profile complete", slog.Int("rows", inserts))

	return nil
}
