// Package main provides the CLI entry point for hashmark, a micro-benchmark
// harness comparing interchangeable key/value container implementations.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/weiihann/hashmark/harness"
	"github.com/weiihann/hashmark/report"
	"github.com/weiihann/hashmark/table"
	"github.com/weiihann/hashmark/workload"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hashmark:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var (
		measureAllocated bool
		measureWritten   bool
		tables           []string
	)

	cmd := &cobra.Command{
		Use:   "hashmark [workload]",
		Short: "Micro-benchmark harness for key/value container implementations",
		Long: `Hashmark compares interchangeable key/value containers by running
deterministic workloads under an adaptive trial scheduler, producing
(operation-count, elapsed-time) samples for offline plotting. In space
mode it records each container's byte footprint after every insertion
instead of timing anything.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			variants, err := table.Select(tables)
			if err != nil {
				return err
			}

			switch {
			case measureAllocated && measureWritten:
				return fmt.Errorf("-m and -w are mutually exclusive")

			case measureAllocated || measureWritten:
				if len(args) > 0 {
					return fmt.Errorf(
						"space profiling does not take a workload name")
				}

				metric := table.BytesAllocated
				if measureWritten {
					metric = table.BytesWritten
				}

				return harness.SpaceProfile(os.Stdout, variants,
					harness.SpaceConfig{Metric: metric}, logger)

			case len(args) == 1:
				return runOne(logger, variants, args[0])

			default:
				return runAll(logger, variants)
			}
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&measureAllocated, "measure-allocated", "m", false,
		"Profile BytesAllocated per insertion instead of timing")
	flags.BoolVarP(&measureWritten, "measure-written", "w", false,
		"Profile BytesWritten per insertion instead of timing")
	flags.StringSliceVar(&tables, "tables", nil,
		"Container variants to benchmark (default: all)")

	return cmd
}

func runAll(logger *slog.Logger, variants []table.Variant) error {
	em := report.NewEmitter(os.Stdout)
	em.BeginSuite()

	for _, w := range workload.All() {
		em.BeginWorkload(w.Name)

		if err := runVariants(logger, em, w, variants); err != nil {
			return err
		}

		em.EndWorkload()
	}

	em.EndSuite()

	return em.Err()
}

func runOne(logger *slog.Logger, variants []table.Variant,
	name string,
) error {
	w, ok := workload.Find(name)
	if !ok {
		return fmt.Errorf("no such workload: %s", name)
	}

	em := report.NewEmitter(os.Stdout)
	em.BeginGroup()

	if err := runVariants(logger, em, w, variants); err != nil {
		return err
	}

	em.EndGroup()
	em.Finish()

	return em.Err()
}

func runVariants(logger *slog.Logger, em *report.Emitter,
	w workload.Workload, variants []table.Variant,
) error {
	for _, v := range variants {
		sched := harness.NewScheduler(logger.With(
			slog.String("workload", w.Name),
			slog.String("table", v.Name),
		))

		records, err := sched.Run(w, v.New)
		if err != nil {
			return fmt.Errorf("%s on %s: %w", w.Name, v.Name, err)
		}

		em.WriteTrials(v.Name, records)
	}

	return nil
}
