package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/CadixDev/Lorenz-sub001/internal/metrics"
	"github.com/CadixDev/Lorenz-sub001/merge"
)

// mergeArgCount is the number of arguments expected by the merge command.
const mergeArgCount = 2

type mergeOptions struct {
	output      string
	parallelism int
	fieldMode   string
	methodMode  string
	metricsOut  string
}

func (a *app) mergeCmd() *cobra.Command {
	var opts mergeOptions

	cmd := &cobra.Command{
		Use:   "merge LEFT RIGHT",
		Short: "Compose two mapping files",
		Long: `Compose LEFT (A->B) with RIGHT (B->C) into A->C.

Examples:
  lorenz merge a-b.tsrg b-c.tsrg -o a-c.tsrg
  lorenz merge --method-mode loose --parallelism 4 a-b.yaml b-c.tsrg`,
		Args: cobra.ExactArgs(mergeArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("parallelism") {
				a.cfg.Merge.Parallelism = opts.parallelism
			}

			if cmd.Flags().Changed("field-mode") {
				a.cfg.Merge.FieldMode = opts.fieldMode
			}

			if cmd.Flags().Changed("method-mode") {
				a.cfg.Merge.MethodMode = opts.methodMode
			}

			return a.runMerge(args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&opts.parallelism, "parallelism", 1, "top-level classes merged at once")
	cmd.Flags().StringVar(&opts.fieldMode, "field-mode", "", "field signature mode (strict, loose)")
	cmd.Flags().StringVar(&opts.methodMode, "method-mode", "", "method signature mode (strict, loose)")
	cmd.Flags().StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile")

	return cmd
}

func (a *app) runMerge(leftPath, rightPath string, opts mergeOptions) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	cfg, err := a.cfg.MergeConfig(a.log)
	if err != nil {
		return err
	}

	left, err := a.loadSet(leftPath)
	if err != nil {
		return err
	}

	right, err := a.loadSet(rightPath)
	if err != nil {
		return err
	}

	start := time.Now()

	out, report, err := merge.Merge(left, right, cfg)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	for _, d := range report.Diagnostics.Warnings {
		a.log.Warn(d.String())
	}

	if opts.metricsOut != "" {
		rec := metrics.NewRecorder()
		rec.RecordMerge(metrics.MergeStats{
			Classes:   report.Classes,
			Composed:  report.Composed,
			LeftOnly:  report.LeftOnly,
			RightOnly: report.RightOnly,
			Dropped:   report.Dropped,
			Errors:    len(report.Diagnostics.Errors),
			Warnings:  len(report.Diagnostics.Warnings),
			Infos:     len(report.Diagnostics.Infos),
			Duration:  time.Since(start),
		})

		if err := rec.WriteTextfile(opts.metricsOut); err != nil {
			return err
		}
	}

	return a.saveSet(opts.output, out)
}
