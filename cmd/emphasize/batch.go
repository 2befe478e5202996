package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/gokanetr/internal/parallel"
)

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <problem.yaml>...",
		Short: "Emphasize many problem documents concurrently",
		Long: `Runs every document on a bounded worker pool. Results are printed in
argument order. With --seed, the document at position i uses seed+i.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := parallel.NewWorkerPool(a.cfg.Workers)
			defer pool.Shutdown()

			type job struct {
				index int
				path  string
			}
			jobs := make([]job, len(args))
			for i, path := range args {
				jobs[i] = job{index: i, path: path}
			}

			a.logger.Debug("Starting batch", zap.Int("problems", len(jobs)), zap.Int("workers", pool.Workers()))
			results := parallel.RunBatch(cmd.Context(), pool, jobs, func(_ context.Context, j job) (report, error) {
				rep := a.run(j.index, j.path)
				return rep, rep.err
			})

			reports := make([]report, len(results))
			failed := 0
			for i, r := range results {
				reports[i] = r.Value
				if r.Err != nil {
					failed++
					if reports[i].Path == "" {
						reports[i] = report{Path: args[i], err: r.Err}
					}
				}
			}
			if err := writeReports(cmd.OutOrStdout(), a.cfg, reports); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d problems failed", failed, len(reports))
			}
			return nil
		},
	}
}
