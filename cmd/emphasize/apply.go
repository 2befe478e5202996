package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/gokanetr/internal/problem"
)

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <problem.yaml>",
		Short: "Emphasize one problem document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := a.run(0, args[0])
			if err := writeReports(cmd.OutOrStdout(), a.cfg, []report{rep}); err != nil {
				return err
			}
			return rep.err
		},
	}
}

// run loads and emphasizes a single problem file.
func (a *app) run(index int, path string) report {
	rep := report{Path: path, RunID: uuid.NewString()}
	log := a.logger.With(zap.String("run_id", rep.RunID), zap.String("path", path))

	p, err := problem.Load(path)
	if err != nil {
		log.Warn("Failed to load problem", zap.Error(err))
		rep.err = err
		return rep
	}
	rep.Name = p.Name

	out, err := a.emphasizer(index).Run(p.Stage, p.Supposition)
	if err != nil {
		log.Warn("Emphasis failed", zap.Error(err))
		rep.err = err
		return rep
	}
	log.Info("Emphasis applied",
		zap.Stringer("target", out.Target),
		zap.Int("candidates", len(out.Candidates)))
	rep.outcome = &out
	return rep
}
