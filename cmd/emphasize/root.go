package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/gokanetr/internal/config"
	"github.com/gitrdm/gokanetr/internal/logging"
	"github.com/gitrdm/gokanetr/pkg/emphasis"
)

// app carries the state shared by every subcommand once flags and the
// configuration file have been resolved.
type app struct {
	configPath string
	verbose    bool
	seed       uint64
	output     string
	explain    bool
	workers    int

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "emphasize",
		Short: "Mark the focus term of ETR problems",
		Long: `emphasize reads problems made of a stage and a supposition and marks
exactly one term occurrence with emphasis.

The supposition is rewritten unless it is verum or falsum, in which case the
stage is. Terms are ranked universal > existential > constant > other, then
by how often they represent an atom; remaining ties are settled at random.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML or TOML configuration file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.Uint64Var(&a.seed, "seed", 0, "seed for the random source (default: random)")
	flags.StringVarP(&a.output, "output", "o", config.OutputText, "output format: text or yaml")
	flags.BoolVar(&a.explain, "explain", false, "print the ranked candidates")
	flags.IntVarP(&a.workers, "workers", "w", 0, "batch workers (default: one per CPU)")

	root.AddCommand(newApplyCmd(a), newBatchCmd(a), newVersionCmd())
	return root
}

// setup merges the configuration file with explicitly set flags and builds
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed := a.seed
		cfg.Seed = &seed
	}
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	if flags.Changed("explain") {
		cfg.Explain = a.explain
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.ProfileRuntime, cfg.LoggerOptions(a.verbose))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// emphasizer returns the emphasizer for the job at index. With a fixed
// seed every job gets its own source derived from it, so batch output does
// not depend on scheduling.
func (a *app) emphasizer(index int) *emphasis.Emphasizer {
	opts := []emphasis.Option{emphasis.WithLogger(a.logger)}
	if a.cfg.Seed != nil {
		opts = append(opts, emphasis.WithSeed(*a.cfg.Seed+uint64(index)))
	}
	return emphasis.New(opts...)
}
