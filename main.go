package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/lifestep/utils"
)

var (
	configFile string
	size       int
	seed       int64
	points     int
	strategy   string
	workers    int
	lockMode   string
	steps      int
	restart    bool
	reportEach int
	benchSizes []int
	benchSteps int
	trials     int
	plot       bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "lifestep",
		Short:        "game of life step engine",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path (json or yaml)")
	flags.IntVar(&size, "size", 128, "logical grid side length")
	flags.Int64Var(&seed, "seed", 42, "random seed")
	flags.IntVar(&points, "points", 3000, "random live cells placed at start")
	flags.StringVar(&strategy, "strategy", "parallel", "stepper: linear, inplace or parallel")
	flags.IntVar(&workers, "workers", 0, "parallel workers (0 = one per CPU)")
	flags.StringVar(&lockMode, "lock", "disjoint", "parallel locking: disjoint or mutex")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "step a seeded grid for a number of generations",
		Args:  cobra.NoArgs,
		RunE:  runSteps,
	}
	runCmd.Flags().IntVar(&steps, "steps", 1000, "generations to compute")
	runCmd.Flags().BoolVar(&restart, "auto-restart", true, "reseed on extinction or stagnation")
	runCmd.Flags().IntVar(&reportEach, "report", 100, "print status every N generations (0 = never)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot population over time")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time every stepper over a range of grid sizes",
		Args:  cobra.NoArgs,
		RunE:  benchSteppers,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{32, 128, 512, 1024}, "grid sizes to benchmark")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 100, "generations per measurement")
	benchCmd.Flags().BoolVar(&plot, "plot", false, "plot per-step timings")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "check that every stepper computes the same generation",
		Args:  cobra.NoArgs,
		RunE:  verifySteppers,
	}
	verifyCmd.Flags().IntVar(&trials, "trials", 10, "random grids to compare")

	rootCmd.AddCommand(runCmd, benchCmd, verifyCmd)
	return rootCmd
}

// loadConfig starts from defaults or the config file and applies every flag
// the user set explicitly on top. Flag defaults mirror utils.DefaultConfig.
func loadConfig(cmd *cobra.Command) (utils.Config, error) {
	cfg := utils.DefaultConfig()
	if configFile != "" {
		loaded, err := utils.LoadConfig(configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("size") {
		cfg.Size = size
	}
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("points") {
		cfg.StartPoints = points
	}
	if changed("strategy") {
		cfg.Strategy = strategy
	}
	if changed("workers") {
		cfg.Workers = workers
	}
	if changed("lock") {
		cfg.LockMode = lockMode
	}
	if changed("steps") {
		if cmd.Name() == "bench" {
			cfg.BenchSteps = benchSteps
		} else {
			cfg.Steps = steps
		}
	}
	if changed("auto-restart") {
		cfg.AutoRestart = restart
	}
	if changed("sizes") {
		cfg.BenchSizes = benchSizes
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "[loadConfig] invalid flags")
	}
	return cfg, nil
}

func runSteps(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runGame(cmd.OutOrStdout(), cfg, reportEach, plot)
}

func benchSteppers(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runBench(cmd.OutOrStdout(), cfg, plot)
}

func verifySteppers(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runVerify(cmd.OutOrStdout(), cfg, trials)
}
