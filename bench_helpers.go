package main

import (
	"fmt"
	"io"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifestep/engine"
	"github.com/sheikhrachel/lifestep/model"
	"github.com/sheikhrachel/lifestep/utils"
)

// benchSteppersFor returns one stepper per strategy, the parallel one built
// with the configured workers and lock mode
func benchSteppersFor(config utils.Config) ([]engine.Stepper, error) {
	mode, err := engine.ParseLockMode(config.LockMode)
	if err != nil {
		return nil, err
	}

	steppers := make([]engine.Stepper, 0, len(engine.Strategies))
	for _, strategy := range engine.Strategies {
		stepper, err := engine.NewStepper(strategy, config.Workers, mode)
		if err != nil {
			return nil, err
		}
		steppers = append(steppers, stepper)
	}
	return steppers, nil
}

// seededGrid places startPoints random cells on a fresh grid the same way for every stepper
func seededGrid(size int, seed int64, startPoints int) *model.Grid {
	grid := model.NewGrid(size)
	grid.Scatter(rand.New(rand.NewSource(seed)), startPoints)
	return grid
}

// timeStepper runs n generations and records how long each call to Step took
func timeStepper(stepper engine.Stepper, grid *model.Grid, n int) *utils.Stats {
	stats := utils.NewStats()
	for range n {
		start := time.Now()
		grid = stepper.Step(grid)
		elapsed := time.Since(start)
		stats.Record(grid.CountLivingCells(), elapsed)
	}
	return stats
}

// runBench times every stepper on every configured size and prints a table
func runBench(out io.Writer, config utils.Config, plot bool) error {
	steppers, err := benchSteppersFor(config)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "benchmarking %d steppers, %d steps each\n\n", len(steppers), config.BenchSteps)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tSTEPPER\tSTEPS\tAVG(ms)\tGEN/SEC\tALIVE")

	type series struct {
		caption string
		millis  []float64
	}
	var plots []series

	for _, size := range config.BenchSizes {
		for _, stepper := range steppers {
			grid := seededGrid(size, config.Seed, config.StartPoints)
			stats := timeStepper(stepper, grid, config.BenchSteps)

			fmt.Fprintf(w, "%d\t%s\t%d\t%.3f\t%.1f\t%.0f\n",
				size, stepper.Name(), stats.TotalGenerations, stats.AverageMillis(),
				stats.Throughput(), stats.AveragePopulation)

			plots = append(plots, series{
				caption: fmt.Sprintf("%s, size %d (ms per step)", stepper.Name(), size),
				millis:  stats.StepMillis(),
			})
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "[runBench] failed to write table")
	}

	if plot {
		for _, s := range plots {
			if !plottable(s.millis) {
				continue
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, asciigraph.Plot(s.millis,
				asciigraph.Height(8),
				asciigraph.Width(80),
				asciigraph.Caption(s.caption),
			))
		}
	}
	return nil
}

// runVerify steps random grids with every strategy, parallel worker counts
// 1..workers and both lock modes, and fails on the first disagreement with
// the linear stepper
func runVerify(out io.Writer, config utils.Config, trials int) error {
	maxWorkers := config.Workers
	if maxWorkers == 0 {
		maxWorkers = 8
	}

	rng := rand.New(rand.NewSource(config.Seed))
	checked := 0
	for trial := range trials {
		grid := model.NewGrid(config.Size)
		grid.Randomize(rng, 0.2+0.3*rng.Float64())
		want := engine.Linear(grid)

		inPlace := grid.Clone()
		engine.InPlace(inPlace)
		if !want.InteriorEqual(inPlace) {
			return errors.Errorf("[runVerify] trial %d: inplace differs from linear", trial)
		}
		checked++

		for n := 1; n <= maxWorkers; n++ {
			for _, mode := range []engine.LockMode{engine.DisjointRows, engine.PerCellLock} {
				got := engine.Parallel(grid, n, mode)
				if !want.InteriorEqual(got) || !got.BorderClear() {
					return errors.Errorf("[runVerify] trial %d: parallel/%d/%s differs from linear", trial, n, mode)
				}
				checked++
			}
		}
	}

	fmt.Fprintf(out, "verified %d trials on %dx%d grids: %d comparisons, all steppers agree\n",
		trials, config.Size, config.Size, checked)
	return nil
}

// plottable reports whether a series has enough spread to draw a chart
func plottable(series []float64) bool {
	if len(series) < 2 {
		return false
	}
	lo, hi := series[0], series[0]
	for _, v := range series[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return hi > lo
}
