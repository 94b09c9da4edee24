package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/sheikhrachel/lifestep/engine"
	"github.com/sheikhrachel/lifestep/model"
	"github.com/sheikhrachel/lifestep/utils"
)

// buildStepper resolves the configured strategy and lock mode
func buildStepper(config utils.Config) (engine.Stepper, error) {
	strategy, err := engine.ParseStrategy(config.Strategy)
	if err != nil {
		return nil, err
	}
	mode, err := engine.ParseLockMode(config.LockMode)
	if err != nil {
		return nil, err
	}
	return engine.NewStepper(strategy, config.Workers, mode)
}

// initializeGrid builds a freshly seeded grid
func initializeGrid(config utils.Config, rng *rand.Rand) *model.Grid {
	grid := model.NewGrid(config.Size)
	if config.RandomDensity > 0 {
		grid.Randomize(rng, config.RandomDensity)
		grid.Scatter(rng, config.StartPoints)
		return grid
	}
	grid.Seed(rng, config.StartPoints)
	return grid
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, stepper engine.Stepper, grid *model.Grid) {
	fmt.Fprintf(out, "Stepper: %s | Auto restart: %v\n", stepper.Name(), config.AutoRestart)
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d\n",
		grid.GetSize(), grid.GetSize(), grid.CountLivingCells())
}

// updateGameState checks the grid before it is stepped: stagnation is tested
// against earlier generations, then the current state joins the history
func updateGameState(grid *model.Grid) (livingCells int, isStagnant bool) {
	livingCells = grid.CountLivingCells()
	isStagnant = grid.IsStagnant()
	grid.UpdateHistory()
	return
}

// displayGameStatus shows the current game status
func displayGameStatus(
	out io.Writer,
	generation, livingCells int,
	isStagnant bool,
	grid *model.Grid,
	stats *utils.Stats,
	lastRestartGen int,
) {
	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}
	density := float64(livingCells) / float64(grid.GetSize()*grid.GetSize()) * 100

	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Since restart: %d\n",
		generation, livingCells, density, status, generation-lastRestartGen)
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg step: %.3f ms | Avg Pop: %.1f\n",
		stats.GenerationsPerSecond, stats.AverageMillis(), stats.AveragePopulation)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// runGame steps a seeded grid config.Steps times, timing only the stepper.
// Extinct or stagnant grids are reseeded when auto restart is on; without it
// an extinct grid ends the run early.
func runGame(out io.Writer, config utils.Config, reportEvery int, plot bool) error {
	stepper, err := buildStepper(config)
	if err != nil {
		return err
	}

	var (
		rng            = rand.New(rand.NewSource(config.Seed))
		grid           = initializeGrid(config, rng)
		stats          = utils.NewStats()
		population     = make([]float64, 0, config.Steps)
		stagnantCount  = 0
		lastRestartGen = 0
	)
	displayGameInfo(out, config, stepper, grid)

	for generation := 0; generation < config.Steps; generation++ {
		livingCells, isStagnant := updateGameState(grid)
		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		if reportEvery > 0 && generation%reportEvery == 0 {
			displayGameStatus(out, generation, livingCells, isStagnant, grid, stats, lastRestartGen)
		}

		shouldRestart, reason := checkRestartConditions(livingCells, stagnantCount, config)
		switch {
		case shouldRestart && config.AutoRestart:
			fmt.Fprintf(out, "Gen: %d | Restarting due to %s\n", generation, reason)
			grid = initializeGrid(config, rng)
			lastRestartGen = generation
			stagnantCount = 0
		case livingCells == 0:
			fmt.Fprintf(out, "Gen: %d | Extinct, stopping\n", generation)
			return finishGame(out, stats, population, plot)
		case stagnantCount >= 2 && stagnantCount < config.StagnationThreshold:
			// Inject some life to try to break the stagnation
			grid.InjectRandomLife(rng, config.InjectionCount)
		}

		start := time.Now()
		next := stepper.Step(grid)
		elapsed := time.Since(start)

		next.SetHistory(grid.History())
		grid = next

		living := grid.CountLivingCells()
		stats.Record(living, elapsed)
		population = append(population, float64(living))
	}

	return finishGame(out, stats, population, plot)
}

func finishGame(out io.Writer, stats *utils.Stats, population []float64, plot bool) error {
	fmt.Fprintf(out, "Final stats: %s | %.1f gen/sec | %.1f avg population | %.1fs wall\n",
		stats, stats.Throughput(), stats.AveragePopulation, time.Since(stats.StartTime).Seconds())

	if plot && plottable(population) {
		fmt.Fprintln(out, asciigraph.Plot(population,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("living cells per generation"),
		))
	}
	return nil
}
