package engine

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifestep/model"
)

// Strategy names one of the steppers
type Strategy string

const (
	StrategyLinear   Strategy = "linear"
	StrategyInPlace  Strategy = "inplace"
	StrategyParallel Strategy = "parallel"
)

// Strategies lists every strategy in a stable order
var Strategies = []Strategy{StrategyLinear, StrategyInPlace, StrategyParallel}

// ParseStrategy converts a config or flag value into a Strategy
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies {
		if Strategy(s) == st {
			return st, nil
		}
	}
	return "", errors.Errorf("[ParseStrategy] unknown strategy: %q", s)
}

// Stepper advances a grid by one generation. The returned grid may be g
// itself (in-place) or a new grid owned by the caller.
type Stepper interface {
	Name() string
	Step(g *model.Grid) *model.Grid
}

type LinearStepper struct{}

func (LinearStepper) Name() string { return string(StrategyLinear) }

func (LinearStepper) Step(g *model.Grid) *model.Grid {
	return Linear(g)
}

type InPlaceStepper struct{}

func (InPlaceStepper) Name() string { return string(StrategyInPlace) }

func (InPlaceStepper) Step(g *model.Grid) *model.Grid {
	InPlace(g)
	return g
}

type ParallelStepper struct {
	Workers int
	Mode    LockMode
}

func (p ParallelStepper) Name() string {
	return fmt.Sprintf("%s/%d/%s", StrategyParallel, p.Workers, p.Mode)
}

func (p ParallelStepper) Step(g *model.Grid) *model.Grid {
	return Parallel(g, p.Workers, p.Mode)
}

// NewStepper builds the stepper for a strategy. workers == 0 means one worker
// per CPU; it is ignored by the sequential strategies.
func NewStepper(strategy Strategy, workers int, mode LockMode) (Stepper, error) {
	switch strategy {
	case StrategyLinear:
		return LinearStepper{}, nil
	case StrategyInPlace:
		return InPlaceStepper{}, nil
	case StrategyParallel:
		if workers < 0 {
			return nil, violation("NewStepper", errors.Wrapf(errNoWorkers, "workers=%d", workers))
		}
		if workers == 0 {
			workers = runtime.NumCPU()
		}
		if mode == "" {
			mode = DisjointRows
		}
		return ParallelStepper{Workers: workers, Mode: mode}, nil
	}
	return nil, errors.Errorf("[NewStepper] unknown strategy: %q", strategy)
}
