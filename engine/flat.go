package engine

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifestep/model"
)

// MakeStep returns the next generation of the flat buffer src as a new buffer
// of the same length. src must hold exactly (size+2)^2 cells and is not modified.
func MakeStep(src []int32, size int) ([]int32, error) {
	g, err := model.WrapGrid(src, size)
	if err != nil {
		return nil, violation("MakeStep", err)
	}
	return Linear(g).Cells(), nil
}

// MakeStepUpdate replaces buf with its next generation and returns its length
func MakeStepUpdate(buf []int32, size int) (int, error) {
	g, err := model.WrapGrid(buf, size)
	if err != nil {
		return 0, violation("MakeStepUpdate", err)
	}
	return InPlace(g), nil
}

// MakeStepMT is MakeStep computed by cpuCount workers owning disjoint row ranges
func MakeStepMT(src []int32, size, cpuCount int) ([]int32, error) {
	return MakeStepMTMode(src, size, cpuCount, DisjointRows)
}

// MakeStepMTMode is MakeStepMT with an explicit locking discipline
func MakeStepMTMode(src []int32, size, cpuCount int, mode LockMode) ([]int32, error) {
	g, err := model.WrapGrid(src, size)
	if err != nil {
		return nil, violation("MakeStepMT", err)
	}
	if cpuCount < 1 {
		return nil, violation("MakeStepMT", errors.Wrapf(errNoWorkers, "cpu_count=%d", cpuCount))
	}
	return Parallel(g, cpuCount, mode).Cells(), nil
}
