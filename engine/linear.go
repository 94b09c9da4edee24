package engine

import (
	"github.com/sheikhrachel/lifestep/model"
	"github.com/sheikhrachel/lifestep/rules"
)

// nextAlive evaluates the Life rule for the cell at flat index k
func nextAlive(cells []int32, k, stride int) bool {
	return rules.ApplyConwayRules(rules.CountNeighbors(cells, k, stride), rules.IsAlive(cells[k]))
}

// Linear computes the next generation of src into a new grid. src is not modified.
func Linear(src *model.Grid) *model.Grid {
	var (
		size   = src.GetSize()
		stride = src.GetStride()
		cells  = src.Cells()
		next   = model.NewGrid(size)
		out    = next.Cells()
	)

	for y := 1; y <= size; y++ {
		for x := 1; x <= size; x++ {
			k := x + y*stride
			if nextAlive(cells, k, stride) {
				out[k] = 1
			}
		}
	}

	return next
}
