package engine

import (
	"github.com/sheikhrachel/lifestep/model"
	"github.com/sheikhrachel/lifestep/rules"
)

// InPlace overwrites g with its own next generation and returns the buffer
// length. Neighbors are counted on a snapshot taken before the sweep, so cells
// written earlier in the sweep never influence later ones. Every interior cell
// is written; the border is left alone.
func InPlace(g *model.Grid) int {
	var (
		size     = g.GetSize()
		stride   = g.GetStride()
		cells    = g.Cells()
		snapshot = make([]int32, len(cells))
	)
	copy(snapshot, cells)

	for y := 1; y <= size; y++ {
		for x := 1; x <= size; x++ {
			k := x + y*stride
			cells[k] = rules.NextState(rules.CountNeighbors(snapshot, k, stride), rules.IsAlive(snapshot[k]))
		}
	}

	return len(cells)
}
