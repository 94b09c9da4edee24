package rules

// NeighborsCount is the size of the Moore neighborhood.
const NeighborsCount = 8

// Moore neighborhood deltas, paired by index.
var (
	DeltaX = [NeighborsCount]int{-1, 0, 1, -1, 1, -1, 0, 1}
	DeltaY = [NeighborsCount]int{-1, -1, -1, 0, 0, 1, 1, 1}
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// IsAlive reports whether a raw cell value counts as a live cell
func IsAlive(v int32) bool {
	return v > 0
}

// NextState returns the value written for a cell: exactly 1 or 0
func NextState(neighbors int, alive bool) int32 {
	if ApplyConwayRules(neighbors, alive) {
		return 1
	}
	return 0
}

// CountNeighbors counts live Moore neighbors of the cell at flat index k in a
// buffer whose physical row stride is stride. The cell must not sit on the
// outermost ring of the buffer.
func CountNeighbors(cells []int32, k, stride int) (count int) {
	for l := range NeighborsCount {
		if cells[k+DeltaX[l]+DeltaY[l]*stride] > 0 {
			count++
		}
	}
	return
}
