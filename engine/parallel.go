package engine

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/lifestep/model"
)

// LockMode selects how parallel workers share the scratch grid
type LockMode string

const (
	// DisjointRows gives every worker exclusive ownership of its partition's
	// rows, so no lock is taken
	DisjointRows LockMode = "disjoint"
	// PerCellLock guards the scratch grid with one mutex, taken for each live cell written
	PerCellLock LockMode = "mutex"
)

// ParseLockMode converts a config or flag value into a LockMode
func ParseLockMode(s string) (LockMode, error) {
	switch LockMode(s) {
	case "", DisjointRows:
		return DisjointRows, nil
	case PerCellLock:
		return PerCellLock, nil
	}
	return "", errors.Errorf("[ParseLockMode] unknown lock mode: %q", s)
}

// RowRange is a half-open range of zero-based interior rows
type RowRange struct {
	From, To int
}

// Len returns the number of rows in the range
func (r RowRange) Len() int {
	return r.To - r.From
}

// Partition splits rows [0, size) into workers contiguous ranges of
// size/workers rows each; the last range absorbs the remainder. When workers
// exceeds size every range but the last is empty.
func Partition(size, workers int) []RowRange {
	var (
		part   = size / workers
		ranges = make([]RowRange, workers)
	)

	for p := range workers {
		ranges[p] = RowRange{From: p * part, To: (p + 1) * part}
	}
	ranges[workers-1].To = size

	return ranges
}

// scratch holds the shared grids workers write into; they never leave the package
var scratch = model.NewGridPool()

// Parallel computes the next generation of src with one goroutine per
// partition from Partition(size, workers). All workers are started before any
// is waited on. Once every worker has finished, the interior of the shared
// scratch grid is copied into a new grid owned by the caller.
//
// Parallel panics if workers is below 1.
func Parallel(src *model.Grid, workers int, mode LockMode) *model.Grid {
	if workers < 1 {
		panic(violation("Parallel", errors.Wrapf(errNoWorkers, "workers=%d", workers)))
	}

	var (
		size   = src.GetSize()
		shared = scratch.Get(size)
		eg     errgroup.Group
		mu     sync.Mutex
	)
	defer model.GridToPool(shared, scratch)

	for _, rows := range Partition(size, workers) {
		eg.Go(func() error {
			if mode == PerCellLock {
				stepRowsLocked(src, shared, rows, &mu)
			} else {
				stepRows(src, shared, rows)
			}
			return nil
		})
	}

	// workers never fail; Wait is the join barrier
	_ = eg.Wait()

	next := model.NewGrid(size)
	next.CopyInteriorFrom(shared)
	return next
}

// stepRows writes live cells of the given rows into dst. dst must start zeroed
// and no other goroutine may write those rows.
func stepRows(src, dst *model.Grid, rows RowRange) {
	var (
		size   = src.GetSize()
		stride = src.GetStride()
		cells  = src.Cells()
		out    = dst.Cells()
	)

	for r := rows.From; r < rows.To; r++ {
		y := r + 1
		for x := 1; x <= size; x++ {
			k := x + y*stride
			if nextAlive(cells, k, stride) {
				out[k] = 1
			}
		}
	}
}

// stepRowsLocked is stepRows with every write to dst taken under mu
func stepRowsLocked(src, dst *model.Grid, rows RowRange, mu *sync.Mutex) {
	var (
		size   = src.GetSize()
		stride = src.GetStride()
		cells  = src.Cells()
		out    = dst.Cells()
	)

	for r := rows.From; r < rows.To; r++ {
		y := r + 1
		for x := 1; x <= size; x++ {
			k := x + y*stride
			if nextAlive(cells, k, stride) {
				mu.Lock()
				out[k] = 1
				mu.Unlock()
			}
		}
	}
}
