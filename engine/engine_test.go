package engine

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sheikhrachel/lifestep/model"
	"github.com/sheikhrachel/lifestep/rules"
)

type cell struct{ x, y int }

func gridWith(size int, cells ...cell) *model.Grid {
	g := model.NewGrid(size)
	for _, c := range cells {
		g.Set(c.x, c.y, true)
	}
	return g
}

func randomGrid(size int, density float64, seed int64) *model.Grid {
	g := model.NewGrid(size)
	g.Randomize(rand.New(rand.NewSource(seed)), density)
	return g
}

// allSteppers runs every strategy once on a private copy of g
func allSteppers(g *model.Grid) map[string]*model.Grid {
	inPlace := g.Clone()
	InPlace(inPlace)

	return map[string]*model.Grid{
		"linear":   Linear(g),
		"inplace":  inPlace,
		"parallel": Parallel(g, 3, DisjointRows),
		"mutex":    Parallel(g, 3, PerCellLock),
	}
}

func TestLifeRuleByNeighborCount(t *testing.T) {
	for n := 0; n <= rules.NeighborsCount; n++ {
		for _, alive := range []bool{false, true} {
			g := model.NewGrid(3)
			g.Set(2, 2, alive)
			for l := 0; l < n; l++ {
				g.Set(2+rules.DeltaX[l], 2+rules.DeltaY[l], true)
			}

			expected := n == 3 || (alive && n == 2)
			for name, next := range allSteppers(g) {
				if got := next.Get(2, 2); got != expected {
					t.Errorf("%s: neighbors=%d alive=%v: expected %v, got %v", name, n, alive, expected, got)
				}
			}
		}
	}
}

func TestBorderStaysZero(t *testing.T) {
	for _, size := range []int{1, 2, 5, 17} {
		g := randomGrid(size, 0.5, int64(size))
		for name, next := range allSteppers(g) {
			if !next.BorderClear() {
				t.Errorf("%s: size=%d: border written", name, size)
			}
		}
	}
}

func TestStepWritesOnlyZeroOrOne(t *testing.T) {
	g := model.NewGrid(4)
	cells := g.Cells()
	cells[g.Index(1, 1)] = 7
	cells[g.Index(2, 1)] = 3
	cells[g.Index(3, 1)] = 9
	cells[g.Index(4, 4)] = -2

	for name, next := range allSteppers(g) {
		for y := 1; y <= 4; y++ {
			for x := 1; x <= 4; x++ {
				if v := next.Cells()[next.Index(x, y)]; v != 0 && v != 1 {
					t.Errorf("%s: cell (%d,%d) = %d", name, x, y, v)
				}
			}
		}
		if !next.Get(2, 2) {
			t.Errorf("%s: (2,2) has three live neighbors and should be born", name)
		}
	}
}

func TestAllDeadStaysDead(t *testing.T) {
	g := model.NewGrid(3)
	for name, next := range allSteppers(g) {
		if next.CountLivingCells() != 0 {
			t.Errorf("%s: empty grid produced %d live cells", name, next.CountLivingCells())
		}
	}
}

func TestBlockIsStillLife(t *testing.T) {
	for _, size := range []int{4, 8} {
		g := gridWith(size, cell{2, 2}, cell{3, 2}, cell{2, 3}, cell{3, 3})
		for name, next := range allSteppers(g) {
			if diff := cmp.Diff(g.Cells(), next.Cells()); diff != "" {
				t.Errorf("%s: size=%d: block changed (-want +got):\n%s", name, size, diff)
			}
		}
	}
}

func TestBlinkerOscillates(t *testing.T) {
	horizontal := gridWith(5, cell{2, 3}, cell{3, 3}, cell{4, 3})
	vertical := gridWith(5, cell{3, 2}, cell{3, 3}, cell{3, 4})

	steppers := []Stepper{LinearStepper{}, InPlaceStepper{}, ParallelStepper{Workers: 2, Mode: DisjointRows}, ParallelStepper{Workers: 4, Mode: PerCellLock}}
	for _, s := range steppers {
		g := horizontal.Clone()

		g = s.Step(g)
		if diff := cmp.Diff(vertical.Cells(), g.Cells()); diff != "" {
			t.Errorf("%s: first step (-want +got):\n%s", s.Name(), diff)
		}

		g = s.Step(g)
		if diff := cmp.Diff(horizontal.Cells(), g.Cells()); diff != "" {
			t.Errorf("%s: second step (-want +got):\n%s", s.Name(), diff)
		}
	}
}

func TestGliderMovesDiagonally(t *testing.T) {
	g := model.NewGrid(10)
	g.AddGlider(2, 2)

	next := g
	for range 4 {
		next = Linear(next)
	}

	want := model.NewGrid(10)
	want.AddGlider(3, 3)
	if diff := cmp.Diff(want.Cells(), next.Cells()); diff != "" {
		t.Errorf("glider after 4 steps (-want +got):\n%s", diff)
	}
}

func TestParallelMatchesLinear(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 16, 33} {
		g := randomGrid(size, 0.35, int64(size)*31)
		want := Linear(g)

		for _, workers := range []int{1, 2, 3, 4, 5, 8, 9, 64} {
			for _, mode := range []LockMode{DisjointRows, PerCellLock} {
				got := Parallel(g, workers, mode)
				if diff := cmp.Diff(want.Cells(), got.Cells()); diff != "" {
					t.Errorf("size=%d workers=%d mode=%s (-linear +parallel):\n%s", size, workers, mode, diff)
				}
			}
		}
	}
}

func TestInPlaceMatchesLinear(t *testing.T) {
	for _, size := range []int{1, 4, 12, 31} {
		g := randomGrid(size, 0.4, int64(size))
		want := Linear(g)

		n := InPlace(g)
		if n != model.BufferLen(size) {
			t.Errorf("size=%d: expected length %d, got %d", size, model.BufferLen(size), n)
		}
		if diff := cmp.Diff(want.Cells(), g.Cells()); diff != "" {
			t.Errorf("size=%d (-linear +inplace):\n%s", size, diff)
		}
	}
}

func TestSourceIsNotMutated(t *testing.T) {
	g := randomGrid(20, 0.3, 99)
	before := append([]int32(nil), g.Cells()...)

	Linear(g)
	Parallel(g, 4, DisjointRows)
	Parallel(g, 4, PerCellLock)

	if diff := cmp.Diff(before, g.Cells()); diff != "" {
		t.Errorf("source changed (-before +after):\n%s", diff)
	}
}

func TestResultsAreIndependentBuffers(t *testing.T) {
	g := gridWith(4, cell{2, 2}, cell{3, 2}, cell{2, 3}, cell{3, 3})

	a := Parallel(g, 2, DisjointRows)
	b := Parallel(g, 2, DisjointRows)
	a.Set(1, 1, true)

	if b.Get(1, 1) {
		t.Error("parallel results must not share memory")
	}
	if &a.Cells()[0] == &g.Cells()[0] {
		t.Error("parallel result must not alias the source")
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		size, workers int
		expected      []RowRange
	}{
		{10, 1, []RowRange{{0, 10}}},
		{10, 3, []RowRange{{0, 3}, {3, 6}, {6, 10}}},
		{8, 4, []RowRange{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{2, 4, []RowRange{{0, 0}, {0, 0}, {0, 0}, {0, 2}}},
	}

	for _, tt := range tests {
		got := Partition(tt.size, tt.workers)
		if diff := cmp.Diff(tt.expected, got); diff != "" {
			t.Errorf("Partition(%d, %d) (-want +got):\n%s", tt.size, tt.workers, diff)
		}
	}
}

func TestPartitionCoversEveryRowOnce(t *testing.T) {
	for size := 1; size <= 40; size++ {
		for workers := 1; workers <= 12; workers++ {
			ranges := Partition(size, workers)
			if len(ranges) != workers {
				t.Fatalf("size=%d workers=%d: expected %d ranges, got %d", size, workers, workers, len(ranges))
			}

			next := 0
			for _, r := range ranges {
				if r.Len() == 0 {
					continue
				}
				if r.From != next {
					t.Fatalf("size=%d workers=%d: gap or overlap at row %d", size, workers, r.From)
				}
				next = r.To
			}
			if next != size {
				t.Fatalf("size=%d workers=%d: rows covered up to %d", size, workers, next)
			}
		}
	}
}

func TestParallelPanicsWithoutWorkers(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !isContractViolation(err) {
			t.Errorf("expected contract violation, got %v", r)
		}
	}()

	Parallel(model.NewGrid(3), 0, DisjointRows)
}
