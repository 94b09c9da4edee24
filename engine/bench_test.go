package engine

import (
	"math/rand"
	"testing"

	"github.com/sheikhrachel/lifestep/model"
)

const benchSize = 256

func benchGrid() *model.Grid {
	g := model.NewGrid(benchSize)
	g.Scatter(rand.New(rand.NewSource(42)), 3000)
	return g
}

func BenchmarkLinear(b *testing.B) {
	g := benchGrid()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g = Linear(g)
	}
}

func BenchmarkInPlace(b *testing.B) {
	g := benchGrid()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		InPlace(g)
	}
}

func BenchmarkParallelDisjoint(b *testing.B) {
	g := benchGrid()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g = Parallel(g, 4, DisjointRows)
	}
}

func BenchmarkParallelMutex(b *testing.B) {
	g := benchGrid()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g = Parallel(g, 4, PerCellLock)
	}
}
