package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidSize is returned when a logical grid size is below 1
	ErrInvalidSize = errors.New("grid size must be at least 1")
	// ErrBufferLength is returned when a flat buffer does not hold (size+2)^2 cells
	ErrBufferLength = errors.New("buffer length does not match grid size")
)

// historyDepth is how many recent grid hashes are kept for cycle detection
const historyDepth = 5

// Grid is a square board of logical side size, stored row-major in a flat
// buffer with a one-cell dead border on all four sides. Cell (x, y) lives at
// index x + y*(size+2); the interior is x, y in [1, size].
type Grid struct {
	size    int
	stride  int
	cells   []int32
	history []string // Store recent grid states for cycle detection
}

// NewGrid creates a zeroed grid with the given logical size
func NewGrid(size int) *Grid {
	stride := size + 2
	return &Grid{
		size:   size,
		stride: stride,
		cells:  make([]int32, stride*stride),
	}
}

// WrapGrid views an existing flat buffer as a grid without copying it
func WrapGrid(cells []int32, size int) (*Grid, error) {
	if err := ValidateBuffer(len(cells), size); err != nil {
		return nil, err
	}
	return &Grid{
		size:   size,
		stride: size + 2,
		cells:  cells,
	}, nil
}

// BufferLen returns the physical buffer length for a logical size
func BufferLen(size int) int {
	return (size + 2) * (size + 2)
}

// ValidateBuffer checks that a buffer of length n can hold a grid of the given size
func ValidateBuffer(n, size int) error {
	if size < 1 {
		return errors.Wrapf(ErrInvalidSize, "[ValidateBuffer] size=%d", size)
	}
	if want := BufferLen(size); n != want {
		return errors.Wrapf(ErrBufferLength, "[ValidateBuffer] size=%d wants %d cells, got %d", size, want, n)
	}
	return nil
}

// GetSize returns the logical side length of the grid
func (g *Grid) GetSize() int {
	return g.size
}

// GetStride returns the physical side length of the grid, border included
func (g *Grid) GetStride() int {
	return g.stride
}

// Len returns the total number of cells in the buffer
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cells exposes the underlying flat buffer
func (g *Grid) Cells() []int32 {
	return g.cells
}

// Index maps physical coordinates to a flat buffer index
func (g *Grid) Index(x, y int) int {
	return x + y*g.stride
}

// Interior reports whether (x, y) is an interior cell
func (g *Grid) Interior(x, y int) bool {
	return x >= 1 && x <= g.size && y >= 1 && y <= g.size
}

// Reset resizes the grid to the given logical size and clears every cell
func (g *Grid) Reset(size int) {
	g.size = size
	g.stride = size + 2
	g.history = nil

	n := BufferLen(size)
	if cap(g.cells) < n {
		g.cells = make([]int32, n)
		return
	}
	g.cells = g.cells[:n]
	clear(g.cells)
}

// Clear clears all cells
func (g *Grid) Clear() {
	clear(g.cells)
	g.history = nil
}

// Set sets an interior cell to alive (1) or dead (0); border cells are never written
func (g *Grid) Set(x, y int, alive bool) {
	if !g.Interior(x, y) {
		return
	}
	if alive {
		g.cells[g.Index(x, y)] = 1
	} else {
		g.cells[g.Index(x, y)] = 0
	}
}

// Get returns the state of a cell
func (g *Grid) Get(x, y int) bool {
	if x < 0 || x > g.size+1 || y < 0 || y > g.size+1 {
		return false
	}
	return g.cells[g.Index(x, y)] > 0
}

// Clone returns a deep copy of the cell buffer
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.size)
	copy(c.cells, g.cells)
	return c
}

// CopyInteriorFrom copies the interior cells of src, which must have the same size
func (g *Grid) CopyInteriorFrom(src *Grid) {
	for y := 1; y <= g.size; y++ {
		row := g.Index(1, y)
		copy(g.cells[row:row+g.size], src.cells[row:row+g.size])
	}
}

// InteriorEqual reports whether both grids agree on the liveness of every interior cell
func (g *Grid) InteriorEqual(other *Grid) bool {
	if g.size != other.size {
		return false
	}
	for y := 1; y <= g.size; y++ {
		for x := 1; x <= g.size; x++ {
			k := g.Index(x, y)
			if (g.cells[k] > 0) != (other.cells[k] > 0) {
				return false
			}
		}
	}
	return true
}

// BorderClear reports whether every border cell is zero
func (g *Grid) BorderClear() bool {
	last := g.stride - 1
	for i := range g.stride {
		if g.cells[g.Index(i, 0)] != 0 || g.cells[g.Index(i, last)] != 0 ||
			g.cells[g.Index(0, i)] != 0 || g.cells[g.Index(last, i)] != 0 {
			return false
		}
	}
	return true
}

// CountLivingCells returns the total number of living interior cells
func (g *Grid) CountLivingCells() (count int) {
	for y := 1; y <= g.size; y++ {
		for x := 1; x <= g.size; x++ {
			if g.cells[g.Index(x, y)] > 0 {
				count++
			}
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the interior liveness pattern
func (g *Grid) GetGridHash() string {
	h := md5.New()
	row := make([]byte, g.size)
	for y := 1; y <= g.size; y++ {
		for x := 1; x <= g.size; x++ {
			row[x-1] = 0
			if g.cells[g.Index(x, y)] > 0 {
				row[x-1] = 1
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())
	if len(g.history) > historyDepth {
		g.history = g.history[1:]
	}
}

// History returns the recorded hashes, oldest first
func (g *Grid) History() []string {
	return g.history
}

// SetHistory carries recorded hashes over to a successor grid
func (g *Grid) SetHistory(history []string) {
	g.history = history
}

// IsStagnant reports whether the current state matches one of the last three
// recorded states, which covers still lifes and period-2 and period-3 cycles
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	current := g.GetGridHash()
	for _, h := range g.history[len(g.history)-3:] {
		if h == current {
			return true
		}
	}
	return false
}

// InjectRandomLife adds some random cells to break stagnation
func (g *Grid) InjectRandomLife(rng *rand.Rand, count int) {
	for range count {
		g.Set(1+rng.Intn(g.size), 1+rng.Intn(g.size), true)
	}
}

// Randomize fills the interior with random living cells
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for y := 1; y <= g.size; y++ {
		for x := 1; x <= g.size; x++ {
			g.Set(x, y, rng.Float64() < density)
		}
	}
}

// Scatter marks points random cells alive, drawing both coordinates from
// [1, size-1]. Repeated draws of the same cell are allowed.
func (g *Grid) Scatter(rng *rand.Rand, points int) {
	if g.size < 2 {
		return
	}
	for range points {
		g.Set(1+rng.Intn(g.size-1), 1+rng.Intn(g.size-1), true)
	}
}

// AddGlider adds a glider pattern with its top-left corner at (startX, startY)
func (g *Grid) AddGlider(startX, startY int) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for y, row := range pattern {
		for x, cell := range row {
			g.Set(startX+x, startY+y, cell)
		}
	}
}

// AddBlinker adds a horizontal period-2 oscillator
func (g *Grid) AddBlinker(startX, startY int) {
	g.Set(startX, startY, true)
	g.Set(startX+1, startY, true)
	g.Set(startX+2, startY, true)
}

// AddBlock adds a 2x2 still life
func (g *Grid) AddBlock(startX, startY int) {
	g.Set(startX, startY, true)
	g.Set(startX+1, startY, true)
	g.Set(startX, startY+1, true)
	g.Set(startX+1, startY+1, true)
}

// Seed clears the grid, drops a few known patterns when there is room and
// scatters startPoints random cells on top
func (g *Grid) Seed(rng *rand.Rand, startPoints int) {
	g.Clear()

	if g.size >= 10 {
		g.AddGlider(2, 2)
		g.AddBlinker(g.size/4, g.size/2)
		if g.size >= 20 {
			g.AddGlider(g.size-6, 2)
			g.AddBlock(3*g.size/4, 3*g.size/4)
		}
	}

	g.Scatter(rng, startPoints)
}
