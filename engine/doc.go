// Package engine computes Game of Life generations over bordered, dense grids.
//
// Every stepper works on a [model.Grid]: a square board of logical side size
// stored in a flat buffer of (size+2)^2 cells, with a one-cell dead border.
// Steppers read the border but never write it, and write exactly 0 or 1 into
// each interior cell.
//
// # Steppers
//
//   - [Linear]: next generation into a freshly allocated grid.
//   - [InPlace]: next generation written back into the same grid, evaluated
//     against a private snapshot taken at the start of the call.
//   - [Parallel]: interior rows split into contiguous partitions, one
//     goroutine per partition, results copied into a fresh grid once every
//     worker has finished.
//
// All three produce identical interiors for the same input.
//
// # Flat buffers
//
// [MakeStep], [MakeStepUpdate] and [MakeStepMT] take raw []int32 buffers as
// handed over by a host environment, check that the buffer length matches
// size (and that the worker count is positive), and fail with an error
// matching [ErrContractViolation] otherwise.
//
// # Ownership
//
// Grids returned by [Linear], [Parallel] and the flat entry points belong to
// the caller; the engine keeps no reference to them.
package engine
