// Command liblifestep builds the step engine as a C shared library:
//
//	go build -buildmode=c-shared -o liblifestep.so ./cmd/liblifestep
//
// It exports make_step, make_step_update and make_step_mt over flat int32
// buffers of (size+2)^2 cells, and free_step to release every buffer returned
// by make_step or make_step_mt. Buffers whose size does not describe a valid
// grid are rejected: the allocating calls return NULL and make_step_update
// returns -1.
package main

func main() {}
