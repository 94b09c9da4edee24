//go:build cgo

package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/sheikhrachel/lifestep/engine"
	"github.com/sheikhrachel/lifestep/model"
)

// cellsView returns a slice over caller-owned memory, sized from size alone
func cellsView(ptr *C.int32_t, size C.int32_t) []int32 {
	if ptr == nil || size < 1 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(ptr)), model.BufferLen(int(size)))
}

// toC copies cells into C memory that the caller releases with free_step
func toC(cells []int32) *C.int32_t {
	n := C.size_t(len(cells)) * C.size_t(unsafe.Sizeof(C.int32_t(0)))
	p := (*C.int32_t)(C.malloc(n))
	if p == nil {
		return nil
	}
	copy(unsafe.Slice((*int32)(unsafe.Pointer(p)), len(cells)), cells)
	return p
}

//export make_step
func make_step(src *C.int32_t, size C.int32_t) *C.int32_t {
	out, err := engine.MakeStep(cellsView(src, size), int(size))
	if err != nil {
		return nil
	}
	return toC(out)
}

//export make_step_update
func make_step_update(src *C.int32_t, size C.int32_t) C.int32_t {
	n, err := engine.MakeStepUpdate(cellsView(src, size), int(size))
	if err != nil {
		return -1
	}
	return C.int32_t(n)
}

//export make_step_mt
func make_step_mt(src *C.int32_t, size C.int32_t, cpuCount C.int32_t) *C.int32_t {
	out, err := engine.MakeStepMT(cellsView(src, size), int(size), int(cpuCount))
	if err != nil {
		return nil
	}
	return toC(out)
}

//export free_step
func free_step(buf *C.int32_t) {
	C.free(unsafe.Pointer(buf))
}
