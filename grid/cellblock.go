// Package grid implements dense 3-D cell storage and the coordinate mapping
// between a flat CellID, an integer (i,j,k) triple, and a real-space point.
package grid

import (
	"unsafe"

	"github.com/acoustics-lab/gorkovsim/vec3"
)

// CellID is an opaque, non-negative identifier for a cell in a CellBlock.
type CellID uint64

// Value is the set of scalar types a CellBlock can store.
type Value interface {
	~float64 | ~complex128
}

// CellBlock is a dense, flat, z-fastest 3-D array of scalar values. A
// CellBlock is filled by exactly one pipeline stage; concurrent writes to
// distinct cell ids by multiple goroutines are safe because each cell is
// independent, but a cell must never be written and read concurrently.
type CellBlock[T Value] struct {
	dim  vec3.Vec3[uint64]
	data []T
}

// NewCellBlock allocates a CellBlock of the given dimensions, default
// initialized to the zero value of T.
func NewCellBlock[T Value](dim vec3.Vec3[uint64]) *CellBlock[T] {
	return &CellBlock[T]{
		dim:  dim,
		data: make([]T, dim.Product()),
	}
}

// Dimension returns the (nx, ny, nz) extents of the block.
func (b *CellBlock[T]) Dimension() vec3.Vec3[uint64] {
	return b.dim
}

// Size returns nx*ny*nz, the total cell count.
func (b *CellBlock[T]) Size() int {
	return len(b.data)
}

// GetCell returns a copy of the value stored at id. id must be < Size().
func (b *CellBlock[T]) GetCell(id CellID) T {
	return b.data[id]
}

// SetCell overwrites the value stored at id. id must be < Size().
func (b *CellBlock[T]) SetCell(id CellID, v T) {
	b.data[id] = v
}

// Values returns a read-only view of the block's backing storage, for
// callers that need to run whole-slice operations (e.g. gonum reductions)
// over the filled block. The returned slice aliases the block's memory.
func (b *CellBlock[T]) Values() []T {
	return b.data
}

// RawBytes exposes the block's backing storage as a contiguous byte slice in
// native host byte order, for binary export. The returned slice aliases the
// block's memory; it must not be retained past the block's lifetime.
func (b *CellBlock[T]) RawBytes() []byte {
	if len(b.data) == 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.data[0])), len(b.data)*elemSize)
}
