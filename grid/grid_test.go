package grid

import (
	"math"
	"testing"

	"github.com/acoustics-lab/gorkovsim/vec3"
)

func TestCellBlockRoundTrip(t *testing.T) {
	dim := vec3.New[uint64](2, 3, 4)
	b := NewCellBlock[float64](dim)
	if b.Size() != 24 {
		t.Fatalf("Size() = %d, want 24", b.Size())
	}
	b.SetCell(5, 3.14)
	if got := b.GetCell(5); got != 3.14 {
		t.Errorf("GetCell(5) = %v, want 3.14", got)
	}
}

func TestCellBlockRawBytesLength(t *testing.T) {
	dim := vec3.New[uint64](2, 2, 2)
	b := NewCellBlock[complex128](dim)
	raw := b.RawBytes()
	if len(raw) != 8*16 {
		t.Errorf("len(RawBytes()) = %d, want %d", len(raw), 8*16)
	}
}

func TestInterpolationIDIntVecInverse(t *testing.T) {
	dim := vec3.New[uint64](3, 4, 5)
	interp := NewInterpolation(dim, vec3.New(0.0, 0.0, 0.0), vec3.New(1.0, 1.0, 1.0))

	n := int(dim.Product())
	for id := 0; id < n; id++ {
		cid := CellID(id)
		iv := interp.GetIntVec(cid)
		if got := interp.GetID(iv); got != cid {
			t.Fatalf("GetID(GetIntVec(%d)) = %d, want %d", id, got, id)
		}
	}
}

func TestInterpolationIntVecIDInverse(t *testing.T) {
	dim := vec3.New[uint64](2, 3, 2)
	interp := NewInterpolation(dim, vec3.New(0.0, 0.0, 0.0), vec3.New(1.0, 1.0, 1.0))

	for i := uint64(0); i < dim.X; i++ {
		for j := uint64(0); j < dim.Y; j++ {
			for k := uint64(0); k < dim.Z; k++ {
				v := vec3.New(i, j, k)
				id := interp.GetID(v)
				if got := interp.GetIntVec(id); got != v {
					t.Fatalf("GetIntVec(GetID(%v)) = %v, want %v", v, got, v)
				}
			}
		}
	}
}

func TestInterpolationBeginEndBoundary(t *testing.T) {
	dim := vec3.New[uint64](4, 4, 4)
	begin := vec3.New(-1.0, -2.0, -3.0)
	end := vec3.New(1.0, 2.0, 3.0)
	interp := NewInterpolation(dim, begin, end)

	gotBegin := interp.GetRealVec(interp.GetID(vec3.New[uint64](0, 0, 0)))
	if gotBegin != begin {
		t.Errorf("GetRealVec(origin) = %v, want %v", gotBegin, begin)
	}

	gotEnd := interp.RealVecFromIndex(dim)
	if math.Abs(gotEnd.X-end.X) > 1e-12 || math.Abs(gotEnd.Y-end.Y) > 1e-12 || math.Abs(gotEnd.Z-end.Z) > 1e-12 {
		t.Errorf("RealVecFromIndex(dim) = %v, want %v", gotEnd, end)
	}
}
