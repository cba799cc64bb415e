package grid

import "github.com/acoustics-lab/gorkovsim/vec3"

// Interpolation maps a CellID in a dim-shaped integer lattice to a real-space
// point inside [begin, end], and back. It owns no data; it is a pure
// coordinate transform shared by a grid's pressure/potential/force stage.
type Interpolation struct {
	dim   vec3.Vec3[uint64]
	begin vec3.Vec3[float64]
	end   vec3.Vec3[float64]
}

// NewInterpolation builds an Interpolation over dim cells spanning [begin, end].
func NewInterpolation(dim vec3.Vec3[uint64], begin, end vec3.Vec3[float64]) Interpolation {
	return Interpolation{dim: dim, begin: begin, end: end}
}

// Dimension returns the lattice's (nx, ny, nz) extents.
func (p Interpolation) Dimension() vec3.Vec3[uint64] {
	return p.dim
}

// Begin returns the real-space lower corner.
func (p Interpolation) Begin() vec3.Vec3[float64] {
	return p.begin
}

// End returns the real-space upper corner.
func (p Interpolation) End() vec3.Vec3[float64] {
	return p.end
}

// CellCount returns nx*ny*nz.
func (p Interpolation) CellCount() uint64 {
	return p.dim.Product()
}

// GetIntVec decodes a CellID into its (i, j, k) integer triple. Layout is
// z-fastest: id = i*ny*nz + j*nz + k.
func (p Interpolation) GetIntVec(id CellID) vec3.Vec3[uint64] {
	ny, nz := p.dim.Y, p.dim.Z
	raw := uint64(id)
	i := (raw / nz / ny) % p.dim.X
	j := (raw / nz) % ny
	k := raw % nz
	return vec3.New(i, j, k)
}

// GetID is the inverse of GetIntVec.
func (p Interpolation) GetID(v vec3.Vec3[uint64]) CellID {
	return CellID(v.X*p.dim.Y*p.dim.Z + v.Y*p.dim.Z + v.Z)
}

// GetRealVec maps a CellID to its real-space position via component-wise
// lerp(begin, end, (i/nx, j/ny, k/nz)).
func (p Interpolation) GetRealVec(id CellID) vec3.Vec3[float64] {
	return p.RealVecFromIndex(p.GetIntVec(id))
}

// RealVecFromIndex applies the lerp formula directly to an integer triple,
// without going through the CellID encode/decode round trip. This lets the
// begin/end boundary case extrapolate correctly even when the integer triple
// equals dim itself, which is not a valid in-range CellID and would wrap
// under GetIntVec's modulo arithmetic.
func (p Interpolation) RealVecFromIndex(iv vec3.Vec3[uint64]) vec3.Vec3[float64] {
	frac := vec3.ToFloat(iv).ElemDiv(vec3.ToFloat(p.dim))
	return vec3.New(
		lerp(p.begin.X, p.end.X, frac.X),
		lerp(p.begin.Y, p.end.Y, frac.Y),
		lerp(p.begin.Z, p.end.Z, frac.Z),
	)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
