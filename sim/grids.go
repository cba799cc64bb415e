package sim

import (
	"github.com/acoustics-lab/gorkovsim/grid"
	"github.com/acoustics-lab/gorkovsim/simparam"
	"github.com/acoustics-lab/gorkovsim/vec3"
)

// nestedGrids holds the three coordinate transforms derived from one
// SimulationParameter, sized so that stage N+1's grid is strictly interior
// to stage N's grid by the halo arithmetic of the +1/+2/+2 nesting.
type nestedGrids struct {
	force     grid.Interpolation
	potential grid.Interpolation
	pressure  grid.Interpolation
}

// buildNestedGrids computes force_count = ceil(|end-begin|/cell_size) + 1,
// then pads potential by one halo cell and pressure by two halo cells on
// every face, all three sharing cell_size and a common lattice origin.
func buildNestedGrids(sp simparam.SimulationParameter) nestedGrids {
	diff := sp.End.Sub(sp.Begin).ElemAbs()
	n := vec3.Ceil(diff.DivScalar(sp.CellSize))
	forceCount := n.AddScalar(1)

	cellSize := sp.CellSize
	bf := sp.Begin
	ef := bf.Add(vec3.ToFloat(forceCount).MulScalar(cellSize))
	force := grid.NewInterpolation(forceCount, bf, ef)

	potentialCount := forceCount.AddScalar(2)
	bp := bf.SubScalar(cellSize)
	ep := ef.AddScalar(cellSize)
	potential := grid.NewInterpolation(potentialCount, bp, ep)

	pressureCount := potentialCount.AddScalar(2)
	bpi := bp.SubScalar(cellSize)
	epi := ep.AddScalar(cellSize)
	pressure := grid.NewInterpolation(pressureCount, bpi, epi)

	return nestedGrids{force: force, potential: potential, pressure: pressure}
}

// axisNeighbors returns the cell ids immediately before and after idxMid
// along axis (0=x, 1=y, 2=z), holding the other two components fixed at
// idxMid. idxLhs is the cell's 0-based index on the inner grid the caller
// iterates; interp is the enclosing grid (same cell_size, one halo cell
// larger on every face), on which the same point is idxMid = idxLhs+1 and
// idxLhs[axis] and idxLhs[axis]+2 are its two neighbors.
func axisNeighbors(interp grid.Interpolation, idxLhs, idxMid vec3.Vec3[uint64], axis int) (minus, plus grid.CellID) {
	lo, hi := idxMid, idxMid
	switch axis {
	case 0:
		lo.X, hi.X = idxLhs.X, idxLhs.X+2
	case 1:
		lo.Y, hi.Y = idxLhs.Y, idxLhs.Y+2
	case 2:
		lo.Z, hi.Z = idxLhs.Z, idxLhs.Z+2
	}
	return interp.GetID(lo), interp.GetID(hi)
}
