package sim

import (
	"testing"

	"github.com/acoustics-lab/gorkovsim/simparam"
	"github.com/acoustics-lab/gorkovsim/vec3"
)

func TestBuildNestedGridsHaloArithmetic(t *testing.T) {
	sp := simparam.SimulationParameter{
		Begin:    vec3.New(-5e-3, -5e-3, 10e-3),
		End:      vec3.New(5e-3, 5e-3, 20e-3),
		CellSize: 5e-3,
	}
	grids := buildNestedGrids(sp)

	force := grids.force.Dimension()
	potential := grids.potential.Dimension()
	pressure := grids.pressure.Dimension()

	if want := vec3.New[uint64](3, 3, 3); force != want {
		t.Errorf("force dimension = %v, want %v", force, want)
	}
	if want := force.AddScalar(2); potential != want {
		t.Errorf("potential dimension = %v, want %v", potential, want)
	}
	if want := potential.AddScalar(2); pressure != want {
		t.Errorf("pressure dimension = %v, want %v", pressure, want)
	}

	// Potential's begin/end sit one cell_size outside force's on every face.
	if got, want := grids.potential.Begin().X, grids.force.Begin().X-sp.CellSize; got != want {
		t.Errorf("potential.Begin().X = %v, want %v", got, want)
	}
	if got, want := grids.potential.End().Z, grids.force.End().Z+sp.CellSize; got != want {
		t.Errorf("potential.End().Z = %v, want %v", got, want)
	}
	// Pressure sits two cell_sizes outside force on every face.
	if got, want := grids.pressure.Begin().Y, grids.force.Begin().Y-2*sp.CellSize; got != want {
		t.Errorf("pressure.Begin().Y = %v, want %v", got, want)
	}
}

func TestAxisNeighborsSelectsCorrectAxis(t *testing.T) {
	idxLhs := vec3.New[uint64](0, 0, 0)
	idxMid := idxLhs.AddScalar(1)

	interp := buildNestedGrids(simparam.SimulationParameter{
		Begin:    vec3.New(0.0, 0.0, 0.0),
		End:      vec3.New(1.0, 1.0, 1.0),
		CellSize: 0.1,
	}).pressure

	for axis := 0; axis < 3; axis++ {
		minus, plus := axisNeighbors(interp, idxLhs, idxMid, axis)
		minusVec := interp.GetIntVec(minus)
		plusVec := interp.GetIntVec(plus)

		wantMinus, wantPlus := idxMid, idxMid
		switch axis {
		case 0:
			wantMinus.X, wantPlus.X = idxLhs.X, idxLhs.X+2
		case 1:
			wantMinus.Y, wantPlus.Y = idxLhs.Y, idxLhs.Y+2
		case 2:
			wantMinus.Z, wantPlus.Z = idxLhs.Z, idxLhs.Z+2
		}

		if minusVec != wantMinus {
			t.Errorf("axis %d: minus = %v, want %v", axis, minusVec, wantMinus)
		}
		if plusVec != wantPlus {
			t.Errorf("axis %d: plus = %v, want %v", axis, plusVec, wantPlus)
		}
	}
}
