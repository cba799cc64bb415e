package sim

import "github.com/acoustics-lab/gorkovsim/vec3"

// Metadata is the JSON document written alongside the five binary result
// files, per the schema in §6: one dimension/begin/end triple for each of
// the pressure, potential, and force grids.
type Metadata struct {
	Version int `json:"version"`

	PressureCnt [3]uint64  `json:"pressure_cnt"`
	PressureBeg [3]float64 `json:"pressure_beg"`
	PressureEnd [3]float64 `json:"pressure_end"`

	PotentialCnt [3]uint64  `json:"potential_cnt"`
	PotentialBeg [3]float64 `json:"potential_beg"`
	PotentialEnd [3]float64 `json:"potential_end"`

	ForceCnt [3]uint64  `json:"force_cnt"`
	ForceBeg [3]float64 `json:"force_beg"`
	ForceEnd [3]float64 `json:"force_end"`

	// ForceStats supplements the required schema with mean/variance of the
	// final force magnitude. Unknown to any consumer expecting only the
	// fields above, and therefore safe to omit or ignore.
	ForceStats *ForceStats `json:"force_stats,omitempty"`
}

// ForceStats summarizes |F| over the force grid.
type ForceStats struct {
	MeanMagnitude     float64 `json:"mean_magnitude"`
	VarianceMagnitude float64 `json:"variance_magnitude"`
}

func toUintTriple(v vec3.Vec3[uint64]) [3]uint64 {
	return [3]uint64{v.X, v.Y, v.Z}
}

func toFloatTriple(v vec3.Vec3[float64]) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func buildMetadata(g nestedGrids, stats *ForceStats) Metadata {
	return Metadata{
		Version: 1,

		PressureCnt: toUintTriple(g.pressure.Dimension()),
		PressureBeg: toFloatTriple(g.pressure.Begin()),
		PressureEnd: toFloatTriple(g.pressure.End()),

		PotentialCnt: toUintTriple(g.potential.Dimension()),
		PotentialBeg: toFloatTriple(g.potential.Begin()),
		PotentialEnd: toFloatTriple(g.potential.End()),

		ForceCnt: toUintTriple(g.force.Dimension()),
		ForceBeg: toFloatTriple(g.force.Begin()),
		ForceEnd: toFloatTriple(g.force.End()),

		ForceStats: stats,
	}
}
