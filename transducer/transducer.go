// Package transducer models a single piston-source ultrasonic transducer:
// its immutable geometry/output parameters, validation, and the complex
// pressure contribution it makes at a point in space.
package transducer

import (
	"math"
	"math/cmplx"

	"github.com/acoustics-lab/gorkovsim/vec3"
)

// Transducer is an immutable record describing one piston-source emitter.
type Transducer struct {
	ID          string
	Position    vec3.Vec3[float64]
	Target      vec3.Vec3[float64]
	Radius      float64
	PhaseShift  float64
	LossFactor  float64
	OutputPower float64

	// Frequency overrides the shared SimulationParameter frequency for this
	// transducer's wave number when non-nil. Most arrays share one
	// frequency across all transducers, so this is nil in the common case.
	Frequency *float64
}

// Validate reports the first failing constraint as a human-readable
// message, or the empty string if every invariant holds.
func (t Transducer) Validate() string {
	if t.Radius <= 0 {
		return "Radius is not positive"
	}
	if t.LossFactor < 0 || t.LossFactor > 1 {
		return "Loss factor is not in range 0 and 1"
	}
	if t.OutputPower < 0 || t.OutputPower > 1 {
		return "Output power is not in range 0 and 1"
	}
	return ""
}

// Pressure returns the complex pressure amplitude this transducer
// contributes at point, given the shared frequency and medium wave speed
// from the simulation parameter. The transducer's own Frequency, if set,
// overrides the shared frequency in the wave number calculation.
func (t Transducer) Pressure(point vec3.Vec3[float64], sharedFrequency, waveSpeed float64) complex128 {
	frequency := sharedFrequency
	if t.Frequency != nil {
		frequency = *t.Frequency
	}

	angle := vec3.CosineAngle(t.Position, t.Target, point)
	dist := vec3.Distance(t.Position, point)
	waveNumber := 2 * math.Pi * frequency / waveSpeed

	directivity := 1.0
	if x := waveNumber * t.Radius * math.Sin(angle); x != 0 {
		directivity = 2 * math.J1(x) / x
	}

	amplitude := t.OutputPower * t.LossFactor * directivity / dist
	phase := waveNumber*dist + t.PhaseShift
	return cmplx.Rect(amplitude, phase)
}
