// Package simparam models the medium and target-particle parameters shared
// by an entire simulation run, including the Gor'kov k1/k2 coefficients.
package simparam

import (
	"math"

	"github.com/acoustics-lab/gorkovsim/vec3"
)

// SimulationParameter is an immutable record of the grid extents, medium
// properties, and target-particle properties for one run.
type SimulationParameter struct {
	Begin, End vec3.Vec3[float64]

	CellSize                   float64
	Frequency                  float64
	AirDensity                 float64
	AirWaveSpeed               float64
	ParticleRadius             float64
	ParticleDensity            float64
	ParticleWaveSpeed          float64
	AssumeLargeParticleDensity bool
}

// Validate reports the first failing constraint as a human-readable
// message, or the empty string if every invariant holds. ParticleDensity
// and ParticleWaveSpeed are only checked when AssumeLargeParticleDensity
// is false, since the large-particle-density approximation never reads
// them.
func (sp SimulationParameter) Validate() string {
	if sp.CellSize <= 0 {
		return "Cell size is not positive"
	}
	if sp.Frequency <= 0 {
		return "Frequency is not positive"
	}
	if sp.AirDensity <= 0 {
		return "Air density is not positive"
	}
	if sp.AirWaveSpeed <= 0 {
		return "Air wave speed is not positive"
	}
	if sp.ParticleRadius <= 0 {
		return "Particle radius is not positive"
	}
	if !sp.AssumeLargeParticleDensity && sp.ParticleDensity <= 0 {
		return "Particle density is not positive"
	}
	if !sp.AssumeLargeParticleDensity && sp.ParticleWaveSpeed <= 0 {
		return "Particle wave speed is not positive"
	}
	return ""
}

// ParticleVolume returns the volume of a sphere of ParticleRadius.
func (sp SimulationParameter) ParticleVolume() float64 {
	return (4.0 / 3.0) * math.Pi * sp.ParticleRadius * sp.ParticleRadius * sp.ParticleRadius
}

// AngularFrequency returns 2*pi*Frequency.
func (sp SimulationParameter) AngularFrequency() float64 {
	return 2 * math.Pi * sp.Frequency
}

// K1 returns the Gor'kov monopole coefficient. When AssumeLargeParticleDensity
// is set, the particle term is dropped under the assumption that the
// particle's acoustic impedance dominates the medium's.
func (sp SimulationParameter) K1() float64 {
	volume := sp.ParticleVolume()
	airTerm := sp.AirWaveSpeed * sp.AirWaveSpeed * sp.AirDensity

	if sp.AssumeLargeParticleDensity {
		return volume / airTerm / 4.0
	}

	particleTerm := sp.ParticleWaveSpeed * sp.ParticleWaveSpeed * sp.ParticleDensity
	return volume * (1.0/airTerm - 1.0/particleTerm) / 4.0
}

// K2 returns the Gor'kov dipole coefficient.
func (sp SimulationParameter) K2() float64 {
	i1 := sp.ParticleVolume() * 3.0 / 4.0
	w := sp.AngularFrequency()
	i2 := w * w * sp.AirDensity

	if sp.AssumeLargeParticleDensity {
		return i1 / i2 / -2.0
	}

	i3 := sp.AirDensity + 2.0*sp.ParticleDensity
	i4 := sp.AirDensity - sp.ParticleDensity
	return i1 * (i4 / i3 / i2)
}
