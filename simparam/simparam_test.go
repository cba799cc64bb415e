package simparam

import (
	"math"
	"testing"

	"github.com/acoustics-lab/gorkovsim/vec3"
)

func baseParam() SimulationParameter {
	return SimulationParameter{
		Begin:                      vec3.New(-0.02, -0.02, -0.02),
		End:                        vec3.New(0.02, 0.02, 0.02),
		CellSize:                   0.001,
		Frequency:                  40000,
		AirDensity:                 1.2,
		AirWaveSpeed:               343,
		ParticleRadius:             0.0005,
		ParticleDensity:            25,
		ParticleWaveSpeed:          2350,
		AssumeLargeParticleDensity: true,
	}
}

func TestValidateAcceptsSaneParameter(t *testing.T) {
	if msg := baseParam().Validate(); msg != "" {
		t.Fatalf("Validate() = %q, want empty", msg)
	}
}

func TestValidateRejectsNonPositiveCellSize(t *testing.T) {
	sp := baseParam()
	sp.CellSize = 0
	if msg := sp.Validate(); msg != "Cell size is not positive" {
		t.Errorf("Validate() = %q, want %q", msg, "Cell size is not positive")
	}
}

func TestValidateSkipsParticleDensityWhenAssumingLargeDensity(t *testing.T) {
	sp := baseParam()
	sp.AssumeLargeParticleDensity = true
	sp.ParticleDensity = 0
	sp.ParticleWaveSpeed = 0
	if msg := sp.Validate(); msg != "" {
		t.Errorf("Validate() = %q, want empty (large-density approximation ignores these fields)", msg)
	}
}

func TestValidateChecksParticleDensityWhenNotAssumingLargeDensity(t *testing.T) {
	sp := baseParam()
	sp.AssumeLargeParticleDensity = false
	sp.ParticleDensity = 0
	if msg := sp.Validate(); msg != "Particle density is not positive" {
		t.Errorf("Validate() = %q, want %q", msg, "Particle density is not positive")
	}
}

func TestAngularFrequencyIsTwoPiTimesFrequency(t *testing.T) {
	sp := baseParam()
	want := 2 * math.Pi * sp.Frequency
	if got := sp.AngularFrequency(); math.Abs(got-want) > 1e-9 {
		t.Errorf("AngularFrequency() = %v, want %v", got, want)
	}
}

func TestParticleVolumeIsSphereVolume(t *testing.T) {
	sp := baseParam()
	want := (4.0 / 3.0) * math.Pi * sp.ParticleRadius * sp.ParticleRadius * sp.ParticleRadius
	if got := sp.ParticleVolume(); math.Abs(got-want) > 1e-18 {
		t.Errorf("ParticleVolume() = %v, want %v", got, want)
	}
}

// TestK1K2LargeDensityLimit checks that explicitly supplying a particle
// density/wave speed high enough to dominate the medium's impedance makes
// the exact (assume_large_particle_density=false) formula converge to the
// large-particle-density approximation.
func TestK1K2LargeDensityLimit(t *testing.T) {
	large := baseParam()
	large.AssumeLargeParticleDensity = true

	exact := baseParam()
	exact.AssumeLargeParticleDensity = false
	exact.ParticleDensity = 1e9
	exact.ParticleWaveSpeed = 1e9

	if got, want := exact.K1(), large.K1(); math.Abs(got-want)/math.Abs(want) > 1e-6 {
		t.Errorf("K1() exact-limit = %v, want approx %v", got, want)
	}
	if got, want := exact.K2(), large.K2(); math.Abs(got-want)/math.Abs(want) > 1e-6 {
		t.Errorf("K2() exact-limit = %v, want approx %v", got, want)
	}
}

func TestK2IsNegativeForTypicalAirParticleSystem(t *testing.T) {
	sp := baseParam()
	if sp.K2() >= 0 {
		t.Errorf("K2() = %v, want negative for a particle denser than air", sp.K2())
	}
}
