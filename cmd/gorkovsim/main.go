// Command gorkovsim is the headless CLI entry point for one simulation job:
// read a transducer/parameter JSON file, build the already-validated value
// objects it describes, and invoke sim.Run.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/acoustics-lab/gorkovsim/progress"
	"github.com/acoustics-lab/gorkovsim/runconfig"
	"github.com/acoustics-lab/gorkovsim/sim"
	"github.com/acoustics-lab/gorkovsim/simparam"
	"github.com/acoustics-lab/gorkovsim/transducer"
	"github.com/acoustics-lab/gorkovsim/vec3"
)

// jobFile is the on-disk shape a caller supplies: a transducer list and one
// simulation parameter record, in the units §3 of the wire contract expects.
// Reading this file is the CLI's only JSON responsibility; the core never
// sees anything but the constructed value objects below.
type jobFile struct {
	Transducers []transducerSpec `json:"transducers"`
	Parameter   parameterSpec    `json:"parameter"`
}

type vec3Spec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type transducerSpec struct {
	ID          string   `json:"id"`
	Position    vec3Spec `json:"position"`
	Target      vec3Spec `json:"target"`
	Radius      float64  `json:"radius"`
	PhaseShift  float64  `json:"phase_shift"`
	LossFactor  float64  `json:"loss_factor"`
	OutputPower float64  `json:"output_power"`
	Frequency   *float64 `json:"frequency,omitempty"`
}

type parameterSpec struct {
	Begin                      vec3Spec `json:"begin"`
	End                        vec3Spec `json:"end"`
	CellSize                   float64  `json:"cell_size"`
	Frequency                  float64  `json:"frequency"`
	AirDensity                 float64  `json:"air_density"`
	AirWaveSpeed               float64  `json:"air_wave_speed"`
	ParticleRadius             float64  `json:"particle_radius"`
	ParticleDensity            float64  `json:"particle_density"`
	ParticleWaveSpeed          float64  `json:"particle_wave_speed"`
	AssumeLargeParticleDensity bool     `json:"assume_large_particle_density"`
}

func (v vec3Spec) toVec3() vec3.Vec3[float64] {
	return vec3.New(v.X, v.Y, v.Z)
}

func buildTransducers(specs []transducerSpec) []transducer.Transducer {
	out := make([]transducer.Transducer, len(specs))
	for i, s := range specs {
		out[i] = transducer.Transducer{
			ID:          s.ID,
			Position:    s.Position.toVec3(),
			Target:      s.Target.toVec3(),
			Radius:      s.Radius,
			PhaseShift:  s.PhaseShift,
			LossFactor:  s.LossFactor,
			OutputPower: s.OutputPower,
			Frequency:   s.Frequency,
		}
	}
	return out
}

func buildParameter(s parameterSpec) simparam.SimulationParameter {
	return simparam.SimulationParameter{
		Begin:                      s.Begin.toVec3(),
		End:                        s.End.toVec3(),
		CellSize:                   s.CellSize,
		Frequency:                  s.Frequency,
		AirDensity:                 s.AirDensity,
		AirWaveSpeed:               s.AirWaveSpeed,
		ParticleRadius:             s.ParticleRadius,
		ParticleDensity:            s.ParticleDensity,
		ParticleWaveSpeed:          s.ParticleWaveSpeed,
		AssumeLargeParticleDensity: s.AssumeLargeParticleDensity,
	}
}

func main() {
	jobPath := flag.String("job", "", "Path to a JSON file describing transducers and the simulation parameter")
	outputDir := flag.String("output", "", "Output directory for the five result files and metadata.json")
	configPath := flag.String("config", "", "Run configuration YAML file (empty = use embedded defaults)")
	flag.Parse()

	if *jobPath == "" {
		log.Fatal("--job is required")
	}
	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := runconfig.Init(*configPath); err != nil {
		log.Fatalf("failed to load run configuration: %v", err)
	}
	slog.SetLogLoggerLevel(runconfig.Cfg().Derived.SlogLevel)

	data, err := os.ReadFile(*jobPath)
	if err != nil {
		log.Fatalf("reading job file: %v", err)
	}

	var job jobFile
	if err := json.Unmarshal(data, &job); err != nil {
		log.Fatalf("parsing job file: %v", err)
	}

	transducers := buildTransducers(job.Transducers)
	parameter := buildParameter(job.Parameter)

	prog := progress.New()
	if err := sim.Run(prog, *outputDir, transducers, parameter, nil); err != nil {
		fmt.Fprint(os.Stderr, prog.Read())
		log.Fatalf("run failed: %v", err)
	}

	fmt.Print(prog.Read())
}
