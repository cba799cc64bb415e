// Package sim implements the three-stage pressure/potential/force pipeline:
// allocate three nested grids, evaluate each stage in order, and export the
// results as binary files plus a JSON metadata manifest.
package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/acoustics-lab/gorkovsim/grid"
	"github.com/acoustics-lab/gorkovsim/progress"
	"github.com/acoustics-lab/gorkovsim/runconfig"
	"github.com/acoustics-lab/gorkovsim/simparam"
	"github.com/acoustics-lab/gorkovsim/transducer"
)

// ErrJobInProgress is returned synchronously when Run is called while
// another job holds the process-wide progress slot.
var ErrJobInProgress = errors.New("sim: a job is already in progress")

// ErrInvalidParameter wraps the first validation failure reported by a
// Transducer or a SimulationParameter.
var ErrInvalidParameter = errors.New("sim: invalid parameter")

// ErrCancelled is returned when the caller's cancel flag was observed set
// at a stage boundary. Mid-stage cancellation is never observed; a stage
// that has started runs to completion.
var ErrCancelled = errors.New("sim: cancelled")

// Run validates transducers and sp, then — if valid and no other job is
// running — allocates the three nested grids, evaluates pressure, potential,
// and force in order, and writes the five binary result files plus
// metadata.json (and a diagnostic stage_timings.csv) into outDir.
//
// cancel, if non-nil, is polled only at stage boundaries per §5; a stage
// that has already started always runs to completion.
func Run(prog *progress.Progress, outDir string, transducers []transducer.Transducer, sp simparam.SimulationParameter, cancel *atomic.Bool) (err error) {
	if msg := sp.Validate(); msg != "" {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, msg)
	}
	for _, t := range transducers {
		if msg := t.Validate(); msg != "" {
			return fmt.Errorf("%w: %s", ErrInvalidParameter, msg)
		}
	}

	if !prog.TryStart() {
		return ErrJobInProgress
	}
	defer prog.Finish()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sim: allocation failure: %v", r)
			prog.Logf("fatal: %v", err)
			slog.Error("sim run aborted by allocation failure", "error", err)
			cleanupBestEffort(outDir)
		}
	}()

	cfg := runconfig.Cfg()
	grids := buildNestedGrids(sp)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		wrapped := fmt.Errorf("creating output directory: %w", err)
		prog.Logf("fatal: %v", wrapped)
		slog.Error("sim run aborted creating output directory", "error", wrapped)
		return wrapped
	}

	var timings []StageTiming

	prog.Logf("starting pressure stage (%d cells)", grids.pressure.CellCount())
	t0 := time.Now()
	pressureBlock := runPressureStage(grids, transducers, sp, cfg)
	timings = append(timings, StageTiming{Stage: "pressure", Seconds: time.Since(t0).Seconds()})
	logPressureDiagnostics(prog, pressureBlock)

	if cancelled(cancel) {
		prog.Logf("cancelled after pressure stage")
		return ErrCancelled
	}

	prog.Logf("starting potential stage (%d cells)", grids.potential.CellCount())
	t0 = time.Now()
	potentialBlock := runPotentialStage(grids, pressureBlock, sp, cfg)
	timings = append(timings, StageTiming{Stage: "potential", Seconds: time.Since(t0).Seconds()})
	logRealDiagnostics(prog, "potential", potentialBlock)

	if cancelled(cancel) {
		prog.Logf("cancelled after potential stage")
		return ErrCancelled
	}

	prog.Logf("starting force stage (%d cells)", grids.force.CellCount())
	t0 = time.Now()
	fx, fy, fz := runForceStage(grids, potentialBlock, sp, cfg)
	timings = append(timings, StageTiming{Stage: "force", Seconds: time.Since(t0).Seconds()})
	logRealDiagnostics(prog, "force_x", fx)
	logRealDiagnostics(prog, "force_y", fy)
	logRealDiagnostics(prog, "force_z", fz)

	forceStats := computeForceStats(fx, fy, fz)

	t0 = time.Now()
	if exportErr := exportResults(outDir, grids, pressureBlock, potentialBlock, fx, fy, fz, forceStats, cfg); exportErr != nil {
		prog.Logf("fatal: %v", exportErr)
		slog.Error("sim export failed", "error", exportErr)
		return exportErr
	}
	timings = append(timings, StageTiming{Stage: "export", Seconds: time.Since(t0).Seconds()})

	if manifestErr := writeStageTimings(outDir, timings); manifestErr != nil {
		prog.Logf("warning: %v", manifestErr)
		slog.Warn("stage timing manifest not written", "error", manifestErr)
	}

	prog.Logf("run complete")
	slog.Info("sim run complete", "out_dir", outDir)
	return nil
}

func cancelled(cancel *atomic.Bool) bool {
	return cancel != nil && cancel.Load()
}

func runPressureStage(grids nestedGrids, transducers []transducer.Transducer, sp simparam.SimulationParameter, cfg *runconfig.Config) *grid.CellBlock[complex128] {
	block := grid.NewCellBlock[complex128](grids.pressure.Dimension())
	n := block.Size()

	parallelFor(n, cfg.Workers, cfg.ChunkSize, func(start, end int) {
		for i := start; i < end; i++ {
			id := grid.CellID(i)
			point := grids.pressure.GetRealVec(id)

			var sum complex128
			for _, t := range transducers {
				sum += t.Pressure(point, sp.Frequency, sp.AirWaveSpeed)
			}
			block.SetCell(id, sum)
		}
	})

	return block
}

func runPotentialStage(grids nestedGrids, pressure *grid.CellBlock[complex128], sp simparam.SimulationParameter, cfg *runconfig.Config) *grid.CellBlock[float64] {
	block := grid.NewCellBlock[float64](grids.potential.Dimension())
	n := block.Size()
	k1, k2 := sp.K1(), sp.K2()
	twoH := complex(2*sp.CellSize, 0)

	parallelFor(n, cfg.Workers, cfg.ChunkSize, func(start, end int) {
		for i := start; i < end; i++ {
			id := grid.CellID(i)
			idxLhs := grids.potential.GetIntVec(id)
			idxMid := idxLhs.AddScalar(1)

			pMid := pressure.GetCell(grids.pressure.GetID(idxMid))
			magMidSq := cmplx.Abs(pMid) * cmplx.Abs(pMid)

			var gradSq float64
			for axis := 0; axis < 3; axis++ {
				minusID, plusID := axisNeighbors(grids.pressure, idxLhs, idxMid, axis)
				d := (pressure.GetCell(plusID) - pressure.GetCell(minusID)) / twoH
				gradSq += cmplx.Abs(d) * cmplx.Abs(d)
			}

			u := 2*k1*magMidSq - 2*k2*gradSq
			block.SetCell(id, u)
		}
	})

	return block
}

func runForceStage(grids nestedGrids, potential *grid.CellBlock[float64], sp simparam.SimulationParameter, cfg *runconfig.Config) (fx, fy, fz *grid.CellBlock[float64]) {
	dim := grids.force.Dimension()
	fx = grid.NewCellBlock[float64](dim)
	fy = grid.NewCellBlock[float64](dim)
	fz = grid.NewCellBlock[float64](dim)
	blocks := [3]*grid.CellBlock[float64]{fx, fy, fz}

	n := fx.Size()
	twoH := 2 * sp.CellSize

	parallelFor(n, cfg.Workers, cfg.ChunkSize, func(start, end int) {
		for i := start; i < end; i++ {
			id := grid.CellID(i)
			idxLhs := grids.force.GetIntVec(id)
			idxMid := idxLhs.AddScalar(1)

			for axis := 0; axis < 3; axis++ {
				minusID, plusID := axisNeighbors(grids.potential, idxLhs, idxMid, axis)
				f := -(potential.GetCell(plusID) - potential.GetCell(minusID)) / twoH
				blocks[axis].SetCell(id, f)
			}
		}
	})

	return fx, fy, fz
}

func exportResults(outDir string, grids nestedGrids, pressure *grid.CellBlock[complex128], potential *grid.CellBlock[float64], fx, fy, fz *grid.CellBlock[float64], forceStats *ForceStats, cfg *runconfig.Config) error {
	files := []struct {
		name string
		data []byte
	}{
		{"pressure_result.bin", pressure.RawBytes()},
		{"potential_result.bin", potential.RawBytes()},
		{"force_x_result.bin", fx.RawBytes()},
		{"force_y_result.bin", fy.RawBytes()},
		{"force_z_result.bin", fz.RawBytes()},
	}

	for _, f := range files {
		path := filepath.Join(outDir, f.name)
		if err := os.WriteFile(path, f.data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}

	meta := buildMetadata(grids, forceStats)
	var metaBytes []byte
	var err error
	if cfg.MetadataIndent > 0 {
		metaBytes, err = json.MarshalIndent(meta, "", strings.Repeat(" ", cfg.MetadataIndent))
	} else {
		metaBytes, err = json.Marshal(meta)
	}
	if err != nil {
		return fmt.Errorf("marshaling metadata.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "metadata.json"), metaBytes, 0644); err != nil {
		return fmt.Errorf("writing metadata.json: %w", err)
	}

	return nil
}

func computeForceStats(fx, fy, fz *grid.CellBlock[float64]) *ForceStats {
	n := fx.Size()
	if n == 0 {
		return &ForceStats{}
	}
	magnitudes := make([]float64, n)
	xs, ys, zs := fx.Values(), fy.Values(), fz.Values()
	for i := range magnitudes {
		magnitudes[i] = floats.Norm([]float64{xs[i], ys[i], zs[i]}, 2)
	}
	mean, variance := stat.MeanVariance(magnitudes, nil)
	return &ForceStats{MeanMagnitude: mean, VarianceMagnitude: variance}
}

func logPressureDiagnostics(prog *progress.Progress, pressure *grid.CellBlock[complex128]) {
	values := pressure.Values()
	if len(values) == 0 {
		return
	}
	sum := cmplxs.Sum(values)
	prog.Logf("pressure stage done: sum magnitude %.6g (reproducibility self-check)", cmplx.Abs(sum))
}

func logRealDiagnostics(prog *progress.Progress, label string, block *grid.CellBlock[float64]) {
	values := block.Values()
	if len(values) == 0 {
		return
	}
	prog.Logf("%s stage done: min %.6g max %.6g sum %.6g", label, floats.Min(values), floats.Max(values), floats.Sum(values))
}

func cleanupBestEffort(outDir string) {
	for _, name := range []string{
		"pressure_result.bin", "potential_result.bin",
		"force_x_result.bin", "force_y_result.bin", "force_z_result.bin",
		"metadata.json", "stage_timings.csv",
	} {
		_ = os.Remove(filepath.Join(outDir, name))
	}
}
