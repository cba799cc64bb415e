package sim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// StageTiming is one row of the diagnostic stage_timings.csv manifest, an
// addition beyond the five files the wire contract requires.
type StageTiming struct {
	Stage   string  `csv:"stage"`
	Seconds float64 `csv:"seconds"`
}

// writeStageTimings emits stage_timings.csv into dir.
func writeStageTimings(dir string, rows []StageTiming) error {
	path := filepath.Join(dir, "stage_timings.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating stage_timings.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing stage_timings.csv: %w", err)
	}
	return nil
}
