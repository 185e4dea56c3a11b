package correct

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aeroatlas/spotmerge/pkg/geo"
)

// CorrectionRecord documents one replaced coordinate.
type CorrectionRecord struct {
	Index      int       // Record position in the input
	Name       string    // Place name used for the lookup
	Old        geo.Point // Coordinate before the run
	New        geo.Point // Coordinate written by the run
	DistanceKm float64   // Great-circle distance between the two
}

// Report summarizes one correction run.
type Report struct {
	// RunID tags every log line and output of this run.
	RunID string

	// StartTime when the run started
	StartTime time.Time

	// EndTime when the run completed
	EndTime time.Time

	// Duration of the run
	Duration time.Duration

	// Counts
	Processed int
	Corrected int
	Unchanged int
	Misses    int

	// Corrections in input order.
	Corrections []CorrectionRecord
}

// HasChanges returns true if any coordinate was replaced.
func (r *Report) HasChanges() bool {
	return r.Corrected > 0
}

// Summary returns a human-readable summary of the run.
func (r *Report) Summary() string {
	return fmt.Sprintf("Corrected %d of %d records (%d unchanged, %d misses)",
		r.Corrected, r.Processed, r.Unchanged, r.Misses)
}

// newReport creates a new report with a fresh run id.
func newReport() *Report {
	return &Report{
		RunID:       uuid.New().String(),
		StartTime:   time.Now(),
		Corrections: []CorrectionRecord{},
	}
}

// finalize calculates duration and marks completion.
func (r *Report) finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}
