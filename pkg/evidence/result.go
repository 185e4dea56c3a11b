package evidence

import (
	"fmt"
	"time"
)

// Mapping assigns each folder name the position of the enrichment
// record it belongs to.
type Mapping map[string]int

// Method describes how a folder was matched to a record.
type Method string

// Resolution methods.
const (
	MethodVote     Method = "vote"
	MethodPosition Method = "position"
	MethodNone     Method = "none"
)

// FolderResolution records the outcome for a single folder.
type FolderResolution struct {
	Folder string // Folder name, e.g. "spot_12"
	Record int    // Assigned record position, -1 when unresolved
	Method Method
	Votes  int // Claims received by the winning record, vote method only
}

// Result represents the outcome of a resolution run.
type Result struct {
	// Mapping holds folder name -> record position for every folder
	// that resolved.
	Mapping Mapping

	// Folders lists the per-folder outcomes in folder name order.
	Folders []FolderResolution

	// Metadata
	Metadata ResultMetadata

	// Warnings raised during resolution, such as claim conflicts.
	Warnings []string
}

// ResultMetadata contains metadata about the resolution run.
type ResultMetadata struct {
	// StartTime when resolution started
	StartTime time.Time

	// EndTime when resolution completed
	EndTime time.Time

	// Duration of the resolution
	Duration time.Duration

	// Statistics about the resolution
	Stats ResultStatistics
}

// ResultStatistics contains statistics about the resolution.
type ResultStatistics struct {
	FoldersProcessed   int
	RecordsIndexed     int
	KeysIndexed        int
	ResolvedByVote     int
	ResolvedByPosition int
	Unresolved         int
}

// Record returns the record position assigned to the folder.
func (r *Result) Record(folder string) (int, bool) {
	position, ok := r.Mapping[folder]
	return position, ok
}

// IsComplete returns true if every folder resolved to a record.
func (r *Result) IsComplete() bool {
	return r.Metadata.Stats.Unresolved == 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	if r.IsComplete() {
		return fmt.Sprintf("Resolved all %d folders (%d by votes, %d by position)",
			s.FoldersProcessed, s.ResolvedByVote, s.ResolvedByPosition)
	}
	return fmt.Sprintf("Resolved %d of %d folders (%d by votes, %d by position, %d unresolved)",
		s.ResolvedByVote+s.ResolvedByPosition, s.FoldersProcessed,
		s.ResolvedByVote, s.ResolvedByPosition, s.Unresolved)
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Mapping:  make(Mapping),
		Folders:  []FolderResolution{},
		Warnings: []string{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}
