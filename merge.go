package spotmerge

import (
	"context"
	"fmt"

	"github.com/aeroatlas/spotmerge/internal/enrich"
	"github.com/aeroatlas/spotmerge/internal/scan"
	"github.com/aeroatlas/spotmerge/pkg/assemble"
	"github.com/aeroatlas/spotmerge/pkg/evidence"
	"github.com/aeroatlas/spotmerge/pkg/logging"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// Compile-time interface check to ensure proper implementation.
var _ Merger = (*client)(nil)

// Merger resolves image folders to enrichment records and assembles
// the canonical spot set.
type Merger interface {
	Merge(ctx context.Context) (*MergeResult, error)
}

// MergeResult is the outcome of one merge run.
type MergeResult struct {
	Spots      []spots.Spot     // Assembled canonical spots, in folder order
	Resolution *evidence.Result // How each folder was matched
	OutputPath string           // Where the set was (or would be) written
}

// Summary returns a human-readable summary of the result.
func (r *MergeResult) Summary() string {
	return fmt.Sprintf("Assembled %d spots. %s", len(r.Spots), r.Resolution.Summary())
}

// Merge scans the spots directory, loads the enrichment records,
// resolves which record backs which folder, and writes the assembled
// spot set. Both inputs must exist; nothing is written otherwise.
func (c *client) Merge(ctx context.Context) (*MergeResult, error) {
	logger := logging.FromContext(ctx)

	folders, err := scan.Folders(c.spotsDir)
	if err != nil {
		return nil, err
	}
	records, err := enrich.Load(c.enriched)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("folders", len(folders)).
		Int("records", len(records)).
		Str("spots_dir", c.spotsDir).
		Msg("Merge inputs loaded")

	// Label files are informational here; the sync command is what
	// acts on them.
	if suitable := c.suitableImages(ctx); len(suitable) > 0 {
		logger.Info().Int("suitable", len(suitable)).Msg("Labeled suitable images on record")
	}

	resolver, err := evidence.New()
	if err != nil {
		return nil, err
	}
	resolution := resolver.Resolve(ctx, folders, records)

	built := assemble.Build(folders, resolution.Mapping, records)

	result := &MergeResult{
		Spots:      built,
		Resolution: resolution,
		OutputPath: c.output,
	}

	if c.dryRun {
		logger.Info().Str("path", c.output).Msg("Dry run, spot set not written")
		return result, nil
	}
	if err := writeSpots(c.output, built); err != nil {
		return nil, err
	}
	logger.Info().Str("path", c.output).Int("spots", len(built)).Msg("Spot set written")
	return result, nil
}
