package spotmerge

import (
	"context"
	"fmt"

	"github.com/aeroatlas/spotmerge/pkg/geofence"
	"github.com/aeroatlas/spotmerge/pkg/logging"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// Compile-time interface check to ensure proper implementation.
var _ Filterer = (*client)(nil)

// Filterer applies the regional fence to the canonical spot set.
type Filterer interface {
	Filter(ctx context.Context) (*FilterResult, error)
}

// FilterResult is the outcome of one filter run.
type FilterResult struct {
	Kept       []spots.Spot       // Spots inside the region, renumbered
	Removed    []geofence.Removal // Dropped spots with their reasons
	Region     string             // Region the fence was built from
	OutputPath string             // Where the kept set was (or would be) written
}

// Summary returns a human-readable summary of the result.
func (r *FilterResult) Summary() string {
	total := len(r.Kept) + len(r.Removed)
	return fmt.Sprintf("Kept %d of %d spots (%d removed by the %s fence)",
		len(r.Kept), total, len(r.Removed), r.Region)
}

// Filter loads the canonical spot set, drops everything outside the
// configured region, and writes the kept spots back renumbered.
func (c *client) Filter(ctx context.Context) (*FilterResult, error) {
	logger := logging.FromContext(ctx)

	all, err := loadSpots(c.output)
	if err != nil {
		return nil, err
	}

	kept, removed := geofence.Filter(all, c.region)
	for _, removal := range removed {
		logger.Info().
			Str("name", removal.Spot.Name).
			Str("reason", removal.Reason).
			Float64("lat", removal.Spot.Lat).
			Float64("lng", removal.Spot.Lng).
			Msg("Spot removed by fence")
	}

	result := &FilterResult{
		Kept:       kept,
		Removed:    removed,
		Region:     c.region.Name,
		OutputPath: c.output,
	}

	if c.dryRun {
		logger.Info().Str("path", c.output).Msg("Dry run, filtered set not written")
		return result, nil
	}
	if err := writeSpots(c.output, kept); err != nil {
		return nil, err
	}
	logger.Info().
		Str("path", c.output).
		Int("kept", len(kept)).
		Int("removed", len(removed)).
		Msg("Filtered spot set written")
	return result, nil
}
