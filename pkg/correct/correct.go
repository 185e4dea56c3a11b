// Package correct revalidates stored coordinates against a fresh
// lookup. A record's coordinate is replaced only when the observed
// position sits further away than the configured threshold, keeping
// small disagreements from churning the published data.
package correct

import (
	"context"
	"time"

	"github.com/aeroatlas/spotmerge/pkg/geo"
	"github.com/aeroatlas/spotmerge/pkg/logging"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// Geocoder looks up the coordinate for a named place. Implementations
// fold every failure (transport errors, parse failures, candidates
// outside the coverage envelope) into a false return, and honor
// context cancellation.
type Geocoder interface {
	Geocode(ctx context.Context, name, address string) (geo.Point, bool)
}

// Corrector runs coordinate correction over enrichment records.
type Corrector struct {
	geocoder  Geocoder
	threshold float64
	delay     time.Duration
}

// New creates a new Corrector with options.
func New(geocoder Geocoder, opts ...Option) (*Corrector, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err := validateGeocoder(geocoder); err != nil {
		return nil, err
	}

	return &Corrector{
		geocoder:  geocoder,
		threshold: options.threshold,
		delay:     options.delay,
	}, nil
}

// Run looks up each record in order and rewrites its coordinate when
// the observed position is more than the threshold away. Lookups are
// strictly sequential with a politeness pause after every one issued;
// records without a place name are skipped without a lookup. A
// canceled context aborts the run and no report is returned.
func (c *Corrector) Run(ctx context.Context, records []spots.Location) (*Report, error) {
	report := newReport()
	base := logging.FromContext(ctx)
	logger := base.With().Str("run_id", report.RunID).Logger()

	logger.Info().
		Int("records", len(records)).
		Float64("threshold_km", c.threshold).
		Dur("delay", c.delay).
		Msg("Starting coordinate correction")

	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record := &records[i]
		name := record.PlaceName()
		if name == "" {
			report.Unchanged++
			logger.Debug().
				Int("record", i).
				Msg("No place name, keeping stored coordinate")
			continue
		}

		observed, found := c.geocoder.Geocode(ctx, name, record.Address())
		if err := c.pause(ctx); err != nil {
			return nil, err
		}
		if !found {
			report.Misses++
			logger.Warn().
				Int("record", i).
				Str("name", name).
				Msg("Lookup found no coordinate, keeping stored one")
			continue
		}

		stored := record.Coord()
		distance := geo.Distance(stored, observed)
		if distance > c.threshold {
			record.SetCoord(observed)
			report.Corrected++
			report.Corrections = append(report.Corrections, CorrectionRecord{
				Index:      i,
				Name:       name,
				Old:        stored,
				New:        observed,
				DistanceKm: distance,
			})
			logger.Info().
				Int("record", i).
				Str("name", name).
				Float64("distance_km", distance).
				Float64("lat", observed.Lat).
				Float64("lng", observed.Lng).
				Msg("Replaced stored coordinate")
		} else {
			report.Unchanged++
			logger.Debug().
				Int("record", i).
				Str("name", name).
				Float64("distance_km", distance).
				Msg("Stored coordinate confirmed")
		}
	}

	report.Processed = len(records)
	report.finalize()
	logger.Info().
		Int("corrected", report.Corrected).
		Int("unchanged", report.Unchanged).
		Int("misses", report.Misses).
		Msg("Coordinate correction complete")
	return report, nil
}

// pause applies the politeness delay, aborting early when the context
// is canceled.
func (c *Corrector) pause(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.delay):
		return nil
	}
}
