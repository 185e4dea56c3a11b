package spotmerge

import (
	"context"

	"github.com/aeroatlas/spotmerge/internal/enrich"
	"github.com/aeroatlas/spotmerge/internal/geocache"
	"github.com/aeroatlas/spotmerge/internal/gmaps"
	"github.com/aeroatlas/spotmerge/pkg/correct"
	"github.com/aeroatlas/spotmerge/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Corrector = (*client)(nil)

// Corrector validates stored coordinates against a live lookup and
// persists the moved ones.
type Corrector interface {
	Correct(ctx context.Context) (*correct.Report, error)
}

// Correct loads the enrichment records, backs them up, and runs the
// coordinate corrector over them. When anything moved, the updated set
// is written both to the reviewable _corrected copy and back over the
// original; an untouched set leaves only the backup behind.
func (c *client) Correct(ctx context.Context) (*correct.Report, error) {
	logger := logging.FromContext(ctx)

	records, err := enrich.Load(c.enriched)
	if err != nil {
		return nil, err
	}

	if !c.dryRun {
		backup, err := enrich.Backup(c.enriched, records)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", backup).Msg("Enrichment backup written")
	}

	geocoder, cleanup, err := c.resolveGeocoder()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	corrector, err := correct.New(geocoder,
		correct.WithThreshold(c.threshold),
		correct.WithDelay(c.delay),
	)
	if err != nil {
		return nil, err
	}

	report, err := corrector.Run(ctx, records)
	if err != nil {
		return nil, err
	}

	if c.dryRun {
		logger.Info().Str("path", c.enriched).Msg("Dry run, corrections not written")
		return report, nil
	}

	if report.HasChanges() {
		corrected := enrich.CorrectedPath(c.enriched)
		if err := enrich.Save(corrected, records); err != nil {
			return nil, err
		}
		if err := enrich.Save(c.enriched, records); err != nil {
			return nil, err
		}
		logger.Info().
			Str("corrected", corrected).
			Str("path", c.enriched).
			Int("moved", report.Corrected).
			Msg("Corrected enrichment written")
	} else {
		logger.Info().Msg("All coordinates within threshold, nothing written")
	}
	return report, nil
}

// resolveGeocoder picks the lookup for a correction run: the injected
// one when the caller supplied it, otherwise the Maps scraper behind
// the persistent cache. The cleanup closes whatever was opened.
func (c *client) resolveGeocoder() (correct.Geocoder, func(), error) {
	if c.geocoder != nil {
		return c.geocoder, func() {}, nil
	}

	scraper, err := gmaps.New()
	if err != nil {
		return nil, nil, err
	}
	if c.cachePath == "" {
		return scraper, func() {}, nil
	}

	cache, err := geocache.Open(c.cachePath, scraper)
	if err != nil {
		return nil, nil, err
	}
	return cache, func() { _ = cache.Close() }, nil
}
