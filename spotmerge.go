// Package spotmerge reconciles a drone-spot image library with the
// enrichment records scraped for it, and maintains the canonical spot
// set an app serves.
//
// The pipeline has four operations, each exposed on the Client:
//   - Merge: match image folders to enrichment records by the image
//     evidence the records declare, assemble canonical spots, and write
//     the published JSON.
//   - Correct: validate stored coordinates against a live map lookup
//     and move the ones that are too far off.
//   - Filter: drop spots that fall outside the configured region.
//   - SyncImages: rebuild the published image tree from the
//     suitable-labeled originals.
//
// Example usage:
//
//	client, err := spotmerge.New(
//	    spotmerge.WithDataDir("scraped_data"),
//	    spotmerge.WithSpotsDir("public/images/spots"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Merge(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
// Operations read and write the files they need when they run; the
// Client itself holds no open resources. All blocking work accepts a
// context and logs through the zerolog logger it carries.
package spotmerge

import (
	"time"

	"github.com/aeroatlas/spotmerge/pkg/correct"
	"github.com/aeroatlas/spotmerge/pkg/geofence"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client runs the spot reconciliation pipeline.
type Client interface {

	// Merger resolves folders to records and assembles the spot set
	Merger

	// Corrector validates stored coordinates against a lookup
	Corrector

	// Filterer applies the regional fence to the spot set
	Filterer

	// ImageSyncer rebuilds the published image tree
	ImageSyncer
}

// client is the internal implementation of the Client interface.
type client struct {
	spotsDir  string
	enriched  string
	output    string
	labels    []string
	sourceDir string
	cachePath string
	region    geofence.Region
	geocoder  correct.Geocoder
	threshold float64
	delay     time.Duration
	dryRun    bool
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	region, err := options.resolveRegion()
	if err != nil {
		return nil, err
	}

	return &client{
		spotsDir:  options.spotsDir,
		enriched:  options.enrichedPath(),
		output:    options.outputPath(),
		labels:    options.labelsPaths(),
		sourceDir: options.sourcePath(),
		cachePath: options.cacheFile(),
		region:    region,
		geocoder:  options.geocoder,
		threshold: options.threshold,
		delay:     options.delay,
		dryRun:    options.dryRun,
	}, nil
}
