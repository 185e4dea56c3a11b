package spotmerge

import (
	"path/filepath"
	"time"

	"github.com/aeroatlas/spotmerge/pkg/constants"
	"github.com/aeroatlas/spotmerge/pkg/correct"
	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/geofence"
)

// options configures a Client. Paths left unset resolve relative to
// the data directory when the client is created.
type options struct {
	dataDir    string
	spotsDir   string
	enriched   string
	output     string
	labels     []string
	sourceDir  string
	cachePath  string
	noCache    bool
	region     *geofence.Region
	regionName string
	regionFile string
	geocoder   correct.Geocoder
	threshold  float64
	delay      time.Duration
	dryRun     bool
}

func defaultOptions() *options {
	return &options{
		dataDir:    constants.DataDirName,
		spotsDir:   constants.SpotsDirName,
		regionName: geofence.DefaultRegionName,
		threshold:  constants.DefaultThresholdKm,
		delay:      constants.DefaultRequestDelay,
	}
}

// Option is a function that configures a Client.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns client options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

func (o *options) enrichedPath() string {
	if o.enriched != "" {
		return o.enriched
	}
	return filepath.Join(o.dataDir, constants.EnrichedFileName)
}

func (o *options) outputPath() string {
	if o.output != "" {
		return o.output
	}
	return filepath.Join(o.dataDir, constants.OutputFileName)
}

func (o *options) labelsPaths() []string {
	if len(o.labels) > 0 {
		return o.labels
	}
	return []string{filepath.Join(o.dataDir, constants.LabelsFileName)}
}

func (o *options) sourcePath() string {
	if o.sourceDir != "" {
		return o.sourceDir
	}
	return filepath.Join(o.dataDir, constants.SourceImagesDirName)
}

func (o *options) cacheFile() string {
	if o.noCache {
		return ""
	}
	if o.cachePath != "" {
		return o.cachePath
	}
	return filepath.Join(o.dataDir, constants.CacheFileName)
}

func (o *options) resolveRegion() (geofence.Region, error) {
	if o.region != nil {
		return *o.region, nil
	}
	if o.regionFile != "" {
		return geofence.LoadFile(o.regionFile)
	}
	return geofence.Load(o.regionName)
}

// WithDataDir sets the directory holding the enrichment file, labels,
// downloaded images, and outputs. Individual path options override the
// locations derived from it.
func WithDataDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return &errors.ValidationError{
				Field:   "data dir",
				Message: "cannot be empty",
			}
		}
		o.dataDir = dir
		return nil
	}
}

// WithSpotsDir sets the published image tree the scanner reads and the
// image sync writes.
func WithSpotsDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return &errors.ValidationError{
				Field:   "spots dir",
				Message: "cannot be empty",
			}
		}
		o.spotsDir = dir
		return nil
	}
}

// WithEnrichedFile sets the enrichment record file.
func WithEnrichedFile(path string) Option {
	return func(o *options) error {
		o.enriched = path
		return nil
	}
}

// WithOutputFile sets the canonical spot set file.
func WithOutputFile(path string) Option {
	return func(o *options) error {
		o.output = path
		return nil
	}
}

// WithLabelsFiles sets the labeled-image CSV files. Missing files are
// tolerated at run time with a warning; at least one must be named.
func WithLabelsFiles(paths ...string) Option {
	return func(o *options) error {
		if len(paths) == 0 {
			return &errors.ValidationError{
				Field:   "labels files",
				Message: "cannot be empty",
			}
		}
		o.labels = paths
		return nil
	}
}

// WithSourceImagesDir sets the downloaded-image tree the image sync
// copies from.
func WithSourceImagesDir(dir string) Option {
	return func(o *options) error {
		o.sourceDir = dir
		return nil
	}
}

// WithRegion sets the fence region directly, bypassing the embedded
// definitions.
func WithRegion(region geofence.Region) Option {
	return func(o *options) error {
		if err := region.Validate(); err != nil {
			return err
		}
		o.region = &region
		return nil
	}
}

// WithRegionName selects an embedded fence region by name.
func WithRegionName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return &errors.ValidationError{
				Field:   "region name",
				Message: "cannot be empty",
			}
		}
		o.regionName = name
		o.regionFile = ""
		return nil
	}
}

// WithRegionFile loads the fence region from a YAML file instead of
// the embedded definitions.
func WithRegionFile(path string) Option {
	return func(o *options) error {
		o.regionFile = path
		return nil
	}
}

// WithGeocoder injects the coordinate lookup the corrector uses. The
// injected Geocoder is used as-is, without the lookup cache.
func WithGeocoder(geocoder correct.Geocoder) Option {
	return func(o *options) error {
		if geocoder == nil {
			return &errors.ValidationError{
				Field:   "geocoder",
				Message: "cannot be nil",
			}
		}
		o.geocoder = geocoder
		return nil
	}
}

// WithCacheFile sets the lookup cache database location.
func WithCacheFile(path string) Option {
	return func(o *options) error {
		o.cachePath = path
		return nil
	}
}

// WithoutLookupCache disables the persistent lookup cache.
func WithoutLookupCache() Option {
	return func(o *options) error {
		o.noCache = true
		return nil
	}
}

// WithThreshold sets the correction distance threshold in kilometers.
func WithThreshold(km float64) Option {
	return func(o *options) error {
		if km < 0 {
			return &errors.ValidationError{
				Field:   "threshold",
				Value:   km,
				Message: "cannot be negative",
			}
		}
		o.threshold = km
		return nil
	}
}

// WithDelay sets the politeness pause between lookups.
func WithDelay(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return &errors.ValidationError{
				Field:   "delay",
				Value:   d.String(),
				Message: "cannot be negative",
			}
		}
		o.delay = d
		return nil
	}
}

// WithDryRun makes merge, correct, and filter report what they would
// do without writing any file.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}
