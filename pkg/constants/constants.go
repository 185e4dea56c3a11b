// Package constants provides shared constants used throughout the
// spotmerge pipeline. This includes correction tunables, lookup
// timeouts, file permissions, and the well-known data file names.
package constants

import "time"

// Correction constants tune the coordinate validation pass
const (
	// DefaultThresholdKm is the distance beyond which a scraped
	// coordinate replaces the stored one
	DefaultThresholdKm = 5.0

	// DefaultRequestDelay is the politeness pause after every issued
	// lookup, hit or miss
	DefaultRequestDelay = 2 * time.Second
)

// Lookup constants bound the headless browser session
const (
	// LookupNavigateTimeout is the per-attempt budget for loading the
	// map search page
	LookupNavigateTimeout = 30 * time.Second

	// LookupSettleDelay is the extra wait for the map to finish
	// redirecting to the place URL
	LookupSettleDelay = 3 * time.Second

	// LookupRetryAttempts is how many times a failed navigation is
	// retried before the lookup counts as a miss
	LookupRetryAttempts = 3

	// LookupRetryBackoff is the base backoff between retries
	LookupRetryBackoff = 1 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Well-known file names within a data directory
const (
	// DataDirName is the default data directory, relative to the
	// working directory
	DataDirName = "scraped_data"

	// SourceImagesDirName is the downloaded-image tree inside the data
	// directory
	SourceImagesDirName = "images"

	// EnrichedFileName is the scraped enrichment record file
	EnrichedFileName = "enriched_spots.json"

	// OutputFileName is the canonical spot set served to the app
	OutputFileName = "spots-simple.json"

	// LabelsFileName is the manually labeled image evidence table
	LabelsFileName = "all_labeled.csv"

	// CacheFileName is the persistent lookup cache database
	CacheFileName = "geocode-cache.db"

	// LockFileName guards a data directory against concurrent runs
	LockFileName = ".spotmerge.lock"

	// BackupSuffix is appended to the enrichment file before a
	// correction pass mutates it
	BackupSuffix = ".backup"

	// CorrectedSuffix marks the reviewable copy written when a
	// correction pass changed at least one coordinate
	CorrectedSuffix = "_corrected"
)

// Layout constants fix where images live relative to the app roots
const (
	// SpotsWebPrefix is the web path prefix for published spot images
	SpotsWebPrefix = "images/spots"

	// SpotsDirName is the on-disk directory holding spot folders,
	// relative to the app's public root
	SpotsDirName = "public/images/spots"
)
