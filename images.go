package spotmerge

import (
	"context"

	"github.com/aeroatlas/spotmerge/internal/imagesync"
	"github.com/aeroatlas/spotmerge/internal/labels"
	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ ImageSyncer = (*client)(nil)

// ImageSyncer rebuilds the published image tree from the
// suitable-labeled originals.
type ImageSyncer interface {
	SyncImages(ctx context.Context) (*imagesync.Result, error)
}

// SyncImages reads the label files, collects the images marked
// suitable, and replaces the spot directories with them. Missing label
// files are skipped with a warning; a label set with nothing suitable
// aborts before anything is removed.
func (c *client) SyncImages(ctx context.Context) (*imagesync.Result, error) {
	logger := logging.FromContext(ctx)

	var all []labels.Label
	for _, path := range c.labels {
		batch, err := labels.Load(path)
		if err != nil {
			if errors.IsNotFound(err) {
				logger.Warn().Str("path", path).Msg("Labels file not found, skipping")
				continue
			}
			return nil, err
		}
		logger.Debug().Str("path", path).Int("labels", len(batch)).Msg("Labels loaded")
		all = append(all, batch...)
	}

	suitable := labels.SuitablePaths(all)
	logger.Info().
		Int("labeled", len(all)).
		Int("suitable", len(suitable)).
		Msg("Label files read")

	return imagesync.Sync(ctx, c.sourceDir, c.spotsDir, suitable)
}

// suitableImages is the lenient variant used for informational logging
// during a merge: any unreadable label file is reported and ignored.
func (c *client) suitableImages(ctx context.Context) []string {
	logger := logging.FromContext(ctx)

	var all []labels.Label
	for _, path := range c.labels {
		batch, err := labels.Load(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Labels file unavailable")
			continue
		}
		all = append(all, batch...)
	}
	return labels.SuitablePaths(all)
}
