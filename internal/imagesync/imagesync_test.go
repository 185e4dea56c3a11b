package imagesync_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroatlas/spotmerge/internal/imagesync"
	"github.com/aeroatlas/spotmerge/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSync(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()

	writeFile(t, filepath.Join(source, "spot_0", "a.jpg"), "aerial shot")
	writeFile(t, filepath.Join(source, "spot_0", "b.jpg"), "unlabeled")
	writeFile(t, filepath.Join(source, "spot_1", "c.png"), "sunset pan")

	// Stale content from a previous run, plus a loose file that is not
	// a spot directory and must survive the clear.
	writeFile(t, filepath.Join(target, "spot_9", "old.jpg"), "stale")
	writeFile(t, filepath.Join(target, "index.html"), "<html>")

	suitable := []string{
		"scraped_data/images/spot_0/a.jpg",
		"images/spot_1/c.png",
		`spot_0\a.jpg`,          // duplicate of the first, Windows separators
		"spot_0/missing.jpg",    // labeled but never downloaded
		"thumbnails/orphan.jpg", // no spot folder anywhere in the path
	}

	result, err := imagesync.Sync(context.Background(), source, target, suitable)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Copied)
	assert.Equal(t, 1, result.Missing)
	assert.Equal(t, 1, result.Cleared)

	data, err := os.ReadFile(filepath.Join(target, "spot_0", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "aerial shot", string(data))

	data, err = os.ReadFile(filepath.Join(target, "spot_1", "c.png"))
	require.NoError(t, err)
	assert.Equal(t, "sunset pan", string(data))

	_, err = os.Stat(filepath.Join(target, "spot_9"))
	assert.True(t, os.IsNotExist(err), "stale spot directory should be cleared")

	_, err = os.Stat(filepath.Join(target, "spot_0", "b.jpg"))
	assert.True(t, os.IsNotExist(err), "unlabeled image should not be copied")

	_, err = os.Stat(filepath.Join(target, "index.html"))
	assert.NoError(t, err, "loose files outside spot directories survive")
}

func TestSyncEmptySuitableLeavesTargetAlone(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	writeFile(t, filepath.Join(target, "spot_0", "keep.jpg"), "keep")

	_, err := imagesync.Sync(context.Background(), source, target, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = os.Stat(filepath.Join(target, "spot_0", "keep.jpg"))
	assert.NoError(t, err, "empty label set must not clear the target")
}

func TestSyncCreatesTarget(t *testing.T) {
	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "public", "spots")
	writeFile(t, filepath.Join(source, "spot_0", "a.jpg"), "x")

	result, err := imagesync.Sync(context.Background(), source, target,
		[]string{"spot_0/a.jpg"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Copied)
	assert.Equal(t, 0, result.Cleared)
	_, err = os.Stat(filepath.Join(target, "spot_0", "a.jpg"))
	assert.NoError(t, err)
}

func TestSyncCancellation(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	writeFile(t, filepath.Join(source, "spot_0", "a.jpg"), "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imagesync.Sync(ctx, source, target, []string{"spot_0/a.jpg"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultSummary(t *testing.T) {
	result := &imagesync.Result{Copied: 12, Missing: 2, Cleared: 3}
	assert.Equal(t, "Copied 12 images (2 missing, 3 directories cleared)", result.Summary())
}
