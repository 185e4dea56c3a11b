package labels_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroatlas/spotmerge/internal/labels"
	"github.com/aeroatlas/spotmerge/pkg/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "all_labeled.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, `image_path,label
scraped_data\images\spot_0\a.jpg,suitable
scraped_data\images\spot_0\b.jpg,unsuitable
images/spot_1/c.jpg,suitable
`)

	loaded, err := labels.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, `scraped_data\images\spot_0\a.jpg`, loaded[0].ImagePath)
	assert.Equal(t, "suitable", loaded[0].Value)
	assert.Equal(t, "unsuitable", loaded[1].Value)
}

func TestLoadColumnOrderIrrelevant(t *testing.T) {
	path := writeCSV(t, `label,confidence,image_path
suitable,0.94,images/spot_2/x.jpg
unsuitable,0.51,images/spot_2/y.jpg
`)

	loaded, err := labels.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "images/spot_2/x.jpg", loaded[0].ImagePath)
	assert.Equal(t, "suitable", loaded[0].Value)
}

func TestLoadShortRowsSkipped(t *testing.T) {
	path := writeCSV(t, `image_path,label
images/spot_0/a.jpg,suitable
lonely-cell
images/spot_0/b.jpg,suitable
`)

	loaded, err := labels.Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestLoadMissingColumns(t *testing.T) {
	path := writeCSV(t, `path,verdict
a.jpg,yes
`)

	_, err := labels.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := labels.Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestSuitablePaths(t *testing.T) {
	loaded := []labels.Label{
		{ImagePath: "images/spot_0/a.jpg", Value: "suitable"},
		{ImagePath: "images/spot_0/b.jpg", Value: "unsuitable"},
		{ImagePath: "images/spot_1/c.jpg", Value: "suitable"},
		{ImagePath: "images/spot_1/c.jpg", Value: "suitable"},
	}

	assert.Equal(t, []string{
		"images/spot_0/a.jpg",
		"images/spot_1/c.jpg",
		"images/spot_1/c.jpg",
	}, labels.SuitablePaths(loaded))
}
