package enrich_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroatlas/spotmerge/internal/enrich"
	"github.com/aeroatlas/spotmerge/internal/utils/ptr"
	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enriched_spots.json")
	records := []spots.Location{
		{
			Latitude:    5.4141,
			Longitude:   100.3288,
			Description: "Hilltop clearing",
			GoogleMaps: &spots.PlaceData{
				PlaceName: "Penang Hill",
				Address:   "Bukit Bendera, 11300",
				Category:  "Tourist attraction",
				Rating:    ptr.Float64(4.5),
				Images: []spots.ImageRef{
					{LocalPath: "images/spot_0/a.jpg"},
				},
			},
		},
		{Latitude: 3.139, Longitude: 101.6869},
	}

	require.NoError(t, enrich.Save(path, records))

	loaded, err := enrich.Load(path)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestLoadParsesRawFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enriched_spots.json")
	raw := `[
  {
    "latitude": 1.5585,
    "longitude": 110.3441,
    "description": "Riverside",
    "google_maps_data": {
      "place_name": "Kuching Waterfront",
      "images": [{"local_path": "images/spot_3/w.jpg"}, {}]
    }
  }
]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	records, err := enrich.Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Kuching Waterfront", records[0].PlaceName())
	require.Len(t, records[0].Images(), 2)
	assert.Equal(t, "images/spot_3/w.jpg", records[0].Images()[0].LocalPath)
	assert.Empty(t, records[0].Images()[1].LocalPath)
}

func TestLoadMissing(t *testing.T) {
	_, err := enrich.Load(filepath.Join(t.TempDir(), "gone.json"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := enrich.Load(path)
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "enriched_spots.json")
	records := []spots.Location{{Latitude: 4.2105, Longitude: 101.9758}}

	backupPath, err := enrich.Backup(path, records)
	require.NoError(t, err)
	assert.Equal(t, path+".backup", backupPath)

	restored, err := enrich.Load(backupPath)
	require.NoError(t, err)
	assert.Equal(t, records, restored)
}

func TestCorrectedPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"scraped_data/enriched_spots.json", "scraped_data/enriched_spots_corrected.json"},
		{"enriched_spots.json", "enriched_spots_corrected.json"},
		{"data/records", "data/records_corrected"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, enrich.CorrectedPath(tt.path))
	}
}
