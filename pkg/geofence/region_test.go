package geofence_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/geo"
	"github.com/aeroatlas/spotmerge/pkg/geofence"
)

func TestLoadMalaysia(t *testing.T) {
	region, err := geofence.Load("malaysia")
	require.NoError(t, err)

	assert.Equal(t, "malaysia", region.Name)
	assert.Equal(t, geo.BoundingBox{
		LatMin: 0.8,
		LatMax: 7.4,
		LngMin: 99.6,
		LngMax: 119.3,
	}, region.Bounds)
	assert.Equal(t, []string{"singapore", "pulau ubin"}, region.Exclude)
	assert.Equal(t, "Outside Malaysia/Singapore", region.Reason)
}

func TestLoadUnknownRegion(t *testing.T) {
	_, err := geofence.Load("atlantis")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestNames(t *testing.T) {
	assert.Contains(t, geofence.Names(), "malaysia")
}

func TestLoadFile(t *testing.T) {
	t.Run("valid region", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "borneo.yaml")
		data := `name: borneo
bounds:
  lat_min: 0.9
  lat_max: 7.0
  lng_min: 109.5
  lng_max: 119.3
exclude:
  - brunei
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		region, err := geofence.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "borneo", region.Name)
		assert.Equal(t, 109.5, region.Bounds.LngMin)
		assert.Equal(t, []string{"brunei"}, region.Exclude)
		assert.Equal(t, "Outside borneo", region.OutsideReason())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := geofence.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: [unterminated"), 0o644))

		_, err := geofence.LoadFile(path)
		require.Error(t, err)
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("inverted bounds rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inverted.yaml")
		data := `name: upside-down
bounds:
  lat_min: 7.4
  lat_max: 0.8
  lng_min: 99.6
  lng_max: 119.3
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		_, err := geofence.LoadFile(path)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestRegionValidate(t *testing.T) {
	valid := geofence.Region{
		Name:   "test",
		Bounds: geo.BoundingBox{LatMin: 0, LatMax: 1, LngMin: 0, LngMax: 1},
	}
	assert.NoError(t, valid.Validate())

	nameless := valid
	nameless.Name = ""
	assert.Error(t, nameless.Validate())

	badLng := valid
	badLng.Bounds.LngMin = 2
	assert.Error(t, badLng.Validate())
}
