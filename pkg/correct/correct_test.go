package correct_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroatlas/spotmerge/pkg/correct"
	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/geo"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

type fakeResult struct {
	point geo.Point
	found bool
}

// fakeGeocoder answers from a fixed table and records every call.
type fakeGeocoder struct {
	results   map[string]fakeResult
	calls     []string
	addresses []string
	hook      func()
}

func (f *fakeGeocoder) Geocode(_ context.Context, name, address string) (geo.Point, bool) {
	f.calls = append(f.calls, name)
	f.addresses = append(f.addresses, address)
	if f.hook != nil {
		f.hook()
	}
	r, ok := f.results[name]
	if !ok || !r.found {
		return geo.Point{}, false
	}
	return r.point, true
}

func namedLocation(name string, lat, lng float64) spots.Location {
	return spots.Location{
		Latitude:   lat,
		Longitude:  lng,
		GoogleMaps: &spots.PlaceData{PlaceName: name},
	}
}

func TestCorrectorRun(t *testing.T) {
	ctx := context.Background()

	// Record 0 is stored at Kuala Lumpur but the place is on Penang,
	// far past the threshold. Record 1 is off by a city block.
	records := []spots.Location{
		namedLocation("Penang Hill", 3.139, 101.6869),
		namedLocation("KLCC Park", 3.1553, 101.7143),
		{Latitude: 4.0, Longitude: 102.0},
		namedLocation("Ghost Pier", 2.5, 103.0),
	}
	records[1].GoogleMaps.Address = "Kuala Lumpur City Centre, 50088"

	geocoder := &fakeGeocoder{results: map[string]fakeResult{
		"Penang Hill": {point: geo.Point{Lat: 5.4141, Lng: 100.3288}, found: true},
		"KLCC Park":   {point: geo.Point{Lat: 3.156, Lng: 101.7145}, found: true},
	}}

	corrector, err := correct.New(geocoder, correct.WithDelay(0))
	require.NoError(t, err)

	report, err := corrector.Run(ctx, records)
	require.NoError(t, err)

	// The far-off record is rewritten in place.
	assert.Equal(t, 5.4141, records[0].Latitude)
	assert.Equal(t, 100.3288, records[0].Longitude)
	// The near match keeps its stored coordinate.
	assert.Equal(t, 3.1553, records[1].Latitude)

	assert.Equal(t, 4, report.Processed)
	assert.Equal(t, 1, report.Corrected)
	assert.Equal(t, 2, report.Unchanged)
	assert.Equal(t, 1, report.Misses)
	assert.True(t, report.HasChanges())

	require.Len(t, report.Corrections, 1)
	correction := report.Corrections[0]
	assert.Equal(t, 0, correction.Index)
	assert.Equal(t, "Penang Hill", correction.Name)
	assert.Equal(t, geo.Point{Lat: 3.139, Lng: 101.6869}, correction.Old)
	assert.Equal(t, geo.Point{Lat: 5.4141, Lng: 100.3288}, correction.New)
	assert.InDelta(t, 294.4, correction.DistanceKm, 1.0)

	// The nameless record never reaches the geocoder, and the rest are
	// looked up in input order with their addresses.
	assert.Equal(t, []string{"Penang Hill", "KLCC Park", "Ghost Pier"}, geocoder.calls)
	assert.Equal(t, []string{"", "Kuala Lumpur City Centre, 50088", ""}, geocoder.addresses)

	assert.Equal(t, "Corrected 1 of 4 records (2 unchanged, 1 misses)", report.Summary())
}

func TestCorrectorThresholdIsStrict(t *testing.T) {
	ctx := context.Background()

	t.Run("past threshold replaces", func(t *testing.T) {
		// 0.046 degrees of latitude is about 5.1 km.
		records := []spots.Location{namedLocation("Hilltop", 4.0, 102.0)}
		geocoder := &fakeGeocoder{results: map[string]fakeResult{
			"Hilltop": {point: geo.Point{Lat: 4.046, Lng: 102.0}, found: true},
		}}

		corrector, err := correct.New(geocoder, correct.WithDelay(0))
		require.NoError(t, err)

		report, err := corrector.Run(ctx, records)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Corrected)
		assert.Equal(t, 4.046, records[0].Latitude)
	})

	t.Run("under threshold keeps", func(t *testing.T) {
		// 0.044 degrees is about 4.9 km, inside the default 5 km.
		records := []spots.Location{namedLocation("Hilltop", 4.0, 102.0)}
		geocoder := &fakeGeocoder{results: map[string]fakeResult{
			"Hilltop": {point: geo.Point{Lat: 4.044, Lng: 102.0}, found: true},
		}}

		corrector, err := correct.New(geocoder, correct.WithDelay(0))
		require.NoError(t, err)

		report, err := corrector.Run(ctx, records)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Corrected)
		assert.Equal(t, 1, report.Unchanged)
		assert.Equal(t, 4.0, records[0].Latitude)
	})
}

func TestCorrectorPacing(t *testing.T) {
	ctx := context.Background()

	t.Run("pauses after every lookup", func(t *testing.T) {
		records := []spots.Location{
			namedLocation("A", 3.0, 101.0),
			namedLocation("B", 3.1, 101.1),
			namedLocation("C", 3.2, 101.2),
		}
		geocoder := &fakeGeocoder{results: map[string]fakeResult{
			"A": {point: geo.Point{Lat: 3.0, Lng: 101.0}, found: true},
		}}

		corrector, err := correct.New(geocoder, correct.WithDelay(30*time.Millisecond))
		require.NoError(t, err)

		start := time.Now()
		_, err = corrector.Run(ctx, records)
		require.NoError(t, err)

		// Three lookups were issued, hits and misses alike.
		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	})

	t.Run("no pause without a lookup", func(t *testing.T) {
		records := []spots.Location{{}, {}, {}}
		geocoder := &fakeGeocoder{}

		corrector, err := correct.New(geocoder, correct.WithDelay(500*time.Millisecond))
		require.NoError(t, err)

		start := time.Now()
		report, err := corrector.Run(ctx, records)
		require.NoError(t, err)

		assert.Less(t, time.Since(start), 250*time.Millisecond)
		assert.Empty(t, geocoder.calls)
		assert.Equal(t, 3, report.Unchanged)
	})
}

func TestCorrectorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	records := []spots.Location{
		namedLocation("First", 3.0, 101.0),
		namedLocation("Never reached", 3.1, 101.1),
	}
	geocoder := &fakeGeocoder{hook: cancel}

	// The hour-long delay proves the pause aborts on cancellation
	// instead of sleeping through it.
	corrector, err := correct.New(geocoder, correct.WithDelay(time.Hour))
	require.NoError(t, err)

	report, err := corrector.Run(ctx, records)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
	assert.Equal(t, []string{"First"}, geocoder.calls)
}

func TestCorrectorRunID(t *testing.T) {
	ctx := context.Background()
	corrector, err := correct.New(&fakeGeocoder{}, correct.WithDelay(0))
	require.NoError(t, err)

	first, err := corrector.Run(ctx, nil)
	require.NoError(t, err)
	second, err := corrector.Run(ctx, nil)
	require.NoError(t, err)

	_, err = uuid.Parse(first.RunID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.False(t, first.HasChanges())
	assert.Equal(t, "Corrected 0 of 0 records (0 unchanged, 0 misses)", first.Summary())
}

func TestNewValidation(t *testing.T) {
	if _, err := correct.New(nil); !errors.IsValidationError(err) {
		t.Errorf("New(nil) error = %v, want validation error", err)
	}
	if _, err := correct.New(&fakeGeocoder{}, correct.WithThreshold(-1)); !errors.IsValidationError(err) {
		t.Errorf("WithThreshold(-1) error = %v, want validation error", err)
	}
	if _, err := correct.New(&fakeGeocoder{}, correct.WithDelay(-time.Second)); !errors.IsValidationError(err) {
		t.Errorf("WithDelay(-1s) error = %v, want validation error", err)
	}
}
