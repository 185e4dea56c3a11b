// Package geo provides the small amount of spherical geometry the
// pipeline needs: great-circle distances between coordinate pairs and
// inclusive bounding-box containment tests.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle
// distances. All distances in this module are kilometers.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether the point is exactly (0, 0), the null island
// placeholder scrapers emit when they found nothing.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// DistanceKm returns the great-circle distance in kilometers between
// two coordinate pairs using the haversine formula. Inputs are decimal
// degrees.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lng2 - lng1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Distance returns the great-circle distance in kilometers between two
// points.
func Distance(a, b Point) float64 {
	return DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// BoundingBox is an axis-aligned latitude/longitude rectangle.
// Both edges are inclusive.
type BoundingBox struct {
	LatMin float64 `json:"lat_min" yaml:"lat_min"`
	LatMax float64 `json:"lat_max" yaml:"lat_max"`
	LngMin float64 `json:"lng_min" yaml:"lng_min"`
	LngMax float64 `json:"lng_max" yaml:"lng_max"`
}

// Contains reports whether the coordinate lies inside the box,
// boundary included.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax &&
		lng >= b.LngMin && lng <= b.LngMax
}

// ContainsPoint reports whether p lies inside the box, boundary
// included.
func (b BoundingBox) ContainsPoint(p Point) bool {
	return b.Contains(p.Lat, p.Lng)
}
