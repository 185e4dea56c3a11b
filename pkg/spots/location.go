package spots

import "github.com/aeroatlas/spotmerge/pkg/geo"

// Location is one enrichment record as scraped from the map source.
// The pipeline treats these as read-only evidence, except for
// coordinate correction which rewrites Latitude and Longitude.
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description,omitempty"`

	// GoogleMaps carries the scraped place details. It is optional:
	// accessors below tolerate a nil block the same way the scraper's
	// consumers did.
	GoogleMaps *PlaceData `json:"google_maps_data,omitempty"`
}

// PlaceData is the scraped place detail block inside a Location.
type PlaceData struct {
	PlaceName string     `json:"place_name,omitempty"`
	Address   string     `json:"address,omitempty"`
	Category  string     `json:"category,omitempty"`
	Rating    *float64   `json:"rating,omitempty"`
	Images    []ImageRef `json:"images,omitempty"`
}

// ImageRef is one downloaded image belonging to an enrichment record.
type ImageRef struct {
	LocalPath string `json:"local_path,omitempty"`
}

// Coord returns the record's stored coordinate.
func (l *Location) Coord() geo.Point {
	return geo.Point{Lat: l.Latitude, Lng: l.Longitude}
}

// SetCoord replaces the record's stored coordinate.
func (l *Location) SetCoord(p geo.Point) {
	l.Latitude = p.Lat
	l.Longitude = p.Lng
}

// PlaceName returns the scraped place name, or "" when the detail
// block or the field is missing.
func (l *Location) PlaceName() string {
	if l.GoogleMaps == nil {
		return ""
	}
	return l.GoogleMaps.PlaceName
}

// Address returns the scraped address, or "".
func (l *Location) Address() string {
	if l.GoogleMaps == nil {
		return ""
	}
	return l.GoogleMaps.Address
}

// Category returns the scraped category, or "".
func (l *Location) Category() string {
	if l.GoogleMaps == nil {
		return ""
	}
	return l.GoogleMaps.Category
}

// Rating returns the scraped rating, or nil.
func (l *Location) Rating() *float64 {
	if l.GoogleMaps == nil {
		return nil
	}
	return l.GoogleMaps.Rating
}

// Images returns the record's declared images, or nil.
func (l *Location) Images() []ImageRef {
	if l.GoogleMaps == nil {
		return nil
	}
	return l.GoogleMaps.Images
}
