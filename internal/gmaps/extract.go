package gmaps

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aeroatlas/spotmerge/pkg/geo"
)

const searchBase = "https://www.google.com/maps/search/"

// DefaultCountryHint is appended to queries that do not already name
// the country, keeping Maps from wandering off to same-named places
// abroad.
const DefaultCountryHint = "Malaysia"

// DefaultEnvelope bounds plausible results. Maps sends searches it
// cannot place to a country or world view whose URL still carries
// coordinates; anything outside the region of interest is that noise,
// not an answer.
var DefaultEnvelope = geo.BoundingBox{LatMin: 0, LatMax: 10, LngMin: 99, LngMax: 120}

// coordPatterns match the two coordinate encodings Maps URLs use:
// the viewport form @lat,lng and the place-marker form !3dlat!4dlng.
var coordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@(-?\d+\.?\d*),(-?\d+\.?\d*)`),
	regexp.MustCompile(`!3d(-?\d+\.?\d*)!4d(-?\d+\.?\d*)`),
}

// Query builds the search text for a place: the name when present,
// the address otherwise, with the country hint appended unless name
// or address already carries it. Empty when there is nothing to
// search for.
func Query(name, address, hint string) string {
	query := name
	if query == "" {
		query = address
	}
	if query == "" {
		return ""
	}
	if hint != "" && !strings.Contains(query, hint) && !strings.Contains(address, hint) {
		query += ", " + hint
	}
	return query
}

// SearchURL returns the Maps search URL for the query.
func SearchURL(query string) string {
	return searchBase + strings.ReplaceAll(query, " ", "+")
}

// ExtractCoords pulls a coordinate pair out of a Maps URL or URL-like
// string. A pair only counts when it parses and lands inside the
// envelope; otherwise the remaining encodings get their turn.
func ExtractCoords(s string, envelope geo.BoundingBox) (geo.Point, bool) {
	for _, pattern := range coordPatterns {
		match := pattern.FindStringSubmatch(s)
		if match == nil {
			continue
		}
		lat, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			continue
		}
		if envelope.Contains(lat, lng) {
			return geo.Point{Lat: lat, Lng: lng}, true
		}
	}
	return geo.Point{}, false
}
