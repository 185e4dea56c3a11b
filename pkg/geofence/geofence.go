// Package geofence screens published spots against a regional
// boundary. A spot survives when its coordinate is set, falls inside
// the region's bounding box, and none of its text fields name an
// excluded neighboring region.
package geofence

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/aeroatlas/spotmerge/pkg/geo"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// ReasonInvalidCoords marks spots removed for carrying the unset
// (0,0) coordinate.
const ReasonInvalidCoords = "Invalid coords"

// Region describes a target boundary and the text markers that exclude
// near-neighbor look-alikes.
type Region struct {
	Name    string          `json:"name" yaml:"name"`
	Bounds  geo.BoundingBox `json:"bounds" yaml:"bounds"`
	Exclude []string        `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// Reason overrides the removal reason reported for spots outside
	// the boundary or matching a marker. Defaults to "Outside <name>".
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Removal records one spot dropped by the filter.
type Removal struct {
	Spot   spots.Spot
	Reason string
}

// Contains reports whether the spot belongs in the region. The unset
// (0,0) coordinate never does, regardless of the configured bounds.
func (r Region) Contains(s spots.Spot) bool {
	if s.Lat == 0 && s.Lng == 0 {
		return false
	}
	if r.excludedByText(s) {
		return false
	}
	return r.Bounds.Contains(s.Lat, s.Lng)
}

// OutsideReason is the removal reason for spots that fail the boundary
// or marker checks.
func (r Region) OutsideReason() string {
	if r.Reason != "" {
		return r.Reason
	}
	return "Outside " + r.Name
}

// excludedByText folds the spot's name, description and address into
// one case-folded string and scans it for the region's markers. The
// fields are joined with single spaces, so a marker can span a join.
func (r Region) excludedByText(s spots.Spot) bool {
	if len(r.Exclude) == 0 {
		return false
	}
	fold := cases.Fold()
	text := fold.String(s.Name + " " + s.Description + " " + s.Address)
	for _, marker := range r.Exclude {
		if strings.Contains(text, fold.String(marker)) {
			return true
		}
	}
	return false
}

// Filter keeps the spots the region contains, renumbering their ids
// densely from 1, and reports every removal with its reason. Filtering
// an already filtered list changes nothing.
func Filter(in []spots.Spot, region Region) (kept []spots.Spot, removed []Removal) {
	kept = make([]spots.Spot, 0, len(in))
	for _, spot := range in {
		if region.Contains(spot) {
			spot.ID = len(kept) + 1
			kept = append(kept, spot)
			continue
		}
		removed = append(removed, Removal{Spot: spot, Reason: removalReason(spot, region)})
	}
	return kept, removed
}

func removalReason(s spots.Spot, region Region) string {
	if s.Lat == 0 && s.Lng == 0 {
		return ReasonInvalidCoords
	}
	return region.OutsideReason()
}
