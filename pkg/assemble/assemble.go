// Package assemble turns scanned image folders and their resolved
// enrichment records into the published spot list.
package assemble

import (
	"fmt"
	"path"
	"sort"

	"github.com/aeroatlas/spotmerge/internal/utils/ptr"
	"github.com/aeroatlas/spotmerge/pkg/constants"
	"github.com/aeroatlas/spotmerge/pkg/evidence"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// Defaults for fields the enrichment record leaves empty.
const (
	DefaultDescription = "Beautiful drone location"
	DefaultCategory    = "Nature"
	DefaultNotes       = "Check local rules"
)

// Build produces the published spot list. Folders are emitted in name
// order with ids numbered densely from 1. Resolved folders draw their
// fields from the mapped record with defaults filling the gaps;
// unresolved folders get placeholder names and zero coordinates.
// Mapping entries pointing outside the records are treated as
// unresolved.
func Build(folders []spots.Folder, mapping evidence.Mapping, records []spots.Location) []spots.Spot {
	ordered := make([]spots.Folder, len(folders))
	copy(ordered, folders)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	built := make([]spots.Spot, 0, len(ordered))
	for _, folder := range ordered {
		spot := spots.Spot{
			ID:          len(built) + 1,
			Description: DefaultDescription,
			Category:    DefaultCategory,
			Notes:       DefaultNotes,
			Images:      webImagePaths(folder),
		}

		if record, position, ok := resolved(folder, mapping, records); ok {
			fill(&spot, record, position)
		} else {
			spot.Name = placeholderName(folder, len(built))
		}

		built = append(built, spot)
	}
	return built
}

// fill copies the record's fields onto the spot, keeping the defaults
// where the record is empty.
func fill(spot *spots.Spot, record spots.Location, position int) {
	spot.Name = record.PlaceName()
	if spot.Name == "" {
		spot.Name = fmt.Sprintf("Spot %d", position+1)
	}
	spot.Lat = record.Latitude
	spot.Lng = record.Longitude
	if d := record.Description; d != "" {
		spot.Description = d
	}
	if c := record.Category(); c != "" {
		spot.Category = c
	}
	if r := record.Rating(); r != nil {
		spot.Rating = ptr.To(*r)
	}
	spot.Address = record.Address()
}

// resolved looks up the folder's record, rejecting mappings that point
// outside the record list.
func resolved(folder spots.Folder, mapping evidence.Mapping, records []spots.Location) (spots.Location, int, bool) {
	position, ok := mapping[folder.Name]
	if !ok || position < 0 || position >= len(records) {
		return spots.Location{}, 0, false
	}
	return records[position], position, true
}

// placeholderName names a folder no record could be found for. The
// number comes from the folder name itself, or from the emission count
// when the name carries none.
func placeholderName(folder spots.Folder, emitted int) string {
	n, ok := folder.Index()
	if !ok {
		n = emitted
	}
	return fmt.Sprintf("Drone Spot %d", n+1)
}

// webImagePaths converts a folder's files into the web paths the app
// serves them under, sorted lexicographically.
func webImagePaths(folder spots.Folder) []string {
	files := make([]string, len(folder.Files))
	copy(files, folder.Files)
	sort.Strings(files)

	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = path.Join(constants.SpotsWebPrefix, folder.Name, file)
	}
	return paths
}
