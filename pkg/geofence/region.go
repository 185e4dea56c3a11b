package geofence

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/aeroatlas/spotmerge/internal/embedded"
	"github.com/aeroatlas/spotmerge/pkg/errors"
)

// DefaultRegionName is the region applied when none is configured.
const DefaultRegionName = "malaysia"

// Load returns a shipped region definition by name.
func Load(name string) (Region, error) {
	data, err := embedded.FS.ReadFile("regions/" + name + ".yaml")
	if err != nil {
		return Region{}, &errors.NotFoundError{Resource: "region", Path: name}
	}
	return decode(data, name)
}

// LoadFile reads a region definition from a user-supplied YAML file.
func LoadFile(path string) (Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Region{}, &errors.NotFoundError{Resource: "region file", Path: path}
		}
		return Region{}, errors.WrapIO("read", path, err)
	}
	return decode(data, path)
}

// Names lists the shipped region definitions.
func Names() []string {
	entries, err := embedded.FS.ReadDir("regions")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

func decode(data []byte, source string) (Region, error) {
	var region Region
	if err := yaml.Unmarshal(data, &region); err != nil {
		return Region{}, errors.WrapParse("yaml", source, err)
	}
	if err := region.Validate(); err != nil {
		return Region{}, err
	}
	return region, nil
}

// Validate checks the region definition is usable.
func (r Region) Validate() error {
	if r.Name == "" {
		return &errors.ValidationError{
			Field:   "name",
			Message: "cannot be empty",
		}
	}
	if r.Bounds.LatMin > r.Bounds.LatMax {
		return &errors.ValidationError{
			Field:   "bounds",
			Value:   fmt.Sprintf("lat %g..%g", r.Bounds.LatMin, r.Bounds.LatMax),
			Message: "minimum exceeds maximum",
		}
	}
	if r.Bounds.LngMin > r.Bounds.LngMax {
		return &errors.ValidationError{
			Field:   "bounds",
			Value:   fmt.Sprintf("lng %g..%g", r.Bounds.LngMin, r.Bounds.LngMax),
			Message: "minimum exceeds maximum",
		}
	}
	return nil
}
