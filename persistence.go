package spotmerge

import (
	"encoding/json"
	"os"

	"github.com/aeroatlas/spotmerge/pkg/constants"
	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// loadSpots reads a canonical spot set.
func loadSpots(path string) ([]spots.Spot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "spots file", Path: path}
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var set []spots.Spot
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return set, nil
}

// writeSpots persists a canonical spot set in the published layout.
// Callers only reach this after a full pass over the inputs completed.
func writeSpots(path string, set []spots.Spot) error {
	data, err := spots.EncodeJSON(set)
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
