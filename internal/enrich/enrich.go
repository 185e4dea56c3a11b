// Package enrich loads and persists the enrichment record file.
package enrich

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/aeroatlas/spotmerge/pkg/constants"
	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// Load reads the enrichment records from path.
func Load(path string) ([]spots.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "enrichment file", Path: path}
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var records []spots.Location
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return records, nil
}

// Save writes the records to path in the canonical file shape.
func Save(path string, records []spots.Location) error {
	data, err := spots.EncodeJSON(records)
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Backup writes a pristine copy of the records next to the original,
// returning the backup path. Runs that rewrite coordinates call this
// before touching anything.
func Backup(path string, records []spots.Location) (string, error) {
	backupPath := BackupPath(path)
	if err := Save(backupPath, records); err != nil {
		return "", err
	}
	return backupPath, nil
}

// BackupPath returns the backup file name for path.
func BackupPath(path string) string {
	return path + constants.BackupSuffix
}

// CorrectedPath returns the corrected-copy file name for path:
// enriched_spots.json becomes enriched_spots_corrected.json.
func CorrectedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + constants.CorrectedSuffix + ext
}
