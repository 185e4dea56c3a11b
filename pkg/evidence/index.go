package evidence

import (
	"github.com/rs/zerolog"

	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// Index maps folder/file keys to the position of the record declaring
// them.
type Index map[string]int

// BuildIndex walks every declared image path across the records and
// maps its folder/file key to the record position. Paths without a
// recognizable spot folder are keyed by file name alone; paths that
// yield no file name at all are skipped. When two records declare the
// same key the later record wins.
func BuildIndex(records []spots.Location) Index {
	return buildIndex(records, pathPrefixes, nil)
}

func buildIndex(records []spots.Location, prefixes []string, logger *zerolog.Logger) Index {
	index := make(Index)
	for i, record := range records {
		for _, img := range record.Images() {
			if img.LocalPath == "" {
				continue
			}
			folder, file := splitPath(img.LocalPath, prefixes)
			if file == "" {
				continue
			}
			key := Key(folder, file)
			if previous, ok := index[key]; ok && logger != nil {
				logger.Debug().
					Str("key", key).
					Int("previous", previous).
					Int("record", i).
					Msg("Image declared twice, keeping later record")
			}
			index[key] = i
		}
	}
	return index
}
