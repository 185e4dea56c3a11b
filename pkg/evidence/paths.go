package evidence

import (
	"strings"

	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// pathPrefixes are stripped from the front of declared image paths
// before folder extraction. Longest prefix first; only the first
// match is removed.
var pathPrefixes = []string{
	"scraped_data/images/",
	"images/",
}

// SplitPath extracts the spot folder and file name from a declared
// image path. Windows separators are normalized to forward slashes and
// a leading storage prefix is dropped. The folder is the first path
// segment carrying the spot naming convention; paths without one
// report an empty folder.
func SplitPath(path string) (folder, file string) {
	return splitPath(path, pathPrefixes)
}

func splitPath(path string, prefixes []string) (folder, file string) {
	p := strings.ReplaceAll(path, `\`, "/")
	for _, prefix := range prefixes {
		if rest, ok := strings.CutPrefix(p, prefix); ok {
			p = rest
			break
		}
	}

	parts := strings.Split(p, "/")
	file = parts[len(parts)-1]
	for _, part := range parts {
		if strings.HasPrefix(part, spots.FolderPrefix) {
			folder = part
			break
		}
	}
	return folder, file
}

// Key builds the index key for a folder and file pair. Declarations
// without a folder key on the file name alone.
func Key(folder, file string) string {
	if folder == "" {
		return file
	}
	return folder + "/" + file
}
