package spots

import (
	"strconv"
	"strings"
)

// FolderPrefix is the naming convention for spot image directories.
const FolderPrefix = "spot_"

// Folder is one spot_<N> image directory found on disk.
type Folder struct {
	Name  string   // Directory base name, e.g. "spot_12"
	Files []string // Image base names, sorted
}

// Index returns the numeric index embedded in the folder name.
// "spot_12" yields 12. Names without the prefix or without a plain
// non-negative number after it report false.
func (f Folder) Index() (int, bool) {
	rest, ok := strings.CutPrefix(f.Name, FolderPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
