// Package scan inventories the on-disk spot image folders.
package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// imageExtensions the inventory recognizes, compared case-insensitively.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Folders lists the image folders under dir in name order. Every
// subdirectory holding at least one recognized image is returned with
// its image names sorted; subdirectories without images are dropped.
// A missing dir is an error, the caller has nothing to merge.
func Folders(dir string) ([]spots.Folder, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "spots directory", Path: dir}
		}
		return nil, errors.WrapIO("read", dir, err)
	}

	folders := make([]spots.Folder, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		files, err := imageFiles(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}
		folders = append(folders, spots.Folder{Name: entry.Name(), Files: files})
	}
	return folders, nil
}

// imageFiles lists the recognized images directly inside dir. ReadDir
// returns entries sorted by name, which is the order callers rely on.
func imageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
