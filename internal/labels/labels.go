// Package labels reads the labeled image evidence tables. Each table
// is a CSV with image_path and label columns, produced by the manual
// review pass over the scraped images.
package labels

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/aeroatlas/spotmerge/pkg/errors"
)

// SuitableLabel marks an image approved for publication.
const SuitableLabel = "suitable"

// Label is one labeled image row.
type Label struct {
	ImagePath string
	Value     string
}

// Load reads a labels table. The header row names the columns;
// image_path and label must both be present. Rows too short to carry
// both are skipped.
func Load(path string) ([]Label, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "labels file", Path: path}
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	pathCol, labelCol := -1, -1
	for i, name := range header {
		switch name {
		case "image_path":
			pathCol = i
		case "label":
			labelCol = i
		}
	}
	if pathCol < 0 || labelCol < 0 {
		return nil, &errors.ValidationError{
			Field:   "header",
			Value:   header,
			Message: "image_path and label columns are required",
		}
	}

	var labels []Label
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}
		if len(row) <= pathCol || len(row) <= labelCol {
			continue
		}
		labels = append(labels, Label{ImagePath: row[pathCol], Value: row[labelCol]})
	}
	return labels, nil
}

// SuitablePaths collects the image paths labeled suitable, in table
// order, duplicates included.
func SuitablePaths(labels []Label) []string {
	paths := make([]string, 0, len(labels))
	for _, label := range labels {
		if label.Value == SuitableLabel {
			paths = append(paths, label.ImagePath)
		}
	}
	return paths
}
