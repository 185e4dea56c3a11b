// Package imagesync rebuilds the published image tree from the
// suitable-labeled originals. The target's spot directories are
// cleared first, so images that lost their label disappear.
package imagesync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/aeroatlas/spotmerge/pkg/constants"
	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/evidence"
	"github.com/aeroatlas/spotmerge/pkg/logging"
)

// Result summarizes one sync run.
type Result struct {
	Copied  int // Images copied into the target tree
	Missing int // Labeled paths with no source file behind them
	Cleared int // Spot directories removed from the target first
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("Copied %d images (%d missing, %d directories cleared)",
		r.Copied, r.Missing, r.Cleared)
}

// Sync replaces the spot directories under target with the suitable
// images found under source, preserving the folder/file layout. The
// suitable paths are normalized with the same rules the evidence index
// uses, deduplicated, and copied in sorted order.
func Sync(ctx context.Context, source, target string, suitable []string) (*Result, error) {
	if len(suitable) == 0 {
		return nil, &errors.ValidationError{
			Field:   "suitable",
			Message: "no suitable images to copy",
		}
	}
	logger := logging.FromContext(ctx)

	relatives := normalize(suitable)
	result := &Result{}

	cleared, err := clearTarget(target)
	if err != nil {
		return nil, err
	}
	result.Cleared = cleared
	logger.Debug().
		Int("directories", cleared).
		Str("target", target).
		Msg("Cleared existing spot directories")

	for _, rel := range relatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src := filepath.Join(source, filepath.FromSlash(rel))
		if _, err := os.Stat(src); err != nil {
			result.Missing++
			logger.Warn().Str("path", src).Msg("Labeled image missing on disk")
			continue
		}

		dst := filepath.Join(target, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("mkdir", filepath.Dir(dst), err)
		}
		if err := copyFile(src, dst); err != nil {
			return nil, err
		}
		result.Copied++
	}

	logger.Info().
		Int("copied", result.Copied).
		Int("missing", result.Missing).
		Msg("Image tree rebuilt from suitable labels")
	return result, nil
}

// normalize reduces the labeled paths to unique folder/file pairs in
// sorted order. Paths that carry no recognizable spot folder are
// dropped, there is nowhere in the tree to put them.
func normalize(suitable []string) []string {
	unique := make(map[string]bool, len(suitable))
	for _, p := range suitable {
		folder, file := evidence.SplitPath(p)
		if folder == "" || file == "" {
			continue
		}
		unique[evidence.Key(folder, file)] = true
	}

	relatives := make([]string, 0, len(unique))
	for rel := range unique {
		relatives = append(relatives, rel)
	}
	sort.Strings(relatives)
	return relatives
}

// clearTarget removes every directory directly under target, creating
// target itself when absent. Loose files at the top level survive.
func clearTarget(target string) (int, error) {
	entries, err := os.ReadDir(target)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(target, constants.DirPermissions); err != nil {
				return 0, errors.WrapIO("mkdir", target, err)
			}
			return 0, nil
		}
		return 0, errors.WrapIO("read", target, err)
	}

	cleared := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := os.RemoveAll(filepath.Join(target, entry.Name())); err != nil {
			return cleared, errors.WrapIO("remove", filepath.Join(target, entry.Name()), err)
		}
		cleared++
	}
	return cleared, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapIO("open", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.WrapIO("copy", dst, err)
	}
	return out.Close()
}
