// Package evidence assigns on-disk image folders to the enrichment
// records that declare them. Every record carries the local paths of
// the images downloaded for it, and each path names the folder it was
// saved under. The resolver treats those paths as votes: a folder
// belongs to the record that claims most of its files. Folders no
// record votes for can still fall back to the record at the position
// encoded in the folder name.
package evidence

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aeroatlas/spotmerge/pkg/logging"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

// Resolver maps image folders to enrichment record positions.
type Resolver struct {
	prefixes []string
	fallback bool
}

// New creates a new Resolver with options.
func New(opts ...Option) (*Resolver, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		prefixes: options.prefixes,
		fallback: options.fallback,
	}, nil
}

// resolveContext holds shared state for one resolution run.
type resolveContext struct {
	index    Index
	claimed  map[int]string // record position -> folder holding the claim
	outcomes map[string]FolderResolution
	logger   *zerolog.Logger
}

// Resolve assigns each folder to at most one record. Folders are
// processed in lexicographic name order so reruns over the same inputs
// produce the same mapping. A record position, once claimed, is never
// reassigned.
func (r *Resolver) Resolve(ctx context.Context, folders []spots.Folder, records []spots.Location) *Result {
	result := NewResult()

	// Step 1: order folders by name
	ordered := make([]spots.Folder, len(folders))
	copy(ordered, folders)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	// Step 2: index every declared image path
	logger := logging.FromContext(ctx)
	rctx := &resolveContext{
		index:    buildIndex(records, r.prefixes, logger),
		claimed:  make(map[int]string),
		outcomes: make(map[string]FolderResolution),
		logger:   logger,
	}
	result.Metadata.Stats.FoldersProcessed = len(ordered)
	result.Metadata.Stats.RecordsIndexed = len(records)
	result.Metadata.Stats.KeysIndexed = len(rctx.index)

	// Step 3: vote pass
	for _, folder := range ordered {
		r.resolveByVotes(rctx, folder, result)
	}

	// Step 4: positional fallback for folders the votes left open
	if r.fallback {
		for _, folder := range ordered {
			r.resolveByPosition(rctx, folder, records, result)
		}
	}

	// Step 5: record per-folder outcomes in folder order
	for _, folder := range ordered {
		outcome, ok := rctx.outcomes[folder.Name]
		if !ok {
			outcome = FolderResolution{Folder: folder.Name, Record: -1, Method: MethodNone}
			result.Metadata.Stats.Unresolved++
			rctx.logger.Warn().
				Str("folder", folder.Name).
				Msg("Folder could not be matched to any record")
		}
		result.Folders = append(result.Folders, outcome)
	}

	result.Finalize()
	return result
}

// resolveByVotes tallies which record claims each file in the folder
// and assigns the folder to the record with the most claims. Ties go to
// the lower record position. A winner that is already held by an
// earlier folder leaves this folder open; no second choice is taken.
func (r *Resolver) resolveByVotes(rctx *resolveContext, folder spots.Folder, result *Result) {
	votes := make(map[int]int)
	for _, file := range folder.Files {
		if record, ok := rctx.index[Key(folder.Name, file)]; ok {
			votes[record]++
		}
	}

	record, count, ok := winner(votes)
	if !ok {
		rctx.logger.Debug().
			Str("folder", folder.Name).
			Int("files", len(folder.Files)).
			Msg("No record claims any file in folder")
		return
	}

	if holder, taken := rctx.claimed[record]; taken {
		rctx.logger.Warn().
			Str("folder", folder.Name).
			Int("record", record).
			Str("held_by", holder).
			Msg("Winning record already claimed by earlier folder")
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"folder %s voted for record %d already claimed by %s",
			folder.Name, record, holder))
		return
	}

	rctx.claimed[record] = folder.Name
	rctx.outcomes[folder.Name] = FolderResolution{
		Folder: folder.Name,
		Record: record,
		Method: MethodVote,
		Votes:  count,
	}
	result.Mapping[folder.Name] = record
	result.Metadata.Stats.ResolvedByVote++
	rctx.logger.Debug().
		Str("folder", folder.Name).
		Int("record", record).
		Int("votes", count).
		Msg("Folder resolved by image votes")
}

// resolveByPosition assigns an open folder to the record at the
// position its name encodes, provided that record is unclaimed and its
// own declared images do not point at a different folder.
func (r *Resolver) resolveByPosition(rctx *resolveContext, folder spots.Folder, records []spots.Location, result *Result) {
	if _, done := result.Mapping[folder.Name]; done {
		return
	}

	position, ok := folder.Index()
	if !ok || position >= len(records) {
		return
	}
	if _, taken := rctx.claimed[position]; taken {
		return
	}

	declared := r.declaredFolders(records[position])
	if len(declared) > 0 && !declared[folder.Name] {
		rctx.logger.Debug().
			Str("folder", folder.Name).
			Int("record", position).
			Msg("Record at matching position declares other folders")
		return
	}

	rctx.claimed[position] = folder.Name
	rctx.outcomes[folder.Name] = FolderResolution{
		Folder: folder.Name,
		Record: position,
		Method: MethodPosition,
	}
	result.Mapping[folder.Name] = position
	result.Metadata.Stats.ResolvedByPosition++
	rctx.logger.Debug().
		Str("folder", folder.Name).
		Int("record", position).
		Msg("Folder resolved by position")
}

// declaredFolders collects the folder token of every non-empty image
// path on a record. Paths that carry no recognizable folder contribute
// an empty token, which still counts as a declaration.
func (r *Resolver) declaredFolders(record spots.Location) map[string]bool {
	declared := make(map[string]bool)
	for _, img := range record.Images() {
		if img.LocalPath == "" {
			continue
		}
		folder, _ := splitPath(img.LocalPath, r.prefixes)
		declared[folder] = true
	}
	return declared
}

// winner picks the record position with the most votes. Ties resolve to
// the lower position so the outcome does not depend on map order.
func winner(votes map[int]int) (record, count int, ok bool) {
	record = -1
	for position, n := range votes {
		switch {
		case n > count:
			record, count = position, n
		case n == count && position < record:
			record = position
		}
	}
	return record, count, record >= 0
}
