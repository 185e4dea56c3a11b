package evidence_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aeroatlas/spotmerge/pkg/evidence"
	"github.com/aeroatlas/spotmerge/pkg/logging"
	"github.com/aeroatlas/spotmerge/pkg/spots"
)

func newResolver(t *testing.T, opts ...evidence.Option) *evidence.Resolver {
	t.Helper()
	r, err := evidence.New(opts...)
	if err != nil {
		t.Fatalf("Failed to create resolver: %v", err)
	}
	return r
}

func folder(name string, files ...string) spots.Folder {
	return spots.Folder{Name: name, Files: files}
}

func TestResolverVotes(t *testing.T) {
	ctx := context.Background()

	// Records declare images out of positional order: record 2 holds
	// the files saved under spot_0, and so on.
	records := []spots.Location{
		testRecord("images/spot_1/b1.jpg", "images/spot_1/b2.jpg"),
		testRecord("images/spot_2/c1.jpg"),
		testRecord("images/spot_0/a1.jpg", "images/spot_0/a2.jpg", "images/spot_0/a3.jpg"),
	}
	folders := []spots.Folder{
		folder("spot_0", "a1.jpg", "a2.jpg", "a3.jpg"),
		folder("spot_1", "b1.jpg", "b2.jpg"),
		folder("spot_2", "c1.jpg"),
	}

	result := newResolver(t).Resolve(ctx, folders, records)

	want := map[string]int{"spot_0": 2, "spot_1": 0, "spot_2": 1}
	for name, record := range want {
		if got, ok := result.Record(name); !ok || got != record {
			t.Errorf("Record(%q) = %d (ok=%v), want %d", name, got, ok, record)
		}
	}
	if !result.IsComplete() {
		t.Errorf("Expected complete resolution, got %d unresolved", result.Metadata.Stats.Unresolved)
	}
	if got := result.Metadata.Stats.ResolvedByVote; got != 3 {
		t.Errorf("ResolvedByVote = %d, want 3", got)
	}
	if got := result.Summary(); got != "Resolved all 3 folders (3 by votes, 0 by position)" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestResolverMajority(t *testing.T) {
	ctx := context.Background()

	// Record 1 claims two of the folder's three files, record 0 one.
	records := []spots.Location{
		testRecord("images/spot_0/a.jpg"),
		testRecord("images/spot_0/b.jpg", "images/spot_0/c.jpg"),
	}
	folders := []spots.Folder{folder("spot_0", "a.jpg", "b.jpg", "c.jpg")}

	result := newResolver(t).Resolve(ctx, folders, records)

	if got, ok := result.Record("spot_0"); !ok || got != 1 {
		t.Fatalf("Record(spot_0) = %d (ok=%v), want majority record 1", got, ok)
	}
	if len(result.Folders) != 1 {
		t.Fatalf("Folders has %d entries, want 1", len(result.Folders))
	}
	outcome := result.Folders[0]
	if outcome.Method != evidence.MethodVote || outcome.Votes != 2 {
		t.Errorf("Outcome = %+v, want vote method with 2 votes", outcome)
	}
}

func TestResolverTieGoesToLowerRecord(t *testing.T) {
	ctx := context.Background()

	records := []spots.Location{
		testRecord("images/spot_0/a.jpg"),
		{},
		testRecord("images/spot_0/b.jpg"),
	}
	folders := []spots.Folder{folder("spot_0", "a.jpg", "b.jpg")}

	result := newResolver(t).Resolve(ctx, folders, records)

	if got, ok := result.Record("spot_0"); !ok || got != 0 {
		t.Errorf("Record(spot_0) = %d (ok=%v), want tie broken to record 0", got, ok)
	}
}

func TestResolverFirstClaimWins(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	// Record 0 claims files in both folders, so both vote for it.
	// spot_0 is processed first and takes the claim; spot_1 must not
	// fall through to its second-highest record by votes.
	records := []spots.Location{
		testRecord("images/spot_0/a.jpg", "images/spot_0/b.jpg",
			"images/spot_1/x.jpg", "images/spot_1/y.jpg"),
		testRecord("images/spot_1/z.jpg"),
	}
	folders := []spots.Folder{
		folder("spot_0", "a.jpg", "b.jpg"),
		folder("spot_1", "x.jpg", "y.jpg", "z.jpg"),
	}

	result := newResolver(t).Resolve(ctx, folders, records)

	if got, ok := result.Record("spot_0"); !ok || got != 0 {
		t.Fatalf("Record(spot_0) = %d (ok=%v), want 0", got, ok)
	}
	// spot_1 reaches record 1 only through the position pass. Taking
	// it by votes would mean the resolver considered a second choice.
	if got, ok := result.Record("spot_1"); !ok || got != 1 {
		t.Fatalf("Record(spot_1) = %d (ok=%v), want 1", got, ok)
	}
	if m := result.Folders[1].Method; m != evidence.MethodPosition {
		t.Errorf("spot_1 method = %q, want %q", m, evidence.MethodPosition)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "already claimed by spot_0") {
		t.Errorf("Warnings = %v, want one claim conflict", result.Warnings)
	}
	tl.AssertContains(t, "already claimed")
}

func TestResolverConflictWithoutRescue(t *testing.T) {
	ctx := context.Background()

	// Both folders vote for record 0, and record 1 declares a third
	// folder, so the loser cannot fall back to its position either.
	records := []spots.Location{
		testRecord("images/spot_0/a.jpg", "images/spot_1/x.jpg"),
		testRecord("images/spot_9/q.jpg"),
	}
	folders := []spots.Folder{
		folder("spot_0", "a.jpg"),
		folder("spot_1", "x.jpg"),
	}

	result := newResolver(t).Resolve(ctx, folders, records)

	if _, ok := result.Record("spot_1"); ok {
		t.Fatal("spot_1 resolved, want unresolved")
	}
	if result.IsComplete() {
		t.Error("IsComplete() = true, want false")
	}
	if got := result.Folders[1]; got.Record != -1 || got.Method != evidence.MethodNone {
		t.Errorf("spot_1 outcome = %+v, want unresolved", got)
	}
	if got := result.Summary(); got != "Resolved 1 of 2 folders (1 by votes, 0 by position, 1 unresolved)" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestResolverPositionalFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("record declares nothing", func(t *testing.T) {
		records := []spots.Location{
			testRecord("images/spot_0/a.jpg"),
			{},
		}
		folders := []spots.Folder{
			folder("spot_0", "a.jpg"),
			folder("spot_1", "unclaimed.jpg"),
		}

		result := newResolver(t).Resolve(ctx, folders, records)

		if got, ok := result.Record("spot_1"); !ok || got != 1 {
			t.Fatalf("Record(spot_1) = %d (ok=%v), want 1", got, ok)
		}
		if m := result.Folders[1].Method; m != evidence.MethodPosition {
			t.Errorf("spot_1 method = %q, want %q", m, evidence.MethodPosition)
		}
	})

	t.Run("record declares this folder", func(t *testing.T) {
		// The declared file names do not match what is on disk, so
		// votes find nothing, but the folder token does match.
		records := []spots.Location{
			testRecord("images/spot_0/renamed.jpg"),
		}
		folders := []spots.Folder{folder("spot_0", "a.jpg")}

		result := newResolver(t).Resolve(ctx, folders, records)

		if got, ok := result.Record("spot_0"); !ok || got != 0 {
			t.Errorf("Record(spot_0) = %d (ok=%v), want 0", got, ok)
		}
	})

	t.Run("record declares another folder", func(t *testing.T) {
		records := []spots.Location{
			testRecord("images/spot_9/q.jpg"),
		}
		folders := []spots.Folder{folder("spot_0", "a.jpg")}

		result := newResolver(t).Resolve(ctx, folders, records)

		if _, ok := result.Record("spot_0"); ok {
			t.Error("spot_0 resolved, want blocked by foreign declaration")
		}
	})

	t.Run("folderless declaration still blocks", func(t *testing.T) {
		records := []spots.Location{
			testRecord("downloads/loose.jpg"),
		}
		folders := []spots.Folder{folder("spot_0", "a.jpg")}

		result := newResolver(t).Resolve(ctx, folders, records)

		if _, ok := result.Record("spot_0"); ok {
			t.Error("spot_0 resolved, want blocked by unrecognized declaration")
		}
	})

	t.Run("position out of range", func(t *testing.T) {
		records := []spots.Location{{}, {}}
		folders := []spots.Folder{folder("spot_5", "a.jpg")}

		result := newResolver(t).Resolve(ctx, folders, records)

		if _, ok := result.Record("spot_5"); ok {
			t.Error("spot_5 resolved, want out of range")
		}
	})

	t.Run("folder name without position", func(t *testing.T) {
		records := []spots.Location{{}}
		folders := []spots.Folder{folder("extras", "a.jpg")}

		result := newResolver(t).Resolve(ctx, folders, records)

		if _, ok := result.Record("extras"); ok {
			t.Error("extras resolved, want unresolved")
		}
	})

	t.Run("position already claimed by votes", func(t *testing.T) {
		records := []spots.Location{
			testRecord("images/spot_1/x.jpg"),
		}
		folders := []spots.Folder{
			folder("spot_0", "a.jpg"),
			folder("spot_1", "x.jpg"),
		}

		result := newResolver(t).Resolve(ctx, folders, records)

		if got, ok := result.Record("spot_1"); !ok || got != 0 {
			t.Fatalf("Record(spot_1) = %d (ok=%v), want 0 by votes", got, ok)
		}
		if _, ok := result.Record("spot_0"); ok {
			t.Error("spot_0 resolved, want blocked by spot_1's claim")
		}
	})
}

func TestResolverFoldersInNameOrder(t *testing.T) {
	ctx := context.Background()

	records := []spots.Location{
		testRecord("images/spot_1/b.jpg"),
		testRecord("images/spot_0/a.jpg"),
		{},
	}
	// Input order reversed relative to folder names.
	folders := []spots.Folder{
		folder("spot_2", "c.jpg"),
		folder("spot_1", "b.jpg"),
		folder("spot_0", "a.jpg"),
	}

	result := newResolver(t).Resolve(ctx, folders, records)

	wantOrder := []string{"spot_0", "spot_1", "spot_2"}
	for i, name := range wantOrder {
		if result.Folders[i].Folder != name {
			t.Errorf("Folders[%d] = %q, want %q", i, result.Folders[i].Folder, name)
		}
	}
	want := map[string]int{"spot_0": 1, "spot_1": 0, "spot_2": 2}
	for name, record := range want {
		if got, ok := result.Record(name); !ok || got != record {
			t.Errorf("Record(%q) = %d (ok=%v), want %d", name, got, ok, record)
		}
	}
}

func TestResolverClaimOrderIsLexicographic(t *testing.T) {
	ctx := context.Background()

	// "spot_10" sorts before "spot_2", so it wins the shared record
	// regardless of input order.
	records := []spots.Location{
		testRecord("images/spot_10/a.jpg", "images/spot_2/b.jpg"),
	}
	folders := []spots.Folder{
		folder("spot_2", "b.jpg"),
		folder("spot_10", "a.jpg"),
	}

	result := newResolver(t).Resolve(ctx, folders, records)

	if got, ok := result.Record("spot_10"); !ok || got != 0 {
		t.Errorf("Record(spot_10) = %d (ok=%v), want 0", got, ok)
	}
	if _, ok := result.Record("spot_2"); ok {
		t.Error("spot_2 resolved, want claim lost to spot_10")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "spot_10") {
		t.Errorf("Warnings = %v, want conflict naming spot_10", result.Warnings)
	}
}

func TestResolverWithoutFallback(t *testing.T) {
	ctx := context.Background()

	records := []spots.Location{{}}
	folders := []spots.Folder{folder("spot_0", "a.jpg")}

	result := newResolver(t, evidence.WithPositionalFallback(false)).Resolve(ctx, folders, records)

	if _, ok := result.Record("spot_0"); ok {
		t.Error("spot_0 resolved, want unresolved with fallback disabled")
	}
	if got := result.Metadata.Stats.ResolvedByPosition; got != 0 {
		t.Errorf("ResolvedByPosition = %d, want 0", got)
	}
}

func TestResolverCustomPrefixes(t *testing.T) {
	ctx := context.Background()

	// Without stripping, the archive directory itself would be taken
	// for the spot folder.
	records := []spots.Location{
		testRecord("spot_archive/spot_0/a.jpg"),
	}
	folders := []spots.Folder{folder("spot_0", "a.jpg")}

	result := newResolver(t, evidence.WithPathPrefixes("spot_archive/")).Resolve(ctx, folders, records)

	if got, ok := result.Record("spot_0"); !ok || got != 0 {
		t.Errorf("Record(spot_0) = %d (ok=%v), want 0", got, ok)
	}
	if m := result.Folders[0].Method; m != evidence.MethodVote {
		t.Errorf("spot_0 method = %q, want %q", m, evidence.MethodVote)
	}
}

func TestResolverOptionValidation(t *testing.T) {
	if _, err := evidence.New(evidence.WithPathPrefixes()); err == nil {
		t.Error("New(WithPathPrefixes()) error = nil, want validation error")
	}
}
