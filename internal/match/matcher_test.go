package match

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"mixtape/internal/library"
	"mixtape/internal/textnorm"
)

func testMatcher(t *testing.T, policy Policy) *Matcher {
	t.Helper()
	strip, err := textnorm.CompileStripKeywords([]string{"remaster", "remix"})
	if err != nil {
		t.Fatalf("CompileStripKeywords: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m, err := NewMatcher(policy, strip, logger)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	return m
}

// libTrack derives the normalized fields the way the scanner does, so
// records stay consistent with their raw tags.
func libTrack(t *testing.T, m *Matcher, path, artist, title, album string, isLive bool) library.Track {
	t.Helper()
	normTitle, _ := textnorm.Normalize(title, m.strip)
	normArtist, _ := textnorm.Normalize(artist, m.strip)
	normStem, _ := textnorm.Normalize(library.FilenameStem(path), m.strip)
	return library.Track{
		Path:         path,
		Artist:       artist,
		Title:        title,
		Album:        album,
		DurationSecs: 200,
		NormArtist:   normArtist,
		NormTitle:    normTitle,
		NormFilename: normStem,
		IsLive:       isLive,
	}
}

func TestNewMatcherValidation(t *testing.T) {
	strip, err := textnorm.CompileStripKeywords(nil)
	if err != nil {
		t.Fatalf("CompileStripKeywords: %v", err)
	}
	if _, err := NewMatcher(DefaultPolicy(), nil, nil); err == nil {
		t.Fatal("expected error for nil keyword set")
	}
	if _, err := NewMatcher(Policy{Threshold: 101, LivePenaltyFactor: 0.75}, strip, nil); err == nil {
		t.Fatal("expected error for threshold out of range")
	}
	if _, err := NewMatcher(Policy{Threshold: 75, LivePenaltyFactor: 1.5}, strip, nil); err == nil {
		t.Fatal("expected error for penalty factor out of range")
	}
}

func TestResolveExactMatch(t *testing.T) {
	m := testMatcher(t, DefaultPolicy())
	index := []library.Track{
		libTrack(t, m, "/lib/radiohead/creep.flac", "Radiohead", "Creep", "Pablo Honey", false),
	}

	outcome := m.Resolve(Query{Artist: "Radiohead", Title: "Creep"}, index)
	if outcome.Decision != DecisionAutoMatch {
		t.Fatalf("Decision = %q, want auto match", outcome.Decision)
	}
	if outcome.Match.Path != "/lib/radiohead/creep.flac" {
		t.Fatalf("Match.Path = %q", outcome.Match.Path)
	}
}

func TestResolveNoQualifiedTitle(t *testing.T) {
	index := func(m *Matcher) []library.Track {
		return []library.Track{
			libTrack(t, m, "/lib/radiohead/creep.flac", "Radiohead", "Creep", "Pablo Honey", false),
		}
	}

	m := testMatcher(t, DefaultPolicy())
	outcome := m.Resolve(Query{Artist: "Radiohead", Title: "Karma Police"}, index(m))
	if outcome.Decision != DecisionNoMatch {
		t.Fatalf("non-interactive Decision = %q, want no match", outcome.Decision)
	}

	policy := DefaultPolicy()
	policy.Interactive = true
	m = testMatcher(t, policy)
	outcome = m.Resolve(Query{Artist: "Radiohead", Title: "Karma Police"}, index(m))
	if outcome.Decision != DecisionAlbumSelectionPossible {
		t.Fatalf("interactive Decision = %q, want album selection", outcome.Decision)
	}
	if len(outcome.ArtistCandidates) != 1 {
		t.Fatalf("ArtistCandidates = %d, want 1", len(outcome.ArtistCandidates))
	}
}

func TestResolveNoArtistMatch(t *testing.T) {
	index := func(m *Matcher) []library.Track {
		return []library.Track{
			libTrack(t, m, "/lib/radiohead/creep.flac", "Radiohead", "Creep", "Pablo Honey", false),
		}
	}

	m := testMatcher(t, DefaultPolicy())
	outcome := m.Resolve(Query{Artist: "Beyonce", Title: "Halo"}, index(m))
	if outcome.Decision != DecisionNoMatch {
		t.Fatalf("non-interactive Decision = %q, want no match", outcome.Decision)
	}

	policy := DefaultPolicy()
	policy.Interactive = true
	m = testMatcher(t, policy)
	outcome = m.Resolve(Query{Artist: "Beyonce", Title: "Halo"}, index(m))
	if outcome.Decision != DecisionNoArtistMatch {
		t.Fatalf("interactive Decision = %q, want no artist match", outcome.Decision)
	}
	if outcome.ClosestArtist != "Radiohead" {
		t.Fatalf("ClosestArtist = %q", outcome.ClosestArtist)
	}
}

func TestArtistFilterEmptyQuery(t *testing.T) {
	m := testMatcher(t, DefaultPolicy())
	index := []library.Track{
		libTrack(t, m, "/lib/unknown/creep.flac", "", "Creep", "", false),
		libTrack(t, m, "/lib/bob/creep.flac", "Bob", "Creep", "", false),
	}

	candidates, _, _ := m.filterArtists("", index)
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].Path != "/lib/unknown/creep.flac" {
		t.Fatalf("candidate = %q, want the empty-artist record", candidates[0].Path)
	}
}

func TestArtistFilterSubstring(t *testing.T) {
	m := testMatcher(t, DefaultPolicy())
	index := []library.Track{
		libTrack(t, m, "/lib/a.flac", "The Rolling Stones", "Paint It Black", "", false),
	}

	candidates, _, _ := m.filterArtists("rolling stones", index)
	if len(candidates) != 1 {
		t.Fatal("expected substring artist match")
	}
}

func TestScoringExactMatchIsHundred(t *testing.T) {
	m := testMatcher(t, DefaultPolicy())
	track := libTrack(t, m, "/lib/creep.flac", "Radiohead", "Creep", "", false)

	qualified := m.scoreCandidates("radiohead", "creep", false, []library.Track{track})
	if len(qualified) != 1 {
		t.Fatalf("qualified = %d, want 1", len(qualified))
	}
	c := qualified[0]
	if c.AdjustedScore != 100.0 || c.PenaltyApplied {
		t.Fatalf("AdjustedScore = %.2f penalized = %v, want 100.0 and no penalty",
			c.AdjustedScore, c.PenaltyApplied)
	}
}

func TestScoringLivePenaltyArithmetic(t *testing.T) {
	m := testMatcher(t, Policy{Threshold: 60, LivePenaltyFactor: 0.75})
	track := library.Track{
		Path:         "/lib/x.flac",
		Artist:       "X",
		NormArtist:   "x",
		NormTitle:    "abcdefghiz",
		NormFilename: "zzz",
		IsLive:       true,
	}

	// One substitution over a 20-byte length sum gives a base of 90.
	qualified := m.scoreCandidates("x", "abcdefghij", false, []library.Track{track})
	if len(qualified) != 1 {
		t.Fatalf("qualified = %d, want 1", len(qualified))
	}
	c := qualified[0]
	if c.BaseScore != 90 {
		t.Fatalf("BaseScore = %d, want 90", c.BaseScore)
	}
	if !c.PenaltyApplied {
		t.Fatal("expected live penalty")
	}
	if math.Abs(c.OriginalScore-91.0) > 1e-9 {
		t.Fatalf("OriginalScore = %.4f, want 91.0", c.OriginalScore)
	}
	if math.Abs(c.AdjustedScore-68.25) > 1e-9 {
		t.Fatalf("AdjustedScore = %.4f, want 68.25", c.AdjustedScore)
	}
}

func TestThresholdBoundary(t *testing.T) {
	// Exact live match for a studio query: adjusted 100 * 0.75 = 75.
	m := testMatcher(t, Policy{Threshold: 75, LivePenaltyFactor: 0.75})
	index := []library.Track{
		libTrack(t, m, "/lib/creep-live.flac", "Radiohead", "Creep", "Live Album", true),
	}
	outcome := m.Resolve(Query{Artist: "Radiohead", Title: "Creep"}, index)
	if outcome.Decision != DecisionAutoMatch {
		t.Fatalf("score equal to threshold should qualify, got %q", outcome.Decision)
	}

	// One point above disqualifies it.
	m = testMatcher(t, Policy{Threshold: 76, LivePenaltyFactor: 0.75})
	index = []library.Track{
		libTrack(t, m, "/lib/creep-live.flac", "Radiohead", "Creep", "Live Album", true),
	}
	outcome = m.Resolve(Query{Artist: "Radiohead", Title: "Creep"}, index)
	if outcome.Decision != DecisionNoMatch {
		t.Fatalf("score below threshold should not qualify, got %q", outcome.Decision)
	}
}

func TestLiveTypePreferenceBeatsScore(t *testing.T) {
	m := testMatcher(t, DefaultPolicy())
	liveTrack := library.Track{
		Path:         "/lib/creep-live.flac",
		Artist:       "Radiohead",
		NormArtist:   "radiohead",
		NormTitle:    "creep liv",
		NormFilename: "x1",
		IsLive:       true,
	}
	studioTrack := library.Track{
		Path:         "/lib/creep.flac",
		Artist:       "Radiohead",
		NormArtist:   "radiohead",
		NormTitle:    "creep live",
		NormFilename: "x2",
		IsLive:       false,
	}

	// The query asks for a live version, so the lower-scoring live
	// record wins over the higher-scoring studio record.
	outcome := m.Resolve(Query{Artist: "Radiohead", Title: "Creep (Live)"},
		[]library.Track{studioTrack, liveTrack})
	if outcome.Decision != DecisionAutoMatch {
		t.Fatalf("Decision = %q", outcome.Decision)
	}
	if outcome.Match.Path != liveTrack.Path {
		t.Fatalf("Match = %q, want the live record", outcome.Match.Path)
	}
}

func TestMultipleQualifiedInteractive(t *testing.T) {
	policy := DefaultPolicy()
	policy.Interactive = true
	m := testMatcher(t, policy)
	index := []library.Track{
		libTrack(t, m, "/lib/creep-a.flac", "Radiohead", "Creep", "Pablo Honey", false),
		libTrack(t, m, "/lib/creep-b.flac", "Radiohead", "Creep", "Best Of", false),
	}

	outcome := m.Resolve(Query{Artist: "Radiohead", Title: "Creep"}, index)
	if outcome.Decision != DecisionMultipleQualified {
		t.Fatalf("Decision = %q, want multiple qualified", outcome.Decision)
	}
	if len(outcome.Candidates) != 2 {
		t.Fatalf("Candidates = %d, want 2", len(outcome.Candidates))
	}
	if len(outcome.ArtistCandidates) != 2 {
		t.Fatalf("ArtistCandidates = %d, want 2", len(outcome.ArtistCandidates))
	}
	for i := 1; i < len(outcome.Candidates); i++ {
		if outcome.Candidates[i-1].AdjustedScore < outcome.Candidates[i].AdjustedScore {
			t.Fatal("candidates not sorted by adjusted score descending")
		}
	}
}

func TestMultipleQualifiedNonInteractivePicksBest(t *testing.T) {
	m := testMatcher(t, DefaultPolicy())
	index := []library.Track{
		libTrack(t, m, "/lib/creep-a.flac", "Radiohead", "Creep", "Pablo Honey", false),
		libTrack(t, m, "/lib/creep-b.flac", "Radiohead", "Creep", "Best Of", false),
	}

	outcome := m.Resolve(Query{Artist: "Radiohead", Title: "Creep"}, index)
	if outcome.Decision != DecisionAutoMatch {
		t.Fatalf("Decision = %q, want auto match", outcome.Decision)
	}
}

func TestResolveToleratesEmptyInput(t *testing.T) {
	m := testMatcher(t, DefaultPolicy())
	outcome := m.Resolve(Query{}, nil)
	if outcome.Decision != DecisionNoMatch {
		t.Fatalf("Decision = %q, want no match for empty everything", outcome.Decision)
	}
}
