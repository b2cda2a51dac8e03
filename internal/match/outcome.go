package match

import "mixtape/internal/library"

// Decision classifies how a query was resolved.
type Decision string

const (
	// DecisionAutoMatch means a single confident match was chosen
	// without user input.
	DecisionAutoMatch Decision = "auto_match"

	// DecisionNoMatch is final: nothing qualified and there is nothing
	// worth showing the user.
	DecisionNoMatch Decision = "no_match"

	// DecisionNoArtistMatch means no library record matched the query
	// artist at all.
	DecisionNoArtistMatch Decision = "no_artist_match"

	// DecisionAlbumSelectionPossible means the artist exists in the
	// library but no title qualified; the caller can offer album-level
	// browsing over the artist candidates.
	DecisionAlbumSelectionPossible Decision = "album_selection_possible"

	// DecisionBasicSkipRandom means no title qualified and there are no
	// artist candidates to browse; only skip or a random pick remain.
	DecisionBasicSkipRandom Decision = "basic_skip_random"

	// DecisionMultipleQualified means several candidates qualified and
	// the caller must choose.
	DecisionMultipleQualified Decision = "multiple_qualified"
)

// Final reports whether the decision needs no external choice.
func (d Decision) Final() bool {
	return d == DecisionAutoMatch || d == DecisionNoMatch
}

// Outcome is the result of resolving one query. Decision selects which
// payload fields are populated.
type Outcome struct {
	Decision Decision

	// Match is set for DecisionAutoMatch.
	Match library.Track

	// Candidates carries the qualified candidates sorted by adjusted
	// score descending, for DecisionMultipleQualified and
	// DecisionBasicSkipRandom.
	Candidates []ScoredCandidate

	// ArtistCandidates carries every record that passed artist
	// filtering, unsorted and not title-filtered, for album browsing
	// and random-pick fallbacks.
	ArtistCandidates []library.Track

	// ClosestArtist and ClosestArtistScore describe the best fuzzy
	// near-miss among rejected artists, for DecisionNoArtistMatch
	// diagnostics. ClosestArtist is a raw tag value.
	ClosestArtist      string
	ClosestArtistScore int
}
