package match

import "mixtape/internal/library"

// ScoredCandidate is a library record evaluated against one query. It is
// a transient view: computed fresh per query, never written back to the
// index.
type ScoredCandidate struct {
	Track library.Track

	// BaseScore is the raw title similarity on a 0-100 scale, before
	// bonus and penalty.
	BaseScore int

	// AdjustedScore is the base score plus the artist bonus, capped at
	// 100, then multiplied by the live penalty when it applies.
	AdjustedScore float64

	// OriginalScore is the adjusted score before any live penalty, kept
	// for display.
	OriginalScore float64

	// PenaltyApplied records whether the live penalty was taken.
	PenaltyApplied bool
}
