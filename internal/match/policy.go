package match

import "fmt"

// Tunable scoring constants. The slack and bonus values are empirically
// chosen; change them together with the threshold defaults, not in
// isolation.
const (
	// qualifySlack widens the base-score cut below the acceptance
	// threshold so a candidate can still qualify once the artist bonus
	// is added.
	qualifySlack = 15

	// artistBonusMultiplier scales the fuzzy artist ratio into a bonus
	// of at most half a point on the 0-100 scale. An exact artist match
	// earns a full point instead.
	artistBonusMultiplier = 0.5
	exactArtistBonus      = 1.0

	maxScore = 100.0
)

// Policy holds the per-run matching configuration.
type Policy struct {
	// Threshold is the minimum adjusted score for a candidate to
	// qualify, inclusive, on a 0-100 scale.
	Threshold int

	// LivePenaltyFactor multiplies the score of a live candidate when
	// the query did not ask for a live version. Lower is harsher.
	LivePenaltyFactor float64

	// Interactive selects whether ambiguity is surfaced to the caller
	// or resolved deterministically.
	Interactive bool
}

// DefaultPolicy returns the stock matching policy.
func DefaultPolicy() Policy {
	return Policy{
		Threshold:         75,
		LivePenaltyFactor: 0.75,
	}
}

// Validate rejects out-of-range policy values.
func (p Policy) Validate() error {
	if p.Threshold < 0 || p.Threshold > 100 {
		return fmt.Errorf("threshold %d outside [0, 100]", p.Threshold)
	}
	if p.LivePenaltyFactor < 0 || p.LivePenaltyFactor > 1 {
		return fmt.Errorf("live penalty factor %.2f outside [0.0, 1.0]", p.LivePenaltyFactor)
	}
	return nil
}
