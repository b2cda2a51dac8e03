package match

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"mixtape/internal/fuzz"
	"mixtape/internal/library"
	"mixtape/internal/textnorm"
)

// Query is one input line to resolve.
type Query struct {
	Artist string
	Title  string
}

// Matcher resolves queries against an immutable library index. It holds
// no per-query state and is safe for concurrent use once constructed.
type Matcher struct {
	policy Policy
	strip  *textnorm.KeywordSet
	logger *slog.Logger
}

// NewMatcher constructs a matcher. A nil strip keyword set or an invalid
// policy is a configuration error, not a per-query failure.
func NewMatcher(policy Policy, strip *textnorm.KeywordSet, logger *slog.Logger) (*Matcher, error) {
	if strip == nil {
		return nil, fmt.Errorf("matcher requires a compiled strip keyword set")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matching policy: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{policy: policy, strip: strip, logger: logger}, nil
}

// Resolve classifies one query into exactly one outcome. Malformed input
// degrades to low scores; it never fails.
func (m *Matcher) Resolve(query Query, index []library.Track) Outcome {
	normArtist, artistLive := textnorm.Normalize(query.Artist, m.strip)
	normTitle, titleLive := textnorm.Normalize(query.Title, m.strip)
	queryIsLive := artistLive || titleLive

	artistCandidates, closestArtist, closestScore := m.filterArtists(normArtist, index)
	if len(artistCandidates) == 0 {
		m.logger.Debug("no artist candidates",
			"artist", query.Artist,
			"closest", closestArtist,
			"closest_score", closestScore)
		if !m.policy.Interactive {
			return Outcome{Decision: DecisionNoMatch}
		}
		return Outcome{
			Decision:           DecisionNoArtistMatch,
			ClosestArtist:      closestArtist,
			ClosestArtistScore: closestScore,
		}
	}

	qualified := m.scoreCandidates(normArtist, normTitle, queryIsLive, artistCandidates)
	if len(qualified) == 0 {
		if !m.policy.Interactive {
			return Outcome{Decision: DecisionNoMatch}
		}
		return Outcome{
			Decision:         DecisionAlbumSelectionPossible,
			ArtistCandidates: artistCandidates,
		}
	}

	if len(qualified) == 1 || !m.policy.Interactive {
		best := pickPreferred(qualified, queryIsLive)
		m.logger.Debug("auto match",
			"artist", query.Artist,
			"title", query.Title,
			"path", best.Track.Path,
			"score", best.AdjustedScore,
			"penalized", best.PenaltyApplied)
		return Outcome{Decision: DecisionAutoMatch, Match: best.Track}
	}

	return Outcome{
		Decision:         DecisionMultipleQualified,
		Candidates:       qualified,
		ArtistCandidates: artistCandidates,
	}
}

// filterArtists selects the records compatible with the normalized query
// artist. An empty query artist only matches records whose artist is also
// empty. Among rejected records it tracks the best fuzzy near-miss for
// diagnostics.
func (m *Matcher) filterArtists(normArtist string, index []library.Track) ([]library.Track, string, int) {
	var candidates []library.Track
	var closestArtist string
	closestScore := -1

	for _, track := range index {
		matches := false
		if normArtist == "" {
			matches = track.NormArtist == ""
		} else {
			matches = strings.Contains(track.NormArtist, normArtist)
		}
		if matches {
			candidates = append(candidates, track)
			continue
		}
		if score := fuzz.Ratio(normArtist, track.NormArtist); score > closestScore {
			closestScore = score
			closestArtist = track.Artist
		}
	}
	if closestScore < 0 {
		closestScore = 0
	}
	return candidates, closestArtist, closestScore
}

// scoreCandidates computes scores over the artist candidates and returns
// the qualified ones sorted by adjusted score descending.
func (m *Matcher) scoreCandidates(normArtist, normTitle string, queryIsLive bool, candidates []library.Track) []ScoredCandidate {
	cut := m.policy.Threshold - qualifySlack
	var qualified []ScoredCandidate

	for _, track := range candidates {
		base := baseScore(normTitle, track)
		if base < cut {
			continue
		}

		bonus := exactArtistBonus
		if normArtist != track.NormArtist {
			bonus = float64(fuzz.Ratio(normArtist, track.NormArtist)) / 100 * artistBonusMultiplier
		}
		adjusted := float64(base) + bonus
		if adjusted > maxScore {
			adjusted = maxScore
		}

		candidate := ScoredCandidate{
			Track:         track,
			BaseScore:     base,
			AdjustedScore: adjusted,
			OriginalScore: adjusted,
		}
		// Penalize live recordings the query did not ask for. A studio
		// candidate for a live query is left alone.
		if !queryIsLive && track.IsLive {
			candidate.AdjustedScore *= m.policy.LivePenaltyFactor
			candidate.PenaltyApplied = true
		}

		if candidate.AdjustedScore >= float64(m.policy.Threshold) {
			qualified = append(qualified, candidate)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].AdjustedScore != qualified[j].AdjustedScore {
			return qualified[i].AdjustedScore > qualified[j].AdjustedScore
		}
		return qualified[i].Track.Path < qualified[j].Track.Path
	})
	return qualified
}

// baseScore is the title similarity for one record: the better of the
// tag-title ratio and a token-set ratio against the filename stem. The
// filename fallback covers libraries with accurate names but bad tags. A
// record with no title at all relies on the filename alone.
func baseScore(normTitle string, track library.Track) int {
	best := -1
	if track.NormTitle != "" {
		best = fuzz.Ratio(normTitle, track.NormTitle)
	}
	if stem := fuzz.TokenSetRatio(normTitle, track.NormFilename); stem > best {
		best = stem
	}
	return best
}

// pickPreferred applies the live-type preference rule: among qualified
// candidates, the highest-scoring one whose live flag agrees with the
// query wins, even over a higher-scoring candidate of the other type.
// Candidates must already be sorted by adjusted score descending.
func pickPreferred(qualified []ScoredCandidate, queryIsLive bool) ScoredCandidate {
	for _, candidate := range qualified {
		if candidate.Track.IsLive == queryIsLive {
			return candidate
		}
	}
	return qualified[0]
}
