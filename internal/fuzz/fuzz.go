package fuzz

import (
	"math"
	"sort"
	"strings"

	"github.com/xrash/smetrics"
)

// Ratio returns a similarity score in [0, 100] between two strings.
// Insertions and deletions cost 1, substitutions cost 2, and the distance is
// normalized against the summed lengths.
func Ratio(a, b string) int {
	lensum := len(a) + len(b)
	if lensum == 0 {
		return 100
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return int(math.Round(float64(lensum-dist) / float64(lensum) * 100))
}

// TokenSetRatio scores two strings by their unique word sets: the shared
// tokens are compared against each side's full token set and the best of the
// three pairings wins. Word order and repeated tokens do not affect the
// result. Returns 0 when either string has no tokens.
func TokenSetRatio(a, b string) int {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			shared = append(shared, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range tokensB {
		if _, ok := tokensA[token]; !ok {
			onlyB = append(onlyB, token)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(shared, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	best := Ratio(sect, combinedA)
	if score := Ratio(sect, combinedB); score > best {
		best = score
	}
	if score := Ratio(combinedA, combinedB); score > best {
		best = score
	}
	return best
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
