package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	liveFormatPattern  = regexp.MustCompile(`\(\s*live\b[^)]*\)`)
	leadingArticle     = regexp.MustCompile(`^(?:the|a|an)\s+`)
	ampersandSeparator = regexp.MustCompile(`\s*&\s*`)
	slashSeparator     = regexp.MustCompile(`\s*/\s*`)
	andSeparator       = regexp.MustCompile(`\s+and\s+`)
	leadingTrackNumber = regexp.MustCompile(`^\s*\d{1,3}[\s.-]+\s*`)
	parenthesizedGroup = regexp.MustCompile(`\(([^)]*)\)`)
	liveParenContent   = regexp.MustCompile(`^live[\s\W]*$`)
	featParenContent   = regexp.MustCompile(`^(?:featuring|feat|ft|with)\.?\s*(.*)$`)
	diacriticFolder    = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
)

// Normalize canonicalizes s for fuzzy matching and reports whether the
// original text carries an explicit "(live)" marker. It is a pure function of
// its inputs, total over arbitrary text, and idempotent on its own output.
func Normalize(s string, strip *KeywordSet) (string, bool) {
	if s == "" {
		return "", false
	}

	// Live detection runs against the raw lowercased text so later steps
	// (which may strip parentheses) cannot mask the marker.
	lowered := strings.ToLower(s)
	isLiveFormat := liveFormatPattern.MatchString(lowered)

	folded, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		folded = s
	}
	out := strings.ToLower(folded)

	out = strings.TrimSpace(leadingArticle.ReplaceAllString(out, ""))

	out = ampersandSeparator.ReplaceAllString(out, " ")
	out = slashSeparator.ReplaceAllString(out, " ")
	out = andSeparator.ReplaceAllString(out, " ")

	out = strings.TrimSpace(leadingTrackNumber.ReplaceAllString(out, ""))

	out = parenthesizedGroup.ReplaceAllStringFunc(out, func(group string) string {
		content := strings.TrimSpace(group[1 : len(group)-1])
		return resolveParenthetical(content, strip)
	})

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " "), isLiveFormat
}

// resolveParenthetical decides what a "(...)" group contributes to the
// normalized form. A bare live marker survives as a token so downstream
// substring matching still sees it; feat credits keep the guest name; strip
// keywords and unknown content are treated as noise.
func resolveParenthetical(content string, strip *KeywordSet) string {
	if liveParenContent.MatchString(content) {
		return " live "
	}
	if m := featParenContent.FindStringSubmatch(content); m != nil {
		name := strings.TrimSpace(m[1])
		var b strings.Builder
		for _, r := range name {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
				b.WriteRune(r)
			}
		}
		cleaned := strings.Join(strings.Fields(b.String()), " ")
		return " feat " + cleaned + " "
	}
	if strip.Match(content) {
		// Configured suffix like "(remix)" or "(radio edit)".
		return ""
	}
	// Unknown parenthetical content defaults to noise.
	return ""
}

// AlbumIndicatesLive reports whether an album title signals a live recording,
// either through a configured live-album keyword in its normalized form or an
// explicit "(live)" marker in the raw title.
func AlbumIndicatesLive(albumTitle string, livePatterns, strip *KeywordSet) bool {
	if albumTitle == "" {
		return false
	}
	normalized, hasLiveFormat := Normalize(albumTitle, strip)
	if livePatterns.Match(normalized) {
		return true
	}
	return hasLiveFormat
}
