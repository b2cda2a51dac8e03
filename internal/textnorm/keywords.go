package textnorm

import (
	"fmt"
	"regexp"
	"strings"
)

// KeywordSet is a compiled, case-insensitive keyword matcher threaded through
// Normalize and AlbumIndicatesLive instead of living as package state.
type KeywordSet struct {
	re *regexp.Regexp
}

// CompileStripKeywords builds a KeywordSet from plain parenthetical strip
// keywords ("remix", "radio edit", ...). Each keyword must match as a whole
// word inside parenthesized content. An empty list yields a set that matches
// nothing.
func CompileStripKeywords(keywords []string) (*KeywordSet, error) {
	if len(keywords) == 0 {
		return &KeywordSet{}, nil
	}
	parts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		parts = append(parts, `(?:\W|^)`+regexp.QuoteMeta(strings.ToLower(kw))+`(?:\W|$)`)
	}
	if len(parts) == 0 {
		return &KeywordSet{}, nil
	}
	re, err := regexp.Compile(`(?i)` + strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile strip keywords: %w", err)
	}
	return &KeywordSet{re: re}, nil
}

// CompileLivePatterns builds a KeywordSet from live-album regex patterns
// (`\blive\b`, "live at", "peel session[s]?", ...). Patterns are alternated
// verbatim, so callers control word-boundary behavior.
func CompileLivePatterns(patterns []string) (*KeywordSet, error) {
	if len(patterns) == 0 {
		return &KeywordSet{}, nil
	}
	re, err := regexp.Compile(`(?i)(` + strings.Join(patterns, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile live album patterns: %w", err)
	}
	return &KeywordSet{re: re}, nil
}

// Match reports whether s contains any keyword in the set.
func (k *KeywordSet) Match(s string) bool {
	if k == nil || k.re == nil {
		return false
	}
	return k.re.MatchString(s)
}
