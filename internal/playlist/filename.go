package playlist

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"
)

const defaultExtension = ".m3u"

var (
	basenameToken    = regexp.MustCompile(`\{basename:?([culps_]*)\}`)
	nonAlnumRun      = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	separatorToSpace = regexp.MustCompile(`[-_.]+`)
	separatorToDash  = regexp.MustCompile(`[\s_.]+`)
	separatorToUnder = regexp.MustCompile(`[\s.-]+`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	dashRun          = regexp.MustCompile(`-+`)
	underscoreRun    = regexp.MustCompile(`_+`)
	invalidPathChars = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1F\x7F]`)
)

// FormatOutputName renders the playlist filename from a template. The
// template may contain {basename} with optional transform codes
// ({basename:cp} etc.) and the date tokens {YYYY} {YY} {MM} {DD} {hh}
// {mm} {ss}. Transform codes: p/s/_ rewrite word separators to space,
// dash, or underscore; c/u/l capitalize, uppercase, or lowercase. A
// missing extension defaults to .m3u, and a template that sanitizes down
// to nothing falls back to "<base>_<date>.m3u".
func FormatOutputName(template, rawBasename string, now time.Time) string {
	if template == "" {
		return fallbackName(rawBasename, now)
	}

	name := basenameToken.ReplaceAllStringFunc(template, func(token string) string {
		codes := basenameToken.FindStringSubmatch(token)[1]
		return transformBasename(rawBasename, codes)
	})

	replacements := [...][2]string{
		{"{YYYY}", now.Format("2006")},
		{"{YY}", now.Format("06")},
		{"{MM}", now.Format("01")},
		{"{DD}", now.Format("02")},
		{"{hh}", now.Format("15")},
		{"{mm}", now.Format("04")},
		{"{ss}", now.Format("05")},
	}
	for _, r := range replacements {
		name = strings.ReplaceAll(name, r[0], r[1])
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if strings.TrimSpace(ext) == "" || strings.TrimSpace(ext) == "." {
		ext = defaultExtension
	}

	stem = invalidPathChars.ReplaceAllString(stem, "_")
	stem = underscoreRun.ReplaceAllString(stem, "_")
	stem = strings.Trim(stem, "_. ")
	if stem == "" {
		return fallbackName(rawBasename, now)
	}
	return stem + ext
}

func fallbackName(rawBasename string, now time.Time) string {
	base := strings.Trim(nonAlnumRun.ReplaceAllString(rawBasename, "_"), "_")
	if base == "" {
		base = "playlist"
	}
	return base + "_" + now.Format("2006-01-02") + defaultExtension
}

// transformBasename applies the template's transform codes. Separator and
// case transforms are each applied at most once, in p/s/_ and c/u/l
// precedence order.
func transformBasename(base, codes string) string {
	name := base
	switch {
	case strings.ContainsRune(codes, 'p'):
		name = separatorToSpace.ReplaceAllString(name, " ")
		name = strings.TrimSpace(whitespaceRun.ReplaceAllString(name, " "))
	case strings.ContainsRune(codes, 's'):
		name = separatorToDash.ReplaceAllString(name, "-")
		name = strings.Trim(dashRun.ReplaceAllString(name, "-"), "-")
	case strings.ContainsRune(codes, '_'):
		name = separatorToUnder.ReplaceAllString(name, "_")
		name = strings.Trim(underscoreRun.ReplaceAllString(name, "_"), "_")
	}

	switch {
	case strings.ContainsRune(codes, 'c'):
		words := strings.Fields(name)
		for i, word := range words {
			words[i] = capitalize(word)
		}
		name = strings.Join(words, " ")
	case strings.ContainsRune(codes, 'u'):
		name = strings.ToUpper(name)
	case strings.ContainsRune(codes, 'l'):
		name = strings.ToLower(name)
	}
	return name
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
