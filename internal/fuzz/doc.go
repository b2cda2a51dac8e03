// Package fuzz provides the string similarity scores used by track matching.
//
// Ratio is a Levenshtein ratio on a 0-100 scale with substitutions weighted
// twice, so transposed or partially rewritten titles degrade smoothly rather
// than falling off a cliff. TokenSetRatio compares unique word sets and is
// insensitive to word order and duplicated tokens, which makes it the right
// score for filename stems like "radiohead - creep - 01" against "creep".
package fuzz
