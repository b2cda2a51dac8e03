// Package textnorm canonicalizes artist, title, album, and filename text for
// fuzzy comparison and detects explicit "(live)" markers.
//
// Normalize folds diacritics, lowercases, strips one leading article and any
// leading track number, collapses "&", "/", and the word "and" into spaces,
// and resolves parenthesized groups: "(live)" is kept as a bare live token,
// "(feat. X)" is kept as a feat token, and everything else - including
// configured strip keywords such as "remix" or "edit" - is removed as noise.
// The live-format flag is computed on the original lowercased text before any
// transformation, so canonicalization never hides a live marker.
//
// Normalized output is used only for matching and is never displayed.
package textnorm
