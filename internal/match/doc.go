// Package match resolves "artist - title" queries against a scanned
// library index. Each query is filtered to artist candidates, scored on
// title similarity with an artist-confidence bonus and a live/studio
// penalty, then classified into an automatic match, a final non-match,
// or one of several ambiguous decisions the caller resolves externally.
package match
