// Package library scans audio files into the in-memory index the matcher
// searches.
//
// Each Track carries the raw tag values plus normalized artist/title/filename
// forms computed at scan time, and a live flag derived from title, filename,
// and album heuristics. Tracks are immutable once the scan completes; the
// matcher only reads them.
//
// A persistent SQLite cache keyed by path + mtime makes rescans cheap: only
// new or modified files have their tags re-read. The cache also records a
// fingerprint of the normalization keywords so changing the strip-keyword
// configuration invalidates stale normalized forms instead of serving them.
package library
