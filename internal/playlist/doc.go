// Package playlist reads "Artist - Title" input lists and writes the
// resulting M3U playlist, the missing-tracks report, and an optional
// copy into an MPD playlist directory.
package playlist
