// Command mixtape matches "Artist - Title" lists against a local audio
// library and writes M3U playlists, with an optional AI suggestion mode
// and interactive resolution of ambiguous matches.
package main
