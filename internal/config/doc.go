// Package config loads, validates, and defaults mixtape configuration.
//
// Configuration comes from a TOML file (default ~/.config/mixtape/config.toml,
// falling back to ./mixtape.toml) layered over built-in defaults. Load expands
// ~ in every path field, normalizes values, and validates ranges before
// returning, so the rest of the program never sees an out-of-range threshold
// or an unexpanded path. Matching knobs (threshold, live penalty, keyword
// lists) are plain config values threaded explicitly into the matcher rather
// than package globals.
package config
