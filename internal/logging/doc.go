// Package logging constructs the slog logger used across mixtape.
//
// Two output formats are supported: "console", a compact single-line format
// for interactive use, and "json" for machine consumption. When a log
// directory is configured, output is mirrored to mixtape.log there. Match
// decisions are logged at debug level so a normal run stays quiet while
// --log-level debug exposes every scoring step.
package logging
