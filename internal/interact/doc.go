// Package interact resolves ambiguous match outcomes through a
// caller-supplied prompter. The decision flow is an explicit state
// machine (candidate list, album list, tracks within an album) so the
// prompting medium stays decoupled from the transition logic.
package interact
