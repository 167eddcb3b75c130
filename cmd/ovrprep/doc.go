// Package main hosts the ovrprep CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, applies flag overrides,
// and hands a run to the workflow manager, then renders the result as tables
// or JSON. It also scaffolds and validates configuration files and lists the
// run manifest.
//
// Keep this package lean: pipeline behavior lives in the internal packages and
// is surfaced here through commands and flags.
package main
