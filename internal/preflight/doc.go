// Package preflight provides readiness checks for the filesystem paths a run
// depends on.
//
// The workflow manager calls RunAll before loading any data and aborts the run
// when a check fails, so a missing split file or read-only output directory is
// reported before work starts. The CLI "config validate" command runs the same
// checks to display path health.
package preflight
