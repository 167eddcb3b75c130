// Package services defines shared utilities consumed by the pipeline stages.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and split names for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (configuration, read, write, parse, shape mismatch) and map them to
//     process exit codes.
//
// Use these helpers when wiring new stage logic so failure reporting stays
// uniform across the pipeline.
package services
