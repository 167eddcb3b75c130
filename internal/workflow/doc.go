// Package workflow runs the data preparation pipeline end to end.
//
// The Manager executes a fixed, linear list of stages: preflight, load,
// tokenize, statistics, vocabulary, vocabulary-persist, and ovr-expand. Each
// stage is logged with stage_start and stage_complete events and its duration.
// The first failing stage aborts the run; files written by earlier stages stay
// on disk.
//
// Runs are stamped with a uuid run id, guarded by a lock file in the data
// folder so two runs cannot write the same outputs, and optionally recorded in
// the manifest ledger. A dry run executes every stage but skips the persist
// steps and the lock.
package workflow
