// Package manifest records completed runs in a SQLite ledger.
//
// Each run writes one row when it finishes, successful or not: the run id,
// timing, data folder, cutoffs, vocabulary size and path, the class set, the
// number of OVR files written, and the failure classification when the run
// aborted. The ledger is append-only; "ovrprep runs" lists it newest first.
//
// Schema changes bump schemaVersion in schema.go; older ledgers are rejected
// with ErrSchemaMismatch and must be deleted.
package manifest
