package manifest

import "time"

// Status describes how a run ended.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one ledger row.
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Status       Status    `json:"status"`
	DryRun       bool      `json:"dry_run"`
	DataFolder   string    `json:"data_folder"`
	MinFreq      float64   `json:"min_freq"`
	MaxFreq      float64   `json:"max_freq"`
	VocabSize    int       `json:"vocab_size"`
	VocabPath    string    `json:"vocab_path,omitempty"`
	Classes      []int     `json:"classes,omitempty"`
	FilesWritten int       `json:"files_written"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Duration returns the wall time of the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
