package workflow

import (
	"context"
	"time"

	"ovrprep/internal/dataset"
	"ovrprep/internal/ovr"
	"ovrprep/internal/seqstats"
	"ovrprep/internal/vocab"
)

// Stage names in execution order.
const (
	StagePreflight    = "preflight"
	StageLoad         = "load"
	StageTokenize     = "tokenize"
	StageStatistics   = "statistics"
	StageVocabulary   = "vocabulary"
	StageVocabPersist = "vocabulary-persist"
	StageOVRExpand    = "ovr-expand"
)

type pipelineStage struct {
	name string
	exec func(ctx context.Context, state *runState) error
}

// runState carries intermediate products between stages.
type runState struct {
	data      *dataset.Dataset
	tokens    map[string][][]string
	vocab     vocab.Vocabulary
	vocabPath string
	classes   ovr.ClassSet
	result    *Result
}

// Result summarizes a run for reporting.
type Result struct {
	RunID      string        `json:"run_id"`
	DryRun     bool          `json:"dry_run"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	DataFolder string        `json:"data_folder"`
	Splits     []SplitReport `json:"splits"`
	Vocabulary VocabReport   `json:"vocabulary"`
	OVR        OVRReport     `json:"ovr"`
	Stages     []StageTiming `json:"stages"`
}

// Duration returns the wall time of the run.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SplitReport describes one loaded split.
type SplitReport struct {
	Name    string         `json:"name"`
	Inputs  int            `json:"inputs"`
	Targets int            `json:"targets"`
	Stats   seqstats.Stats `json:"stats"`
}

// VocabReport describes the built vocabulary.
type VocabReport struct {
	vocab.Vocabulary
	Size    int    `json:"size"`
	Path    string `json:"path"`
	Written bool   `json:"written"`
}

// OVRReport describes the label expansion.
type OVRReport struct {
	OutputDir    string           `json:"output_dir"`
	Classes      ovr.ClassSet     `json:"class_set"`
	Tallies      []ovr.SplitTally `json:"tallies"`
	FilesPlanned int              `json:"files_planned"`
	FilesWritten int              `json:"files_written"`
}

// StageTiming records how long a stage took.
type StageTiming struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

func (r *Result) split(name string) *SplitReport {
	for i := range r.Splits {
		if r.Splits[i].Name == name {
			return &r.Splits[i]
		}
	}
	r.Splits = append(r.Splits, SplitReport{Name: name})
	return &r.Splits[len(r.Splits)-1]
}
