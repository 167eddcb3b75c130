package workflow_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"ovrprep/internal/manifest"
	"ovrprep/internal/ovr"
	"ovrprep/internal/services"
	"ovrprep/internal/testsupport"
	"ovrprep/internal/workflow"
)

func TestRunProducesVocabularyAndOVRFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.OVR.ClassCount = 32

	result, err := workflow.NewManager(cfg, nil, workflow.WithRunID("run-1")).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.RunID != "run-1" {
		t.Fatalf("unexpected run id %q", result.RunID)
	}

	vocabPath := filepath.Join(cfg.Data.Folder, "0.00.0vocab.txt")
	if got := testsupport.ReadFile(t, vocabPath); got != "c\na\nb" {
		t.Fatalf("unexpected vocabulary file %q", got)
	}
	if !result.Vocabulary.Written || result.Vocabulary.Path != vocabPath || result.Vocabulary.Size != 3 {
		t.Fatalf("unexpected vocabulary report: %+v", result.Vocabulary)
	}

	if n := testsupport.CountEntries(t, cfg.OVR.OutputDir); n != 96 {
		t.Fatalf("expected 96 ovr files, got %d", n)
	}
	if result.OVR.FilesWritten != 96 || result.OVR.FilesPlanned != 96 {
		t.Fatalf("unexpected ovr report: planned=%d written=%d", result.OVR.FilesPlanned, result.OVR.FilesWritten)
	}
	if got := testsupport.ReadFile(t, filepath.Join(cfg.OVR.OutputDir, "2_train_y.txt")); got != "0\n1\n0" {
		t.Fatalf("unexpected 2_train_y.txt %q", got)
	}
	if got := testsupport.ReadFile(t, filepath.Join(cfg.OVR.OutputDir, "2_dev_y.txt")); got != "1\n1" {
		t.Fatalf("unexpected 2_dev_y.txt %q", got)
	}
	if got := testsupport.ReadFile(t, filepath.Join(cfg.OVR.OutputDir, "31_test_y.txt")); got != "0" {
		t.Fatalf("unexpected 31_test_y.txt %q", got)
	}

	if _, err := os.Stat(filepath.Join(cfg.Data.Folder, workflow.LockFileName)); err != nil {
		t.Fatalf("expected lock file to remain after the run: %v", err)
	}
	if len(result.Stages) != 7 {
		t.Fatalf("expected 7 stage timings, got %d", len(result.Stages))
	}
}

func TestRunReportsSplitStatistics(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	result, err := workflow.NewManager(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Splits) != 3 {
		t.Fatalf("expected 3 splits, got %d", len(result.Splits))
	}
	train := result.Splits[0]
	if train.Name != "train" || train.Inputs != 3 || train.Targets != 3 {
		t.Fatalf("unexpected train report: %+v", train)
	}
	if math.Abs(train.Stats.Mean-3) > 1e-9 || train.Stats.Max != 4 || train.Stats.Min != 2 {
		t.Fatalf("unexpected train stats: %+v", train.Stats)
	}
}

func TestRunDerivesClassesFromTrainingTargets(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	result, err := workflow.NewManager(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	classes := result.OVR.Classes
	if classes.Source != ovr.ClassSourceObserved || len(classes.Classes) != 3 {
		t.Fatalf("unexpected class set: %+v", classes)
	}
	if n := testsupport.CountEntries(t, cfg.OVR.OutputDir); n != 9 {
		t.Fatalf("expected 9 ovr files, got %d", n)
	}
	for _, tally := range result.OVR.Tallies {
		sum := 0
		for _, n := range tally.Positives {
			sum += n
		}
		if sum != tally.Total || !tally.Covered() {
			t.Fatalf("split %s positives %d of %d", tally.Split, sum, tally.Total)
		}
	}
}

func TestRunLeavesNegativeLabelsOutOfDerivedClasses(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFile(testsupport.TrainTarget, "0\n-1\n1\n"))

	result, err := workflow.NewManager(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := result.OVR.Classes.Classes; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("unexpected classes: %v", got)
	}
	if result.OVR.Tallies[0].Split != "train" || result.OVR.Tallies[0].Unclassified != 1 {
		t.Fatalf("expected one unclassified train label, got %+v", result.OVR.Tallies[0])
	}
	entries, err := os.ReadDir(cfg.OVR.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("expected 6 ovr files, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Name()[0] == '-' {
			t.Fatalf("unexpected file for a negative class: %s", entry.Name())
		}
	}
	if got := testsupport.ReadFile(t, filepath.Join(cfg.OVR.OutputDir, "0_train_y.txt")); got != "1\n0\n0" {
		t.Fatalf("unexpected 0_train_y.txt %q", got)
	}
}

func TestRunAppliesCutoffsToFileName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Vocab.MaxFreq = 0.33

	if _, err := workflow.NewManager(cfg, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := testsupport.ReadFile(t, filepath.Join(cfg.Data.Folder, "0.330.0vocab.txt")); got != "c\na" {
		t.Fatalf("unexpected vocabulary %q", got)
	}
}

func TestDryRunWritesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	result, err := workflow.NewManager(cfg, nil, workflow.WithDryRun(true)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Vocabulary.Written {
		t.Fatal("dry run must not write vocabulary")
	}
	if _, err := os.Stat(result.Vocabulary.Path); !os.IsNotExist(err) {
		t.Fatalf("vocabulary file exists after dry run: %v", err)
	}
	if n := testsupport.CountEntries(t, cfg.OVR.OutputDir); n != 0 {
		t.Fatalf("expected no ovr files, got %d", n)
	}
	if result.OVR.FilesPlanned != 9 || result.OVR.FilesWritten != 0 {
		t.Fatalf("unexpected ovr report: %+v", result.OVR)
	}
}

func TestParseErrorAbortsBeforeOVRWrites(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFile(testsupport.TestTarget, "one"))

	_, err := workflow.NewManager(cfg, nil).Run(context.Background())
	if err == nil {
		t.Fatal("expected parse error")
	}
	var perr *ovr.ParseError
	if !errors.As(err, &perr) || perr.Split != "test" || perr.Index != 0 {
		t.Fatalf("expected test split parse error, got %v", err)
	}
	if services.ExitCode(err) != services.ExitParse {
		t.Fatalf("unexpected exit code %d", services.ExitCode(err))
	}
	if n := testsupport.CountEntries(t, cfg.OVR.OutputDir); n != 0 {
		t.Fatalf("expected no ovr files, got %d", n)
	}
	// Earlier stages are not rolled back.
	if _, err := os.Stat(filepath.Join(cfg.Data.Folder, "0.00.0vocab.txt")); err != nil {
		t.Fatalf("expected vocabulary to remain: %v", err)
	}
}

func TestShapeMismatchIsFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFile(testsupport.DevTarget, "2"))

	_, err := workflow.NewManager(cfg, nil).Run(context.Background())
	if !errors.Is(err, services.ErrShapeMismatch) {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
}

func TestEmptySplitIsFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithFile(testsupport.TestInput, ""),
		testsupport.WithFile(testsupport.TestTarget, ""),
	)

	_, err := workflow.NewManager(cfg, nil).Run(context.Background())
	if !errors.Is(err, services.ErrShapeMismatch) {
		t.Fatalf("expected empty split to fail, got %v", err)
	}
}

func TestMissingOutputDirIsWriteError(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutOutputDir())

	_, err := workflow.NewManager(cfg, nil).Run(context.Background())
	if services.ExitCode(err) != services.ExitWrite {
		t.Fatalf("expected write error, got %v", err)
	}

	cfg.OVR.CreateOutputDir = true
	if _, err := workflow.NewManager(cfg, nil).Run(context.Background()); err != nil {
		t.Fatalf("expected run to create output dir: %v", err)
	}
}

func TestMissingConfigIsConfigurationError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Data.TrainInput = ""

	_, err := workflow.NewManager(cfg, nil).Run(context.Background())
	if services.ExitCode(err) != services.ExitConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestConcurrentRunIsRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lock := flock.New(filepath.Join(cfg.Data.Folder, workflow.LockFileName))
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("failed to take lock: ok=%v err=%v", ok, err)
	}
	defer lock.Unlock()

	_, err = workflow.NewManager(cfg, nil).Run(context.Background())
	if !errors.Is(err, workflow.ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
}

func TestRunIsRecordedInManifest(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()
	store := testsupport.MustOpenManifest(t, cfg)

	if _, err := workflow.NewManager(cfg, nil, workflow.WithManifest(store), workflow.WithRunID("ok-run")).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	cfg.Data.TestTarget = "missing.txt"
	if _, err := workflow.NewManager(cfg, nil, workflow.WithManifest(store), workflow.WithRunID("bad-run")).Run(ctx); err == nil {
		t.Fatal("expected failure for missing target file")
	}

	good, err := store.Get(ctx, "ok-run")
	if err != nil || good == nil {
		t.Fatalf("expected recorded run, got %v %v", good, err)
	}
	if good.Status != manifest.StatusSucceeded || good.VocabSize != 3 || good.FilesWritten != 9 {
		t.Fatalf("unexpected run row: %+v", good)
	}
	bad, err := store.Get(ctx, "bad-run")
	if err != nil || bad == nil {
		t.Fatalf("expected failed run row, got %v %v", bad, err)
	}
	if bad.Status != manifest.StatusFailed || bad.ErrorKind != "io_read" {
		t.Fatalf("unexpected failed row: %+v", bad)
	}
}
