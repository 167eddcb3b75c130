package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"ovrprep/internal/logging"
	"ovrprep/internal/services"
)

// LockFileName is the lock file in the data folder. It is left in place after a
// run so every run locks the same inode.
const LockFileName = ".ovrprep.lock"

// ErrRunInProgress reports that another run holds the data folder lock.
var ErrRunInProgress = errors.New("another ovrprep run is using this data folder")

// Run executes the pipeline. The returned Result is populated up to the
// failing stage when err is non-nil.
func (m *Manager) Run(ctx context.Context) (*Result, error) {
	if m.cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "run", "config is nil", nil)
	}
	if err := m.cfg.ValidateRun(); err != nil {
		return nil, err
	}

	runID := m.newID()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, m.logger)

	state := &runState{
		tokens: make(map[string][][]string, 3),
		result: &Result{
			RunID:      runID,
			DryRun:     m.dryRun,
			StartedAt:  m.now(),
			DataFolder: m.cfg.Data.Folder,
		},
	}

	logger.Info("run started",
		logging.Event("run_start"),
		logging.String("data_folder", m.cfg.Data.Folder),
		logging.Bool("dry_run", m.dryRun),
	)

	var runErr error
	unlock, err := m.acquireLock()
	if err != nil {
		runErr = err
	} else {
		runErr = m.runStages(ctx, state)
		unlock()
	}

	state.result.FinishedAt = m.now()
	m.recordRun(ctx, state.result, runErr)

	if runErr != nil {
		m.logRunFailure(ctx, runErr)
		return state.result, runErr
	}
	logger.Info("run completed",
		logging.Event("run_complete"),
		logging.Int("vocab_size", state.result.Vocabulary.Size),
		logging.Int("ovr_files_written", state.result.OVR.FilesWritten),
		logging.Duration("run_duration", state.result.Duration()),
	)
	return state.result, nil
}

func (m *Manager) runStages(ctx context.Context, state *runState) error {
	for _, stage := range m.stages() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.executeStage(ctx, stage, state); err != nil {
			return err
		}
	}
	return nil
}

// acquireLock takes the data folder lock for runs that write files.
func (m *Manager) acquireLock() (func(), error) {
	if m.dryRun {
		return func() {}, nil
	}
	lockPath := filepath.Join(m.cfg.Data.Folder, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrWrite, "workflow", "acquire lock", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrRunInProgress, lockPath)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			m.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}, nil
}
