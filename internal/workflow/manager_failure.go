package workflow

import (
	"context"
	"errors"
	"strings"

	"ovrprep/internal/logging"
	"ovrprep/internal/manifest"
	"ovrprep/internal/services"
)

func (m *Manager) logRunFailure(ctx context.Context, runErr error) {
	logger := logging.WithContext(ctx, m.logger)
	if errors.Is(runErr, context.Canceled) {
		logger.Warn("run interrupted", logging.Event("run_interrupted"))
		return
	}
	logger.Error("run failed",
		logging.Event("run_failure"),
		logging.ErrorKind(runErr),
		logging.Error(runErr),
	)
}

// recordRun writes the ledger row. Ledger failures are logged, never returned,
// so they cannot mask the run outcome.
func (m *Manager) recordRun(ctx context.Context, result *Result, runErr error) {
	if m.store == nil || result == nil {
		return
	}
	run := manifest.Run{
		ID:           result.RunID,
		StartedAt:    result.StartedAt,
		FinishedAt:   result.FinishedAt,
		Status:       manifest.StatusSucceeded,
		DryRun:       result.DryRun,
		DataFolder:   result.DataFolder,
		MinFreq:      m.cfg.Vocab.MinFreq,
		MaxFreq:      m.cfg.Vocab.MaxFreq,
		VocabSize:    result.Vocabulary.Size,
		Classes:      result.OVR.Classes.Classes,
		FilesWritten: result.OVR.FilesWritten,
	}
	if result.Vocabulary.Written {
		run.VocabPath = result.Vocabulary.Path
	}
	if runErr != nil {
		run.Status = manifest.StatusFailed
		run.ErrorKind = services.Kind(runErr)
		run.ErrorMessage = strings.TrimSpace(runErr.Error())
	}
	if err := m.store.Record(context.WithoutCancel(ctx), run); err != nil {
		m.logger.Warn("failed to record run in manifest",
			logging.String("manifest", m.store.Path()),
			logging.Error(err),
		)
	}
}
