package workflow

import (
	"context"
	"time"

	"ovrprep/internal/logging"
	"ovrprep/internal/services"
)

func (m *Manager) stages() []pipelineStage {
	return []pipelineStage{
		{name: StagePreflight, exec: m.preflight},
		{name: StageLoad, exec: m.load},
		{name: StageTokenize, exec: m.tokenize},
		{name: StageStatistics, exec: m.statistics},
		{name: StageVocabulary, exec: m.buildVocabulary},
		{name: StageVocabPersist, exec: m.persistVocabulary},
		{name: StageOVRExpand, exec: m.expandOVR},
	}
}

func (m *Manager) executeStage(ctx context.Context, stage pipelineStage, state *runState) error {
	stageCtx := services.WithStage(ctx, stage.name)
	stageLogger := logging.WithContext(stageCtx, m.logger)

	stageStart := time.Now()
	stageLogger.Info("stage started", logging.Event("stage_start"))

	if err := stage.exec(stageCtx, state); err != nil {
		stageLogger.Error("stage failed",
			logging.Event("stage_failure"),
			logging.ErrorKind(err),
			logging.Error(err),
			logging.Duration("stage_duration", time.Since(stageStart)),
		)
		return err
	}

	elapsed := time.Since(stageStart)
	state.result.Stages = append(state.result.Stages, StageTiming{Name: stage.name, Duration: elapsed})
	stageLogger.Info("stage completed",
		logging.Event("stage_complete"),
		logging.Duration("stage_duration", elapsed),
	)
	return nil
}
