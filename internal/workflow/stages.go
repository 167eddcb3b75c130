package workflow

import (
	"context"
	"errors"
	"fmt"

	"ovrprep/internal/config"
	"ovrprep/internal/dataset"
	"ovrprep/internal/fileutil"
	"ovrprep/internal/logging"
	"ovrprep/internal/ovr"
	"ovrprep/internal/preflight"
	"ovrprep/internal/seqstats"
	"ovrprep/internal/services"
	"ovrprep/internal/tokenize"
	"ovrprep/internal/vocab"
)

func (m *Manager) preflight(ctx context.Context, _ *runState) error {
	if !m.dryRun {
		if err := preflight.EnsureOutputDir(m.cfg); err != nil {
			return err
		}
	}
	results := preflight.RunAll(m.cfg, m.dryRun)
	logger := logging.WithContext(ctx, m.logger)
	for _, r := range results {
		logger.Debug("preflight check",
			logging.String("check", r.Name),
			logging.Bool("passed", r.Passed),
			logging.String("detail", r.Detail),
		)
	}
	return preflight.Err(results)
}

func (m *Manager) load(ctx context.Context, state *runState) error {
	data, err := dataset.Load(m.cfg.Data.Folder, m.cfg.SplitFiles(), fileutil.ReadOptions{StrictUTF8: m.cfg.Data.StrictUTF8})
	if err != nil {
		return err
	}
	state.data = data

	logger := logging.WithContext(ctx, m.logger)
	for _, split := range data.Splits {
		report := state.result.split(split.Name)
		report.Inputs = len(split.Inputs)
		report.Targets = len(split.Targets)
		logger.Info("split loaded",
			logging.Split(split.Name),
			logging.Int("inputs", report.Inputs),
			logging.Int("targets", report.Targets),
		)
	}
	return data.CheckShape()
}

func (m *Manager) tokenize(_ context.Context, state *runState) error {
	for _, split := range state.data.Splits {
		state.tokens[split.Name] = tokenize.Tokenize(split.Inputs, m.cfg.Tokenizer.Delimiter)
	}
	return nil
}

func (m *Manager) statistics(ctx context.Context, state *runState) error {
	for _, split := range state.data.Splits {
		splitCtx := services.WithSplit(ctx, split.Name)
		stats, err := seqstats.Compute(state.tokens[split.Name])
		if err != nil {
			if errors.Is(err, seqstats.ErrEmptyCorpus) {
				return services.Wrap(services.ErrShapeMismatch, StageStatistics, split.Name, "split has no records", err)
			}
			return services.Wrap(nil, StageStatistics, split.Name, "", err)
		}
		state.result.split(split.Name).Stats = stats
		logging.WithContext(splitCtx, m.logger).Info(
			fmt.Sprintf("avg_seq_length = %.3f, max seq length = %d, min seq length = %d", stats.Mean, stats.Max, stats.Min),
			logging.Float64("std_seq_length", stats.StdDev),
		)
	}
	return nil
}

func (m *Manager) buildVocabulary(ctx context.Context, state *runState) error {
	cutoffs := vocab.Cutoffs{MinFreq: m.cfg.Vocab.MinFreq, MaxFreq: m.cfg.Vocab.MaxFreq}
	v, err := vocab.Build(state.tokens[config.SplitTrain], cutoffs)
	if err != nil {
		return err
	}
	state.vocab = v
	state.vocabPath = fileutil.JoinUnder(m.cfg.Data.Folder, vocab.FileName(cutoffs, m.cfg.Vocab.File))
	state.result.Vocabulary = VocabReport{Vocabulary: v, Size: v.Size(), Path: state.vocabPath}

	logger := logging.WithContext(ctx, m.logger)
	logger.Info("vocabulary built",
		logging.Int("vocab_size", v.Size()),
		logging.Int("distinct_tokens", v.Distinct),
		logging.Int("dropped_rare", v.DroppedRare),
		logging.Int("dropped_frequent", v.DroppedFrequent),
		logging.Float64("coverage", v.Coverage()),
	)
	if v.Size() == 0 {
		logger.Warn("vocabulary is empty after trimming",
			logging.Float64("min_freq", cutoffs.MinFreq),
			logging.Float64("max_freq", cutoffs.MaxFreq),
		)
	}
	return nil
}

func (m *Manager) persistVocabulary(ctx context.Context, state *runState) error {
	logger := logging.WithContext(ctx, m.logger)
	if m.dryRun {
		logger.Info("dry run: vocabulary not written", logging.String("path", state.vocabPath))
		return nil
	}
	if err := vocab.Save(state.vocabPath, state.vocab, fileutil.WriteOptions{Atomic: true}); err != nil {
		return err
	}
	state.result.Vocabulary.Written = true
	logger.Info("vocabulary written", logging.String("path", state.vocabPath))
	return nil
}

func (m *Manager) expandOVR(ctx context.Context, state *runState) error {
	logger := logging.WithContext(ctx, m.logger)

	// Parse every split before writing anything so a bad label leaves no OVR files behind.
	sources := make([]*ovr.Source, 0, len(state.data.Splits))
	for _, split := range state.data.Splits {
		labels, err := ovr.Parse(split.Name, split.Targets)
		if err != nil {
			return err
		}
		sources = append(sources, &ovr.Source{Split: split.Name, TargetFilename: split.TargetFile, Labels: labels})
	}

	var observed []int
	for _, src := range sources {
		if src.Split == config.SplitTrain {
			observed = src.Labels
		}
	}
	classes := ovr.ResolveClasses(m.cfg.OVR.Classes, m.cfg.OVR.ClassCount, observed)
	state.classes = classes

	report := &state.result.OVR
	report.OutputDir = m.cfg.OVR.OutputDir
	report.Classes = classes
	for _, src := range sources {
		tally := ovr.Count(src.Split, src.Labels, classes)
		report.Tallies = append(report.Tallies, tally)
		if !tally.Covered() {
			logger.Warn("labels outside the class set",
				logging.Split(src.Split),
				logging.Int("unclassified", tally.Unclassified),
				logging.Int("records", tally.Total),
			)
		}
	}

	jobs := ovr.Plan(m.cfg.OVR.OutputDir, classes, sources)
	report.FilesPlanned = len(jobs)
	logger.Info("ovr expansion planned",
		logging.Int("classes", classes.Len()),
		logging.String("class_source", string(classes.Source)),
		logging.Int("files", len(jobs)),
	)
	if classes.Len() == 0 {
		logger.Warn("class set is empty; no ovr files produced")
	}
	if m.dryRun {
		logger.Info("dry run: ovr files not written", logging.String("output_dir", m.cfg.OVR.OutputDir))
		return nil
	}

	writer := ovr.NewWriter(m.cfg.OVR.Workers, fileutil.WriteOptions{Atomic: true}, logger)
	written, err := writer.WriteAll(ctx, jobs)
	report.FilesWritten = written
	if err != nil {
		return err
	}
	logger.Info("ovr files written",
		logging.Int("files", written),
		logging.String("output_dir", m.cfg.OVR.OutputDir),
	)
	return nil
}
