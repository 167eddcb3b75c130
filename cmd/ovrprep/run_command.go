package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"ovrprep/internal/config"
	"ovrprep/internal/logging"
	"ovrprep/internal/manifest"
	"ovrprep/internal/workflow"
)

type runFlags struct {
	dataFolder  string
	trainInput  string
	trainTarget string
	devInput    string
	devTarget   string
	testInput   string
	testTarget  string
	vocabFile   string
	minFreq     float64
	maxFreq     float64
	delimiter   string
	outputDir   string
	classes     []int
	classCount  int
	workers     int
	createDir   bool
	strictUTF8  bool
	dryRun      bool
	jsonOutput  bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the vocabulary and one-vs-rest label files",
		Long: `Load the train, dev and test splits, report sequence statistics, write the
frequency-trimmed vocabulary to the data folder, and expand the target labels
into one binary label file per class and split.

Flags override the configuration file. Underscore spellings such as
--data_folder and --min_freq are accepted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunOverrides(cmd, cfg, flags); err != nil {
				return err
			}
			return executeRun(cmd, cfg, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.dataFolder, "data-folder", "", "Directory holding the split files")
	f.StringVar(&flags.trainInput, "train-input-file", "", "Training input file name")
	f.StringVar(&flags.trainTarget, "train-target-file", "", "Training target file name")
	f.StringVar(&flags.devInput, "dev-input-file", "", "Validation input file name")
	f.StringVar(&flags.devTarget, "dev-target-file", "", "Validation target file name")
	f.StringVar(&flags.testInput, "test-input-file", "", "Test input file name")
	f.StringVar(&flags.testTarget, "test-target-file", "", "Test target file name")
	f.StringVar(&flags.vocabFile, "vocab-file", "", "Base name of the vocabulary file")
	f.Float64Var(&flags.minFreq, "min-freq", 0, "Fraction of distinct tokens dropped from the rare end")
	f.Float64Var(&flags.maxFreq, "max-freq", 0, "Fraction of distinct tokens dropped from the frequent end")
	f.StringVar(&flags.delimiter, "delimiter", "", "Token delimiter")
	f.StringVar(&flags.outputDir, "output-dir", "", "Directory for one-vs-rest label files")
	f.IntSliceVar(&flags.classes, "classes", nil, "Explicit class labels to expand")
	f.IntVar(&flags.classCount, "class-count", 0, "Expand classes 0..N-1")
	f.IntVar(&flags.workers, "workers", 0, "Concurrent label file writers")
	f.BoolVar(&flags.createDir, "create-output-dir", false, "Create the output directory when missing")
	f.BoolVar(&flags.strictUTF8, "strict-utf8", false, "Reject input files that are not valid UTF-8")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Run every stage without writing files")
	f.BoolVar(&flags.jsonOutput, "json", false, "Print the run report as JSON")

	return cmd
}

// applyRunOverrides copies explicitly set flags into cfg, then normalizes and
// validates the result for a run.
func applyRunOverrides(cmd *cobra.Command, cfg *config.Config, flags runFlags) error {
	f := cmd.Flags()
	setString := func(name string, dst *string, value string) {
		if f.Changed(name) {
			*dst = value
		}
	}
	setString("data-folder", &cfg.Data.Folder, flags.dataFolder)
	setString("train-input-file", &cfg.Data.TrainInput, flags.trainInput)
	setString("train-target-file", &cfg.Data.TrainTarget, flags.trainTarget)
	setString("dev-input-file", &cfg.Data.DevInput, flags.devInput)
	setString("dev-target-file", &cfg.Data.DevTarget, flags.devTarget)
	setString("test-input-file", &cfg.Data.TestInput, flags.testInput)
	setString("test-target-file", &cfg.Data.TestTarget, flags.testTarget)
	setString("vocab-file", &cfg.Vocab.File, flags.vocabFile)
	setString("delimiter", &cfg.Tokenizer.Delimiter, flags.delimiter)
	setString("output-dir", &cfg.OVR.OutputDir, flags.outputDir)

	if f.Changed("min-freq") {
		cfg.Vocab.MinFreq = flags.minFreq
	}
	if f.Changed("max-freq") {
		cfg.Vocab.MaxFreq = flags.maxFreq
	}
	if f.Changed("classes") {
		cfg.OVR.Classes = flags.classes
	}
	if f.Changed("class-count") {
		cfg.OVR.ClassCount = flags.classCount
	}
	if f.Changed("workers") {
		cfg.OVR.Workers = flags.workers
	}
	if f.Changed("create-output-dir") {
		cfg.OVR.CreateOutputDir = flags.createDir
	}
	if f.Changed("strict-utf8") {
		cfg.Data.StrictUTF8 = flags.strictUTF8
	}

	if err := cfg.Normalize(); err != nil {
		return err
	}
	return cfg.ValidateRun()
}

func executeRun(cmd *cobra.Command, cfg *config.Config, flags runFlags) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := newRunLogger(cmd, cfg)
	if err != nil {
		return err
	}

	opts := []workflow.ManagerOption{workflow.WithDryRun(flags.dryRun)}
	if cfg.Manifest.Enabled {
		store, err := manifest.Open(signalCtx, cfg.Manifest.Path)
		if err != nil {
			logger.Warn("run manifest unavailable", logging.String("path", cfg.Manifest.Path), logging.Error(err))
		} else {
			defer store.Close()
			opts = append(opts, workflow.WithManifest(store))
		}
	}

	result, runErr := workflow.NewManager(cfg, logger, opts...).Run(signalCtx)
	if result != nil {
		if flags.jsonOutput {
			if err := writeJSON(cmd.OutOrStdout(), newRunReport(result, runErr)); err != nil {
				return err
			}
		} else {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderRunReport(result, runErr, shouldColorize(out)))
		}
	}
	return runErr
}

// newRunLogger sends log records to stderr so stdout carries only the report.
func newRunLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	opts := logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	}
	if dir := strings.TrimSpace(cfg.Logging.Dir); dir != "" {
		opts.FilePath = filepath.Join(dir, logging.LogFileName)
	}
	logger, err := logging.New(opts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}
