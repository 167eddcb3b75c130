package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ovrprep/internal/config"
	"ovrprep/internal/services"
)

func TestLoadDefaultConfigUsesEnvAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	dataDir := filepath.Join(tempHome, "data")
	t.Setenv("OVRPREP_DATA_FOLDER", dataDir)
	t.Setenv("OVRPREP_OUTPUT_DIR", "")
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Data.Folder != dataDir {
		t.Fatalf("unexpected data folder: got %q want %q", cfg.Data.Folder, dataDir)
	}
	if cfg.Tokenizer.Delimiter != " " {
		t.Fatalf("expected single space delimiter, got %q", cfg.Tokenizer.Delimiter)
	}
	if cfg.Vocab.MinFreq != 0 || cfg.Vocab.MaxFreq != 0 {
		t.Fatalf("expected zero cutoffs, got %v/%v", cfg.Vocab.MinFreq, cfg.Vocab.MaxFreq)
	}
	if cfg.OVR.OutputDir != filepath.Join(tempHome, "ovr_targets") {
		t.Fatalf("unexpected output dir: %q", cfg.OVR.OutputDir)
	}
	if cfg.OVR.Workers != config.Default().OVR.Workers {
		t.Fatalf("unexpected workers: %d", cfg.OVR.Workers)
	}
	wantManifest := filepath.Join(tempHome, ".local", "share", "ovrprep", "runs.db")
	if cfg.Manifest.Path != wantManifest {
		t.Fatalf("unexpected manifest path: got %q want %q", cfg.Manifest.Path, wantManifest)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "ovrprep.toml")

	type payload struct {
		Data struct {
			Folder      string `toml:"folder"`
			TrainInput  string `toml:"train_input"`
			TrainTarget string `toml:"train_target"`
		} `toml:"data"`
		Vocab struct {
			MinFreq float64 `toml:"min_freq"`
			MaxFreq float64 `toml:"max_freq"`
		} `toml:"vocab"`
		OVR struct {
			Classes []int `toml:"classes"`
		} `toml:"ovr"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Data.Folder = filepath.Join(tempDir, "corpus")
	custom.Data.TrainInput = "  train.in "
	custom.Data.TrainTarget = "train.tgt"
	custom.Vocab.MinFreq = 0.1
	custom.Vocab.MaxFreq = 0.25
	custom.OVR.Classes = []int{3, 1, 2}
	custom.Logging.Format = "JSON"

	encoded, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Data.TrainInput != "train.in" {
		t.Fatalf("expected trimmed train input, got %q", cfg.Data.TrainInput)
	}
	if cfg.Vocab.MinFreq != 0.1 || cfg.Vocab.MaxFreq != 0.25 {
		t.Fatalf("unexpected cutoffs: %v/%v", cfg.Vocab.MinFreq, cfg.Vocab.MaxFreq)
	}
	if len(cfg.OVR.Classes) != 3 || cfg.OVR.Classes[0] != 3 {
		t.Fatalf("unexpected classes: %v", cfg.OVR.Classes)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[vocab\nmin_freq = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateCutoffRange(t *testing.T) {
	cases := []struct {
		name    string
		min     float64
		max     float64
		wantErr string
	}{
		{name: "defaults", min: 0, max: 0},
		{name: "bounds", min: 1, max: 1},
		{name: "negative min", min: -0.1, wantErr: "vocab.min_freq"},
		{name: "max above one", max: 1.5, wantErr: "vocab.max_freq"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Vocab.MinFreq = tc.min
			cfg.Vocab.MaxFreq = tc.max
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
		})
	}
}

func TestValidateOVRClasses(t *testing.T) {
	cfg := config.Default()
	cfg.OVR.Classes = []int{0, 1, 1}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "more than once") {
		t.Fatalf("expected duplicate class error, got %v", err)
	}

	cfg = config.Default()
	cfg.OVR.Classes = []int{-1}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "negative") {
		t.Fatalf("expected negative class error, got %v", err)
	}

	cfg = config.Default()
	cfg.OVR.ClassCount = -2
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected class_count error")
	}

	cfg = config.Default()
	cfg.OVR.Workers = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected workers error")
	}
}

func TestValidateRunRequiresSplitFiles(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Folder = t.TempDir()
	cfg.Data.TrainInput = "train.in"
	cfg.Data.TrainTarget = "train.tgt"

	err := cfg.ValidateRun()
	if err == nil {
		t.Fatal("expected missing file error")
	}
	msg := err.Error()
	for _, key := range []string{"data.dev_input", "data.dev_target", "data.test_input", "data.test_target"} {
		if !strings.Contains(msg, key) {
			t.Fatalf("expected %q in %q", key, msg)
		}
	}
	if strings.Contains(msg, "data.train_input") {
		t.Fatalf("train input is set and should not be reported: %q", msg)
	}

	cfg.Data.DevInput, cfg.Data.DevTarget = "dev.in", "dev.tgt"
	cfg.Data.TestInput, cfg.Data.TestTarget = "test.in", "test.tgt"
	if err := cfg.ValidateRun(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Data.Folder = ""
	if err := cfg.ValidateRun(); err == nil || !strings.Contains(err.Error(), "data.folder") {
		t.Fatalf("expected data.folder error, got %v", err)
	}
}

func TestSplitFilesOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Data.TrainInput, cfg.Data.TrainTarget = "a", "b"
	cfg.Data.DevInput, cfg.Data.DevTarget = "c", "d"
	cfg.Data.TestInput, cfg.Data.TestTarget = "e", "f"

	splits := cfg.SplitFiles()
	if len(splits) != 3 {
		t.Fatalf("expected three splits, got %d", len(splits))
	}
	want := []config.SplitFiles{
		{Name: config.SplitTrain, Input: "a", Target: "b"},
		{Name: config.SplitDev, Input: "c", Target: "d"},
		{Name: config.SplitTest, Input: "e", Target: "f"},
	}
	for i := range want {
		if splits[i] != want[i] {
			t.Fatalf("split %d: got %+v want %+v", i, splits[i], want[i])
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	t.Setenv("HOME", t.TempDir())
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Data.TrainInput != "train.input" {
		t.Fatalf("unexpected sample train input: %q", cfg.Data.TrainInput)
	}
	if err := cfg.ValidateRun(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
	encoded, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(encoded), "train_input") {
		t.Fatalf("expected encoded config to include train_input, got %s", encoded)
	}
}
