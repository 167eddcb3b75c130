// Package testsupport builds throwaway datasets and configs for tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"ovrprep/internal/config"
)

// Split file names used by NewConfig.
const (
	TrainInput  = "train_x.txt"
	TrainTarget = "train_y.txt"
	DevInput    = "dev_x.txt"
	DevTarget   = "dev_y.txt"
	TestInput   = "test_x.txt"
	TestTarget  = "test_y.txt"
)

// SampleFiles is a small three-split dataset. The training corpus counts
// a:3 b:4 c:2, its labels are 0, 2, 1, and sequence lengths are 3, 2, 4.
func SampleFiles() map[string]string {
	return map[string]string{
		TrainInput:  "a b a\nb c\na b b c\n",
		TrainTarget: "0\n2\n1\n",
		DevInput:    "a c\nb",
		DevTarget:   "2\n2",
		TestInput:   "c",
		TestTarget:  "1",
	}
}

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t             testing.TB
	baseDir       string
	cfg           *config.Config
	files         map[string]string
	skipOutputDir bool
}

// NewConfig produces a config whose data folder holds SampleFiles and whose
// output directory exists, all under a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Data.Folder = filepath.Join(base, "data")
	cfgVal.Data.TrainInput, cfgVal.Data.TrainTarget = TrainInput, TrainTarget
	cfgVal.Data.DevInput, cfgVal.Data.DevTarget = DevInput, DevTarget
	cfgVal.Data.TestInput, cfgVal.Data.TestTarget = TestInput, TestTarget
	cfgVal.OVR.OutputDir = filepath.Join(base, "ovr_targets")
	cfgVal.Manifest.Path = filepath.Join(base, "runs.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
		files:   SampleFiles(),
	}
	for _, opt := range opts {
		opt(builder)
	}

	WriteFiles(t, cfgVal.Data.Folder, builder.files)
	if !builder.skipOutputDir {
		if err := os.MkdirAll(cfgVal.OVR.OutputDir, 0o755); err != nil {
			t.Fatalf("mkdir output dir: %v", err)
		}
	}
	return builder.cfg
}

// WithFile replaces the content of one split file.
func WithFile(name, content string) ConfigOption {
	return func(b *configBuilder) {
		b.files[name] = content
	}
}

// WithoutOutputDir leaves the OVR output directory uncreated.
func WithoutOutputDir() ConfigOption {
	return func(b *configBuilder) {
		b.skipOutputDir = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Data.Folder)
}
