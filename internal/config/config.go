package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"ovrprep/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Data locates the six split files.
type Data struct {
	Folder      string `toml:"folder"`
	TrainInput  string `toml:"train_input"`
	TrainTarget string `toml:"train_target"`
	DevInput    string `toml:"dev_input"`
	DevTarget   string `toml:"dev_target"`
	TestInput   string `toml:"test_input"`
	TestTarget  string `toml:"test_target"`
	StrictUTF8  bool   `toml:"strict_utf8"`
}

// Tokenizer contains record splitting settings.
type Tokenizer struct {
	Delimiter string `toml:"delimiter"`
}

// Vocab contains vocabulary trimming and output settings.
type Vocab struct {
	File string `toml:"file"`
	// MinFreq is the fraction of distinct tokens dropped from the rare end.
	MinFreq float64 `toml:"min_freq"`
	// MaxFreq is the fraction of distinct tokens dropped from the frequent end.
	MaxFreq float64 `toml:"max_freq"`
}

// OVR contains one-vs-rest label expansion settings.
type OVR struct {
	OutputDir string `toml:"output_dir"`
	// Classes lists the label space explicitly. Takes precedence over ClassCount.
	Classes []int `toml:"classes"`
	// ClassCount selects the range [0, ClassCount). Zero derives the label space
	// from the training targets.
	ClassCount      int  `toml:"class_count"`
	Workers         int  `toml:"workers"`
	CreateOutputDir bool `toml:"create_output_dir"`
}

// Manifest contains configuration for the SQLite run ledger.
type Manifest struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for ovrprep.
//
// Configuration sections by subsystem:
//   - Data: data folder and the train/dev/test input and target files
//   - Tokenizer: delimiter used to split records
//   - Vocab: vocabulary file name and frequency cutoffs
//   - OVR: one-vs-rest output directory, label space, and write concurrency
//   - Manifest: optional SQLite ledger of completed runs
//   - Logging: log format, level, and file directory
type Config struct {
	Data      Data      `toml:"data"`
	Tokenizer Tokenizer `toml:"tokenizer"`
	Vocab     Vocab     `toml:"vocab"`
	OVR       OVR       `toml:"ovr"`
	Manifest  Manifest  `toml:"manifest"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. Dataset file names are not required here;
// call ValidateRun once command-line overrides have been applied.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "resolve path", "", err)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "open", resolvedPath, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.Normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}

// SplitFiles returns the input and target file names keyed by split name in
// train, dev, test order.
func (c *Config) SplitFiles() []SplitFiles {
	return []SplitFiles{
		{Name: SplitTrain, Input: c.Data.TrainInput, Target: c.Data.TrainTarget},
		{Name: SplitDev, Input: c.Data.DevInput, Target: c.Data.DevTarget},
		{Name: SplitTest, Input: c.Data.TestInput, Target: c.Data.TestTarget},
	}
}

// SplitFiles names the input and target files of one split.
type SplitFiles struct {
	Name   string
	Input  string
	Target string
}

// Split names.
const (
	SplitTrain = "train"
	SplitDev   = "dev"
	SplitTest  = "test"
)

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
