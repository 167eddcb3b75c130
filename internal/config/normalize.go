package config

import (
	"fmt"
	"os"
	"strings"

	"ovrprep/internal/services"
)

// Normalize expands paths, trims names, and fills defaults. It is safe to call
// again after command-line overrides have been applied.
func (c *Config) Normalize() error {
	if err := c.normalizeData(); err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "normalize", "", err)
	}
	c.normalizeTokenizer()
	c.normalizeVocab()
	if err := c.normalizeOVR(); err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "normalize", "", err)
	}
	if err := c.normalizeManifest(); err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "normalize", "", err)
	}
	if err := c.normalizeLogging(); err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "normalize", "", err)
	}
	return nil
}

func (c *Config) normalizeData() error {
	if strings.TrimSpace(c.Data.Folder) == "" {
		if value, ok := os.LookupEnv(envDataFolder); ok {
			c.Data.Folder = strings.TrimSpace(value)
		}
	}
	var err error
	if c.Data.Folder, err = expandPath(strings.TrimSpace(c.Data.Folder)); err != nil {
		return fmt.Errorf("data.folder: %w", err)
	}
	c.Data.TrainInput = strings.TrimSpace(c.Data.TrainInput)
	c.Data.TrainTarget = strings.TrimSpace(c.Data.TrainTarget)
	c.Data.DevInput = strings.TrimSpace(c.Data.DevInput)
	c.Data.DevTarget = strings.TrimSpace(c.Data.DevTarget)
	c.Data.TestInput = strings.TrimSpace(c.Data.TestInput)
	c.Data.TestTarget = strings.TrimSpace(c.Data.TestTarget)
	return nil
}

// The delimiter is deliberately not trimmed: a single space is the default.
func (c *Config) normalizeTokenizer() {
	if c.Tokenizer.Delimiter == "" {
		c.Tokenizer.Delimiter = defaultDelimiter
	}
}

func (c *Config) normalizeVocab() {
	c.Vocab.File = strings.TrimSpace(c.Vocab.File)
	if c.Vocab.File == "" {
		c.Vocab.File = defaultVocabFile
	}
}

func (c *Config) normalizeOVR() error {
	c.OVR.OutputDir = strings.TrimSpace(c.OVR.OutputDir)
	if c.OVR.OutputDir == "" {
		if value, ok := os.LookupEnv(envOVROutputDir); ok {
			c.OVR.OutputDir = strings.TrimSpace(value)
		}
	}
	if c.OVR.OutputDir == "" {
		c.OVR.OutputDir = defaultOVROutputDir
	}
	var err error
	if c.OVR.OutputDir, err = expandPath(c.OVR.OutputDir); err != nil {
		return fmt.Errorf("ovr.output_dir: %w", err)
	}
	if c.OVR.Workers == 0 {
		c.OVR.Workers = defaultOVRWorkers
	}
	return nil
}

func (c *Config) normalizeManifest() error {
	c.Manifest.Path = strings.TrimSpace(c.Manifest.Path)
	if c.Manifest.Path == "" {
		c.Manifest.Path = defaultManifestPath
	}
	var err error
	if c.Manifest.Path, err = expandPath(c.Manifest.Path); err != nil {
		return fmt.Errorf("manifest.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		var err error
		if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}
