package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"ovrprep/internal/services"
)

// Validate ensures the configuration is usable. Failures are tagged with
// services.ErrConfiguration.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validateTokenizer,
		c.validateVocab,
		c.validateOVR,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
		}
	}
	return nil
}

// ValidateRun checks the options a pipeline run cannot do without: the data
// folder and all six split files.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Data.Folder) == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "", errors.New("data.folder must be set"))
	}
	if err := ensureNonEmptyMap(map[string]string{
		"data.train_input":  c.Data.TrainInput,
		"data.train_target": c.Data.TrainTarget,
		"data.dev_input":    c.Data.DevInput,
		"data.dev_target":   c.Data.DevTarget,
		"data.test_input":   c.Data.TestInput,
		"data.test_target":  c.Data.TestTarget,
	}); err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
	}
	return nil
}

func (c *Config) validateTokenizer() error {
	if c.Tokenizer.Delimiter == "" {
		return errors.New("tokenizer.delimiter must not be empty")
	}
	return nil
}

func (c *Config) validateVocab() error {
	if err := validateFraction("vocab.min_freq", c.Vocab.MinFreq); err != nil {
		return err
	}
	if err := validateFraction("vocab.max_freq", c.Vocab.MaxFreq); err != nil {
		return err
	}
	if strings.ContainsAny(c.Vocab.File, `/\`) {
		return errors.New("vocab.file must be a file name, not a path")
	}
	return nil
}

func (c *Config) validateOVR() error {
	if c.OVR.Workers <= 0 || c.OVR.Workers > maxOVRWorkers {
		return fmt.Errorf("ovr.workers must be between 1 and %d", maxOVRWorkers)
	}
	if c.OVR.ClassCount < 0 {
		return errors.New("ovr.class_count must be >= 0")
	}
	if len(c.OVR.Classes) > maxExplicitClassSize {
		return fmt.Errorf("ovr.classes must list at most %d classes", maxExplicitClassSize)
	}
	seen := make(map[int]struct{}, len(c.OVR.Classes))
	for _, class := range c.OVR.Classes {
		if class < 0 {
			return fmt.Errorf("ovr.classes contains negative class %d", class)
		}
		if _, dup := seen[class]; dup {
			return fmt.Errorf("ovr.classes lists class %d more than once", class)
		}
		seen[class] = struct{}{}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func validateFraction(key string, value float64) error {
	if math.IsNaN(value) || value < 0 || value > 1 {
		return fmt.Errorf("%s must be between 0 and 1", key)
	}
	return nil
}

func ensureNonEmptyMap(values map[string]string) error {
	missing := make([]string, 0, len(values))
	for key, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("%s must be set", strings.Join(missing, ", "))
}
