package config

const (
	defaultConfigPath    = "~/.config/ovrprep/config.toml"
	projectConfigName    = "ovrprep.toml"
	defaultDelimiter     = " "
	defaultVocabFile     = "vocab.txt"
	defaultOVROutputDir  = "ovr_targets"
	defaultOVRWorkers    = 4
	defaultManifestPath  = "~/.local/share/ovrprep/runs.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	envDataFolder        = "OVRPREP_DATA_FOLDER"
	envOVROutputDir      = "OVRPREP_OUTPUT_DIR"
	maxOVRWorkers        = 256
	maxExplicitClassSize = 1 << 16
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tokenizer: Tokenizer{
			Delimiter: defaultDelimiter,
		},
		Vocab: Vocab{
			File: defaultVocabFile,
		},
		OVR: OVR{
			Workers: defaultOVRWorkers,
		},
		Manifest: Manifest{
			Path: defaultManifestPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
