// Package config loads, normalizes, and validates ovrprep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OVRPREP_DATA_FOLDER. The Config type centralizes every knob the pipeline and
// CLI need: split file names, tokenizer delimiter, vocabulary cutoffs, the
// one-vs-rest label space, and logging.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, validated cutoffs, and errors tagged as configuration
// failures.
package config
