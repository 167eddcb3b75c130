package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrRead          = errors.New("read error")
	ErrWrite         = errors.New("write error")
	ErrParse         = errors.New("parse error")
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Process exit codes reported by the CLI for each failure kind.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
	ExitRead          = 3
	ExitWrite         = 4
	ExitParse         = 5
	ExitShapeMismatch = 6
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker so callers can classify the failure with errors.Is. The
// marker should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		return wrapUnmarked(detail, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func wrapUnmarked(detail string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", detail, err)
	}
	return errors.New(detail)
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrConfiguration):
		return ExitConfiguration
	case errors.Is(err, ErrShapeMismatch):
		return ExitShapeMismatch
	case errors.Is(err, ErrParse):
		return ExitParse
	case errors.Is(err, ErrRead):
		return ExitRead
	case errors.Is(err, ErrWrite):
		return ExitWrite
	default:
		return ExitFailure
	}
}

// Kind returns a short label for the failure class, used in logs and the run manifest.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrShapeMismatch):
		return "shape_mismatch"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrRead):
		return "io_read"
	case errors.Is(err, ErrWrite):
		return "io_write"
	default:
		return "internal"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
