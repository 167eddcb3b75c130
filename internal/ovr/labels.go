package ovr

import (
	"fmt"
	"strconv"
	"strings"

	"ovrprep/internal/services"
)

const (
	Positive = "1"
	Negative = "0"
)

// ParseError reports a label record that is not an integer.
type ParseError struct {
	Split string
	// Index is the zero-based record index.
	Index int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s target line %d: %q is not an integer label", e.Split, e.Index+1, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return services.ErrParse.Error() + ": " + msg
}

// Unwrap exposes services.ErrParse so callers can classify the failure.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{services.ErrParse}
	}
	return []error{services.ErrParse, e.Err}
}

// Parse converts label records to integers. Surrounding whitespace is ignored.
func Parse(split string, labels []string) ([]int, error) {
	out := make([]int, len(labels))
	for i, raw := range labels {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &ParseError{Split: split, Index: i, Value: raw, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// Binarize returns the one-vs-rest stream for class.
func Binarize(labels []int, class int) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		if label == class {
			out[i] = Positive
		} else {
			out[i] = Negative
		}
	}
	return out
}

// Convert parses labels and binarizes them for class.
func Convert(split string, labels []string, class int) ([]string, error) {
	parsed, err := Parse(split, labels)
	if err != nil {
		return nil, err
	}
	return Binarize(parsed, class), nil
}
