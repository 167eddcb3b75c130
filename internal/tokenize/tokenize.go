// Package tokenize splits records into token sequences on a delimiter.
package tokenize

import "strings"

// DefaultDelimiter separates tokens when no delimiter is configured.
const DefaultDelimiter = " "

// Tokenize splits every record on each occurrence of delimiter and returns one
// token sequence per record, in record order. Consecutive delimiters produce
// empty tokens; no case or punctuation normalization is applied.
func Tokenize(records []string, delimiter string) [][]string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	out := make([][]string, len(records))
	for i, record := range records {
		out[i] = strings.Split(record, delimiter)
	}
	return out
}

// Join reverses Tokenize for a single sequence.
func Join(tokens []string, delimiter string) string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return strings.Join(tokens, delimiter)
}
