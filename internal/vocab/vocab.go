package vocab

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ovrprep/internal/fileutil"
	"ovrprep/internal/services"
)

// Cutoffs are the fractions of the distinct-token ranking dropped from each end.
type Cutoffs struct {
	// MinFreq is the fraction removed from the rare end.
	MinFreq float64 `json:"min_freq"`
	// MaxFreq is the fraction removed from the frequent end.
	MaxFreq float64 `json:"max_freq"`
}

// Validate reports an error when either cutoff falls outside [0, 1].
func (c Cutoffs) Validate() error {
	if math.IsNaN(c.MinFreq) || c.MinFreq < 0 || c.MinFreq > 1 {
		return services.Wrap(services.ErrConfiguration, "vocabulary", "cutoffs", fmt.Sprintf("min_freq %v must be between 0 and 1", c.MinFreq), nil)
	}
	if math.IsNaN(c.MaxFreq) || c.MaxFreq < 0 || c.MaxFreq > 1 {
		return services.Wrap(services.ErrConfiguration, "vocabulary", "cutoffs", fmt.Sprintf("max_freq %v must be between 0 and 1", c.MaxFreq), nil)
	}
	return nil
}

// Bounds returns the half-open slice [lo, hi) of an ascending ranking of n
// distinct tokens that survives trimming. lo == hi means nothing survives.
func (c Cutoffs) Bounds(n int) (lo, hi int) {
	lo = int(math.Ceil(c.MinFreq * float64(n)))
	hi = n - int(math.Ceil(c.MaxFreq*float64(n)))
	lo = min(max(lo, 0), n)
	hi = min(max(hi, 0), n)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Vocabulary is the trimmed token list in ascending frequency order.
type Vocabulary struct {
	Tokens []string `json:"-"`
	// Distinct is the number of distinct tokens before trimming.
	Distinct int     `json:"distinct"`
	Cutoffs  Cutoffs `json:"cutoffs"`
	// DroppedRare and DroppedFrequent count tokens removed from each end.
	DroppedRare     int `json:"dropped_rare"`
	DroppedFrequent int `json:"dropped_frequent"`
	// Occurrences counts every training token; Covered counts those whose
	// token survived trimming.
	Occurrences int `json:"occurrences"`
	Covered     int `json:"covered"`
}

// Coverage returns the fraction of training token occurrences kept.
func (v Vocabulary) Coverage() float64 {
	if v.Occurrences == 0 {
		return 0
	}
	return float64(v.Covered) / float64(v.Occurrences)
}

// Size returns the number of tokens kept.
func (v Vocabulary) Size() int { return len(v.Tokens) }

// Build counts tokens across seqs and returns the vocabulary bounded by cutoffs.
func Build(seqs [][]string, cutoffs Cutoffs) (Vocabulary, error) {
	if err := cutoffs.Validate(); err != nil {
		return Vocabulary{}, err
	}
	return FromDistribution(Count(seqs), cutoffs), nil
}

// FromDistribution trims an existing distribution. cutoffs must already be valid.
func FromDistribution(dist *Distribution, cutoffs Cutoffs) Vocabulary {
	ranked := dist.Ascending()
	n := dist.Len()
	lo, hi := cutoffs.Bounds(n)
	tokens := make([]string, 0, hi-lo)
	covered := 0
	for _, entry := range ranked[lo:hi] {
		tokens = append(tokens, entry.Token)
		covered += entry.Count
	}
	return Vocabulary{
		Tokens:          tokens,
		Distinct:        n,
		Cutoffs:         cutoffs,
		DroppedRare:     lo,
		DroppedFrequent: n - hi,
		Occurrences:     dist.Total(),
		Covered:         covered,
	}
}

// FileName returns the vocabulary file name for the given cutoffs:
// the max cutoff, then the min cutoff, then base, e.g. "0.00.0vocab.txt".
func FileName(cutoffs Cutoffs, base string) string {
	return FormatCutoff(cutoffs.MaxFreq) + FormatCutoff(cutoffs.MinFreq) + base
}

// FormatCutoff renders a cutoff as the shortest decimal that round-trips,
// always keeping a fractional part ("0.0", "0.25") and switching to exponent
// form below 1e-4 ("1e-05").
func FormatCutoff(value float64) string {
	abs := math.Abs(value)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(value, 'e', -1, 64)
	}
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// Save writes one token per line.
func Save(path string, v Vocabulary, opts fileutil.WriteOptions) error {
	return fileutil.WriteLines(path, v.Tokens, opts)
}
