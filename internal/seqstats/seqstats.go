// Package seqstats summarizes token sequence lengths for a corpus split.
package seqstats

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyCorpus is returned when statistics are requested for zero sequences.
var ErrEmptyCorpus = errors.New("no sequences to summarize")

// Stats describes the distribution of per-sequence token counts.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Max    int     `json:"max"`
	Min    int     `json:"min"`
	StdDev float64 `json:"stddev"`
}

// Compute returns the mean, max, and min token count over seqs, plus the
// population standard deviation.
func Compute(seqs [][]string) (Stats, error) {
	if len(seqs) == 0 {
		return Stats{}, ErrEmptyCorpus
	}
	lengths := make([]float64, len(seqs))
	for i, seq := range seqs {
		lengths[i] = float64(len(seq))
	}
	mean, std := stat.PopMeanStdDev(lengths, nil)
	return Stats{
		Count:  len(seqs),
		Mean:   mean,
		Max:    int(floats.Max(lengths)),
		Min:    int(floats.Min(lengths)),
		StdDev: std,
	}, nil
}
