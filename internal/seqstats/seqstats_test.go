package seqstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqsOfLengths(lengths ...int) [][]string {
	out := make([][]string, len(lengths))
	for i, n := range lengths {
		out[i] = make([]string, n)
	}
	return out
}

func TestComputeKnownLengths(t *testing.T) {
	got, err := Compute(seqsOfLengths(3, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, 3, got.Count)
	assert.InDelta(t, 3.0, got.Mean, 1e-12)
	assert.Equal(t, 5, got.Max)
	assert.Equal(t, 1, got.Min)
	assert.InDelta(t, 1.632993161855452, got.StdDev, 1e-9)
}

func TestComputeSingleSequence(t *testing.T) {
	got, err := Compute(seqsOfLengths(7))
	require.NoError(t, err)
	assert.Equal(t, Stats{Count: 1, Mean: 7, Max: 7, Min: 7, StdDev: 0}, got)
}

func TestComputeCountsEmptyTokens(t *testing.T) {
	got, err := Compute([][]string{{""}, {"a", "", "b"}})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Min)
	assert.Equal(t, 3, got.Max)
	assert.InDelta(t, 2.0, got.Mean, 1e-12)
}

func TestComputeEmptyCorpus(t *testing.T) {
	_, err := Compute(nil)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}
