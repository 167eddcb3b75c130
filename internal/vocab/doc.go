// Package vocab builds frequency-trimmed vocabularies from tokenized corpora.
//
// Distinct tokens are ranked by ascending occurrence count, ties keeping the
// order in which tokens were first seen. Two fractional cutoffs then trim the
// ranking: MinFreq drops the rarest ceil(MinFreq*N) tokens and MaxFreq drops
// the ceil(MaxFreq*N) most frequent ones, where N is the number of distinct
// tokens. A cutoff pair that leaves nothing yields an empty vocabulary, not an
// error.
package vocab
