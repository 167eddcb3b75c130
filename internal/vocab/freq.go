package vocab

import "slices"

// Entry is one distinct token and its occurrence count.
type Entry struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// Distribution counts token occurrences across a corpus, remembering the order
// in which each token was first encountered.
type Distribution struct {
	entries []Entry
	index   map[string]int
	total   int
}

// Count builds the frequency distribution over every token of every sequence.
func Count(seqs [][]string) *Distribution {
	d := &Distribution{index: make(map[string]int)}
	for _, seq := range seqs {
		for _, token := range seq {
			d.add(token)
		}
	}
	return d
}

func (d *Distribution) add(token string) {
	d.total++
	if pos, ok := d.index[token]; ok {
		d.entries[pos].Count++
		return
	}
	d.index[token] = len(d.entries)
	d.entries = append(d.entries, Entry{Token: token, Count: 1})
}

// Len returns the number of distinct tokens.
func (d *Distribution) Len() int { return len(d.entries) }

// Total returns the number of token occurrences counted.
func (d *Distribution) Total() int { return d.total }

// Ascending returns the distinct tokens sorted by ascending count. The sort is
// stable, so equal counts keep first-encounter order.
func (d *Distribution) Ascending() []Entry {
	sorted := slices.Clone(d.entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return a.Count - b.Count
	})
	return sorted
}
