package ovr

// SplitTally counts positives per class for one split.
type SplitTally struct {
	Split string `json:"split"`
	Total int    `json:"total"`
	// Positives maps class to the number of records labelled with it.
	Positives map[int]int `json:"positives"`
	// Unclassified counts records whose label is outside the class set.
	Unclassified int `json:"unclassified"`
}

// Covered reports whether every record maps to exactly one class in the set.
func (t SplitTally) Covered() bool { return t.Unclassified == 0 }

// Count tallies labels against classes.
func Count(split string, labels []int, classes ClassSet) SplitTally {
	tally := SplitTally{
		Split:     split,
		Total:     len(labels),
		Positives: make(map[int]int, classes.Len()),
	}
	for _, class := range classes.Classes {
		tally.Positives[class] = 0
	}
	for _, label := range labels {
		if _, ok := tally.Positives[label]; ok {
			tally.Positives[label]++
			continue
		}
		tally.Unclassified++
	}
	return tally
}
