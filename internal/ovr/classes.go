package ovr

import "slices"

// ClassSource records where a resolved class set came from.
type ClassSource string

const (
	ClassSourceExplicit ClassSource = "explicit"
	ClassSourceCount    ClassSource = "class_count"
	ClassSourceObserved ClassSource = "observed"
)

// ClassSet is the ordered set of classes expanded in a run.
type ClassSet struct {
	Classes []int       `json:"classes"`
	Source  ClassSource `json:"source"`
}

// Len returns the number of classes.
func (s ClassSet) Len() int { return len(s.Classes) }

// Contains reports whether class is in the set.
func (s ClassSet) Contains(class int) bool {
	_, found := slices.BinarySearch(s.Classes, class)
	return found
}

// ResolveClasses picks the class set: an explicit list wins, then a positive
// count selects [0, count), otherwise the distinct observed labels are used.
// Classes are never negative; negative labels stay outside the set and are
// tallied as unclassified. The result is sorted ascending.
func ResolveClasses(explicit []int, count int, observed []int) ClassSet {
	switch {
	case len(explicit) > 0:
		return ClassSet{Classes: nonNegative(Distinct(explicit)), Source: ClassSourceExplicit}
	case count > 0:
		classes := make([]int, count)
		for i := range classes {
			classes[i] = i
		}
		return ClassSet{Classes: classes, Source: ClassSourceCount}
	default:
		return ClassSet{Classes: nonNegative(Distinct(observed)), Source: ClassSourceObserved}
	}
}

func nonNegative(classes []int) []int {
	return slices.DeleteFunc(classes, func(c int) bool { return c < 0 })
}

// Distinct returns the sorted distinct values of labels.
func Distinct(labels []int) []int {
	classes := slices.Clone(labels)
	slices.Sort(classes)
	return slices.Compact(classes)
}
