package utils

import (
	"golang.org/x/exp/slices"
)

// NormalizeIDs sorts and de-duplicates an ID set.
func NormalizeIDs(ids []uint) []uint {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// ContainsID reports whether id is in a set produced by NormalizeIDs.
func ContainsID(ids []uint, id uint) bool {
	_, found := slices.BinarySearch(ids, id)
	return found
}

// HasDuplicates reports whether any ID appears more than once.
func HasDuplicates(ids []uint) bool {
	return len(NormalizeIDs(ids)) != len(ids)
}
