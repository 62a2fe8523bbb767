package reconcile

import "slices"

// ListsEqual reports whether a and b hold the same values regardless of order.
// Duplicates are significant: ["a"] and ["a", "a"] differ.
func ListsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return slices.Equal(sortedCopy(a), sortedCopy(b))
}

// SortedDiff returns the multiset differences a-b and b-a, both sorted.
// It runs a single merge pass over sorted copies.
func SortedDiff(a, b []string) (onlyA, onlyB []string) {
	sa, sb := sortedCopy(a), sortedCopy(b)

	i, j := 0, 0
	for i < len(sa) && j < len(sb) {
		switch {
		case sa[i] == sb[j]:
			i++
			j++
		case sa[i] < sb[j]:
			onlyA = append(onlyA, sa[i])
			i++
		default:
			onlyB = append(onlyB, sb[j])
			j++
		}
	}
	onlyA = append(onlyA, sa[i:]...)
	onlyB = append(onlyB, sb[j:]...)

	return onlyA, onlyB
}

func sortedCopy(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}
