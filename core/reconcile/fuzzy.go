package reconcile

// Distance returns the Levenshtein edit distance between x and y, counted in
// runes with unit cost for insertion, deletion and substitution.
// It keeps two rolling rows sized by the shorter string.
func Distance(x, y string) int {
	a, b := []rune(x), []rune(y)
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Similarity returns 1 - Distance(x, y) / max(len(x), len(y)), in [0, 1].
// Two empty strings are identical.
func Similarity(x, y string) float64 {
	lx, ly := len([]rune(x)), len([]rune(y))
	longest := max(lx, ly)
	if longest == 0 {
		return 1
	}
	return 1 - float64(Distance(x, y))/float64(longest)
}

// nearMatches pairs every value of onlyA with its most similar value of onlyB
// when that similarity reaches threshold.
func nearMatches(onlyA, onlyB []string, threshold float64) []NearMatch {
	if threshold <= 0 || len(onlyA) == 0 || len(onlyB) == 0 {
		return nil
	}

	var matches []NearMatch
	for _, a := range onlyA {
		best := NearMatch{A: a}
		for _, b := range onlyB {
			if s := Similarity(a, b); s > best.Similarity {
				best.B = b
				best.Similarity = s
			}
		}
		if best.Similarity >= threshold {
			matches = append(matches, best)
		}
	}
	return matches
}
