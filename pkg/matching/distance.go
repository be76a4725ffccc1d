// Package matching implements serial matching algorithms
package matching

// Distance calculates the Levenshtein edit distance between a and b: the
// minimum number of single-rune insertions, deletions, or substitutions
// transforming one into the other. Symmetric, zero iff a == b.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len([]rune(b))
	}
	if len(b) == 0 {
		return len([]rune(a))
	}

	ra := []rune(a)
	rb := []rune(b)

	// Keep the shorter string on the column axis so the rolling rows stay
	// O(min(len(a), len(b))) in space.
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}

	row := make([]int, len(rb)+1)
	prevRow := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prevRow[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			row[j] = min(min(row[j-1]+1, prevRow[j]+1), prevRow[j-1]+cost)
		}
		row, prevRow = prevRow, row
	}

	return prevRow[len(rb)]
}
