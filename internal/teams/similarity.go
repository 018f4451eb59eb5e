package teams

// similarityRatio measures how alike two strings are as
// 2*matches/(len(a)+len(b)) over the recursive longest-common-block
// decomposition, in [0, 1].
func similarityRatio(a, b string) float64 {
	left := []rune(a)
	right := []rune(b)
	total := len(left) + len(right)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(left, right)) / float64(total)
}

func matchingRunes(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a[:ai], b[:bi]) +
		matchingRunes(a[ai+size:], b[bi+size:])
}

// longestMatch finds the longest block a[ai:ai+size] == b[bi:bi+size],
// preferring the earliest block on ties.
func longestMatch(a, b []rune) (ai, bi, size int) {
	positions := make(map[rune][]int, len(b))
	for j, r := range b {
		positions[r] = append(positions[r], j)
	}

	// runLengths[j] is the length of the match ending at a[i-1], b[j].
	runLengths := make(map[int]int)
	for i, r := range a {
		next := make(map[int]int, len(positions[r]))
		for _, j := range positions[r] {
			length := runLengths[j-1] + 1
			next[j] = length
			if length > size {
				ai, bi, size = i-length+1, j-length+1, length
			}
		}
		runLengths = next
	}
	return ai, bi, size
}
