package fuzzy

// popularThreshold is the length of b at which frequent runes stop being
// indexed for longest-match lookups.
const popularThreshold = 200

// sequenceMatcher finds matching blocks between two rune sequences using the
// Ratcliff/Obershelp longest-common-block recursion.
type sequenceMatcher struct {
	a, b []rune
	b2j  map[rune][]int
}

type matchBlock struct {
	i, j, size int
}

func newSequenceMatcher(a, b []rune) *sequenceMatcher {
	m := &sequenceMatcher{a: a, b: b}
	m.indexB()
	return m
}

// indexB maps every rune of b to its ascending positions. For long inputs,
// runes occurring in more than 1% of positions are dropped from the index.
func (m *sequenceMatcher) indexB() {
	b2j := make(map[rune][]int)
	for j, r := range m.b {
		b2j[r] = append(b2j[r], j)
	}

	n := len(m.b)
	if n >= popularThreshold {
		ntest := n/100 + 1
		for r, positions := range b2j {
			if len(positions) > ntest {
				delete(b2j, r)
			}
		}
	}
	m.b2j = b2j
}

// findLongestMatch returns the longest block a[i:i+size] == b[j:j+size]
// inside the given bounds, preferring the earliest i, then the earliest j.
func (m *sequenceMatcher) findLongestMatch(alo, ahi, blo, bhi int) matchBlock {
	besti, bestj, bestSize := alo, blo, 0

	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newJ2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}

	// Unindexed (popular) runes can still extend a block on either side.
	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestSize = besti-1, bestj-1, bestSize+1
	}
	for besti+bestSize < ahi && bestj+bestSize < bhi && m.a[besti+bestSize] == m.b[bestj+bestSize] {
		bestSize++
	}

	return matchBlock{i: besti, j: bestj, size: bestSize}
}

// matches returns the total number of runes covered by matching blocks
func (m *sequenceMatcher) matches() int {
	type bounds struct{ alo, ahi, blo, bhi int }

	total := 0
	queue := []bounds{{0, len(m.a), 0, len(m.b)}}
	for len(queue) > 0 {
		q := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		blk := m.findLongestMatch(q.alo, q.ahi, q.blo, q.bhi)
		if blk.size == 0 {
			continue
		}
		total += blk.size
		if q.alo < blk.i && q.blo < blk.j {
			queue = append(queue, bounds{q.alo, blk.i, q.blo, blk.j})
		}
		if blk.i+blk.size < q.ahi && blk.j+blk.size < q.bhi {
			queue = append(queue, bounds{blk.i + blk.size, q.ahi, blk.j + blk.size, q.bhi})
		}
	}
	return total
}

// ratio returns 2*M/T in [0, 1]
func (m *sequenceMatcher) ratio() float64 {
	length := len(m.a) + len(m.b)
	if length == 0 {
		return 1.0
	}
	return 2.0 * float64(m.matches()) / float64(length)
}
