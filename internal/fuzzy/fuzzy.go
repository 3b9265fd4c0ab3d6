// Package fuzzy implements the approximate string matching used for filter
// extraction, domain gating and catalog ranking. Scores are integers in
// [0, 100]; all functions are pure.
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Match is a scored candidate
type Match struct {
	Candidate string
	Index     int
	Score     int
}

// Ratio scores the raw similarity of two strings
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	m := newSequenceMatcher([]rune(a), []rune(b))
	return int(math.RoundToEven(100 * m.ratio()))
}

// TokenSortRatio scores two strings after normalizing them and sorting their
// tokens, so word order does not affect the result.
func TokenSortRatio(a, b string) int {
	return Ratio(sortTokens(normalize(a)), sortTokens(normalize(b)))
}

// ExtractOne scores every candidate against term and returns the highest.
// The first candidate wins ties. ok is false for an empty candidate list.
func ExtractOne(term string, candidates []string) (best Match, ok bool) {
	if len(candidates) == 0 {
		return Match{}, false
	}

	sortedTerm := sortTokens(normalize(term))
	best = Match{Score: -1}
	for i, c := range candidates {
		score := Ratio(sortedTerm, sortTokens(normalize(c)))
		if score > best.Score {
			best = Match{Candidate: c, Index: i, Score: score}
		}
	}
	return best, true
}

// BestMatch returns the best-scoring candidate if its score reaches threshold
func BestMatch(term string, candidates []string, threshold int) (string, bool) {
	best, ok := ExtractOne(term, candidates)
	if !ok || best.Score < threshold {
		return "", false
	}
	return best.Candidate, true
}

// normalize drops Latin-1 supplement runes, turns every non-word rune into a
// space, lowercases and trims.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 128 && r <= 255:
			continue
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(strings.ToLower(b.String()))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
