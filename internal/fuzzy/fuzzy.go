// Package fuzzy finds the closest known name for a misspelt one, for
// "did you mean" hints on unknown check IDs and missing schema files.
package fuzzy

import (
	"strings"
	"unicode"
)

// MinSimilarity is the score below which Closest reports no match.
const MinSimilarity = 0.6

// Levenshtein computes the edit distance between two strings in runes:
// the minimum number of single-character insertions, deletions or
// substitutions turning one into the other.
//
// Space complexity: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity scores two names between 0 and 1 after Normalize:
// 1 - distance / longer length. Identical names score 1.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)

	longest := max(len([]rune(na)), len([]rune(nb)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(na, nb))/float64(longest)
}

// Normalize case-folds s and drops separators, so "No_Must-Word" and
// "nomustword" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

// Closest returns the candidate most similar to name. Ties go to the
// earlier candidate. ok is false when no candidate reaches MinSimilarity.
func Closest(name string, candidates []string) (best string, ok bool) {
	score := MinSimilarity

	for _, c := range candidates {
		if s := Similarity(name, c); s >= score && (!ok || s > score) {
			best, score, ok = c, s, true
		}
	}

	return best, ok
}
