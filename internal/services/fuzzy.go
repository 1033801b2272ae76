package services

import "strings"

// DefaultFuzzyThreshold is the number of edits tolerated for a typo
const DefaultFuzzyThreshold = 2

// EditDistance returns the Levenshtein distance between two case-folded strings
func EditDistance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	table := make([][]int, len(ra)+1)
	for i := range table {
		table[i] = make([]int, len(rb)+1)
		table[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		table[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				table[i][j] = table[i-1][j-1]
				continue
			}
			table[i][j] = 1 + min(
				table[i-1][j-1], // substitution
				table[i][j-1],   // insertion
				table[i-1][j],   // deletion
			)
		}
	}
	return table[len(ra)][len(rb)]
}

// FuzzyEquals reports whether a and b are at most threshold edits apart
func FuzzyEquals(a, b string, threshold int) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return true
	}
	diff := len([]rune(a)) - len([]rune(b))
	if diff < 0 {
		diff = -diff
	}
	if diff > threshold {
		return false
	}
	return EditDistance(a, b) <= threshold
}

// MatchesAnyKeyword reports whether any whitespace separated token of message
// fuzzy-equals any keyword
func MatchesAnyKeyword(message string, keywords []string, threshold int) bool {
	for _, word := range strings.Fields(message) {
		for _, keyword := range keywords {
			if FuzzyEquals(word, keyword, threshold) {
				return true
			}
		}
	}
	return false
}
