package trie

import "sort"

// matchPattern reports whether word matches pattern, where '?' matches
// exactly one byte, '*' matches zero or more bytes, and anything else
// matches itself. On '*' every split point of the remainder is tried in
// order, so heavily starred patterns are exponential in the worst case.
// Matching is byte-level over whole words; edge boundaries play no role.
func matchPattern(word, pattern string) bool {
	wi, pi := 0, 0

	for wi < len(word) && pi < len(pattern) {
		switch pattern[pi] {
		case '?':
			wi++
			pi++
		case '*':
			if pi+1 == len(pattern) {
				return true
			}
			for i := wi; i <= len(word); i++ {
				if matchPattern(word[i:], pattern[pi+1:]) {
					return true
				}
			}
			return false
		case word[wi]:
			wi++
			pi++
		default:
			return false
		}
	}

	// A trailing run of '*' still matches once the word is exhausted.
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return wi == len(word) && pi == len(pattern)
}

// PatternSearch returns every stored word matching pattern, sorted
// lexicographically. An empty pattern or an empty trie yields no results
// rather than an error.
func (t *Trie) PatternSearch(pattern string) []string {
	if pattern == "" || t.Empty() {
		return nil
	}

	var out []string
	for _, w := range collect(t.root, "", nil) {
		if matchPattern(w, pattern) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}
