// Package similarity scores how closely cognate word forms resemble
// each other across related languages. All functions are pure and safe
// for concurrent use.
package similarity

import "github.com/rivo/uniseg"

// graphemes splits s into user-perceived characters (extended grapheme
// clusters). Comparing raw bytes or runes miscounts combining marks,
// which several Turkic Cyrillic and Latin orthographies use.
func graphemes(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// EditDistance returns the Levenshtein distance between a and b,
// counting insertions, deletions, and substitutions of grapheme
// clusters at cost 1 each.
func EditDistance(a, b string) int {
	ga := graphemes(a)
	gb := graphemes(b)

	if len(ga) == 0 {
		return len(gb)
	}
	if len(gb) == 0 {
		return len(ga)
	}

	// Two-row dynamic programming over the classic DP matrix.
	prev := make([]int, len(gb)+1)
	curr := make([]int, len(gb)+1)
	for j := 0; j <= len(gb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ga); i++ {
		curr[0] = i
		for j := 1; j <= len(gb); j++ {
			if ga[i-1] == gb[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+1)
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(gb)]
}

// Similarity returns a score in [0, 1]: 1 minus the edit distance
// normalized by the longer input's grapheme count. Two empty strings
// are identical, so the score is 1.
func Similarity(a, b string) float64 {
	la := uniseg.GraphemeClusterCount(a)
	lb := uniseg.GraphemeClusterCount(b)
	maxLen := max(la, lb)
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(EditDistance(a, b))/float64(maxLen)
}

// CognateScore averages pairwise Similarity over all unordered pairs
// of forms. Fewer than two forms means there is nothing to compare and
// the forms trivially agree, so the score is 1.
func CognateScore(forms []string) float64 {
	if len(forms) < 2 {
		return 1.0
	}

	var total float64
	var comparisons int
	for i := 0; i < len(forms); i++ {
		for j := i + 1; j < len(forms); j++ {
			total += Similarity(forms[i], forms[j])
			comparisons++
		}
	}

	if comparisons == 0 {
		return 0.0
	}
	return total / float64(comparisons)
}
