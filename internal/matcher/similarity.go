package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"
)

// Similarity scores two normalized names in [0,1]. It takes the larger of the
// token-set Jaccard index and the mean of the Levenshtein ratio and Jaro-Winkler
// similarity; averaging keeps Jaro-Winkler's generous prefix bonus from matching
// short unrelated words on its own.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	edit := (levenshteinRatio(a, b) + matchr.JaroWinkler(a, b, false)) / 2
	return max(edit, jaccard(a, b))
}

func levenshteinRatio(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

func jaccard(a, b string) float64 {
	setA := make(map[string]struct{})
	for _, tok := range strings.Fields(a) {
		setA[tok] = struct{}{}
	}
	setB := make(map[string]struct{})
	for _, tok := range strings.Fields(b) {
		setB[tok] = struct{}{}
	}

	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
