package assistant

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Similarity scores word overlap between a and b in [0,1].
// Matching is directional: each token of a counts once if any token of b
// contains it or is contained by it, then the count is normalized by the
// longer token list. The result is therefore not symmetric.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}

	aWords := whitespaceRe.Split(strings.ToLower(a), -1)
	bWords := whitespaceRe.Split(strings.ToLower(b), -1)

	matches := 0
	for _, word := range aWords {
		for _, bWord := range bWords {
			if strings.Contains(bWord, word) || strings.Contains(word, bWord) {
				matches++
				break
			}
		}
	}

	denom := len(aWords)
	if len(bWords) > denom {
		denom = len(bWords)
	}
	if denom == 0 {
		return 0
	}

	return float64(matches) / float64(denom)
}
