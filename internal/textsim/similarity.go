/*
Responsibilities
- Turn free text into word tokens and character n-grams
- Blend word-level and character-level overlap into one score

Token overlap carries word semantics; trigram overlap tolerates partial
words, typos and compound identifiers ("username" vs "user name").
*/
package textsim

import (
	"strings"

	"github.com/rohmanhakim/nl-locator/pkg/set"
)

const (
	// DefaultN is the n-gram width used by Similarity.
	DefaultN = 3

	minTokenLen = 2

	tokenWeight   = 0.6
	trigramWeight = 0.4
)

// Tokenize lowercases s, treats every run of characters outside [a-z0-9]
// as a separator and keeps the tokens of at least two characters.
func Tokenize(s string) set.Set[string] {
	tokens := set.NewSet[string]()
	if s == "" {
		return tokens
	}
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isASCIIAlnum(r)
	})
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens.Add(f)
		}
	}
	return tokens
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// NGrams collapses whitespace, lowercases and trims s, then returns every
// contiguous window of n runes. Strings no longer than n come back whole.
func NGrams(s string, n int) set.Set[string] {
	grams := set.NewSet[string]()
	normalized := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	if normalized == "" {
		return grams
	}
	runes := []rune(normalized)
	if len(runes) <= n {
		grams.Add(normalized)
		return grams
	}
	for i := 0; i+n <= len(runes); i++ {
		grams.Add(string(runes[i : i+n]))
	}
	return grams
}

// Similarity blends token Jaccard (0.6) with trigram Jaccard (0.4).
// The result lies in [0,1] and is symmetric in its arguments.
func Similarity(query, candidate string) float64 {
	if query == "" || candidate == "" {
		return 0.0
	}
	tokenJaccard := Tokenize(query).Jaccard(Tokenize(candidate))
	trigramJaccard := NGrams(query, DefaultN).Jaccard(NGrams(candidate, DefaultN))
	return tokenWeight*tokenJaccard + trigramWeight*trigramJaccard
}
