// Package match provides fuzzy matching of free-text values against a known
// vocabulary of canonical terms.
package match

import (
	"strings"

	"github.com/agext/levenshtein"
)

// DefaultThreshold is the minimum similarity for a vocabulary match to be
// accepted. Matches at exactly the threshold are rejected.
const DefaultThreshold = 0.8

// Matcher scores candidate strings against a fixed vocabulary using
// normalized Levenshtein similarity. Comparison is case-insensitive; the
// returned match keeps the vocabulary's canonical casing.
type Matcher struct {
	vocabulary []string
	lowered    []string
	threshold  float64
}

// New builds a Matcher over vocabulary with the default threshold.
func New(vocabulary []string) *Matcher {
	return NewWithThreshold(vocabulary, DefaultThreshold)
}

func NewWithThreshold(vocabulary []string, threshold float64) *Matcher {
	lowered := make([]string, len(vocabulary))
	for i, term := range vocabulary {
		lowered[i] = strings.ToLower(term)
	}
	return &Matcher{vocabulary: vocabulary, lowered: lowered, threshold: threshold}
}

// Best returns the vocabulary term most similar to s along with its score.
// ok is false when no term scores strictly above the threshold. Ties keep the
// earliest vocabulary entry so results are deterministic.
func (m *Matcher) Best(s string) (term string, score float64, ok bool) {
	if s == "" {
		return "", 0, false
	}
	lower := strings.ToLower(s)

	best := -1
	bestScore := 0.0
	for i, candidate := range m.lowered {
		sim := levenshtein.Similarity(lower, candidate, nil)
		if sim > bestScore {
			bestScore = sim
			best = i
		}
	}
	if best < 0 || bestScore <= m.threshold {
		return "", bestScore, false
	}
	return m.vocabulary[best], bestScore, true
}

// Contains reports whether s equals a vocabulary term, ignoring case.
func (m *Matcher) Contains(s string) bool {
	lower := strings.ToLower(s)
	for _, candidate := range m.lowered {
		if candidate == lower {
			return true
		}
	}
	return false
}
