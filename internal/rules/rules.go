// Package rules implements the per-domain correction tables used for
// dictionary-based standardization: typo correction, abbreviation expansion,
// phrase standardization, and severity/qualifier normalization, applied in
// that fixed order.
package rules

import (
	"sort"
	"strings"
)

// Table is one ordered correction dictionary. Patterns are matched
// case-insensitively on whole-word boundaries only; a bare substring hit
// inside a longer token never fires. Longer patterns win over shorter ones at
// the same position, and every canonical form maps to itself so re-processing
// already-standardized text is stable.
type Table struct {
	Name       string
	Tag        string
	Confidence float64

	patterns []string // lowercase, longest first
	canon    map[string]string
}

// NewTable builds a Table from pattern → canonical pairs.
func NewTable(name, tag string, confidence float64, entries map[string]string) *Table {
	canon := make(map[string]string, len(entries)*2)
	for pattern, replacement := range entries {
		canon[strings.ToLower(pattern)] = replacement
	}
	// Self-mappings keep canonical forms fixed points of Apply.
	for _, replacement := range entries {
		key := strings.ToLower(replacement)
		if _, ok := canon[key]; !ok {
			canon[key] = replacement
		}
	}

	patterns := make([]string, 0, len(canon))
	for pattern := range canon {
		patterns = append(patterns, pattern)
	}
	sortByLengthDesc(patterns)

	return &Table{
		Name:       name,
		Tag:        tag,
		Confidence: confidence,
		patterns:   patterns,
		canon:      canon,
	}
}

// Apply rewrites every whole-word occurrence of a table pattern to its
// canonical form in a single left-to-right scan. It returns the rewritten
// string, the patterns that fired with an actual change, and whether any
// pattern matched at all (a match that leaves the text unchanged still counts
// as recognition).
func (t *Table) Apply(s string) (out string, fired []string, matched bool) {
	lower := strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) {
		replaced := false
		for _, pattern := range t.patterns {
			if !strings.HasPrefix(lower[i:], pattern) {
				continue
			}
			// A boundary is only required where the pattern edge is itself a
			// word character. Shorthand like "w/" or "r/o" ends in punctuation
			// and must fire even when glued to the next token.
			if isWordByte(pattern[0]) && !boundaryBefore(lower, i) {
				continue
			}
			if isWordByte(pattern[len(pattern)-1]) && !boundaryAfter(lower, i+len(pattern)) {
				continue
			}
			canonical := t.canon[pattern]
			b.WriteString(canonical)
			matched = true
			if s[i:i+len(pattern)] != canonical {
				fired = append(fired, pattern)
			}
			i += len(pattern)
			replaced = true
			break
		}
		if !replaced {
			b.WriteByte(s[i])
			i++
		}
	}

	return b.String(), fired, matched
}

// Size returns the number of distinct patterns in the table.
func (t *Table) Size() int { return len(t.patterns) }

// Patterns returns the table's patterns, longest first.
func (t *Table) Patterns() []string {
	return append([]string(nil), t.patterns...)
}

// Domain bundles the four correction tables and known vocabulary for one
// column domain. Tables returns them in application order.
type Domain struct {
	Typos         *Table
	Abbreviations *Table
	Phrases       *Table
	Severity      *Table
	Vocabulary    []string
}

func (d *Domain) Tables() []*Table {
	return []*Table{d.Typos, d.Abbreviations, d.Phrases, d.Severity}
}

// Pass confidence weights are fixed per table category. Severity
// normalization is cosmetic and carries no confidence change.
const (
	TypoConfidence         = 0.9
	AbbreviationConfidence = 0.85
	PhraseConfidence       = 0.8
)

func boundaryBefore(lower string, i int) bool {
	if i == 0 {
		return true
	}
	return !isWordByte(lower[i-1])
}

func boundaryAfter(lower string, i int) bool {
	if i >= len(lower) {
		return true
	}
	return !isWordByte(lower[i])
}

// isWordByte treats ASCII letters and digits as word characters. Non-ASCII
// bytes are conservatively treated as word characters so multi-byte tokens
// are never split mid-rune.
func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c >= 0x80:
		return true
	}
	return false
}

// sortByLengthDesc orders patterns longest first, ties broken
// lexicographically for deterministic iteration.
func sortByLengthDesc(patterns []string) {
	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i]) != len(patterns[j]) {
			return len(patterns[i]) > len(patterns[j])
		}
		return patterns[i] < patterns[j]
	})
}
