package processor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/medclean-cli/internal/rules"
	"github.com/sells-group/medclean-cli/internal/termcache"
)

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// NewTest builds the processor for laboratory test/investigation name
// columns. It strips site/source suffixes before the correction tables run.
func NewTest(name string, cache termcache.Store, cleaner TermCleaner) Processor {
	domain := rules.TestDomain()
	b := newBase(name, domain, cache, cleaner)

	for _, p := range []string{"na", "n/a", "nil", "none", "?", "unknown"} {
		b.placeholders[p] = struct{}{}
	}

	b.pre = func(s string, r *Result) string {
		lower := strings.ToLower(s)
		for _, suffix := range rules.TestSourceSuffixes {
			if strings.HasSuffix(lower, suffix) {
				r.addTransform("remove_source_suffix")
				r.Issues = append(r.Issues, "removed_suffix_"+suffix)
				return strings.TrimSpace(s[:len(s)-len(suffix)])
			}
		}
		return s
	}

	b.detectors = []detector{
		{
			issueType:      "spelling_errors",
			severity:       "high",
			recommendation: "Apply spelling correction for common medical test names",
			detect: func(v string) (string, bool) {
				pattern, hit := tableHit(domain.Typos, v)
				if !hit {
					return "", false
				}
				return fmt.Sprintf("contains misspelling %q", pattern), true
			},
		},
		{
			issueType:      "abbreviations",
			severity:       "medium",
			recommendation: "Expand abbreviated test names to full forms",
			detect: func(v string) (string, bool) {
				trimmed := strings.ToLower(strings.TrimSpace(v))
				if len(trimmed) > 5 {
					return "", false
				}
				pattern, hit := tableHit(domain.Abbreviations, trimmed)
				if !hit {
					return "", false
				}
				return fmt.Sprintf("abbreviation %q can be expanded", pattern), true
			},
		},
		{
			issueType:      "source_suffixes",
			severity:       "medium",
			recommendation: "Remove source-specific suffixes from test names",
			detect: func(v string) (string, bool) {
				lower := strings.ToLower(v)
				for _, suffix := range rules.TestSourceSuffixes {
					if strings.HasSuffix(lower, suffix) {
						return fmt.Sprintf("contains suffix %q", suffix), true
					}
				}
				return "", false
			},
		},
		{
			issueType:      "formatting_issues",
			severity:       "low",
			recommendation: "Normalize text formatting and spacing",
			detect: func(v string) (string, bool) {
				if multiSpaceRe.MatchString(v) || v != strings.TrimSpace(v) {
					return "inconsistent spacing or trimming needed", true
				}
				return "", false
			},
		},
	}

	b.rulesDesc = ValidationRules{
		DataType:           "string",
		MaxLength:          200,
		MinLength:          2,
		AllowedPatterns:    []string{`^[A-Za-z0-9\s\-\(\)\/]+$`},
		Required:           true,
		StandardizedValues: domain.Vocabulary,
		Abbreviations:      tablePatterns(domain.Abbreviations),
	}

	return b
}

// tablePatterns lists a table's patterns for validation descriptors.
func tablePatterns(t *rules.Table) []string {
	return t.Patterns()
}
