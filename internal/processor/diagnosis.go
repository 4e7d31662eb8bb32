package processor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/medclean-cli/internal/rules"
	"github.com/sells-group/medclean-cli/internal/termcache"
)

var repeatedSepRe = regexp.MustCompile(`[,;]{2,}`)

// shortDiagnosisLen marks diagnoses too short to be trusted; their
// confidence is scaled down.
const shortDiagnosisLen = 5

// NewDiagnosis builds the processor for diagnosis and clinical note columns.
// Several column names share this variant under different labels.
func NewDiagnosis(name string, cache termcache.Store, cleaner TermCleaner) Processor {
	domain := rules.DiagnosisDomain()
	b := newBase(name, domain, cache, cleaner)

	for _, p := range []string{"na", "n/a", "nil", "none", "?", "unknown"} {
		b.placeholders[p] = struct{}{}
	}

	b.adjust = func(cleaned string, confidence float64) float64 {
		if len(cleaned) < shortDiagnosisLen {
			return confidence * 0.7
		}
		return confidence
	}

	b.detectors = []detector{
		{
			issueType:      "medical_spelling_errors",
			severity:       "high",
			recommendation: "Fix spelling errors in medical terminology",
			detect: func(v string) (string, bool) {
				pattern, hit := tableHit(domain.Typos, v)
				if !hit {
					return "", false
				}
				return fmt.Sprintf("contains misspelling %q", pattern), true
			},
		},
		{
			issueType:      "medical_abbreviations",
			severity:       "medium",
			recommendation: "Expand medical condition abbreviations",
			detect: func(v string) (string, bool) {
				pattern, hit := tableHit(domain.Phrases, v)
				if !hit || len(pattern) > 5 {
					return "", false
				}
				return fmt.Sprintf("condition abbreviation %q can be expanded", pattern), true
			},
		},
		{
			issueType:      "clinical_abbreviations",
			severity:       "medium",
			recommendation: "Expand clinical abbreviations for clarity",
			detect: func(v string) (string, bool) {
				pattern, hit := tableHit(domain.Abbreviations, v)
				if !hit {
					return "", false
				}
				return fmt.Sprintf("clinical shorthand %q can be expanded", pattern), true
			},
		},
		{
			issueType:      "formatting_issues",
			severity:       "low",
			recommendation: "Standardize diagnosis formatting and punctuation",
			detect: func(v string) (string, bool) {
				if multiSpaceRe.MatchString(v) || repeatedSepRe.MatchString(v) {
					return "inconsistent spacing or punctuation", true
				}
				return "", false
			},
		},
		{
			issueType:      "incomplete_diagnoses",
			severity:       "medium",
			recommendation: "Review and complete incomplete diagnoses",
			detect: func(v string) (string, bool) {
				trimmed := strings.ToLower(strings.TrimSpace(v))
				if len(trimmed) < 3 || trimmed == "na" || trimmed == "n/a" ||
					trimmed == "nil" || trimmed == "none" || trimmed == "?" {
					return "incomplete or placeholder diagnosis", true
				}
				return "", false
			},
		},
	}

	b.rulesDesc = ValidationRules{
		DataType:           "string",
		MaxLength:          500,
		MinLength:          3,
		AllowedPatterns:    []string{`^[A-Za-z0-9\s\-\(\),;\.\/]+$`},
		Required:           true,
		StandardizedValues: domain.Vocabulary,
		Abbreviations:      tablePatterns(domain.Phrases),
		NoPlaceholders:     true,
	}

	return b
}
