package processor

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/medclean-cli/internal/rules"
	"github.com/sells-group/medclean-cli/internal/termcache"
)

var (
	titleCaser  = cases.Title(language.English)
	oddCharsRe  = regexp.MustCompile(`[^\w\s\-\(\)\/]`)
	lowerWordRe = regexp.MustCompile(`^[a-z][a-z\s\-]+$`)
)

// NewBiomarker builds the processor for biomarker/parameter name columns.
// Measurement units are stripped from names before standardization, and
// all-lowercase names are title-cased. Note "na" is not a placeholder here,
// it is the abbreviation for Sodium.
func NewBiomarker(name string, cache termcache.Store, cleaner TermCleaner) Processor {
	domain := rules.BiomarkerDomain()
	b := newBase(name, domain, cache, cleaner)

	for _, p := range []string{"n/a", "nil", "none", "?", "unknown"} {
		b.placeholders[p] = struct{}{}
	}

	b.pre = func(s string, r *Result) string {
		out := s
		for _, unit := range rules.BiomarkerUnits {
			idx := strings.Index(strings.ToLower(out), unit)
			if idx < 0 {
				continue
			}
			out = strings.Join(strings.Fields(out[:idx]+out[idx+len(unit):]), " ")
			r.addTransform("remove_unit")
			r.Issues = append(r.Issues, "removed_unit_"+unit)
		}
		return out
	}

	b.post = func(s string, r *Result) string {
		if len(s) > 2 && s == strings.ToLower(s) && lowerWordRe.MatchString(s) {
			r.addTransform("fix_capitalization")
			r.Issues = append(r.Issues, "case_inconsistency")
			return titleCaser.String(s)
		}
		return s
	}

	b.detectors = []detector{
		{
			issueType:      "abbreviations",
			severity:       "medium",
			recommendation: "Expand abbreviated biomarker names to standard forms",
			detect: func(v string) (string, bool) {
				trimmed := strings.ToLower(strings.TrimSpace(v))
				if len(trimmed) > 6 {
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
			issueType:      "spelling_errors",
			severity:       "high",
			recommendation: "Fix spelling errors in biomarker names",
			detect: func(v string) (string, bool) {
				pattern, hit := tableHit(domain.Typos, v)
				if !hit {
					return "", false
				}
				return fmt.Sprintf("contains misspelling %q", pattern), true
			},
		},
		{
			issueType:      "unit_mixing",
			severity:       "medium",
			recommendation: "Separate units from biomarker names",
			detect: func(v string) (string, bool) {
				lower := strings.ToLower(v)
				for _, unit := range rules.BiomarkerUnits {
					if strings.Contains(lower, unit) {
						return fmt.Sprintf("unit %q belongs in the result column", unit), true
					}
				}
				return "", false
			},
		},
		{
			issueType:      "formatting_issues",
			severity:       "low",
			recommendation: "Standardize biomarker name formatting",
			detect: func(v string) (string, bool) {
				if multiSpaceRe.MatchString(v) || oddCharsRe.MatchString(v) {
					return "non-standard formatting or characters", true
				}
				return "", false
			},
		},
		{
			issueType:      "case_issues",
			severity:       "low",
			recommendation: "Apply consistent capitalization",
			detect: func(v string) (string, bool) {
				if v != strings.TrimSpace(v) || (v == strings.ToLower(v) && len(v) > 3) {
					return "inconsistent capitalization", true
				}
				return "", false
			},
		},
	}

	b.rulesDesc = ValidationRules{
		DataType:           "string",
		MaxLength:          150,
		MinLength:          1,
		AllowedPatterns:    []string{`^[A-Za-z0-9\s\-\(\)]+$`},
		Required:           true,
		StandardizedValues: domain.Vocabulary,
		Abbreviations:      tablePatterns(domain.Abbreviations),
		NoUnits:            true,
	}

	return b
}
