package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name       string
		original   string
		cleaned    string
		transforms []string
		want       float64
	}{
		{
			name:     "identical values",
			original: "Asthma",
			cleaned:  "Asthma",
			want:     1.0,
		},
		{
			name:       "single mechanical transform",
			original:   "asthma  severe",
			cleaned:    "asthma severe",
			transforms: []string{"normalize_text"},
			want:       1.0,
		},
		{
			name:       "single medium transform",
			original:   "diabetis",
			cleaned:    "diabetes",
			transforms: []string{"fix_spelling"},
			want:       0.9,
		},
		{
			name:       "abbreviation expansion",
			original:   "cbc",
			cleaned:    "Complete Blood Count",
			transforms: []string{"expand_abbreviation"},
			want:       0.9,
		},
		{
			name:       "api cleaning is penalized",
			original:   "unknown local term",
			cleaned:    "Standardized Term",
			transforms: []string{"api_cleaning"},
			want:       0.7,
		},
		{
			name:     "many transforms floor the base",
			original: "a",
			cleaned:  "b",
			transforms: []string{
				"fix_spelling", "expand_abbreviation", "standardize_condition",
				"standardize_severity", "fix_spelling", "expand_abbreviation",
			},
			want: 0.5,
		},
		{
			name:       "mechanical transforms lift the base",
			original:   " htn , dm ",
			cleaned:    "htn, dm",
			transforms: []string{"normalize_text", "fix_punctuation"},
			want:       1.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.original, tt.cleaned, tt.transforms)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.1, Clamp(-0.5))
	assert.Equal(t, 0.1, Clamp(0.05))
	assert.Equal(t, 1.0, Clamp(1.3))
	assert.Equal(t, 0.75, Clamp(0.75))
}
