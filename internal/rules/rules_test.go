package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableApplyWordBoundaries(t *testing.T) {
	table := NewTable("test", "expand_abbreviation", AbbreviationConfidence, map[string]string{
		"cbc": "Complete Blood Count",
		"pe":  "Pulmonary Embolism",
	})

	tests := []struct {
		name    string
		in      string
		want    string
		matched bool
	}{
		{"whole word", "cbc", "Complete Blood Count", true},
		{"whole word in sentence", "routine cbc today", "routine Complete Blood Count today", true},
		{"substring does not fire", "cbcx", "cbcx", false},
		{"embedded does not fire", "peptic ulcer", "peptic ulcer", false},
		{"punctuation boundary", "cbc, lft", "Complete Blood Count, lft", true},
		{"case insensitive", "CBC", "Complete Blood Count", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, matched := table.Apply(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestTableApplySlashShorthand(t *testing.T) {
	table := NewTable("clinical", "expand_clinical_abbreviation", AbbreviationConfidence, map[string]string{
		"w/":  "with",
		"w/o": "without",
		"r/o": "rule out",
	})

	tests := []struct {
		in   string
		want string
	}{
		{"fever w/ chills", "fever with chills"},
		{"fever w/chills", "fever withchills"},
		{"w/o complications", "without complications"},
		{"r/o appendicitis", "rule out appendicitis"},
	}
	for _, tt := range tests {
		got, _, _ := table.Apply(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestTableApplyLongestPatternWins(t *testing.T) {
	table := NewTable("clinical", "expand_clinical_abbreviation", AbbreviationConfidence, map[string]string{
		"w/":  "with",
		"w/o": "without",
	})

	got, fired, matched := table.Apply("w/o pain")
	assert.Equal(t, "without pain", got)
	assert.True(t, matched)
	require.Len(t, fired, 1)
	assert.Equal(t, "w/o", fired[0])
}

func TestTableApplyIdempotent(t *testing.T) {
	table := NewTable("conditions", "standardize_condition", PhraseConfidence, map[string]string{
		"dm":       "Diabetes Mellitus",
		"diabetes": "Diabetes Mellitus",
	})

	once, _, _ := table.Apply("dm type 2")
	assert.Equal(t, "Diabetes Mellitus type 2", once)

	// Re-applying must not expand "Diabetes" again inside the canonical form.
	twice, fired, matched := table.Apply(once)
	assert.Equal(t, once, twice)
	assert.True(t, matched)
	assert.Empty(t, fired)
}

func TestTableApplyUnchangedMatchStillRecognized(t *testing.T) {
	table := NewTable("conditions", "standardize_condition", PhraseConfidence, map[string]string{
		"asthma": "Asthma",
	})

	out, fired, matched := table.Apply("Asthma")
	assert.Equal(t, "Asthma", out)
	assert.True(t, matched)
	assert.Empty(t, fired)
}

func TestDomainTablesOrder(t *testing.T) {
	for _, domain := range []*Domain{TestDomain(), BiomarkerDomain(), DiagnosisDomain()} {
		tables := domain.Tables()
		require.Len(t, tables, 4)
		assert.Equal(t, TypoConfidence, tables[0].Confidence)
		assert.Equal(t, AbbreviationConfidence, tables[1].Confidence)
		assert.Equal(t, PhraseConfidence, tables[2].Confidence)
		assert.Zero(t, tables[3].Confidence)
		for _, table := range tables {
			assert.Positive(t, table.Size())
		}
		assert.NotEmpty(t, domain.Vocabulary)
	}
}

func TestTestDomainExpansions(t *testing.T) {
	domain := TestDomain()

	out, _, _ := domain.Abbreviations.Apply("cbc")
	assert.Equal(t, "Complete Blood Count", out)

	out, _, _ = domain.Typos.Apply("compelte blod coutn")
	assert.Equal(t, "complete blood count", out)

	out, _, _ = domain.Phrases.Apply("complete blood count")
	assert.Equal(t, "Complete Blood Count", out)
}

func TestBiomarkerDomainExpansions(t *testing.T) {
	domain := BiomarkerDomain()

	out, _, _ := domain.Abbreviations.Apply("na")
	assert.Equal(t, "Sodium", out)

	out, _, _ = domain.Abbreviations.Apply("hb")
	assert.Equal(t, "Hemoglobin", out)

	out, _, _ = domain.Phrases.Apply("sed rate")
	assert.Equal(t, "Erythrocyte Sedimentation Rate", out)
}

func TestDiagnosisDomainExpansions(t *testing.T) {
	domain := DiagnosisDomain()

	out, _, _ := domain.Phrases.Apply("htn and dm2")
	assert.Equal(t, "Hypertension and Diabetes Mellitus Type 2", out)

	// dm must not double-expand to "Diabetes Mellitus Mellitus" on a value
	// that already contains the canonical phrase.
	out, _, _ = domain.Phrases.Apply("diabetes mellitus")
	assert.Equal(t, "Diabetes Mellitus", out)

	out, _, _ = domain.Severity.Apply("severe asthma")
	assert.Equal(t, "Severe asthma", out)
}
