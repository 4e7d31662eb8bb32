package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var vocabulary = []string{
	"Complete Blood Count",
	"Liver Function Test",
	"Lipid Panel",
	"Electrocardiogram",
}

func TestBest(t *testing.T) {
	m := New(vocabulary)

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"exact", "Complete Blood Count", "Complete Blood Count", true},
		{"case insensitive", "complete blood count", "Complete Blood Count", true},
		{"near miss", "complete blood cont", "Complete Blood Count", true},
		{"one typo", "lipid pannel", "Lipid Panel", true},
		{"gibberish", "xyzzy123", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, score, ok := m.Best(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.Greater(t, score, DefaultThreshold)
			}
		})
	}
}

func TestBestRejectsAtThreshold(t *testing.T) {
	// Threshold 1.0 means only a perfect score would pass, and a perfect
	// score is not strictly greater than 1.0, so nothing matches.
	m := NewWithThreshold(vocabulary, 1.0)
	_, _, ok := m.Best("Complete Blood Count")
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	m := New(vocabulary)
	assert.True(t, m.Contains("lipid panel"))
	assert.True(t, m.Contains("Electrocardiogram"))
	assert.False(t, m.Contains("lipid"))
}
