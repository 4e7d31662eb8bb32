package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapse spaces", "complete   blood    count", "complete blood count"},
		{"trim ends", "  cbc  ", "cbc"},
		{"tabs and newlines", "lipid\tprofile\nfasting", "lipid profile fasting"},
		{"comma spacing", "htn ,dm", "htn, dm"},
		{"semicolon spacing", "fever ;chills", "fever; chills"},
		{"colon spacing", "impression :pneumonia", "impression: pneumonia"},
		{"empty", "", ""},
		{"already clean", "Complete Blood Count", "Complete Blood Count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestPunctuation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"repeated commas", "htn,,dm", "htn, dm"},
		{"mixed separators", "htn,;dm", "htn, dm"},
		{"trailing comma", "hypertension,", "hypertension"},
		{"trailing semicolon with space", "asthma ; ", "asthma"},
		{"clean passthrough", "Hypertension, Diabetes Mellitus", "Hypertension, Diabetes Mellitus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Punctuation(tt.in))
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	in := "  fever , chills ;  cough "
	once := Punctuation(Text(in))
	assert.Equal(t, once, Punctuation(Text(once)))
}
