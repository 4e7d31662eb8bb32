// Package normalize provides whitespace and punctuation cleanup for raw
// free-text values. All functions are pure and total: they never fail and
// never alter anything other than spacing and punctuation layout.
package normalize

import (
	"regexp"
	"strings"
)

var (
	multiSpaceRe = regexp.MustCompile(`\s+`)
	commaRe      = regexp.MustCompile(`\s*,\s*`)
	semicolonRe  = regexp.MustCompile(`\s*;\s*`)
	colonRe      = regexp.MustCompile(`\s*:\s*`)

	repeatedSepRe = regexp.MustCompile(`[,;]{2,}`)
	trailingSepRe = regexp.MustCompile(`[,;]\s*$`)
)

// Text collapses runs of whitespace to a single space, trims the ends, and
// normalizes spacing around commas, semicolons, and colons.
func Text(s string) string {
	out := multiSpaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	out = commaRe.ReplaceAllString(out, ", ")
	out = semicolonRe.ReplaceAllString(out, "; ")
	out = colonRe.ReplaceAllString(out, ": ")
	return strings.TrimSpace(out)
}

// Punctuation collapses repeated commas/semicolons to a single comma, fixes
// spacing around separators, and drops a dangling trailing separator. Used as
// the final cleanup after all rule tables have run.
func Punctuation(s string) string {
	out := repeatedSepRe.ReplaceAllString(s, ",")
	out = commaRe.ReplaceAllString(out, ", ")
	out = semicolonRe.ReplaceAllString(out, "; ")
	out = trailingSepRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
