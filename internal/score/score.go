// Package score computes confidence values for cleaning transformations.
package score

// Transform confidence classes. High-trust transforms are mechanical
// (spacing, case, punctuation); low-trust ones involve external calls or
// heavy restructuring.
var (
	highConfidenceTransforms = map[string]struct{}{
		"normalize_text":     {},
		"fix_spacing":        {},
		"standardize_case":   {},
		"fix_capitalization": {},
		"fix_punctuation":    {},
	}
	lowConfidenceTransforms = map[string]struct{}{
		"api_cleaning":    {},
		"complex_parsing": {},
	}
)

// Confidence scores a transformation from original to cleaned given the
// transform tags that were applied. Identical values score 1.0; otherwise the
// base starts at 1.0 minus 0.1 per transform (floored at 0.5), shifted up 0.1
// for each mechanical transform and down 0.2 for each low-trust one, and
// clamped to [0.1, 1.0].
func Confidence(original, cleaned string, transforms []string) float64 {
	if original == cleaned {
		return 1.0
	}

	base := 1.0 - float64(len(transforms))*0.1
	if base < 0.5 {
		base = 0.5
	}

	adjustment := 0.0
	for _, transform := range transforms {
		if _, ok := highConfidenceTransforms[transform]; ok {
			adjustment += 0.1
		} else if _, ok := lowConfidenceTransforms[transform]; ok {
			adjustment -= 0.2
		}
	}

	return Clamp(base + adjustment)
}

// Clamp bounds a confidence value to [0.1, 1.0].
func Clamp(c float64) float64 {
	if c < 0.1 {
		return 0.1
	}
	if c > 1.0 {
		return 1.0
	}
	return c
}
