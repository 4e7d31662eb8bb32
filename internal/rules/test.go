package rules

// TestDomain returns the rule set for laboratory test/investigation names.
func TestDomain() *Domain {
	return &Domain{
		Typos: NewTable("test_typos", "fix_spelling", TypoConfidence, map[string]string{
			"compelte":        "complete",
			"blod":            "blood",
			"coutn":           "count",
			"functin":         "function",
			"functon":         "function",
			"tset":            "test",
			"pnarl":           "panel",
			"panle":           "panel",
			"scna":            "scan",
			"echocardiogrm":   "echocardiogram",
			"electrocardigrm": "electrocardiogram",
		}),
		Abbreviations: NewTable("test_abbreviations", "expand_abbreviation", AbbreviationConfidence, map[string]string{
			"cbc":   "Complete Blood Count",
			"fbc":   "Full Blood Count",
			"bmp":   "Basic Metabolic Panel",
			"cmp":   "Comprehensive Metabolic Panel",
			"lft":   "Liver Function Test",
			"rft":   "Renal Function Test",
			"ecg":   "Electrocardiogram",
			"ekg":   "Electrocardiogram",
			"echo":  "Echocardiogram",
			"tmt":   "Treadmill Test",
			"usg":   "Ultrasound",
			"mri":   "MRI Scan",
			"tft":   "Thyroid Function Test",
			"hba1c": "HbA1c",
			"xray":  "X-Ray",
		}),
		Phrases: NewTable("test_phrases", "standardize_test_name", PhraseConfidence, map[string]string{
			"complete blood count": "Complete Blood Count",
			"full blood count":     "Full Blood Count",
			"blood count":          "Complete Blood Count",
			"hemogram":             "Complete Blood Count",
			"liver function":       "Liver Function Test",
			"kidney function":      "Renal Function Test",
			"lipid profile":        "Lipid Panel",
			"lipid panel":          "Lipid Panel",
			"stress test":          "Cardiac Stress Test",
			"thyroid function":     "Thyroid Function Test",
			"ct scan":              "CT Scan",
			"x-ray":                "X-Ray",
			"ultrasound":           "Ultrasound",
			"glucose":              "Blood Glucose",
			"sugar":                "Blood Glucose",
		}),
		Severity: NewTable("test_qualifiers", "standardize_qualifier", 0, map[string]string{
			"fasting":       "Fasting",
			"random":        "Random",
			"post prandial": "Postprandial",
			"routine":       "Routine",
			"stat":          "STAT",
			"urgent":        "Urgent",
		}),
		Vocabulary: []string{
			"Complete Blood Count",
			"Full Blood Count",
			"Basic Metabolic Panel",
			"Comprehensive Metabolic Panel",
			"Liver Function Test",
			"Renal Function Test",
			"Lipid Panel",
			"Electrocardiogram",
			"Echocardiogram",
			"Cardiac Stress Test",
			"Treadmill Test",
			"CT Scan",
			"MRI Scan",
			"X-Ray",
			"Ultrasound",
			"Thyroid Function Test",
			"HbA1c",
			"Blood Glucose",
		},
	}
}

// TestSourceSuffixes lists site/source suffixes stripped from test names
// before the correction tables run.
var TestSourceSuffixes = []string{
	"_lab", "_hospital", "_clinic", "_center", "_centre",
	"_test", "_investigation", "_exam", "_study",
}
