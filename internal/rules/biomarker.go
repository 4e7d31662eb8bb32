package rules

// BiomarkerDomain returns the rule set for biomarker/parameter names.
func BiomarkerDomain() *Domain {
	return &Domain{
		Typos: NewTable("biomarker_typos", "fix_spelling", TypoConfidence, map[string]string{
			"hemoglobine":   "hemoglobin",
			"creatinin":     "creatinine",
			"createnine":    "creatinine",
			"glucos":        "glucose",
			"cholestrol":    "cholesterol",
			"triglicerides": "triglycerides",
			"billirubin":    "bilirubin",
			"albumen":       "albumin",
			"sodiums":       "sodium",
			"potasium":      "potassium",
			"cloride":       "chloride",
		}),
		Abbreviations: NewTable("biomarker_abbreviations", "standardize_biomarker", AbbreviationConfidence, map[string]string{
			"hb":       "Hemoglobin",
			"hgb":      "Hemoglobin",
			"hct":      "Hematocrit",
			"wbc":      "White Blood Cell Count",
			"rbc":      "Red Blood Cell Count",
			"plt":      "Platelet Count",
			"mcv":      "Mean Corpuscular Volume",
			"mch":      "Mean Corpuscular Hemoglobin",
			"mchc":     "Mean Corpuscular Hemoglobin Concentration",
			"glu":      "Glucose",
			"bun":      "Blood Urea Nitrogen",
			"crea":     "Creatinine",
			"cr":       "Creatinine",
			"na":       "Sodium",
			"k":        "Potassium",
			"cl":       "Chloride",
			"co2":      "Carbon Dioxide",
			"hco3":     "Bicarbonate",
			"alt":      "Alanine Aminotransferase",
			"ast":      "Aspartate Aminotransferase",
			"alp":      "Alkaline Phosphatase",
			"alkphos":  "Alkaline Phosphatase",
			"bili":     "Total Bilirubin",
			"alb":      "Albumin",
			"chol":     "Total Cholesterol",
			"hdl":      "HDL Cholesterol",
			"ldl":      "LDL Cholesterol",
			"trig":     "Triglycerides",
			"trop":     "Troponin",
			"ck":       "Creatine Kinase",
			"ckmb":     "CK-MB",
			"bnp":      "B-type Natriuretic Peptide",
			"ntprobnp": "NT-proBNP",
			"tsh":      "Thyroid Stimulating Hormone",
			"t3":       "Triiodothyronine",
			"t4":       "Thyroxine",
			"ft3":      "Free T3",
			"ft4":      "Free T4",
			"hba1c":    "Hemoglobin A1c",
			"a1c":      "Hemoglobin A1c",
			"b12":      "Vitamin B12",
			"esr":      "Erythrocyte Sedimentation Rate",
			"crp":      "C-Reactive Protein",
		}),
		Phrases: NewTable("biomarker_phrases", "standardize_biomarker", PhraseConfidence, map[string]string{
			"hemoglobin":    "Hemoglobin",
			"hematocrit":    "Hematocrit",
			"platelets":     "Platelet Count",
			"glucose":       "Glucose",
			"sugar":         "Glucose",
			"sodium":        "Sodium",
			"potassium":     "Potassium",
			"chloride":      "Chloride",
			"bicarbonate":   "Bicarbonate",
			"creatinine":    "Creatinine",
			"urea":          "Blood Urea Nitrogen",
			"bilirubin":     "Total Bilirubin",
			"albumin":       "Albumin",
			"protein":       "Total Protein",
			"cholesterol":   "Total Cholesterol",
			"triglycerides": "Triglycerides",
			"troponin":      "Troponin",
			"insulin":       "Insulin",
			"c-peptide":     "C-Peptide",
			"sed rate":      "Erythrocyte Sedimentation Rate",
			"vit d":         "Vitamin D",
			"vitamin d":     "Vitamin D",
			"vit b12":       "Vitamin B12",
			"folate":        "Folate",
			"folic acid":    "Folate",
		}),
		Severity: NewTable("biomarker_qualifiers", "standardize_qualifier", 0, map[string]string{
			"free":    "Free",
			"total":   "Total",
			"serum":   "Serum",
			"plasma":  "Plasma",
			"fasting": "Fasting",
		}),
		Vocabulary: []string{
			"Hemoglobin",
			"Hematocrit",
			"White Blood Cell Count",
			"Red Blood Cell Count",
			"Platelet Count",
			"Mean Corpuscular Volume",
			"Glucose",
			"Blood Urea Nitrogen",
			"Creatinine",
			"Sodium",
			"Potassium",
			"Chloride",
			"Bicarbonate",
			"Alanine Aminotransferase",
			"Aspartate Aminotransferase",
			"Alkaline Phosphatase",
			"Total Bilirubin",
			"Albumin",
			"Total Protein",
			"Total Cholesterol",
			"HDL Cholesterol",
			"LDL Cholesterol",
			"Triglycerides",
			"Troponin",
			"Creatine Kinase",
			"Thyroid Stimulating Hormone",
			"Thyroxine",
			"Triiodothyronine",
			"Hemoglobin A1c",
			"Insulin",
			"C-Peptide",
			"Erythrocyte Sedimentation Rate",
			"C-Reactive Protein",
			"Vitamin D",
			"Vitamin B12",
			"Folate",
		},
	}
}

// BiomarkerUnits lists measurement units that belong in a result column, not
// in a biomarker name. They are stripped before the correction tables run.
var BiomarkerUnits = []string{
	"mg/dl", "mmol/l", "g/dl", "meq/l", "ng/ml",
	"pg/ml", "iu/l", "u/l", "mu/l", "ng/dl", "ug/dl", "mcg/dl",
	"cells/ul", "/hpf", "/lpf", "%",
}
