package rules

// DiagnosisDomain returns the rule set for provisional and final diagnosis
// text. Diagnosis values are clinical sentences rather than single names, so
// the tables lean toward in-place phrase rewriting: spelling fixes first, then
// clinical shorthand (w/, r/o, h/o), then condition standardization, then
// severity capitalization.
func DiagnosisDomain() *Domain {
	return &Domain{
		Typos: NewTable("diagnosis_spelling", "fix_spelling", TypoConfidence, map[string]string{
			"diabetis":     "diabetes",
			"hypertention": "hypertension",
			"asthama":      "asthma",
			"bronchitus":   "bronchitis",
			"pneumnia":     "pneumonia",
			"infaction":    "infarction",
			"arthritus":    "arthritis",
			"gastritus":    "gastritis",
			"migrene":      "migraine",
			"anxeity":      "anxiety",
			"depresion":    "depression",
			"hipothyroid":  "hypothyroid",
			"cronary":      "coronary",
			"pulmonery":    "pulmonary",
			"cerebal":      "cerebral",
		}),
		Abbreviations: NewTable("clinical_abbreviations", "expand_clinical_abbreviation", AbbreviationConfidence, map[string]string{
			"w/":  "with",
			"w/o": "without",
			"r/o": "rule out",
			"h/o": "history of",
			"f/u": "follow up",
			"c/o": "complains of",
			"s/p": "status post",
			"d/c": "discontinue",
			"prn": "as needed",
			"bid": "twice daily",
			"tid": "three times daily",
			"qid": "four times daily",
			"qod": "every other day",
			"hs":  "at bedtime",
			"ac":  "before meals",
			"pc":  "after meals",
		}),
		Phrases: NewTable("condition_mappings", "standardize_condition", PhraseConfidence, map[string]string{
			"htn":                 "Hypertension",
			"high bp":             "Hypertension",
			"high blood pressure": "Hypertension",
			"mi":                  "Myocardial Infarction",
			"heart attack":        "Myocardial Infarction",
			"cad":                 "Coronary Artery Disease",
			"chf":                 "Congestive Heart Failure",
			"heart failure":       "Congestive Heart Failure",
			"afib":                "Atrial Fibrillation",
			"a fib":               "Atrial Fibrillation",
			"dvt":                 "Deep Vein Thrombosis",
			"pe":                  "Pulmonary Embolism",

			"dm":           "Diabetes Mellitus",
			"dm2":          "Diabetes Mellitus Type 2",
			"diabetes":     "Diabetes Mellitus",
			"diabetic":     "Diabetes Mellitus",
			"iddm":         "Insulin Dependent Diabetes Mellitus",
			"niddm":        "Non-Insulin Dependent Diabetes Mellitus",
			"hypothyroid":  "Hypothyroidism",
			"hyperthyroid": "Hyperthyroidism",

			"copd":       "Chronic Obstructive Pulmonary Disease",
			"asthma":     "Asthma",
			"pneumonia":  "Pneumonia",
			"bronchitis": "Bronchitis",
			"tb":         "Tuberculosis",
			"urti":       "Upper Respiratory Tract Infection",
			"uri":        "Upper Respiratory Tract Infection",

			"gerd":         "Gastroesophageal Reflux Disease",
			"acid reflux":  "Gastroesophageal Reflux Disease",
			"ibs":          "Irritable Bowel Syndrome",
			"ibd":          "Inflammatory Bowel Disease",
			"gastritis":    "Gastritis",
			"peptic ulcer": "Peptic Ulcer Disease",

			"ckd":            "Chronic Kidney Disease",
			"kidney disease": "Chronic Kidney Disease",
			"renal failure":  "Renal Failure",
			"kidney failure": "Renal Failure",
			"uti":            "Urinary Tract Infection",

			"cva":      "Cerebrovascular Accident",
			"stroke":   "Cerebrovascular Accident",
			"tia":      "Transient Ischemic Attack",
			"seizure":  "Seizure Disorder",
			"epilepsy": "Epilepsy",
			"migraine": "Migraine",
			"headache": "Headache",

			"depression": "Depression",
			"anxiety":    "Anxiety Disorder",
			"ptsd":       "Post-Traumatic Stress Disorder",
			"bipolar":    "Bipolar Disorder",

			"oa":                   "Osteoarthritis",
			"osteoarthritis":       "Osteoarthritis",
			"ra":                   "Rheumatoid Arthritis",
			"rheumatoid arthritis": "Rheumatoid Arthritis",
			"back pain":            "Back Pain",
			"joint pain":           "Arthralgia",

			"covid":      "COVID-19",
			"covid-19":   "COVID-19",
			"sars-cov-2": "COVID-19",
			"flu":        "Influenza",
			"influenza":  "Influenza",
		}),
		Severity: NewTable("severity_terms", "standardize_severity", 0, map[string]string{
			"mild":         "Mild",
			"moderate":     "Moderate",
			"severe":       "Severe",
			"acute":        "Acute",
			"chronic":      "Chronic",
			"stable":       "Stable",
			"unstable":     "Unstable",
			"controlled":   "Controlled",
			"uncontrolled": "Uncontrolled",
		}),
		Vocabulary: []string{
			"Hypertension",
			"Myocardial Infarction",
			"Coronary Artery Disease",
			"Congestive Heart Failure",
			"Atrial Fibrillation",
			"Deep Vein Thrombosis",
			"Pulmonary Embolism",
			"Diabetes Mellitus",
			"Diabetes Mellitus Type 2",
			"Hypothyroidism",
			"Hyperthyroidism",
			"Chronic Obstructive Pulmonary Disease",
			"Asthma",
			"Pneumonia",
			"Bronchitis",
			"Tuberculosis",
			"Upper Respiratory Tract Infection",
			"Gastroesophageal Reflux Disease",
			"Irritable Bowel Syndrome",
			"Inflammatory Bowel Disease",
			"Gastritis",
			"Peptic Ulcer Disease",
			"Chronic Kidney Disease",
			"Renal Failure",
			"Urinary Tract Infection",
			"Cerebrovascular Accident",
			"Transient Ischemic Attack",
			"Seizure Disorder",
			"Epilepsy",
			"Migraine",
			"Headache",
			"Depression",
			"Anxiety Disorder",
			"Post-Traumatic Stress Disorder",
			"Bipolar Disorder",
			"Osteoarthritis",
			"Rheumatoid Arthritis",
			"Back Pain",
			"Arthralgia",
			"COVID-19",
			"Influenza",
		},
	}
}
