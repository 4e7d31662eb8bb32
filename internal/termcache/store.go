// Package termcache persists standardized medical terms so repeated values
// are resolved without re-running the cleaning pipeline or the model API.
package termcache

import (
	"context"
	"time"
)

// Entry is one cached standardization. Original is always stored lowercased.
type Entry struct {
	Original   string    `json:"original"`
	Cleaned    string    `json:"cleaned"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats summarizes cache contents.
type Stats struct {
	TotalTerms     int `json:"total_terms" yaml:"total_terms"`
	HighConfidence int `json:"high_confidence" yaml:"high_confidence"`
}

// RunRecord captures one dataset processing run for auditing.
type RunRecord struct {
	ID          string    `json:"id"`
	InputFile   string    `json:"input_file"`
	Columns     string    `json:"columns"`
	RowsTotal   int       `json:"rows_total"`
	RowsCleaned int       `json:"rows_cleaned"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Store is the persistence interface for the term cache.
type Store interface {
	// Terms
	Get(ctx context.Context, original string) (*Entry, error)
	Set(ctx context.Context, original, cleaned string, confidence float64) error
	Stats(ctx context.Context) (*Stats, error)

	// Runs
	RecordRun(ctx context.Context, run RunRecord) error
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Seed pre-populates a store with well-known abbreviations, misspellings,
// and colloquial variants at high confidence. Existing entries for the same
// original are overwritten.
func Seed(ctx context.Context, s Store) error {
	for original, cleaned := range seedTerms {
		if err := s.Set(ctx, original, cleaned, seedConfidence); err != nil {
			return err
		}
	}
	return nil
}

const seedConfidence = 0.95

var seedTerms = map[string]string{
	// Abbreviations
	"htn":  "hypertension",
	"dm":   "diabetes mellitus",
	"dm2":  "diabetes mellitus type 2",
	"mi":   "myocardial infarction",
	"copd": "chronic obstructive pulmonary disease",
	"bp":   "blood pressure",
	"hr":   "heart rate",
	"rr":   "respiratory rate",
	"temp": "temperature",
	"wbc":  "white blood cell count",
	"rbc":  "red blood cell count",
	"hgb":  "hemoglobin",
	"hct":  "hematocrit",

	// Misspellings
	"diabetis":     "diabetes",
	"hypertention": "hypertension",
	"infaction":    "infarction",
	"pnemonia":     "pneumonia",
	"asthama":      "asthma",
	"bronchitus":   "bronchitis",
	"arthritus":    "arthritis",
	"apendix":      "appendix",
	"rhumatism":    "rheumatism",

	// Colloquial variants
	"high bp":             "hypertension",
	"high blood pressure": "hypertension",
	"sugar":               "diabetes mellitus",
	"heart attack":        "myocardial infarction",
}
