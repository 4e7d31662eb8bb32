package dataset

import (
	"fmt"
	"strings"
)

// ExpectedColumns are the columns a patient dataset is expected to carry.
var ExpectedColumns = []string{"patient_id", "test", "biomarker", "result"}

// ValidationResult reports structural problems and quality warnings for a
// loaded dataset.
type ValidationResult struct {
	Valid    bool     `json:"is_valid" yaml:"is_valid"`
	Issues   []string `json:"issues" yaml:"issues"`
	Warnings []string `json:"warnings" yaml:"warnings"`

	TotalRows         int     `json:"total_rows" yaml:"total_rows"`
	TotalColumns      int     `json:"total_columns" yaml:"total_columns"`
	MissingValuesPct  float64 `json:"missing_values_percentage" yaml:"missing_values_percentage"`
	DuplicateRows     int     `json:"duplicate_rows" yaml:"duplicate_rows"`
}

// Validate checks a dataset against the expected medical layout. Missing
// expected columns make the result invalid; quality problems only warn.
func Validate(d *Dataset) ValidationResult {
	res := ValidationResult{
		Valid:        true,
		TotalRows:    d.Rows(),
		TotalColumns: len(d.Columns()),
	}

	var missing []string
	for _, col := range ExpectedColumns {
		if !d.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		res.Valid = false
		res.Issues = append(res.Issues,
			fmt.Sprintf("missing expected columns: %s", strings.Join(missing, ", ")))
	}

	totalCells := d.Rows() * len(d.Columns())
	if totalCells > 0 {
		nulls := 0
		for _, col := range d.Columns() {
			nulls += d.NullCount(col)
		}
		res.MissingValuesPct = float64(nulls) / float64(totalCells) * 100
	}
	if res.MissingValuesPct > 50 {
		res.Warnings = append(res.Warnings, "high percentage of missing values (>50%)")
	}

	res.DuplicateRows = countDuplicateRows(d)
	if float64(res.DuplicateRows) > float64(d.Rows())*0.1 {
		res.Warnings = append(res.Warnings, "high number of duplicate rows (>10%)")
	}

	return res
}

func countDuplicateRows(d *Dataset) int {
	seen := make(map[string]struct{}, d.Rows())
	columns := d.Columns()
	dupes := 0

	var b strings.Builder
	for i := 0; i < d.Rows(); i++ {
		b.Reset()
		for _, col := range columns {
			if v := d.Cell(col, i); v != nil {
				b.WriteString(*v)
			}
			b.WriteByte('\x1f')
		}
		key := b.String()
		if _, ok := seen[key]; ok {
			dupes++
			continue
		}
		seen[key] = struct{}{}
	}
	return dupes
}
