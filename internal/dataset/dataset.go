// Package dataset holds the tabular in-memory representation of a patient
// data file and its loaders and writers.
package dataset

import (
	"github.com/rotisserie/eris"
)

// Dataset is a column-oriented table. Cell values are pointers so missing
// cells stay distinguishable from empty strings.
type Dataset struct {
	columns []string
	data    map[string][]*string
	rows    int
}

// New creates an empty dataset with the given column order.
func New(columns []string) *Dataset {
	data := make(map[string][]*string, len(columns))
	for _, col := range columns {
		data[col] = nil
	}
	return &Dataset{columns: append([]string(nil), columns...), data: data}
}

// Columns returns column names in file order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// Rows returns the number of data rows.
func (d *Dataset) Rows() int { return d.rows }

// HasColumn reports whether the dataset contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.data[name]
	return ok
}

// Column returns the cell values for a column, nil if it does not exist.
func (d *Dataset) Column(name string) []*string {
	return d.data[name]
}

// AppendRow adds one row. Cells beyond len(values) are left missing.
func (d *Dataset) AppendRow(values []*string) {
	for i, col := range d.columns {
		var v *string
		if i < len(values) {
			v = values[i]
		}
		d.data[col] = append(d.data[col], v)
	}
	d.rows++
}

// SetColumn adds or replaces a whole column. New columns are appended to the
// column order. The series length must match the row count.
func (d *Dataset) SetColumn(name string, values []*string) error {
	if len(values) != d.rows {
		return eris.Errorf("dataset: column %s has %d values, want %d", name, len(values), d.rows)
	}
	if _, exists := d.data[name]; !exists {
		d.columns = append(d.columns, name)
	}
	d.data[name] = values
	return nil
}

// Cell returns the value at (row, column), nil when missing.
func (d *Dataset) Cell(column string, row int) *string {
	series, ok := d.data[column]
	if !ok || row < 0 || row >= len(series) {
		return nil
	}
	return series[row]
}

// NullCount returns the number of missing cells in a column.
func (d *Dataset) NullCount(column string) int {
	n := 0
	for _, v := range d.data[column] {
		if v == nil {
			n++
		}
	}
	return n
}

// UniqueCount returns the number of distinct non-null values in a column.
func (d *Dataset) UniqueCount(column string) int {
	seen := make(map[string]struct{})
	for _, v := range d.data[column] {
		if v != nil {
			seen[*v] = struct{}{}
		}
	}
	return len(seen)
}
