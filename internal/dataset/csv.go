package dataset

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// LoadCSV reads a CSV file into a Dataset. The first row is the header;
// empty fields become nulls.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "csv: open file")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "csv: read")
	}
	if len(records) == 0 {
		return nil, eris.New("csv: empty file")
	}

	d := New(records[0])
	width := len(records[0])
	for _, record := range records[1:] {
		cells := make([]*string, width)
		for j := 0; j < width && j < len(record); j++ {
			if record[j] == "" {
				continue
			}
			v := record[j]
			cells[j] = &v
		}
		d.AppendRow(cells)
	}
	return d, nil
}

// WriteCSV writes the dataset to a CSV file. Null cells are written as empty
// fields.
func WriteCSV(d *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "csv: create file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	columns := d.Columns()
	if err := w.Write(columns); err != nil {
		return eris.Wrap(err, "csv: write header")
	}

	record := make([]string, len(columns))
	for i := 0; i < d.Rows(); i++ {
		for j, col := range columns {
			record[j] = ""
			if v := d.Cell(col, i); v != nil {
				record[j] = *v
			}
		}
		if err := w.Write(record); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "csv: flush")
	}
	return eris.Wrap(f.Close(), "csv: close")
}
