package dataset

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX loader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// LoadXLSX reads an XLSX file into a Dataset. The first row is the header;
// blank cells become nulls.
func LoadXLSX(path string, opts XLSXOptions) (*Dataset, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.New("xlsx: empty sheet")
	}

	header := rowToStrings(sheet.Rows[0])
	d := New(header)
	for _, row := range sheet.Rows[1:] {
		d.AppendRow(rowToCells(row, len(header)))
	}
	return d, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = strings.TrimSpace(cell.String())
	}
	return cells
}

func rowToCells(row *xlsx.Row, width int) []*string {
	cells := make([]*string, width)
	for j, cell := range row.Cells {
		if j >= width {
			break
		}
		v := cell.String()
		if strings.TrimSpace(v) == "" {
			continue
		}
		cells[j] = &v
	}
	return cells
}
