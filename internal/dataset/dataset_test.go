package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestDatasetBasics(t *testing.T) {
	d := New([]string{"patient_id", "test"})
	d.AppendRow([]*string{ptr("p1"), ptr("cbc")})
	d.AppendRow([]*string{ptr("p2"), nil})

	assert.Equal(t, 2, d.Rows())
	assert.Equal(t, []string{"patient_id", "test"}, d.Columns())
	assert.True(t, d.HasColumn("test"))
	assert.False(t, d.HasColumn("cleaned_test"))

	require.NotNil(t, d.Cell("test", 0))
	assert.Equal(t, "cbc", *d.Cell("test", 0))
	assert.Nil(t, d.Cell("test", 1))
	assert.Nil(t, d.Cell("test", 99))

	assert.Equal(t, 1, d.NullCount("test"))
	assert.Equal(t, 1, d.UniqueCount("test"))
	assert.Equal(t, 2, d.UniqueCount("patient_id"))
}

func TestDatasetSetColumn(t *testing.T) {
	d := New([]string{"test"})
	d.AppendRow([]*string{ptr("cbc")})
	d.AppendRow([]*string{ptr("lft")})

	err := d.SetColumn("cleaned_test", []*string{ptr("Complete Blood Count")})
	assert.Error(t, err)

	require.NoError(t, d.SetColumn("cleaned_test", []*string{ptr("Complete Blood Count"), ptr("Liver Function Test")}))
	assert.Equal(t, []string{"test", "cleaned_test"}, d.Columns())
	assert.Equal(t, "Liver Function Test", *d.Cell("cleaned_test", 1))

	// Replacing an existing column keeps order stable.
	require.NoError(t, d.SetColumn("cleaned_test", []*string{ptr("a"), ptr("b")}))
	assert.Equal(t, []string{"test", "cleaned_test"}, d.Columns())
}

func TestCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.csv")

	require.NoError(t, os.WriteFile(in, []byte("patient_id,test,biomarker,result\np1,cbc,hb,12.5\np2,,na,140\n"), 0o644))

	d, err := LoadCSV(in)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Rows())
	assert.Nil(t, d.Cell("test", 1))
	assert.Equal(t, "na", *d.Cell("biomarker", 1))

	require.NoError(t, WriteCSV(d, out))

	d2, err := LoadCSV(out)
	require.NoError(t, err)
	assert.Equal(t, d.Columns(), d2.Columns())
	assert.Equal(t, d.Rows(), d2.Rows())
	assert.Equal(t, "12.5", *d2.Cell("result", 0))
	assert.Nil(t, d2.Cell("test", 1))
}

func TestLoadCSVEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := LoadCSV(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	d := New([]string{"patient_id", "test", "biomarker", "result"})
	d.AppendRow([]*string{ptr("p1"), ptr("cbc"), ptr("hb"), ptr("12.5")})
	d.AppendRow([]*string{ptr("p2"), ptr("lft"), ptr("alt"), ptr("34")})

	res := Validate(d)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Issues)
	assert.Equal(t, 2, res.TotalRows)
	assert.Zero(t, res.DuplicateRows)
}

func TestValidateMissingColumns(t *testing.T) {
	d := New([]string{"patient_id", "notes"})
	d.AppendRow([]*string{ptr("p1"), ptr("ok")})

	res := Validate(d)
	assert.False(t, res.Valid)
	require.Len(t, res.Issues, 1)
	assert.Contains(t, res.Issues[0], "test")
	assert.Contains(t, res.Issues[0], "biomarker")
	assert.Contains(t, res.Issues[0], "result")
}

func TestValidateWarnings(t *testing.T) {
	d := New([]string{"patient_id", "test", "biomarker", "result"})
	d.AppendRow([]*string{ptr("p1"), nil, nil, nil})
	d.AppendRow([]*string{ptr("p1"), nil, nil, nil})
	d.AppendRow([]*string{ptr("p1"), nil, nil, nil})

	res := Validate(d)
	assert.True(t, res.Valid)
	assert.Greater(t, res.MissingValuesPct, 50.0)
	assert.Equal(t, 2, res.DuplicateRows)
	assert.Len(t, res.Warnings, 2)
}
