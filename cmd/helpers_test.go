package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/medclean-cli/internal/termcache"
)

// fakeStore is an in-memory termcache.Store for exercising cache setup.
type fakeStore struct {
	migrated bool
	terms    map[string]termcache.Entry
}

func (f *fakeStore) Get(_ context.Context, original string) (*termcache.Entry, error) {
	e, ok := f.terms[strings.ToLower(original)]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeStore) Set(_ context.Context, original, cleaned string, confidence float64) error {
	key := strings.ToLower(original)
	f.terms[key] = termcache.Entry{Original: key, Cleaned: cleaned, Confidence: confidence}
	return nil
}

func (f *fakeStore) Stats(context.Context) (*termcache.Stats, error) {
	return &termcache.Stats{TotalTerms: len(f.terms)}, nil
}

func (f *fakeStore) RecordRun(context.Context, termcache.RunRecord) error { return nil }

func (f *fakeStore) ListRuns(context.Context, int) ([]termcache.RunRecord, error) {
	return nil, nil
}

func (f *fakeStore) Migrate(context.Context) error {
	f.migrated = true
	return nil
}

func (f *fakeStore) Close() error { return nil }

func TestPrepareCacheSeedsKnownTerms(t *testing.T) {
	st := &fakeStore{terms: make(map[string]termcache.Entry)}
	require.NoError(t, prepareCache(context.Background(), st))
	assert.True(t, st.migrated)

	entry, err := st.Get(context.Background(), "htn")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "hypertension", entry.Cleaned)
	assert.InDelta(t, 0.95, entry.Confidence, 1e-9)
}

func TestPrepareCacheIdempotent(t *testing.T) {
	st := &fakeStore{terms: make(map[string]termcache.Entry)}
	require.NoError(t, prepareCache(context.Background(), st))
	before := len(st.terms)
	require.NoError(t, prepareCache(context.Background(), st))
	assert.Equal(t, before, len(st.terms))
}

func TestSplitColumns(t *testing.T) {
	assert.Nil(t, splitColumns(""))
	assert.Equal(t, []string{"test"}, splitColumns("test"))
	assert.Equal(t, []string{"test", "biomarker"}, splitColumns("test,biomarker"))
	assert.Equal(t, []string{"test", "biomarker"}, splitColumns(" test , biomarker ,"))
}

func TestDerivedOutputPath(t *testing.T) {
	assert.Equal(t, "data_cleaned.csv", derivedOutputPath("data.xlsx"))
	assert.Equal(t, "data_cleaned.csv", derivedOutputPath("data.csv"))
	assert.Equal(t, "/tmp/in_cleaned.csv", derivedOutputPath("/tmp/in.xlsx"))
	assert.Equal(t, "noext_cleaned.csv", derivedOutputPath("noext"))
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "12345678", truncateID("123456789abcdef"))
	assert.Equal(t, "short", truncateID("short"))
}

func TestFormatRunsList(t *testing.T) {
	started := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	runs := []termcache.RunRecord{
		{
			ID:          "a1b2c3d4-0000-0000-0000-000000000000",
			InputFile:   "patients.xlsx",
			Columns:     "test,biomarker",
			RowsTotal:   120,
			RowsCleaned: 110,
			StartedAt:   started,
			FinishedAt:  started.Add(42 * time.Second),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	out := buf.String()
	assert.Contains(t, out, "a1b2c3d4")
	assert.Contains(t, out, "patients.xlsx")
	assert.Contains(t, out, "test,biomarker")
	assert.Contains(t, out, "120")
	assert.Contains(t, out, "110")
	assert.Contains(t, out, "42s")
}

func TestLoadDatasetUnsupportedFormat(t *testing.T) {
	_, err := loadDataset("data.parquet", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input format")
}
