package processor

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/medclean-cli/internal/dataset"
	"github.com/sells-group/medclean-cli/internal/termcache"
)

// NotProcessed marks output cells for rows past the requested row limit.
const NotProcessed = "Not processed"

// defaultPriority orders columns without an explicit priority entry last.
const defaultPriority = 999

type factory func(name string, cache termcache.Store, cleaner TermCleaner) Processor

var columnFactories = map[string]factory{
	// Laboratory and test related
	"test":             NewTest,
	"lab_testname_col": NewTest,
	"biomarker":        NewBiomarker,
	"norm_biomarker":   NewBiomarker,

	// Clinical diagnosis
	"provisionaldiagnosis": NewDiagnosis,
	"finaldiagnosis":       NewDiagnosis,

	// Clinical notes share the diagnosis variant
	"chief_remark":  NewDiagnosis,
	"vital_remark":  NewDiagnosis,
	"clinical_note": NewDiagnosis,
}

// ColumnDescriptions documents the dataset columns the manager knows about,
// processable or not.
var ColumnDescriptions = map[string]string{
	"test":                 "Name of the laboratory test/investigation performed",
	"patient_id":           "Unique identifier for the patient",
	"biomarker":            "Specific biomarker/parameter measured within the test",
	"result":               "Recorded finding for the biomarker",
	"result_dt":            "Date/time when the result was recorded",
	"flag":                 "Qualitative marker for result interpretation",
	"norm_biomarker":       "Normalized or standardized biomarker name(s)",
	"chief_remark":         "Doctor's primary remark or provisional note",
	"vital_remark":         "Remarks related to vital signs",
	"clinical_note":        "Additional clinical observations or history",
	"lab_site":             "Name of the laboratory or collection center",
	"lab_testname_col":     "Alternate/test display name for the lab test",
	"provisionaldiagnosis": "Clinician's provisional diagnosis or notes",
	"finaldiagnosis":       "Final diagnosis after evaluation",
}

// columnPriorities fixes the processing order; lower runs first.
var columnPriorities = map[string]int{
	"test":                 1,
	"biomarker":            1,
	"provisionaldiagnosis": 2,
	"finaldiagnosis":       2,
	"chief_remark":         3,
	"clinical_note":        3,
	"norm_biomarker":       4,
	"lab_testname_col":     4,
	"vital_remark":         5,
}

// ColumnStats is one column's entry in the processing report. Error is set
// when the column failed wholesale; other columns still complete.
type ColumnStats struct {
	Stats Stats  `json:"stats" yaml:"stats"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// AggregateStats rolls per-column counters into dataset totals.
type AggregateStats struct {
	TotalProcessed   int                    `json:"total_values_processed" yaml:"total_values_processed"`
	TotalSuccessful  int                    `json:"total_successful_cleanings" yaml:"total_successful_cleanings"`
	TotalFailed      int                    `json:"total_failed_cleanings" yaml:"total_failed_cleanings"`
	SuccessRate      float64                `json:"overall_success_rate" yaml:"overall_success_rate"`
	ColumnsProcessed int                    `json:"columns_processed" yaml:"columns_processed"`
	Columns          map[string]ColumnStats `json:"column_details" yaml:"column_details"`
}

// Manager routes columns to their processors and orchestrates dataset-wide
// analysis and cleaning. One processor instance is memoized per column name;
// all processors share the manager's term cache by reference.
type Manager struct {
	cache      termcache.Store
	cleaner    TermCleaner
	processors map[string]Processor
}

// NewManager creates a Manager. cache and cleaner may be nil; a nil cleaner
// disables external enrichment.
func NewManager(cache termcache.Store, cleaner TermCleaner) *Manager {
	return &Manager{
		cache:      cache,
		cleaner:    cleaner,
		processors: make(map[string]Processor),
	}
}

// Processor returns the memoized processor for a column, constructing it on
// first use. ok is false for column names with no registered processor.
func (m *Manager) Processor(name string) (Processor, bool) {
	if p, ok := m.processors[name]; ok {
		return p, true
	}
	f, ok := columnFactories[name]
	if !ok {
		return nil, false
	}
	p := f(name, m.cache, m.cleaner)
	m.processors[name] = p
	return p, true
}

// AvailableProcessors lists processable column names with descriptions.
func (m *Manager) AvailableProcessors() map[string]string {
	out := make(map[string]string, len(columnFactories))
	for name := range columnFactories {
		desc, ok := ColumnDescriptions[name]
		if !ok {
			desc = "No description available"
		}
		out[name] = desc
	}
	return out
}

// resolveColumns filters the request to columns that exist in the dataset
// and have a processor, sorted by priority with input order as tie-break.
// Unknown names are dropped silently.
func (m *Manager) resolveColumns(d *dataset.Dataset, requested []string) []string {
	if len(requested) == 0 {
		requested = d.Columns()
	}

	var cols []string
	for _, name := range requested {
		if !d.HasColumn(name) {
			continue
		}
		if _, ok := columnFactories[name]; !ok {
			continue
		}
		cols = append(cols, name)
	}

	sort.SliceStable(cols, func(i, j int) bool {
		return priorityOf(cols[i]) < priorityOf(cols[j])
	})
	return cols
}

func priorityOf(name string) int {
	if p, ok := columnPriorities[name]; ok {
		return p
	}
	return defaultPriority
}

// AnalyzeDataset runs column analysis over the requested columns.
func (m *Manager) AnalyzeDataset(d *dataset.Dataset, columns []string, sampleSize int) map[string]ColumnAnalysis {
	results := make(map[string]ColumnAnalysis)
	for _, name := range m.resolveColumns(d, columns) {
		p, ok := m.Processor(name)
		if !ok {
			continue
		}
		results[name] = p.Analyze(d.Column(name), sampleSize)
	}
	return results
}

// ProcessColumns cleans the requested columns in priority order, adding
// cleaned_<col> and confidence_<col> columns to the dataset. A column-level
// failure is recorded in that column's stats entry and processing continues
// with the remaining columns.
func (m *Manager) ProcessColumns(ctx context.Context, d *dataset.Dataset, columns []string, opts Options) map[string]ColumnStats {
	report := make(map[string]ColumnStats)

	for _, name := range m.resolveColumns(d, columns) {
		p, ok := m.Processor(name)
		if !ok {
			continue
		}

		start := time.Now()
		zap.L().Info("processing column",
			zap.String("column", name),
			zap.Int("rows", d.Rows()),
		)

		results := p.ProcessColumn(ctx, d.Column(name), opts)

		cleaned := make([]*string, len(results))
		confidence := make([]*string, len(results))
		limit := opts.RowLimit
		if limit <= 0 || limit > len(results) {
			limit = len(results)
		}
		for i, r := range results {
			if i >= limit {
				marker := NotProcessed
				cleaned[i] = &marker
				confidence[i] = &marker
				continue
			}
			cleaned[i] = r.Cleaned
			c := strconv.FormatFloat(r.Confidence, 'f', 2, 64)
			confidence[i] = &c
		}

		entry := ColumnStats{Stats: p.Stats()}
		if err := d.SetColumn("cleaned_"+name, cleaned); err != nil {
			entry.Error = err.Error()
		} else if err := d.SetColumn("confidence_"+name, confidence); err != nil {
			entry.Error = err.Error()
		}
		report[name] = entry

		zap.L().Info("column processed",
			zap.String("column", name),
			zap.Int("successful", entry.Stats.SuccessfulCleanings),
			zap.Int("failed", entry.Stats.FailedCleanings),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	return report
}

// Stats aggregates counters across every processor constructed so far.
func (m *Manager) Stats() AggregateStats {
	agg := AggregateStats{Columns: make(map[string]ColumnStats)}
	for name, p := range m.processors {
		s := p.Stats()
		agg.Columns[name] = ColumnStats{Stats: s}
		agg.TotalProcessed += s.TotalProcessed
		agg.TotalSuccessful += s.SuccessfulCleanings
		agg.TotalFailed += s.FailedCleanings
	}
	agg.ColumnsProcessed = len(agg.Columns)
	if agg.TotalProcessed > 0 {
		agg.SuccessRate = float64(agg.TotalSuccessful) / float64(agg.TotalProcessed)
	}
	return agg
}

// ResetStats clears counters on every constructed processor.
func (m *Manager) ResetStats() {
	for _, p := range m.processors {
		p.ResetStats()
	}
}

// RecordRun persists a processing run summary to the term cache store.
func (m *Manager) RecordRun(ctx context.Context, inputFile string, columns []string, rowsTotal int, started, finished time.Time) error {
	if m.cache == nil {
		return nil
	}
	agg := m.Stats()
	return m.cache.RecordRun(ctx, termcache.RunRecord{
		InputFile:   inputFile,
		Columns:     strings.Join(columns, ","),
		RowsTotal:   rowsTotal,
		RowsCleaned: agg.TotalSuccessful,
		StartedAt:   started,
		FinishedAt:  finished,
	})
}

// Summary describes processing coverage for a dataset without running
// anything.
type Summary struct {
	TotalColumns       int            `json:"total_columns" yaml:"total_columns"`
	ProcessableColumns []string       `json:"processable_columns" yaml:"processable_columns"`
	SkippedColumns     []string       `json:"skipped_columns" yaml:"skipped_columns"`
	Coverage           float64        `json:"processing_coverage" yaml:"processing_coverage"`
	Priorities         map[string]int `json:"column_priorities" yaml:"column_priorities"`
}

// Summarize reports which dataset columns can be processed.
func (m *Manager) Summarize(d *dataset.Dataset) Summary {
	s := Summary{
		TotalColumns: len(d.Columns()),
		Priorities:   make(map[string]int),
	}
	for _, name := range d.Columns() {
		if _, ok := columnFactories[name]; ok {
			s.ProcessableColumns = append(s.ProcessableColumns, name)
			s.Priorities[name] = priorityOf(name)
		} else {
			s.SkippedColumns = append(s.SkippedColumns, name)
		}
	}
	if s.TotalColumns > 0 {
		s.Coverage = float64(len(s.ProcessableColumns)) / float64(s.TotalColumns)
	}
	return s
}

// String renders a short human summary.
func (s Summary) String() string {
	return fmt.Sprintf("%d/%d columns processable (%.0f%%)",
		len(s.ProcessableColumns), s.TotalColumns, s.Coverage*100)
}
