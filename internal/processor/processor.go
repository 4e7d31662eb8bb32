// Package processor implements the per-column cleaning pipelines and the
// manager that routes dataset columns to them.
package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/medclean-cli/internal/match"
	"github.com/sells-group/medclean-cli/internal/normalize"
	"github.com/sells-group/medclean-cli/internal/rules"
	"github.com/sells-group/medclean-cli/internal/score"
	"github.com/sells-group/medclean-cli/internal/termcache"
)

// SuccessThreshold separates successful cleanings from doubtful ones, and is
// also the bar below which similarity matching and enrichment kick in.
const SuccessThreshold = 0.7

// EnrichedConfidence is assigned when the external cleaner produced a
// replacement value.
const EnrichedConfidence = 0.9

// Result is the outcome of cleaning one value.
type Result struct {
	Original        *string
	Cleaned         *string
	Confidence      float64
	Transformations []string
	Issues          []string
	Metadata        map[string]string
}

// Issue is one detected quality problem in a sampled value.
type Issue struct {
	Type     string `json:"type" yaml:"type"`
	Severity string `json:"severity" yaml:"severity"`
	Value    string `json:"value" yaml:"value"`
	Detail   string `json:"detail" yaml:"detail"`
}

// ColumnAnalysis summarizes quality findings for one column.
type ColumnAnalysis struct {
	ColumnName      string         `json:"column_name" yaml:"column_name"`
	TotalRows       int            `json:"total_rows" yaml:"total_rows"`
	NullCount       int            `json:"null_count" yaml:"null_count"`
	UniqueCount     int            `json:"unique_count" yaml:"unique_count"`
	QualityScore    float64        `json:"quality_score" yaml:"quality_score"`
	IssuesSummary   map[string]int `json:"issues_summary" yaml:"issues_summary"`
	Recommendations []string       `json:"recommendations" yaml:"recommendations"`
	SampleIssues    []Issue        `json:"sample_issues" yaml:"sample_issues"`
}

// Stats holds running counters for one processor.
type Stats struct {
	TotalProcessed      int            `json:"total_processed" yaml:"total_processed"`
	SuccessfulCleanings int            `json:"successful_cleanings" yaml:"successful_cleanings"`
	FailedCleanings     int            `json:"failed_cleanings" yaml:"failed_cleanings"`
	Transformations     map[string]int `json:"transformations_applied" yaml:"transformations_applied"`
}

// ValidationRules is the static validation descriptor a processor exposes.
type ValidationRules struct {
	DataType           string   `json:"data_type" yaml:"data_type"`
	MaxLength          int      `json:"max_length" yaml:"max_length"`
	MinLength          int      `json:"min_length" yaml:"min_length"`
	AllowedPatterns    []string `json:"allowed_patterns" yaml:"allowed_patterns"`
	Required           bool     `json:"required_field" yaml:"required_field"`
	StandardizedValues []string `json:"standardized_values" yaml:"standardized_values"`
	Abbreviations      []string `json:"common_abbreviations" yaml:"common_abbreviations"`
	NoUnits            bool     `json:"should_not_contain_units,omitempty" yaml:"should_not_contain_units,omitempty"`
	NoPlaceholders     bool     `json:"should_not_be_placeholder,omitempty" yaml:"should_not_be_placeholder,omitempty"`
}

// Options controls column processing.
type Options struct {
	// RowLimit caps how many rows are cleaned; 0 means all. Rows past the
	// limit receive the NotProcessed marker in the output columns.
	RowLimit int
	// BatchSize and BatchDelay pace processing so enrichment calls stay
	// under the API rate limit. BatchSize 0 disables pacing.
	BatchSize  int
	BatchDelay time.Duration
}

// TermCleaner is the external enrichment boundary. Implementations return a
// standardized replacement for a term or an error; errors are swallowed by
// the pipeline and never fail a column.
type TermCleaner interface {
	CleanTerm(ctx context.Context, text string) (string, error)
}

// Processor is the per-column capability set.
type Processor interface {
	Name() string
	Analyze(values []*string, sampleSize int) ColumnAnalysis
	Clean(ctx context.Context, value *string) Result
	ProcessColumn(ctx context.Context, values []*string, opts Options) []Result
	ValidationRules() ValidationRules
	Stats() Stats
	ResetStats()
}

// detector is one variant-specific issue check run during analysis.
type detector struct {
	issueType      string
	severity       string
	recommendation string
	detect         func(value string) (string, bool)
}

// stage hooks let variants extend the shared pipeline.
type stage func(s string, r *Result) string

// base is the shared pipeline skeleton. Variants differ in rule tables,
// vocabulary, placeholders, pre/post stages, and analysis detectors.
type base struct {
	name         string
	domain       *rules.Domain
	matcher      *match.Matcher
	cache        termcache.Store
	cleaner      TermCleaner
	placeholders map[string]struct{}
	pre          stage
	post         stage
	// adjust runs last and may rescale the confidence (e.g. short
	// diagnosis penalty).
	adjust    func(cleaned string, confidence float64) float64
	detectors []detector
	rulesDesc ValidationRules

	stats Stats
}

func newBase(name string, domain *rules.Domain, cache termcache.Store, cleaner TermCleaner) *base {
	return &base{
		name:         name,
		domain:       domain,
		matcher:      match.New(domain.Vocabulary),
		cache:        cache,
		cleaner:      cleaner,
		placeholders: make(map[string]struct{}),
		stats:        Stats{Transformations: make(map[string]int)},
	}
}

func (b *base) Name() string { return b.name }

func (b *base) ValidationRules() ValidationRules { return b.rulesDesc }

func (b *base) Stats() Stats {
	out := b.stats
	out.Transformations = make(map[string]int, len(b.stats.Transformations))
	for k, v := range b.stats.Transformations {
		out.Transformations[k] = v
	}
	return out
}

func (b *base) ResetStats() {
	b.stats = Stats{Transformations: make(map[string]int)}
}

// Clean runs the full pipeline on one value. Nulls pass through untouched;
// placeholders short-circuit at fixed low confidence.
func (b *base) Clean(ctx context.Context, value *string) Result {
	r := Result{Original: value, Metadata: make(map[string]string)}

	if value == nil || strings.TrimSpace(*value) == "" {
		r.Cleaned = value
		r.Confidence = 1.0
		r.Issues = append(r.Issues, "null_or_empty")
		return r
	}

	original := strings.TrimSpace(*value)
	if _, ok := b.placeholders[strings.ToLower(original)]; ok {
		r.Cleaned = &original
		r.Confidence = 0.3
		r.Issues = append(r.Issues, "placeholder_value")
		return r
	}

	// Cache fast path.
	if b.cache != nil {
		if entry, err := b.cache.Get(ctx, original); err != nil {
			zap.L().Warn("term cache lookup failed",
				zap.String("column", b.name), zap.Error(err))
		} else if entry != nil {
			r.Cleaned = &entry.Cleaned
			r.Confidence = entry.Confidence
			r.Metadata["cache_hit"] = "true"
			return r
		}
	}

	cleaned := original

	if normalized := normalize.Text(cleaned); normalized != cleaned {
		cleaned = normalized
		r.addTransform("normalize_text")
	}

	if b.pre != nil {
		cleaned = b.pre(cleaned, &r)
	}

	recognized := false
	maxFired := 0.0
	for _, table := range b.domain.Tables() {
		out, fired, matched := table.Apply(cleaned)
		if matched {
			recognized = true
		}
		if len(fired) == 0 {
			continue
		}
		cleaned = out
		for range fired {
			r.addTransform(table.Tag)
		}
		if table.Confidence > maxFired {
			maxFired = table.Confidence
		}
	}

	if b.post != nil {
		cleaned = b.post(cleaned, &r)
	}

	if fixed := normalize.Punctuation(cleaned); fixed != cleaned {
		cleaned = fixed
		r.addTransform("fix_punctuation")
	}
	cleaned = strings.TrimSpace(cleaned)

	confidence := score.Confidence(original, cleaned, r.Transformations)
	if maxFired > confidence {
		confidence = maxFired
	}

	if !recognized && b.matcher.Contains(cleaned) {
		recognized = true
	}

	// An unchanged value is either already canonical or entirely unknown.
	if cleaned == original {
		if recognized {
			confidence = 1.0
		} else {
			confidence = 0.5
		}
	}

	// Fuzzy vocabulary match only for still-doubtful values.
	if confidence < SuccessThreshold {
		if term, sim, ok := b.matcher.Best(cleaned); ok {
			if term != cleaned {
				cleaned = term
				r.addTransform("similarity_match")
			}
			recognized = true
			if sim > confidence {
				confidence = sim
			}
		}
	}

	// Last resort: ask the external cleaner.
	if confidence < SuccessThreshold && b.cleaner != nil {
		if enriched, err := b.cleaner.CleanTerm(ctx, cleaned); err != nil {
			zap.L().Warn("enrichment failed, keeping local result",
				zap.String("column", b.name),
				zap.String("term", cleaned),
				zap.Error(err))
		} else if enriched != "" && enriched != cleaned {
			cleaned = enriched
			confidence = EnrichedConfidence
			r.addTransform("api_cleaning")
		}
	}

	if cleaned == original && !recognized {
		r.Issues = append(r.Issues, "no_standardization_match")
	}

	if b.adjust != nil && cleaned != original {
		confidence = b.adjust(cleaned, confidence)
	}
	confidence = score.Clamp(confidence)

	r.Cleaned = &cleaned
	r.Confidence = confidence
	r.Metadata["transform_count"] = fmt.Sprintf("%d", len(r.Transformations))

	if b.cache != nil {
		if err := b.cache.Set(ctx, original, cleaned, confidence); err != nil {
			zap.L().Warn("term cache write failed",
				zap.String("column", b.name), zap.Error(err))
		}
	}

	return r
}

// ProcessColumn cleans every value in order. A failure on one value keeps
// the original and never aborts the column; output length always equals
// input length.
func (b *base) ProcessColumn(ctx context.Context, values []*string, opts Options) []Result {
	results := make([]Result, len(values))

	limit := opts.RowLimit
	if limit <= 0 || limit > len(values) {
		limit = len(values)
	}

	for i := 0; i < limit; i++ {
		results[i] = b.cleanIsolated(ctx, values[i])

		b.stats.TotalProcessed++
		if results[i].Confidence > SuccessThreshold {
			b.stats.SuccessfulCleanings++
		}
		for _, transform := range results[i].Transformations {
			b.stats.Transformations[transform]++
		}

		if opts.BatchSize > 0 && opts.BatchDelay > 0 && (i+1)%opts.BatchSize == 0 && i+1 < limit {
			time.Sleep(opts.BatchDelay)
		}
	}

	for i := limit; i < len(values); i++ {
		results[i] = Result{Original: values[i], Cleaned: values[i], Confidence: 0}
	}

	return results
}

// cleanIsolated guards Clean so a bad value can never take down the column.
func (b *base) cleanIsolated(ctx context.Context, value *string) (r Result) {
	defer func() {
		if rec := recover(); rec != nil {
			b.stats.FailedCleanings++
			zap.L().Error("value cleaning failed, keeping original",
				zap.String("column", b.name),
				zap.Any("panic", rec))
			r = Result{Original: value, Cleaned: value, Confidence: 0,
				Issues: []string{"processing_error"}}
		}
	}()
	return b.Clean(ctx, value)
}

// Analyze samples non-null values and tallies the variant's issue detectors.
func (b *base) Analyze(values []*string, sampleSize int) ColumnAnalysis {
	if sampleSize <= 0 {
		sampleSize = 100
	}

	analysis := ColumnAnalysis{
		ColumnName:    b.name,
		TotalRows:     len(values),
		IssuesSummary: make(map[string]int),
	}

	seen := make(map[string]struct{})
	var sample []string
	for _, v := range values {
		if v == nil || strings.TrimSpace(*v) == "" {
			analysis.NullCount++
			continue
		}
		seen[*v] = struct{}{}
		if len(sample) < sampleSize {
			sample = append(sample, *v)
		}
	}
	analysis.UniqueCount = len(seen)

	totalIssues := 0
	recommended := make(map[string]struct{})
	for _, d := range b.detectors {
		count := 0
		for _, v := range sample {
			detail, hit := d.detect(v)
			if !hit {
				continue
			}
			count++
			totalIssues++
			if len(analysis.SampleIssues) < 10 {
				analysis.SampleIssues = append(analysis.SampleIssues, Issue{
					Type:     d.issueType,
					Severity: d.severity,
					Value:    v,
					Detail:   detail,
				})
			}
		}
		analysis.IssuesSummary[d.issueType] = count
		if count > 0 {
			if _, dup := recommended[d.recommendation]; !dup {
				recommended[d.recommendation] = struct{}{}
				analysis.Recommendations = append(analysis.Recommendations, d.recommendation)
			}
		}
	}

	if len(sample) > 0 {
		q := 1 - float64(totalIssues)/float64(len(sample))
		if q < 0 {
			q = 0
		}
		analysis.QualityScore = q
	}

	return analysis
}

func (r *Result) addTransform(tag string) {
	r.Transformations = append(r.Transformations, tag)
}

// tableHit reports the first table pattern that would rewrite value, used by
// analysis detectors.
func tableHit(t *rules.Table, value string) (string, bool) {
	_, fired, _ := t.Apply(value)
	if len(fired) == 0 {
		return "", false
	}
	return fired[0], true
}
