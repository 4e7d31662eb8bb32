package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/medclean-cli/internal/dataset"
	"github.com/sells-group/medclean-cli/internal/enrich"
	"github.com/sells-group/medclean-cli/internal/processor"
	"github.com/sells-group/medclean-cli/internal/termcache"
	"github.com/sells-group/medclean-cli/pkg/anthropic"
)

// initCache opens the configured term cache backend. A cache that cannot be
// opened is fatal; the pipeline depends on it for idempotent reprocessing.
func initCache(ctx context.Context) (termcache.Store, error) {
	switch cfg.Cache.Driver {
	case "sqlite":
		path := cfg.Cache.Path
		if path == "" {
			path = "medclean.db"
		}
		return termcache.NewSQLite(path)
	case "postgres":
		return termcache.NewPostgres(ctx, cfg.Cache.DatabaseURL, &cfg.Cache.Pool)
	default:
		return nil, eris.Errorf("unsupported cache driver: %s", cfg.Cache.Driver)
	}
}

// prepareCache migrates the store and loads the built-in seed terms so known
// abbreviations resolve from the cache on a fresh database. Seeding upserts,
// so repeated calls are harmless.
func prepareCache(ctx context.Context, st termcache.Store) error {
	if err := st.Migrate(ctx); err != nil {
		return eris.Wrap(err, "migrate term cache")
	}
	if err := termcache.Seed(ctx, st); err != nil {
		return eris.Wrap(err, "seed term cache")
	}
	return nil
}

// initCleaner builds the enrichment cleaner, or nil when enrichment is off.
func initCleaner() processor.TermCleaner {
	if !cfg.Processing.EnableEnrichment || cfg.Anthropic.Key == "" {
		return nil
	}
	client := anthropic.NewClient(cfg.Anthropic.Key)
	return enrich.New(client, enrich.Options{
		Model:         cfg.Anthropic.Model,
		MaxTokens:     int64(cfg.Anthropic.MaxTokens),
		RatePerSecond: cfg.Anthropic.RatePerSecond,
	})
}

// loadDataset reads a patient data file, picking the loader by extension.
func loadDataset(path, sheet string) (*dataset.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return dataset.LoadXLSX(path, dataset.XLSXOptions{SheetName: sheet})
	case ".csv":
		return dataset.LoadCSV(path)
	default:
		return nil, eris.Errorf("unsupported input format: %s", filepath.Ext(path))
	}
}

// splitColumns parses a comma separated --columns flag value.
func splitColumns(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
