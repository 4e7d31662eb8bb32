package termcache

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS medical_terms (
	original   TEXT PRIMARY KEY,
	cleaned    TEXT NOT NULL,
	confidence REAL NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS processing_runs (
	id           TEXT PRIMARY KEY,
	input_file   TEXT NOT NULL,
	columns      TEXT NOT NULL,
	rows_total   INTEGER NOT NULL,
	rows_cleaned INTEGER NOT NULL,
	started_at   DATETIME NOT NULL,
	finished_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_medical_terms_confidence ON medical_terms(confidence);
CREATE INDEX IF NOT EXISTS idx_processing_runs_started_at ON processing_runs(started_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, original string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT original, cleaned, confidence, created_at FROM medical_terms WHERE original = ?`,
		strings.ToLower(original),
	)

	var e Entry
	err := row.Scan(&e.Original, &e.Cleaned, &e.Confidence, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get term")
	}
	return &e, nil
}

func (s *SQLiteStore) Set(ctx context.Context, original, cleaned string, confidence float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO medical_terms (original, cleaned, confidence, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (original) DO UPDATE SET cleaned = excluded.cleaned, confidence = excluded.confidence`,
		strings.ToLower(original), cleaned, confidence, time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: set term")
}

func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE confidence > 0.8) FROM medical_terms`,
	).Scan(&st.TotalTerms, &st.HighConfidence)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: stats")
	}
	return &st, nil
}

func (s *SQLiteStore) RecordRun(ctx context.Context, run RunRecord) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO processing_runs (id, input_file, columns, rows_total, rows_cleaned, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.InputFile, run.Columns, run.RowsTotal, run.RowsCleaned, run.StartedAt, run.FinishedAt,
	)
	return eris.Wrap(err, "sqlite: record run")
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_file, columns, rows_total, rows_cleaned, started_at, finished_at
		 FROM processing_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.InputFile, &r.Columns, &r.RowsTotal, &r.RowsCleaned, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}
