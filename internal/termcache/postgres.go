package termcache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store needs. pgxmock pools satisfy
// it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool, used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS medical_terms (
	original   TEXT PRIMARY KEY,
	cleaned    TEXT NOT NULL,
	confidence DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS processing_runs (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	input_file   TEXT NOT NULL,
	columns      TEXT NOT NULL,
	rows_total   INTEGER NOT NULL,
	rows_cleaned INTEGER NOT NULL,
	started_at   TIMESTAMPTZ NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_medical_terms_confidence ON medical_terms(confidence);
CREATE INDEX IF NOT EXISTS idx_processing_runs_started_at ON processing_runs(started_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, original string) (*Entry, error) {
	var e Entry
	err := s.pool.QueryRow(ctx,
		`SELECT original, cleaned, confidence, created_at FROM medical_terms WHERE original = $1`,
		strings.ToLower(original),
	).Scan(&e.Original, &e.Cleaned, &e.Confidence, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: get term")
	}
	return &e, nil
}

func (s *PostgresStore) Set(ctx context.Context, original, cleaned string, confidence float64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO medical_terms (original, cleaned, confidence, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (original) DO UPDATE SET cleaned = $2, confidence = $3`,
		strings.ToLower(original), cleaned, confidence, time.Now().UTC(),
	)
	return eris.Wrap(err, "postgres: set term")
}

func (s *PostgresStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE confidence > 0.8) FROM medical_terms`,
	).Scan(&st.TotalTerms, &st.HighConfidence)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: stats")
	}
	return &st, nil
}

func (s *PostgresStore) RecordRun(ctx context.Context, run RunRecord) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO processing_runs (id, input_file, columns, rows_total, rows_cleaned, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.InputFile, run.Columns, run.RowsTotal, run.RowsCleaned, run.StartedAt, run.FinishedAt,
	)
	return eris.Wrap(err, "postgres: record run")
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, input_file, columns, rows_total, rows_cleaned, started_at, finished_at
		 FROM processing_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.InputFile, &r.Columns, &r.RowsTotal, &r.RowsCleaned, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}
