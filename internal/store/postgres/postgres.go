package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"policypulse/internal/domain"
	"policypulse/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS policies (
    id TEXT PRIMARY KEY,
    owner TEXT NOT NULL,
    title VARCHAR(200) NOT NULL,
    summary TEXT NOT NULL,
    sentiment VARCHAR(32) NOT NULL,
    keywords TEXT NOT NULL DEFAULT '',
    impact INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS policies_owner_created_idx ON policies (owner, created_at DESC);
`

// Config holds connection settings for the Postgres store.
type Config struct {
	DSN      string
	MaxConns int32
}

// Storage keeps analysis records in the policies table.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage connects, verifies connectivity and creates the schema if missing.
func NewStorage(ctx context.Context, cfg Config) (*Storage, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Postgres DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pcfg.MinConns = 1
	pcfg.HealthCheckPeriod = 30 * time.Second
	pcfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}
	s := &Storage{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the policies table and its index.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save inserts rec, joining its keywords into one text column.
func (s *Storage) Save(ctx context.Context, rec domain.Record) error {
	_, err := s.pool.Exec(ctx, `
        INSERT INTO policies (id, owner, title, summary, sentiment, keywords, impact, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.Owner, rec.Title, rec.Summary, string(rec.Category),
		store.EncodeKeywords(rec.Keywords), rec.Impact, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert policy %s: %w", rec.ID, err)
	}
	return nil
}

// ListByOwner returns the owner's records ordered by created_at, newest first.
func (s *Storage) ListByOwner(ctx context.Context, owner string) ([]domain.Record, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, owner, title, summary, sentiment, keywords, impact, created_at
        FROM policies WHERE owner = $1 ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query policies: %w", err)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var (
			rec      domain.Record
			category string
			keywords string
		)
		if err := rows.Scan(&rec.ID, &rec.Owner, &rec.Title, &rec.Summary, &category, &keywords, &rec.Impact, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan policy row: %w", err)
		}
		rec.Category = domain.Category(category)
		rec.Keywords = store.DecodeKeywords(keywords)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate policies: %w", err)
	}
	return out, nil
}

// Priors returns the owner's (title, summary) pairs, newest first.
func (s *Storage) Priors(ctx context.Context, owner string) ([]domain.Prior, error) {
	recs, err := s.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	return store.PriorsOf(recs), nil
}

// Ping checks connectivity.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *Storage) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
