package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/brandpulse/audience-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs. pgxmock's pool
// satisfies it too, which keeps the store unit-testable without a database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements CacheStore using a pgx connection pool, for
// deployments where several processes share one census cache.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS census_cache (
	state_fips TEXT NOT NULL,
	year       INTEGER NOT NULL,
	payload    JSONB NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (state_fips, year)
)`

// NewPostgres creates a PostgresStore with a connection pool and runs the
// cache migration.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 4
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

	s := &PostgresStore{pool: pool, closeFn: pool.Close}
	if _, err := pool.Exec(ctx, postgresMigration); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: migrate")
	}
	return s, nil
}

// Get implements CacheStore.
func (s *PostgresStore) Get(ctx context.Context, fips string, year int) (*model.StateDemographics, bool, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM census_cache WHERE state_fips = $1 AND year = $2`,
		fips, year,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "postgres: get census cache")
	}

	var data model.StateDemographics
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, false, eris.Wrap(err, "postgres: decode census cache")
	}
	return &data, true, nil
}

// Set implements CacheStore.
func (s *PostgresStore) Set(ctx context.Context, fips string, year int, data *model.StateDemographics) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return eris.Wrap(err, "postgres: encode census cache")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO census_cache (state_fips, year, payload, fetched_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (state_fips, year) DO UPDATE SET
			payload = EXCLUDED.payload,
			fetched_at = now()`,
		fips, year, payload,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: set census cache")
	}
	return nil
}

// Close implements CacheStore.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
