package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/brandpulse/audience-cli/internal/model"
)

// SQLiteStore implements CacheStore using modernc.org/sqlite, giving the
// census cache persistence across CLI invocations.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS census_cache (
	state_fips TEXT NOT NULL,
	year       INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (state_fips, year)
);
`

// NewSQLite opens a SQLite database at the given path, configures WAL mode,
// and runs the cache migration.
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
	if _, err := db.Exec(sqliteMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: migrate")
	}
	return &SQLiteStore{db: db}, nil
}

// Get implements CacheStore.
func (s *SQLiteStore) Get(ctx context.Context, fips string, year int) (*model.StateDemographics, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM census_cache WHERE state_fips = ? AND year = ?`,
		fips, year,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: get census cache")
	}

	var data model.StateDemographics
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, false, eris.Wrap(err, "sqlite: decode census cache")
	}
	return &data, true, nil
}

// Set implements CacheStore.
func (s *SQLiteStore) Set(ctx context.Context, fips string, year int, data *model.StateDemographics) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return eris.Wrap(err, "sqlite: encode census cache")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO census_cache (state_fips, year, payload, fetched_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT (state_fips, year) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = datetime('now')`,
		fips, year, string(payload),
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: set census cache")
	}
	return nil
}

// Close implements CacheStore.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
