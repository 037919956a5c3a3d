// Package store provides cache backends for fetched Census snapshots.
// Entries are keyed by (state FIPS, year) and never evicted: the upstream
// data never changes for a given key within a process lifetime.
package store

import (
	"context"

	"github.com/brandpulse/audience-cli/internal/model"
)

// CacheStore is the persistence interface for Census snapshots.
type CacheStore interface {
	// Get returns the cached snapshot for (fips, year), or (nil, false) on miss.
	Get(ctx context.Context, fips string, year int) (*model.StateDemographics, bool, error)
	// Set stores a snapshot. Redundant writes for the same key are acceptable.
	Set(ctx context.Context, fips string, year int, data *model.StateDemographics) error
	// Close releases any underlying resources.
	Close() error
}
