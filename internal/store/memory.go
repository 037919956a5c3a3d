package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/brandpulse/audience-cli/internal/model"
)

// MemoryStore is the default in-process cache. The mutex makes it safe when
// several enrichment calls race to populate the same key.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*model.StateDemographics
}

// NewMemory creates an empty in-memory cache store.
func NewMemory() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*model.StateDemographics)}
}

func memoryKey(fips string, year int) string {
	return fmt.Sprintf("%s:%d", fips, year)
}

// Get implements CacheStore.
func (m *MemoryStore) Get(_ context.Context, fips string, year int) (*model.StateDemographics, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[memoryKey(fips, year)]
	return data, ok, nil
}

// Set implements CacheStore.
func (m *MemoryStore) Set(_ context.Context, fips string, year int, data *model.StateDemographics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[memoryKey(fips, year)] = data
	return nil
}

// Close implements CacheStore.
func (m *MemoryStore) Close() error { return nil }

// Len reports the number of cached snapshots.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
