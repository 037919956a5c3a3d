package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandpulse/audience-cli/internal/model"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "06", 2024)
	require.NoError(t, err)
	assert.False(t, ok)

	in := &model.StateDemographics{StateFIPS: "06", StateName: "California", Year: 2024}
	require.NoError(t, s.Set(ctx, "06", 2024, in))

	out, ok, err := s.Get(ctx, "06", 2024)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, in, out)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_DistinctYears(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "06", 2023, &model.StateDemographics{Year: 2023}))
	require.NoError(t, s.Set(ctx, "06", 2024, &model.StateDemographics{Year: 2024}))
	assert.Equal(t, 2, s.Len())

	out, ok, err := s.Get(ctx, "06", 2023)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2023, out.Year)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "06", 2024, &model.StateDemographics{Year: 2024})
			_, _, _ = s.Get(ctx, "06", 2024)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
}
