package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandpulse/audience-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "06", 2024)
	require.NoError(t, err)
	assert.False(t, ok)

	in := &model.StateDemographics{
		StateFIPS: "06",
		StateName: "California",
		Year:      2024,
		RawCounts: map[string]int64{"B02001_001E": 1000000},
		Percentages: map[model.Category]float64{
			model.CategoryWhite: 58.2,
			model.CategoryAsian: 15.1,
		},
	}
	require.NoError(t, s.Set(ctx, "06", 2024, in))

	out, ok, err := s.Get(ctx, "06", 2024)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestSQLiteStore_UpsertReplaces(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "48", 2023, &model.StateDemographics{StateName: "Texas", Year: 2023}))
	require.NoError(t, s.Set(ctx, "48", 2023, &model.StateDemographics{StateName: "Texas", Year: 2023,
		Percentages: map[model.Category]float64{model.CategoryHispanicLatino: 40.2}}))

	out, ok, err := s.Get(ctx, "48", 2023)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 40.2, out.Percentages[model.CategoryHispanicLatino], 0.001)
}

func TestSQLiteStore_KeysAreFIPSAndYear(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "06", 2023, &model.StateDemographics{Year: 2023}))
	require.NoError(t, s.Set(ctx, "06", 2024, &model.StateDemographics{Year: 2024}))

	out, ok, err := s.Get(ctx, "06", 2023)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2023, out.Year)

	_, ok, err = s.Get(ctx, "36", 2023)
	require.NoError(t, err)
	assert.False(t, ok)
}
