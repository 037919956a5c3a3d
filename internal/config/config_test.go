package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.census.gov/data", cfg.Census.BaseURL)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, "census_cache.db", cfg.Cache.Path)
	assert.Equal(t, []int{2023, 2024}, cfg.Enrichment.Years)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	// Credentials are optional at load time.
	assert.Empty(t, cfg.Census.Key)
	assert.Empty(t, cfg.Anthropic.Key)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUDIENCE_CENSUS_KEY", "census-secret")
	t.Setenv("AUDIENCE_ANTHROPIC_KEY", "anthropic-secret")
	t.Setenv("AUDIENCE_CACHE_DRIVER", "sqlite")
	t.Setenv("AUDIENCE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "census-secret", cfg.Census.Key)
	assert.Equal(t, "anthropic-secret", cfg.Anthropic.Key)
	assert.Equal(t, "sqlite", cfg.Cache.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope"}))
}
