package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/brandpulse/audience-cli/internal/behavior"
	"github.com/brandpulse/audience-cli/internal/census"
	"github.com/brandpulse/audience-cli/internal/enrich"
	"github.com/brandpulse/audience-cli/internal/store"
	anthropicpkg "github.com/brandpulse/audience-cli/pkg/anthropic"
)

// pipelineEnv holds the initialized cache store, clients, and pipeline used
// by the enrich/batch/serve commands.
type pipelineEnv struct {
	Store    store.CacheStore
	Census   *census.Client
	Pipeline *enrich.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline sets up the cache store, census and Anthropic clients, and
// the enrichment pipeline. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initCacheStore(ctx)
	if err != nil {
		return nil, err
	}

	censusOpts := []census.Option{census.WithCache(st)}
	if cfg.Census.BaseURL != "" {
		censusOpts = append(censusOpts, census.WithBaseURL(cfg.Census.BaseURL))
	}
	censusClient := census.NewClient(cfg.Census.Key, censusOpts...)
	if cfg.Census.Key == "" {
		zap.L().Warn("AUDIENCE_CENSUS_KEY not set, census fetches will be skipped")
	}

	var aiClient anthropicpkg.Client
	if cfg.Anthropic.Key != "" {
		aiClient = anthropicpkg.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Warn("AUDIENCE_ANTHROPIC_KEY not set, justification step disabled")
	}

	detector := behavior.NewDetector()
	if cfg.Enrichment.RulesFile != "" {
		detector, err = behavior.LoadDetector(cfg.Enrichment.RulesFile)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		zap.L().Info("loaded detection rules", zap.String("file", cfg.Enrichment.RulesFile))
	}

	return &pipelineEnv{
		Store:    st,
		Census:   censusClient,
		Pipeline: enrich.New(censusClient, detector, aiClient, cfg.Anthropic.Model),
	}, nil
}

// initCacheStore builds the census cache store from config.
func initCacheStore(ctx context.Context) (store.CacheStore, error) {
	switch cfg.Cache.Driver {
	case "", "memory":
		return store.NewMemory(), nil
	case "sqlite":
		return store.NewSQLite(cfg.Cache.Path)
	case "postgres":
		if cfg.Cache.DatabaseURL == "" {
			return nil, eris.New("cache.database_url required for postgres driver")
		}
		return store.NewPostgres(ctx, cfg.Cache.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
