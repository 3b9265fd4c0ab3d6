// Package app wires configuration into a ready recommendation service.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/stylerag/backend/config"
	"github.com/stylerag/backend/internal/domain"
	"github.com/stylerag/backend/internal/infrastructure/cache"
	"github.com/stylerag/backend/internal/infrastructure/catalog"
	"github.com/stylerag/backend/internal/infrastructure/llm"
	"github.com/stylerag/backend/internal/lexicon"
	"github.com/stylerag/backend/internal/usecase"
)

// App holds the wired service and the resources backing it
type App struct {
	Service   *usecase.RecommendationService
	Generator domain.TextGenerator
	closers   []io.Closer
}

// New builds every dependency described by cfg
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	app := &App{}

	snapshotCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, snapshotCache)

	defaults, err := catalog.ParseCatalogJSON(cfg.Catalog.DefaultJSON)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("default catalog: %w", err)
	}

	lex, err := lexicon.FromJSON(cfg.Catalog.CategoryMappingJSON, cfg.Catalog.KnownMaterialsJSON)
	if err != nil {
		app.Close()
		return nil, err
	}

	generator, err := llm.NewGenerator(ctx, llm.Config{
		Provider:          cfg.LLM.Provider,
		APIKey:            cfg.LLM.APIKey,
		Model:             cfg.LLM.Model,
		BaseURL:           cfg.LLM.BaseURL,
		RequestsPerSecond: cfg.LLM.RequestsPerSecond,
		Burst:             cfg.LLM.Burst,
	}, logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("text generator: %w", err)
	}
	if closer, ok := generator.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}
	app.Generator = generator

	loader := catalog.NewScopedLoader(
		catalog.NewLoader(catalog.LoaderConfig{
			Defaults: defaults,
			Cache:    snapshotCache,
			CacheTTL: cfg.Catalog.CacheTTL,
		}, logger),
		cfg.Catalog.Source,
		cfg.Catalog.AllowedDir,
		logger,
	)

	retry := usecase.RetryPolicy{
		MaxAttempts: cfg.LLM.MaxAttempts,
		BackoffBase: cfg.LLM.BackoffBase,
	}

	app.Service = usecase.NewRecommendationService(
		loader,
		lex,
		usecase.NewQueryRewriter(generator, retry, logger),
		usecase.NewFallbackGenerator(generator, retry, logger),
		usecase.RecommendationServiceConfig{RewriteBeforeFallback: cfg.LLM.RewriteBeforeFallback},
		logger,
	)

	logger.Info().
		Str("generator", generator.Name()).
		Str("cache", cfg.Cache.Type).
		Str("catalog_source", cfg.Catalog.Source).
		Int("default_catalog_size", len(defaults)).
		Msg("recommendation service ready")

	return app, nil
}

type closableCache interface {
	domain.CacheRepository
	io.Closer
}

func newCache(ctx context.Context, cfg config.CacheConfig) (closableCache, error) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return redisCache, nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// Close releases caches and model clients
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}
