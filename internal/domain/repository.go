package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque byte payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TextGenerator is the generative text-completion capability: a prompt in,
// generated text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// CatalogLoader loads the catalog for an optional source. An empty source
// selects the default catalog. Implementations never fail.
type CatalogLoader interface {
	Load(ctx context.Context, source string) []CatalogItem
}

// QueryRewriter rewrites a query into a denser form, returning the input
// unchanged when rewriting is not possible.
type QueryRewriter interface {
	Rewrite(ctx context.Context, query string) string
}

// RecommendationGenerator synthesizes recommendations when the catalog has none
type RecommendationGenerator interface {
	Generate(ctx context.Context, query string, catalog []CatalogItem) []CatalogItem
}
