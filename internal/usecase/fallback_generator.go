package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stylerag/backend/internal/domain"
	"github.com/stylerag/backend/internal/observability"
)

// maxFallbackItems caps both generated and catalog-derived fallback items
const maxFallbackItems = 3

const fallbackPromptTemplate = `
Fashion expert with trendy tone. For query %q, suggest 3 clothing items for a cohesive outfit.
Catalog: %s
Return JSON: [{"name": str, "category": str, "description": str, "price": float, "fabric": str, "link": str}]
`

// FallbackGenerator synthesizes recommendations with a text model when the
// catalog cannot answer a query.
type FallbackGenerator struct {
	generator domain.TextGenerator
	retry     RetryPolicy
	logger    zerolog.Logger
}

// NewFallbackGenerator creates a fallback generator
func NewFallbackGenerator(generator domain.TextGenerator, retry RetryPolicy, logger zerolog.Logger) *FallbackGenerator {
	return &FallbackGenerator{
		generator: generator,
		retry:     retry,
		logger:    logger.With().Str("component", "fallback_generator").Logger(),
	}
}

// Generate returns up to three items for query. When the model keeps failing
// it returns the first three catalog items, or nothing for an empty catalog.
func (g *FallbackGenerator) Generate(ctx context.Context, query string, catalog []domain.CatalogItem) []domain.CatalogItem {
	logger := observability.FromContext(ctx, g.logger)
	prompt, err := buildFallbackPrompt(query, catalog)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build fallback prompt")
		return firstItems(catalog)
	}

	var items []domain.CatalogItem
	err = g.retry.run(ctx, logger, "fallback", func(ctx context.Context) error {
		text, err := g.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		parsed, err := parseGeneratedItems(text)
		if err != nil {
			return err
		}
		items = parsed
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Int("catalog_size", len(catalog)).Msg("fallback generation gave up, using catalog head")
		return firstItems(catalog)
	}

	logger.Info().Int("count", len(items)).Msg("generated fallback recommendations")
	return items
}

func buildFallbackPrompt(query string, catalog []domain.CatalogItem) (string, error) {
	if catalog == nil {
		catalog = []domain.CatalogItem{}
	}
	catalogJSON, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode catalog: %w", err)
	}
	return fmt.Sprintf(fallbackPromptTemplate, query, catalogJSON), nil
}

// parseGeneratedItems decodes a JSON array of items, tolerating a markdown
// code fence around it. Items without a name are dropped.
func parseGeneratedItems(text string) ([]domain.CatalogItem, error) {
	cleaned := stripCodeFence(text)

	var raw []domain.CatalogItem
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
	}

	items := make([]domain.CatalogItem, 0, maxFallbackItems)
	for _, item := range raw {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			continue
		}
		items = append(items, item)
		if len(items) == maxFallbackItems {
			break
		}
	}
	return items, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func firstItems(catalog []domain.CatalogItem) []domain.CatalogItem {
	n := min(len(catalog), maxFallbackItems)
	out := make([]domain.CatalogItem, n)
	copy(out, catalog[:n])
	return out
}
