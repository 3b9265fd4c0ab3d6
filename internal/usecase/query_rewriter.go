package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stylerag/backend/internal/domain"
	"github.com/stylerag/backend/internal/observability"
)

const rewritePromptTemplate = `
Rewrite the fashion query to be short and semantically rich, including category, material, and price if mentioned.
Emphasize 'denim' for 'jeans'. For general queries (e.g., 'clothes'), use 'clothing, new arrivals, fashion items'.
Examples:
- 'jeans under 3000' -> 'denim jeans, blue pants, under 3000'
- 'jackets' -> 'jacket, outerwear, fashion jackets'
- 'clothes' -> 'clothing, new arrivals, fashion items'
Query: %q
`

// QueryRewriter asks a text model for a denser version of a query
type QueryRewriter struct {
	generator domain.TextGenerator
	retry     RetryPolicy
	logger    zerolog.Logger
}

// NewQueryRewriter creates a rewriter backed by the given generator
func NewQueryRewriter(generator domain.TextGenerator, retry RetryPolicy, logger zerolog.Logger) *QueryRewriter {
	return &QueryRewriter{
		generator: generator,
		retry:     retry,
		logger:    logger.With().Str("component", "query_rewriter").Logger(),
	}
}

// Rewrite returns the model's rewrite of query, or query itself when every
// attempt fails.
func (r *QueryRewriter) Rewrite(ctx context.Context, query string) string {
	logger := observability.FromContext(ctx, r.logger)
	prompt := fmt.Sprintf(rewritePromptTemplate, query)

	var rewritten string
	err := r.retry.run(ctx, logger, "rewrite", func(ctx context.Context) error {
		text, err := r.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return fmt.Errorf("%w: empty rewrite", domain.ErrMalformedOutput)
		}
		rewritten = text
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Str("query", query).Msg("query rewrite gave up, using original query")
		return query
	}

	logger.Info().Str("query", query).Str("rewritten", rewritten).Msg("query rewritten")
	return rewritten
}
