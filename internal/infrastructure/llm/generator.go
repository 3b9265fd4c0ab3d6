// Package llm provides the text generation backends used for query rewriting
// and fallback recommendations.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/stylerag/backend/internal/domain"
)

// Supported providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Config selects and configures a text generation backend
type Config struct {
	Provider          string
	APIKey            string
	Model             string
	BaseURL           string
	RequestsPerSecond float64
	Burst             int
}

// NewGenerator builds the generator for the configured provider
func NewGenerator(ctx context.Context, cfg Config, logger zerolog.Logger) (domain.TextGenerator, error) {
	limiter := newLimiter(cfg.RequestsPerSecond, cfg.Burst)

	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		return NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, limiter, logger)
	case ProviderOpenAI:
		return NewOpenAIGenerator(cfg.APIKey, cfg.Model, cfg.BaseURL, limiter, logger), nil
	case ProviderNone, "":
		return NewOfflineGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// newLimiter returns a token bucket limiter, or nil when throttling is off
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// wait blocks until the limiter admits a call
func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}
	return nil
}
