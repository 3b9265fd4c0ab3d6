package llm

import (
	"context"

	"github.com/stylerag/backend/internal/domain"
)

// OfflineGenerator is used when no model provider is configured. Every call
// fails, so callers fall through to their deterministic defaults.
type OfflineGenerator struct{}

// NewOfflineGenerator creates an offline generator
func NewOfflineGenerator() *OfflineGenerator {
	return &OfflineGenerator{}
}

// Generate always fails
func (OfflineGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", domain.ErrGenerationFailed
}

// Name returns the provider name
func (OfflineGenerator) Name() string {
	return ProviderNone
}
