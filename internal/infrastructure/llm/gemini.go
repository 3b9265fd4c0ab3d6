package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/stylerag/backend/internal/domain"
)

const defaultGeminiModel = "gemini-1.5-pro"

// GeminiGenerator generates text with Google's Gemini models
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewGeminiGenerator creates a Gemini client for the given model
func NewGeminiGenerator(ctx context.Context, apiKey, model string, limiter *rate.Limiter, logger zerolog.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		model:   model,
		limiter: limiter,
		logger:  logger.With().Str("provider", ProviderGemini).Str("model", model).Logger(),
	}, nil
}

// Generate sends prompt as a single user turn and returns the response text
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := wait(ctx, g.limiter); err != nil {
		return "", err
	}

	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty gemini response", domain.ErrMalformedOutput)
	}

	g.logger.Debug().Int("chars", len(text)).Msg("gemini response received")
	return text, nil
}

// Name returns the provider name
func (g *GeminiGenerator) Name() string {
	return fmt.Sprintf("%s-%s", ProviderGemini, g.model)
}

// Close releases the underlying client
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// extractText concatenates the text parts of the first candidate
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
