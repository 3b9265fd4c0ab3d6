package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/stylerag/backend/internal/domain"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIGenerator generates text through an OpenAI-compatible chat completions API
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewOpenAIGenerator creates a generator. baseURL may point at any
// OpenAI-compatible server; empty uses the official endpoint.
func NewOpenAIGenerator(apiKey, model, baseURL string, limiter *rate.Limiter, logger zerolog.Logger) *OpenAIGenerator {
	if model == "" {
		model = defaultOpenAIModel
	}

	// Retries are owned by the callers' retry policy.
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIGenerator{
		client:  openai.NewClient(opts...),
		model:   model,
		limiter: limiter,
		logger:  logger.With().Str("provider", ProviderOpenAI).Str("model", model).Logger(),
	}
}

// Generate sends prompt as a single user message and returns the reply
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := wait(ctx, g.limiter); err != nil {
		return "", err
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no choices returned", domain.ErrMalformedOutput)
	}

	text := completion.Choices[0].Message.Content
	g.logger.Debug().Int("chars", len(text)).Msg("openai response received")
	return text, nil
}

// Name returns the provider name
func (g *OpenAIGenerator) Name() string {
	return fmt.Sprintf("%s-%s", ProviderOpenAI, g.model)
}
