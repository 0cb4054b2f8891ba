// Package llm constructs the configured chat model. Callers receive a plain
// llms.Model and never see which provider is behind it.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"fridjy/internal/config"
)

// GitHubModelsURL is the OpenAI-compatible endpoint of GitHub Models.
const GitHubModelsURL = "https://models.inference.ai.azure.com"

var ErrUnsupportedProvider = errors.New("llm: unsupported provider")

// New initializes the model for cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	model := cfg.ModelName()

	switch cfg.Provider {
	case config.ProviderGoogleAI:
		m, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google AI model: %w", err)
		}
		return m, nil

	case config.ProviderOpenAI:
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(model)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		m, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI model: %w", err)
		}
		return m, nil

	case config.ProviderGitHub:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = GitHubModelsURL
		}
		m, err := openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(model),
			openai.WithBaseURL(baseURL),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub Models client: %w", err)
		}
		return m, nil

	case config.ProviderAzure:
		return NewAzure(cfg.BaseURL, cfg.APIKey, model)

	case config.ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		m, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Ollama model: %w", err)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
	}
}
