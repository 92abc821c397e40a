// Package inference picks the language model provider behind the assistant.
package inference

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/at-ishikawa/wordcoach/internal/config"
	"github.com/at-ishikawa/wordcoach/internal/inference/gemini"
	"github.com/at-ishikawa/wordcoach/internal/inference/openai"
)

// NewStarter returns the session starter of the configured provider.
// The returned starter also implements io.Closer.
func NewStarter(ctx context.Context, cfg *config.Config) (assistant.Starter, error) {
	provider := cfg.Assistant.Provider
	if cfg.APIKey() == "" {
		return nil, fmt.Errorf("%s is required for the %s provider", provider.CredentialEnv(), provider)
	}

	switch provider {
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, fmt.Errorf("gemini.NewClient > %w", err)
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown provider: %s", provider)
}
