// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

const defaultOllamaHost = "http://localhost:11434"

// NewBackend constructs the configured provider backend. Each provider is
// one variant behind the Backend interface; selection happens once at
// process start.
func NewBackend(cfg types.LLMConfig) (Backend, error) {
	switch cfg.Provider {
	case types.ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("claude provider requires an API key")
		}
		model, err := anthropic.New(
			anthropic.WithModel(cfg.Model),
			anthropic.WithToken(cfg.APIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("creating claude client: %w", err)
		}
		return &llmBackend{name: "claude", model: model}, nil

	case types.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		model, err := openai.New(
			openai.WithModel(cfg.Model),
			openai.WithToken(cfg.APIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("creating openai client: %w", err)
		}
		return &llmBackend{name: "openai", model: model}, nil

	case types.ProviderOllama:
		host := cfg.Host
		if host == "" {
			host = defaultOllamaHost
		}
		model, err := ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(host),
		)
		if err != nil {
			return nil, fmt.Errorf("creating ollama client: %w", err)
		}
		return &llmBackend{name: "ollama", model: model}, nil
	}

	return nil, fmt.Errorf("unknown LLM provider %q: use claude, openai, or ollama", cfg.Provider)
}

// llmBackend adapts a langchaingo model to the Backend interface.
type llmBackend struct {
	name  string
	model llms.Model
}

func (b *llmBackend) Name() string { return b.name }

func (b *llmBackend) Complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, b.model, prompt)
}
