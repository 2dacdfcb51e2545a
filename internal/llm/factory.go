package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/lauralie13/Spy-Academy/internal/logger"
)

// ErrDisabled is returned by NewProvider when no provider is configured.
var ErrDisabled = errors.New("no LLM provider configured")

type builder func(ctx context.Context, cfg Config) (Provider, error)

var builders = map[string]builder{
	"anthropic": func(_ context.Context, cfg Config) (Provider, error) {
		return NewAnthropicProvider(cfg.Anthropic)
	},
	"openai": func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenAIProvider(cfg.OpenAI)
	},
	"openrouter": func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenRouterProvider(cfg.OpenRouter)
	},
	"gemini": func(ctx context.Context, cfg Config) (Provider, error) {
		return NewGeminiProvider(ctx, cfg.Gemini)
	},
	"mock": func(context.Context, Config) (Provider, error) {
		return NewMockProvider(), nil
	},
}

// NewProvider builds the configured provider behind the standard
// middleware: each call is bounded by cfg.Timeout, retried per cfg.Retry,
// and every attempt is logged to events.
func NewProvider(ctx context.Context, cfg Config, events RequestLog, log *logger.Logger) (Provider, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	build, ok := builders[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	base, err := build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return Chain(base,
		WithLogging(cfg.Provider, events, log),
		WithRetry(cfg.Retry),
		WithTimeout(cfg.Timeout),
	), nil
}
