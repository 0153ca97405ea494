package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eduwise/eduwise/internal/store"
)

// NewProvider builds the configured backend and wraps it with request
// logging. There is no retry layer: a failed call is reported once.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, cfg.Provider, events, logger), nil
}

// Unavailable returns a provider that fails every call with
// ErrProviderUnavailable wrapping cause. The TUI runs on it when no
// backend is configured so generation reports the setup problem.
func Unavailable(cause error) Provider {
	return unavailable{cause: cause}
}

type unavailable struct{ cause error }

func (u unavailable) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: u.cause}
}

func (u unavailable) ModelID() string { return "none" }
