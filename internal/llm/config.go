package llm

import (
	"fmt"
	"os"
)

// Config holds LLM provider configuration.
type Config struct {
	// Provider selects the backend: "anthropic", "openai", "gemini",
	// "openrouter" or "mock".
	Provider string `toml:"provider"`

	Anthropic  AnthropicConfig  `toml:"anthropic"`
	OpenAI     OpenAIConfig     `toml:"openai"`
	Gemini     GeminiConfig     `toml:"gemini"`
	OpenRouter OpenRouterConfig `toml:"openrouter"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `toml:"base_url"` // Optional, for OpenAI-compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"` // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with default models and no keys.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
	}
}

// ApplyEnv overlays EDUWISE_* variables on cfg. When no provider was
// chosen explicitly, the first vendor key found (Gemini, OpenAI,
// Anthropic, OpenRouter) selects the provider.
func ApplyEnv(cfg Config) Config {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	set(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	set(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	set(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")

	set(&cfg.Anthropic.APIKey, "EDUWISE_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "EDUWISE_ANTHROPIC_MODEL")
	set(&cfg.OpenAI.APIKey, "EDUWISE_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "EDUWISE_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "EDUWISE_OPENAI_BASE_URL")
	set(&cfg.Gemini.APIKey, "EDUWISE_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "EDUWISE_GEMINI_MODEL")
	set(&cfg.OpenRouter.APIKey, "EDUWISE_OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "EDUWISE_OPENROUTER_MODEL")

	if p := os.Getenv("EDUWISE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		return cfg
	}
	if cfg.keyFor(cfg.Provider) == "" {
		for _, p := range []string{"gemini", "openai", "anthropic", "openrouter"} {
			if cfg.keyFor(p) != "" {
				cfg.Provider = p
				break
			}
		}
	}
	return cfg
}

func (c Config) keyFor(provider string) string {
	switch provider {
	case "anthropic":
		return c.Anthropic.APIKey
	case "openai":
		return c.OpenAI.APIKey
	case "gemini":
		return c.Gemini.APIKey
	case "openrouter":
		return c.OpenRouter.APIKey
	}
	return ""
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic", "openai", "gemini", "openrouter":
		if c.keyFor(c.Provider) == "" {
			return fmt.Errorf("no API key for the %s provider (set %s_API_KEY or EDUWISE_%s_API_KEY)",
				c.Provider, envName(c.Provider), envName(c.Provider))
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func envName(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI"
	case "gemini":
		return "GEMINI"
	case "openrouter":
		return "OPENROUTER"
	}
	return "ANTHROPIC"
}
