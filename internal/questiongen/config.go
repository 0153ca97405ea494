package questiongen

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for one batch response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPerRequest caps how many questions one LLM call may ask for.
	MaxPerRequest int
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     8192,
		Temperature:   0.7,
		MaxPerRequest: 40,
	}
}
