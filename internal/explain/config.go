package explain

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the defaults for explanation generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.4,
	}
}
