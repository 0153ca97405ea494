package planner

// Config holds plan generation settings.
type Config struct {
	PathMaxTokens     int
	ScheduleMaxTokens int
	Temperature       float64
}

// DefaultConfig returns sensible defaults for plan generation.
func DefaultConfig() Config {
	return Config{
		PathMaxTokens:     4096,
		ScheduleMaxTokens: 16384,
		Temperature:       0.4,
	}
}
