// Package config loads settings from defaults, a TOML file, a .env file
// and EDUWISE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/eduwise/eduwise/internal/llm"
)

// DefaultUser owns data when no user is configured.
const DefaultUser = "demo_user"

// Config is the application configuration.
type Config struct {
	User     string `toml:"user"`
	DBPath   string `toml:"db_path"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`

	// MinAnswered is the number of answered questions a topic needs
	// before it is analyzed.
	MinAnswered int `toml:"min_answered"`

	WeightedQuestionCount int `toml:"weighted_question_count"`
	DayQuestionCount      int `toml:"day_question_count"`
	TopicQuestionCount    int `toml:"topic_question_count"`

	// FontPath is an optional TTF font embedded in PDF exports so
	// non-Latin-1 text renders.
	FontPath string `toml:"font_path"`

	LLM llm.Config `toml:"llm"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		User:                  DefaultUser,
		DBPath:                DefaultDBPath(),
		LogFile:               DefaultLogPath(),
		LogLevel:              "info",
		MinAnswered:           5,
		WeightedQuestionCount: 10,
		DayQuestionCount:      40,
		TopicQuestionCount:    10,
		LLM:                   llm.DefaultConfig(),
	}
}

// Load builds the configuration. path names the TOML file; empty means
// DefaultConfigPath. Missing files are not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath()
	}
	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.LLM = llm.ApplyEnv(cfg.LLM)
	return cfg, nil
}

// loadFile overlays the keys present in the TOML file at path onto cfg.
func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat config: %w", err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	str := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(dst *int, key string) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q is not a number", key, v)
		}
		*dst = n
		return nil
	}

	str(&cfg.User, "EDUWISE_USER")
	str(&cfg.DBPath, "EDUWISE_DB")
	str(&cfg.LogFile, "EDUWISE_LOG_FILE")
	str(&cfg.LogLevel, "EDUWISE_LOG_LEVEL")
	str(&cfg.FontPath, "EDUWISE_FONT_PATH")

	return errors.Join(
		num(&cfg.MinAnswered, "EDUWISE_MIN_ANSWERED"),
		num(&cfg.WeightedQuestionCount, "EDUWISE_WEIGHTED_QUESTIONS"),
		num(&cfg.DayQuestionCount, "EDUWISE_DAY_QUESTIONS"),
		num(&cfg.TopicQuestionCount, "EDUWISE_TOPIC_QUESTIONS"),
	)
}

// Validate checks values that would otherwise fail deep inside a command.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.User) == "" {
		errs = append(errs, errors.New("user must not be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if c.MinAnswered < 1 {
		errs = append(errs, fmt.Errorf("min_answered must be at least 1, got %d", c.MinAnswered))
	}
	for _, f := range []struct {
		name string
		n    int
	}{
		{"weighted_question_count", c.WeightedQuestionCount},
		{"day_question_count", c.DayQuestionCount},
		{"topic_question_count", c.TopicQuestionCount},
	} {
		if f.n < 1 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", f.name, f.n))
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
