package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG directory and the working directory at a temp
// dir and clears the variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, k := range []string{
		"EDUWISE_USER", "EDUWISE_DB", "EDUWISE_LOG_FILE", "EDUWISE_LOG_LEVEL", "EDUWISE_FONT_PATH",
		"EDUWISE_MIN_ANSWERED", "EDUWISE_WEIGHTED_QUESTIONS", "EDUWISE_DAY_QUESTIONS", "EDUWISE_TOPIC_QUESTIONS",
		"EDUWISE_LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultUser, cfg.User)
	assert.Equal(t, filepath.Join(dir, "data", "eduwise", "eduwise.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "state", "eduwise", "eduwise.log"), cfg.LogFile)
	assert.Equal(t, 5, cfg.MinAnswered)
	assert.Equal(t, 40, cfg.DayQuestionCount)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
user = "ayse"
min_answered = 3
topic_question_count = 7

[llm]
provider = "openai"

[llm.openai]
model = "gpt"
`), 0o644))
	t.Setenv("EDUWISE_MIN_ANSWERED", "8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ayse", cfg.User)
	assert.Equal(t, 8, cfg.MinAnswered, "environment wins over the file")
	assert.Equal(t, 7, cfg.TopicQuestionCount)
	assert.Equal(t, 10, cfg.WeightedQuestionCount, "keys absent from the file keep defaults")
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "gemini-flash", cfg.LLM.Gemini.Model)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EDUWISE_USER=from_dotenv\nGEMINI_API_KEY=g-key\n"), 0o644))
	// godotenv never overrides variables that are already set, so unset
	// the ones isolate blanked.
	os.Unsetenv("EDUWISE_USER")
	os.Unsetenv("GEMINI_API_KEY")
	t.Cleanup(func() {
		os.Unsetenv("EDUWISE_USER")
		os.Unsetenv("GEMINI_API_KEY")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.User)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	dir := isolate(t)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("user = \n"), 0o644))
	_, err := Load(bad)
	assert.ErrorContains(t, err, "decode config")

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("colour = \"red\"\n"), 0o644))
	_, err = Load(unknown)
	assert.ErrorContains(t, err, "colour")

	t.Setenv("EDUWISE_DAY_QUESTIONS", "many")
	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "EDUWISE_DAY_QUESTIONS")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.User = " "
	cfg.MinAnswered = 0
	cfg.DayQuestionCount = -1
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"user", "min_answered", "day_question_count", "loud"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}
