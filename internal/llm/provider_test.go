package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/eduwise/eduwise/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockJSON(map[string]int{"b": 2}),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"questions":[]}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: batchSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	want := &ErrRateLimit{Err: fmt.Errorf("quota")}
	mock := NewMockProvider(MockResponse{Err: want})
	_, err := mock.Generate(context.Background(), Request{})
	if !errors.Is(err, want) {
		t.Fatalf("expected configured error, got %v", err)
	}
}

func TestIsProviderError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&ErrRateLimit{}, true},
		{fmt.Errorf("wrapped: %w", &ErrInvalidResponse{Err: errors.New("x")}), true},
		{&ErrProviderUnavailable{}, true},
		{&ErrMaxTokensExceeded{}, true},
		{errors.New("plain"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsProviderError(tt.err); got != tt.want {
			t.Errorf("IsProviderError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	ctx = WithPurpose(ctx, PurposeQuestionGen)
	if p := PurposeFrom(ctx); p != "question-gen" {
		t.Fatalf("expected 'question-gen', got %q", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, "")); p != "unknown" {
		t.Fatalf("empty purpose: expected 'unknown', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk"}}, false},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("no API key")
	_, err := Unavailable(cause).Generate(context.Background(), Request{})
	if !IsProviderError(err) {
		t.Fatalf("expected a provider error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected the cause to be wrapped, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Run("discovers provider from vendor key", func(t *testing.T) {
		t.Setenv("EDUWISE_LLM_PROVIDER", "")
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "sk-openai")
		cfg := ApplyEnv(DefaultConfig())
		if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-openai" {
			t.Fatalf("got provider %q key %q", cfg.Provider, cfg.OpenAI.APIKey)
		}
	})

	t.Run("explicit provider wins", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-openai")
		t.Setenv("EDUWISE_LLM_PROVIDER", "mock")
		cfg := ApplyEnv(DefaultConfig())
		if cfg.Provider != "mock" {
			t.Fatalf("expected mock, got %q", cfg.Provider)
		}
	})

	t.Run("prefixed key overrides vendor key", func(t *testing.T) {
		t.Setenv("EDUWISE_LLM_PROVIDER", "")
		t.Setenv("GEMINI_API_KEY", "plain")
		t.Setenv("EDUWISE_GEMINI_API_KEY", "prefixed")
		cfg := ApplyEnv(DefaultConfig())
		if cfg.Gemini.APIKey != "prefixed" {
			t.Fatalf("expected prefixed key, got %q", cfg.Gemini.APIKey)
		}
	})
}

type recordingEvents struct {
	got []store.LLMRequestEventData
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	r.got = append(r.got, d)
	return nil
}

func TestLoggingProvider(t *testing.T) {
	events := &recordingEvents{}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 3, OutputTokens: 4}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", events, logger)
	ctx := WithPurpose(context.Background(), "plan-path")

	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hello"}}}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected second call to fail")
	}

	if len(events.got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events.got))
	}
	ok, failed := events.got[0], events.got[1]
	if !ok.Success || ok.Purpose != "plan-path" || ok.InputTokens != 3 || ok.Provider != "mock" {
		t.Fatalf("unexpected success event: %+v", ok)
	}
	if ok.RequestID == "" || ok.RequestID == failed.RequestID {
		t.Fatalf("expected distinct request ids, got %q and %q", ok.RequestID, failed.RequestID)
	}
	if !strings.Contains(ok.RequestBody, "[user]\nhello") {
		t.Fatalf("request body not captured: %q", ok.RequestBody)
	}
	if failed.Success || !strings.Contains(failed.ErrorMessage, "down") {
		t.Fatalf("unexpected failure event: %+v", failed)
	}
	if !strings.Contains(buf.String(), "llm request failed") {
		t.Fatalf("expected failure to be logged, got %q", buf.String())
	}
}
