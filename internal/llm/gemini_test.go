package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-lite", "gemini-2.5-flash-lite"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(batchSchema().Definition)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	questions := schema.Properties["questions"]
	if questions == nil || questions.Type != "ARRAY" {
		t.Fatalf("expected ARRAY for questions, got %+v", questions)
	}
	if questions.MinItems == nil || *questions.MinItems != 1 {
		t.Fatalf("expected minItems 1 on questions")
	}

	item := questions.Items
	if len(item.Required) != 4 {
		t.Fatalf("expected 4 required fields, got %d", len(item.Required))
	}
	opts := item.Properties["options"]
	if opts.MinItems == nil || *opts.MinItems != 4 || opts.MaxItems == nil || *opts.MaxItems != 4 {
		t.Fatalf("expected options to be exactly 4 items")
	}
	if got := item.Properties["correct_answer"].Enum; len(got) != 4 {
		t.Fatalf("expected 4 enum values, got %v", got)
	}
}

func TestBuildGeminiSchema_PropertyOrdering(t *testing.T) {
	def := map[string]any{
		"type":             "object",
		"properties":       map[string]any{"b": map[string]any{"type": "string"}, "a": map[string]any{"type": "string"}},
		"propertyOrdering": []any{"b", "a"},
	}
	schema := buildGeminiSchema(def)
	if len(schema.PropertyOrdering) != 2 || schema.PropertyOrdering[0] != "b" {
		t.Fatalf("unexpected ordering %v", schema.PropertyOrdering)
	}
}
