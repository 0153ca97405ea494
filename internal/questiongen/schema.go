package questiongen

import "github.com/eduwise/eduwise/internal/llm"

// BatchSchema defines the JSON schema for a batch of multiple-choice
// questions. Vendors that reject the array and string bounds get a
// stripped copy; the full schema is still enforced on every response.
var BatchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of multiple-choice questions with four options, the correct label and a short explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"minLength":   1,
							"description": "The question prompt, clear and self-contained",
						},
						"options": map[string]any{
							"type":        "array",
							"minItems":    4,
							"maxItems":    4,
							"uniqueItems": true,
							"items": map[string]any{
								"type":      "string",
								"minLength": 1,
							},
							"description": "Exactly 4 distinct answer options without label prefixes",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"enum":        []any{"A", "B", "C", "D"},
							"description": "Position of the correct option: A for the first, D for the last",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences on why the correct option is right",
						},
					},
					"required":             []any{"question", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
