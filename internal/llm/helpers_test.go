package llm

// batchSchema mirrors the shape of a generated question batch.
func batchSchema() *Schema {
	return &Schema{
		Name:        "test-question-batch",
		Description: "A batch of multiple-choice questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{"type": "string", "minLength": 1},
							"options": map[string]any{
								"type":        "array",
								"items":       map[string]any{"type": "string"},
								"minItems":    4,
								"maxItems":    4,
								"uniqueItems": true,
							},
							"correct_answer": map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
							"explanation":    map[string]any{"type": "string"},
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
}

const validBatch = `{"questions":[{"question":"Which word is a verb?","options":["run","table","blue","quickly"],"correct_answer":"A","explanation":"Run is an action."}]}`
