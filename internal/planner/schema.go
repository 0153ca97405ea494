package planner

import "github.com/eduwise/eduwise/internal/llm"

var stringArray = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// PathSchema defines the JSON schema for the learning path step.
var PathSchema = &llm.Schema{
	Name:        "learning-path",
	Description: "The topics and subtopics of a subject and the prerequisites between them",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic":     map[string]any{"type": "string", "minLength": 1},
						"subtopics": stringArray,
					},
					"required":             []any{"topic", "subtopics"},
					"additionalProperties": false,
				},
				"description": "Every core topic of the subject, in learning order",
			},
			"links": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic":         map[string]any{"type": "string"},
						"prerequisites": stringArray,
					},
					"required":             []any{"topic", "prerequisites"},
					"additionalProperties": false,
				},
				"description": "For each topic, the topics that must be learned first",
			},
		},
		"required":             []any{"topics", "links"},
		"additionalProperties": false,
	},
}

// ScheduleSchema defines the JSON schema for the day-by-day step.
var ScheduleSchema = &llm.Schema{
	Name:        "study-schedule",
	Description: "A day-by-day study schedule",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"schedule": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"day":      map[string]any{"type": "integer", "minimum": 1},
						"date":     map[string]any{"type": "string", "description": "YYYY-MM-DD"},
						"topic":    map[string]any{"type": "string"},
						"subtopic": map[string]any{"type": "string"},
						"activity": map[string]any{
							"type":        "string",
							"description": "One of: video, reading, quiz, review, practice",
						},
						"task":     map[string]any{"type": "string", "description": "A concrete task, e.g. write 10 sentences"},
						"review":   map[string]any{"type": "boolean"},
						"practice": map[string]any{"type": "boolean"},
					},
					"required":             []any{"day", "date", "topic", "subtopic", "activity", "task", "review", "practice"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"schedule"},
		"additionalProperties": false,
	},
}
