package quizgen

import "github.com/akale/trivio/internal/llm"

// QuizSchema defines the JSON schema for LLM quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "trivia-quiz",
	Description: "A list of trivia questions with canonical and alternative answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The generated trivia questions",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The trivia question text",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The single, most definitive correct answer",
						},
						"alternative_answers": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Common variations, synonyms, or acceptable alternative spellings. Empty if none.",
						},
					},
					"required":             []any{"question", "answer", "alternative_answers"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
