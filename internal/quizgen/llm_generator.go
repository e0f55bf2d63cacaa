package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akale/trivio/internal/llm"
	"github.com/akale/trivio/internal/quiz"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   GeneratorConfig
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg GeneratorConfig) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before boundary validation.
type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question           string   `json:"question"`
	Answer             string   `json:"answer"`
	AlternativeAnswers []string `json:"alternative_answers"`
}

// Generate requests a batch of questions and validates it at the
// boundary. Malformed entries are dropped; a batch with no usable entries
// at all is an error.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	system := buildSystemPrompt(input, g.config.MaxPromptAnswers)
	avoidInjected := system != systemPrompt

	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, avoidInjected)},
		},
		Schema:          QuizSchema,
		MaxTokens:       g.config.MaxTokens,
		Temperature:     input.Tuning.Temperature,
		PresencePenalty: input.Tuning.PresencePenalty,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	questions := sanitizeBatch(raw.Questions)
	if len(questions) == 0 {
		if len(raw.Questions) > 0 {
			return nil, fmt.Errorf("response contained %d entries but none matched the required question format", len(raw.Questions))
		}
		return nil, fmt.Errorf("response contained an empty question list")
	}

	return questions, nil
}

// sanitizeBatch trims fields, drops empty alternatives, and skips entries
// that fail the Question invariants. Malformed entries never travel
// further than this boundary.
func sanitizeBatch(raw []questionOutput) []quiz.Question {
	out := make([]quiz.Question, 0, len(raw))
	for _, entry := range raw {
		q := quiz.Question{
			Text:   strings.TrimSpace(entry.Question),
			Answer: strings.TrimSpace(entry.Answer),
		}
		for _, alt := range entry.AlternativeAnswers {
			if trimmed := strings.TrimSpace(alt); trimmed != "" {
				q.Alternatives = append(q.Alternatives, trimmed)
			}
		}
		if err := q.Validate(); err != nil {
			continue
		}
		out = append(out, q)
	}
	return out
}
