package quizgen

import (
	"context"

	"github.com/akale/trivio/internal/answers"
	"github.com/akale/trivio/internal/quiz"
)

// Difficulty selects how hard the generated questions should be.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Tuning holds generation parameters forwarded to the LLM. The
// orchestrator switches to a more aggressive tuning once the avoid set
// grows past the prompt-injection limit, to push the model away from
// answers it keeps repeating.
type Tuning struct {
	Temperature     float64
	PresencePenalty float64
}

// GenerateInput is one generation call's context.
type GenerateInput struct {
	// Count is the number of questions to request.
	Count int

	Difficulty Difficulty

	// Topic is optional; empty means general knowledge.
	Topic string

	// Avoid holds answers the generator should not produce again. Small
	// sets are injected into the prompt; large sets are left to
	// downstream filtering.
	Avoid *answers.Set

	Tuning Tuning
}

// Generator produces candidate trivia questions. Implementations validate
// at the boundary: every returned question satisfies quiz.Question's
// invariants. Returned answers are not guaranteed unique; the
// orchestrator filters duplicates.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error)
}
