package quizgen

import (
	"time"
)

// Config holds the orchestration policy. All values are tunable
// constants; DefaultConfig is what the app ships with.
type Config struct {
	// OverGenFactor is applied to the requested count on the first call,
	// compensating for duplicate collisions in the model's output.
	OverGenFactor float64

	// HighCountOverGenFactor replaces OverGenFactor when the requested
	// count exceeds HighCountThreshold, since larger quizzes collide more.
	HighCountOverGenFactor float64
	HighCountThreshold     int

	// IterationOverGenFactor is applied to the remaining shortfall on
	// follow-up calls.
	IterationOverGenFactor float64

	// MinIterationRequest is the floor on follow-up call sizes; asking a
	// model for one or two questions wastes a round trip.
	MinIterationRequest int

	// ShortfallThreshold is the fraction of the requested count that,
	// when reached after the first call, is accepted as good enough
	// rather than spending another call.
	ShortfallThreshold float64

	// MaxAdditionalIterations caps follow-up calls after the first.
	MaxAdditionalIterations int

	// Budget is the wall-clock limit for a whole Run, evaluated at
	// iteration boundaries only. An in-flight call is never cancelled.
	Budget time.Duration

	// PromptAnswerLimit is the largest avoid set that still fits in the
	// prompt. Beyond it the SaturatedTuning takes over.
	PromptAnswerLimit int

	// DefaultTuning and SaturatedTuning are the two generation tunings.
	DefaultTuning   Tuning
	SaturatedTuning Tuning

	// Clock supplies the current time for the budget check. Nil means
	// time.Now.
	Clock func() time.Time
}

// DefaultConfig returns the shipped orchestration policy.
func DefaultConfig() Config {
	return Config{
		OverGenFactor:           1.5,
		HighCountOverGenFactor:  2.0,
		HighCountThreshold:      20,
		IterationOverGenFactor:  1.5,
		MinIterationRequest:     5,
		ShortfallThreshold:      0.8,
		MaxAdditionalIterations: 2,
		Budget:                  90 * time.Second,
		PromptAnswerLimit:       MaxPromptAnswers,
		DefaultTuning:           Tuning{Temperature: 0.7},
		SaturatedTuning:         Tuning{Temperature: 0.9, PresencePenalty: 0.6},
	}
}

// GeneratorConfig controls the LLMGenerator.
type GeneratorConfig struct {
	// MaxTokens is the token budget for one response. Sized for a full
	// over-generated batch, not a single question.
	MaxTokens int

	// MaxPromptAnswers caps how many avoid-list entries are injected
	// into the prompt.
	MaxPromptAnswers int
}

// DefaultGeneratorConfig returns the recommended generator settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxTokens:        8192,
		MaxPromptAnswers: MaxPromptAnswers,
	}
}
