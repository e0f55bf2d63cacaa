package store

import (
	"context"
	"time"

	"github.com/akale/trivio/internal/answers"
	"github.com/akale/trivio/internal/quiz"
)

// SavedQuiz is a persisted quiz with its presentation metadata.
type SavedQuiz struct {
	ID               string
	Number           int
	Topic            string
	Difficulty       string
	TimeLimitSeconds int
	Questions        []quiz.Question
	CreatedAt        time.Time
}

// QuizRepo manages persisted quizzes.
type QuizRepo interface {
	// Save stores a new quiz. A missing ID is assigned, and a missing
	// Number gets the next free quiz number.
	Save(ctx context.Context, q *SavedQuiz) error

	// Get returns the quiz with the given ID, or nil if not found.
	Get(ctx context.Context, id string) (*SavedQuiz, error)

	// List returns all quizzes, newest first.
	List(ctx context.Context) ([]SavedQuiz, error)

	// Delete removes the quiz with the given ID. Known answers from the
	// quiz are unaffected.
	Delete(ctx context.Context, id string) error
}

// AnswerRepo manages the accumulated set of known answers used to steer
// generation away from repeats.
type AnswerRepo interface {
	// Load returns the full known-answer set.
	Load(ctx context.Context) (*answers.Set, error)

	// Add inserts the given normalized answers, ignoring ones already present.
	Add(ctx context.Context, members []string) error

	// Count returns the number of known answers.
	Count(ctx context.Context) (int, error)

	// Clear removes all known answers.
	Clear(ctx context.Context) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMUsage aggregates LLM request events for reporting.
type LLMUsage struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts controls event listing.
type QueryOpts struct {
	// Limit caps the number of returned events. Zero means no limit.
	Limit int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns recorded events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// Usage returns aggregate counts across all recorded events.
	Usage(ctx context.Context) (LLMUsage, error)
}
