// Package quizgen assembles a quiz of unique-answer questions from an
// unreliable, non-deterministic generator. It over-generates, filters
// duplicates against the accumulated known-answer set, and iterates on
// shortfall within a wall-clock budget.
package quizgen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/akale/trivio/internal/answers"
	"github.com/akale/trivio/internal/quiz"
)

// ErrNoQuestions means no question with an unused answer was ever
// collected. Terminal; the caller should suggest a different topic or a
// known-answer reset.
var ErrNoQuestions = errors.New("no questions with unused answers could be generated")

// Outcome classifies how a Run ended.
type Outcome string

const (
	// OutcomeFull means the full requested count was collected.
	OutcomeFull Outcome = "full"

	// OutcomePartial means fewer questions than requested were collected
	// before the iteration cap or the shortfall cutoff.
	OutcomePartial Outcome = "partial"

	// OutcomeTimedOut means the wall-clock budget elapsed with at least
	// one question collected.
	OutcomeTimedOut Outcome = "timedout"
)

// Request describes one quiz to generate.
type Request struct {
	Count      int
	Difficulty Difficulty
	Topic      string
}

// Result is the outcome of a Run. AnswerSet is the session working copy
// including every collected answer; the caller merges it into the
// persisted global set after a successful run.
type Result struct {
	Questions []quiz.Question
	AnswerSet *answers.Set
	Outcome   Outcome
	Requested int
}

// Orchestrator drives repeated generator calls to assemble a final
// question list. Strictly sequential: one generator call in flight at a
// time.
type Orchestrator struct {
	gen   Generator
	cfg   Config
	clock func() time.Time
}

// NewOrchestrator creates an Orchestrator with the given generator and
// policy.
func NewOrchestrator(gen Generator, cfg Config) *Orchestrator {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Orchestrator{gen: gen, cfg: cfg, clock: clock}
}

// Run produces up to req.Count questions whose canonical answers are
// pairwise unique and absent from known. The known set itself is never
// mutated; a working copy seeds the run and comes back in the Result.
//
// Generator failures propagate unchanged and abort the loop; iteration
// only addresses shortfall, never hard failure. A budget timeout with at
// least one collected question degrades to OutcomeTimedOut instead of
// failing.
func (o *Orchestrator) Run(ctx context.Context, req Request, known *answers.Set) (*Result, error) {
	if req.Count < 1 {
		return nil, fmt.Errorf("requested count must be >= 1, got %d", req.Count)
	}
	if known == nil {
		known = answers.NewSet()
	}

	session := known.Copy()
	var collected []quiz.Question
	start := o.clock()
	timedOut := false

	for iteration := 0; len(collected) < req.Count && iteration <= o.cfg.MaxAdditionalIterations; iteration++ {
		if o.clock().Sub(start) >= o.cfg.Budget {
			timedOut = true
			break
		}

		tuning := o.cfg.DefaultTuning
		if session.Len() > o.cfg.PromptAnswerLimit {
			tuning = o.cfg.SaturatedTuning
		}

		batch, err := o.gen.Generate(ctx, GenerateInput{
			Count:      o.requestSize(iteration, req.Count, req.Count-len(collected)),
			Difficulty: req.Difficulty,
			Topic:      req.Topic,
			Avoid:      session,
			Tuning:     tuning,
		})
		if err != nil {
			return nil, err
		}

		for _, q := range batch {
			if len(collected) == req.Count {
				break
			}
			if session.Contains(q.Answer) {
				continue
			}
			collected = append(collected, q)
			session.Add(q.Answer)
		}

		// After the first call only: accept a near-complete result
		// rather than spending another call on a small shortfall.
		if iteration == 0 && len(collected) < req.Count {
			if float64(len(collected))/float64(req.Count) >= o.cfg.ShortfallThreshold {
				break
			}
		}
	}

	if len(collected) == 0 {
		return nil, ErrNoQuestions
	}

	outcome := OutcomeFull
	switch {
	case len(collected) == req.Count:
		outcome = OutcomeFull
	case timedOut:
		outcome = OutcomeTimedOut
	default:
		outcome = OutcomePartial
	}

	return &Result{
		Questions: collected,
		AnswerSet: session,
		Outcome:   outcome,
		Requested: req.Count,
	}, nil
}

// requestSize computes how many questions to ask for on a given
// iteration. The first call over-generates proportionally to the full
// request; follow-ups over-generate on the remaining shortfall with a
// floor.
func (o *Orchestrator) requestSize(iteration, requested, stillNeeded int) int {
	if iteration == 0 {
		factor := o.cfg.OverGenFactor
		if requested > o.cfg.HighCountThreshold {
			factor = o.cfg.HighCountOverGenFactor
		}
		n := int(math.Ceil(float64(requested) * factor))
		if n < stillNeeded {
			n = stillNeeded
		}
		return n
	}

	n := int(math.Ceil(float64(stillNeeded) * o.cfg.IterationOverGenFactor))
	if n < o.cfg.MinIterationRequest {
		n = o.cfg.MinIterationRequest
	}
	return n
}
