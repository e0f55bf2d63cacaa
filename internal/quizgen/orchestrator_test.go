package quizgen

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/akale/trivio/internal/answers"
	"github.com/akale/trivio/internal/quiz"
)

// stubGenerator returns scripted batches in order and records every call.
type stubGenerator struct {
	batches      [][]quiz.Question
	err          error
	repeatLast   bool
	beforeReturn func()
	calls        []GenerateInput
}

func (g *stubGenerator) Generate(_ context.Context, input GenerateInput) ([]quiz.Question, error) {
	g.calls = append(g.calls, input)
	if g.beforeReturn != nil {
		g.beforeReturn()
	}
	if g.err != nil {
		return nil, g.err
	}
	idx := len(g.calls) - 1
	if idx >= len(g.batches) {
		if g.repeatLast && len(g.batches) > 0 {
			return g.batches[len(g.batches)-1], nil
		}
		return nil, fmt.Errorf("stub exhausted after %d calls", len(g.batches))
	}
	return g.batches[idx], nil
}

func qs(answerList ...string) []quiz.Question {
	out := make([]quiz.Question, len(answerList))
	for i, a := range answerList {
		out[i] = quiz.Question{Text: "About " + a + "?", Answer: a}
	}
	return out
}

func testConfig(clk *fakeClock) Config {
	cfg := DefaultConfig()
	if clk != nil {
		cfg.Clock = clk.Now
	}
	return cfg
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestRunFullOnFirstCall(t *testing.T) {
	gen := &stubGenerator{
		batches: [][]quiz.Question{
			qs("Paris", "London", "Paris", "Berlin", "Madrid"),
		},
	}
	o := NewOrchestrator(gen, testConfig(nil))

	res, err := o.Run(context.Background(), Request{Count: 3, Difficulty: DifficultyMedium}, answers.NewSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gen.calls) != 1 {
		t.Fatalf("generator calls = %d, want 1", len(gen.calls))
	}
	if res.Outcome != OutcomeFull {
		t.Errorf("outcome = %v, want full", res.Outcome)
	}
	if res.Requested != 3 {
		t.Errorf("requested = %d, want 3", res.Requested)
	}

	// Duplicate "Paris" is skipped; order of first occurrence preserved.
	want := []string{"Paris", "London", "Berlin"}
	if len(res.Questions) != len(want) {
		t.Fatalf("collected %d questions, want %d", len(res.Questions), len(want))
	}
	for i, w := range want {
		if res.Questions[i].Answer != w {
			t.Errorf("question %d answer = %q, want %q", i, res.Questions[i].Answer, w)
		}
	}
}

func TestRunOverGeneratesFirstCall(t *testing.T) {
	gen := &stubGenerator{batches: [][]quiz.Question{qs("A", "B", "C")}}
	o := NewOrchestrator(gen, testConfig(nil))

	if _, err := o.Run(context.Background(), Request{Count: 3}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ceil(3 * 1.5) = 5
	if got := gen.calls[0].Count; got != 5 {
		t.Errorf("first call count = %d, want 5", got)
	}
}

func TestRunHighCountUsesLargerFactor(t *testing.T) {
	batch := make([]quiz.Question, 0, 50)
	for i := 0; i < 50; i++ {
		batch = append(batch, quiz.Question{Text: "q", Answer: fmt.Sprintf("answer-%d", i)})
	}
	gen := &stubGenerator{batches: [][]quiz.Question{batch}}
	o := NewOrchestrator(gen, testConfig(nil))

	res, err := o.Run(context.Background(), Request{Count: 25}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 25 > high-count threshold of 20, so factor 2.0 applies.
	if got := gen.calls[0].Count; got != 50 {
		t.Errorf("first call count = %d, want 50", got)
	}
	if res.Outcome != OutcomeFull || len(res.Questions) != 25 {
		t.Errorf("outcome = %v with %d questions, want full with 25", res.Outcome, len(res.Questions))
	}
}

func TestRunPropagatesGeneratorError(t *testing.T) {
	genErr := errors.New("rate limited")
	gen := &stubGenerator{err: genErr}
	o := NewOrchestrator(gen, testConfig(nil))

	_, err := o.Run(context.Background(), Request{Count: 3}, nil)
	if !errors.Is(err, genErr) {
		t.Fatalf("error = %v, want %v propagated unchanged", err, genErr)
	}
	if len(gen.calls) != 1 {
		t.Errorf("generator calls = %d, want 1 (no retry on hard failure)", len(gen.calls))
	}
}

func TestRunAllDuplicatesTerminates(t *testing.T) {
	known := answers.NewSet()
	known.Add("Paris")

	gen := &stubGenerator{
		batches:    [][]quiz.Question{qs("Paris")},
		repeatLast: true,
	}
	o := NewOrchestrator(gen, testConfig(nil))

	_, err := o.Run(context.Background(), Request{Count: 3}, known)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("error = %v, want ErrNoQuestions", err)
	}

	// First call plus MaxAdditionalIterations follow-ups.
	if len(gen.calls) != 3 {
		t.Errorf("generator calls = %d, want 3", len(gen.calls))
	}
}

func TestRunAcceptsSmallShortfall(t *testing.T) {
	gen := &stubGenerator{
		batches: [][]quiz.Question{
			qs("A", "B", "C", "D", "E", "F", "G", "H"),
		},
	}
	o := NewOrchestrator(gen, testConfig(nil))

	// 8 of 10 collected = 0.8, exactly on the shortfall threshold:
	// accepted without a second call.
	res, err := o.Run(context.Background(), Request{Count: 10}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gen.calls) != 1 {
		t.Errorf("generator calls = %d, want 1", len(gen.calls))
	}
	if res.Outcome != OutcomePartial {
		t.Errorf("outcome = %v, want partial", res.Outcome)
	}
	if len(res.Questions) != 8 {
		t.Errorf("collected %d, want 8", len(res.Questions))
	}
}

func TestRunIteratesOnLargeShortfall(t *testing.T) {
	gen := &stubGenerator{
		batches: [][]quiz.Question{
			qs("A", "B", "C", "D", "E"),
			qs("F", "G", "H", "I", "J"),
		},
	}
	o := NewOrchestrator(gen, testConfig(nil))

	res, err := o.Run(context.Background(), Request{Count: 10}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gen.calls) != 2 {
		t.Fatalf("generator calls = %d, want 2", len(gen.calls))
	}

	// Follow-up asks for ceil(stillNeeded * 1.5) = 8.
	if got := gen.calls[1].Count; got != 8 {
		t.Errorf("second call count = %d, want 8", got)
	}
	if res.Outcome != OutcomeFull || len(res.Questions) != 10 {
		t.Errorf("outcome = %v with %d questions, want full with 10", res.Outcome, len(res.Questions))
	}
}

func TestRunBudgetTimeoutIsSoftWithPartialResult(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	cfg := testConfig(clk)
	cfg.Budget = 30 * time.Second

	gen := &stubGenerator{
		batches:      [][]quiz.Question{qs("A", "B")},
		repeatLast:   true,
		beforeReturn: func() { clk.Advance(31 * time.Second) },
	}
	o := NewOrchestrator(gen, cfg)

	res, err := o.Run(context.Background(), Request{Count: 10}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gen.calls) != 1 {
		t.Errorf("generator calls = %d, want 1 (budget elapsed)", len(gen.calls))
	}
	if res.Outcome != OutcomeTimedOut {
		t.Errorf("outcome = %v, want timedout", res.Outcome)
	}
	if len(res.Questions) != 2 {
		t.Errorf("collected %d, want 2", len(res.Questions))
	}
}

func TestRunBudgetTimeoutWithNothingCollected(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	cfg := testConfig(clk)
	cfg.Budget = 30 * time.Second

	known := answers.NewSet()
	known.Add("A")
	gen := &stubGenerator{
		batches:      [][]quiz.Question{qs("A")},
		repeatLast:   true,
		beforeReturn: func() { clk.Advance(31 * time.Second) },
	}
	o := NewOrchestrator(gen, cfg)

	_, err := o.Run(context.Background(), Request{Count: 5}, known)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("error = %v, want ErrNoQuestions", err)
	}
}

func TestRunNeverMutatesGlobalSet(t *testing.T) {
	known := answers.NewSet()
	known.Add("Paris")

	gen := &stubGenerator{batches: [][]quiz.Question{qs("London", "Berlin", "Madrid")}}
	o := NewOrchestrator(gen, testConfig(nil))

	res, err := o.Run(context.Background(), Request{Count: 2}, known)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if known.Len() != 1 {
		t.Errorf("global set len = %d, want 1 (Run must work on a copy)", known.Len())
	}
	// The session set carries the seed plus every collected answer.
	for _, a := range []string{"Paris", "London", "Berlin"} {
		if !res.AnswerSet.Contains(a) {
			t.Errorf("session set missing %q", a)
		}
	}
}

func TestRunSwitchesToSaturatedTuning(t *testing.T) {
	known := answers.NewSet()
	for i := 0; i < MaxPromptAnswers+1; i++ {
		known.Add(fmt.Sprintf("known-%d", i))
	}

	gen := &stubGenerator{batches: [][]quiz.Question{qs("Fresh")}}
	cfg := testConfig(nil)
	o := NewOrchestrator(gen, cfg)

	if _, err := o.Run(context.Background(), Request{Count: 1}, known); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gen.calls[0].Tuning; got != cfg.SaturatedTuning {
		t.Errorf("tuning = %+v, want saturated %+v", got, cfg.SaturatedTuning)
	}
}

func TestRunRejectsInvalidCount(t *testing.T) {
	o := NewOrchestrator(&stubGenerator{}, testConfig(nil))

	if _, err := o.Run(context.Background(), Request{Count: 0}, nil); err == nil {
		t.Fatal("expected error for count 0")
	}
}
