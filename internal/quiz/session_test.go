package quiz

import (
	"testing"
	"time"

	"github.com/akale/trivio/internal/match"
)

// fakeClock drives the countdown deterministically in tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestSession(questions []Question, limit int, clk *fakeClock) *Session {
	return NewSession(questions, SessionConfig{
		TimeLimitSeconds: limit,
		Policy:           match.DefaultPolicy(),
		Clock:            clk.Now,
	})
}

func questionSet() []Question {
	return []Question{
		{Text: "Capital of France?", Answer: "Paris", Alternatives: []string{"City of Light"}},
		{Text: "Capital of England?", Answer: "London"},
		{Text: "Author of Hamlet?", Answer: "Shakespeare", Alternatives: []string{"William Shakespeare"}},
	}
}

func TestSessionStartsReady(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questionSet(), 60, clk)

	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %v, want ready", s.Phase())
	}

	// Submitting before Start is a soft "ended" result.
	res := s.Submit("paris")
	if res.Status != SubmitEnded {
		t.Errorf("Submit before Start: status = %v, want SubmitEnded", res.Status)
	}
}

func TestSubmitExactMatch(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questionSet(), 60, clk)
	s.Start()

	res := s.Submit("  PARIS ")
	if res.Status != SubmitMatched {
		t.Fatalf("status = %v, want SubmitMatched", res.Status)
	}
	if res.QuestionIndex != 0 {
		t.Errorf("index = %d, want 0", res.QuestionIndex)
	}
	if res.CanonicalAnswer != "Paris" {
		t.Errorf("canonical = %q, want Paris", res.CanonicalAnswer)
	}

	stats := s.Stats()
	if stats.AnsweredCount != 1 || stats.TotalCount != 3 {
		t.Errorf("stats = %d/%d, want 1/3", stats.AnsweredCount, stats.TotalCount)
	}
}

func TestSubmitAlternativeMatchRecordsCanonical(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questionSet(), 60, clk)
	s.Start()

	res := s.Submit("city of light")
	if res.Status != SubmitMatched || res.QuestionIndex != 0 {
		t.Fatalf("result = %+v, want match on question 0", res)
	}
	if res.CanonicalAnswer != "Paris" {
		t.Errorf("canonical = %q, want Paris", res.CanonicalAnswer)
	}

	got, answered := s.UserAnswer(0)
	if !answered || got != "Paris" {
		t.Errorf("UserAnswer(0) = %q, %t; want Paris, true", got, answered)
	}
}

func TestSubmitFuzzyMatch(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questionSet(), 60, clk)
	s.Start()

	res := s.Submit("shakespear")
	if res.Status != SubmitMatched || res.QuestionIndex != 2 {
		t.Fatalf("result = %+v, want fuzzy match on question 2", res)
	}
	if res.CanonicalAnswer != "Shakespeare" {
		t.Errorf("canonical = %q, want Shakespeare", res.CanonicalAnswer)
	}
}

func TestExactMatchNeverShadowedByFuzzy(t *testing.T) {
	// Question 0's answer is one edit away from the submission, but
	// question 1 matches exactly. The exact pass must win.
	questions := []Question{
		{Text: "q0", Answer: "carrot"},
		{Text: "q1", Answer: "carrots"},
	}
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questions, 60, clk)
	s.Start()

	res := s.Submit("carrots")
	if res.Status != SubmitMatched || res.QuestionIndex != 1 {
		t.Fatalf("result = %+v, want exact match on question 1", res)
	}
}

func TestSubmitIncorrect(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questionSet(), 60, clk)
	s.Start()

	res := s.Submit("tokyo")
	if res.Status != SubmitIncorrect {
		t.Errorf("status = %v, want SubmitIncorrect", res.Status)
	}
	if s.Stats().AnsweredCount != 0 {
		t.Error("incorrect submission must not record an answer")
	}
}

func TestSubmitEmptyIsSoftNoop(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questionSet(), 60, clk)
	s.Start()

	for _, in := range []string{"", "   ", "\t"} {
		res := s.Submit(in)
		if res.Status != SubmitEmpty {
			t.Errorf("Submit(%q): status = %v, want SubmitEmpty", in, res.Status)
		}
	}
	if s.Phase() != PhaseRunning {
		t.Error("empty submission changed phase")
	}
	if s.Stats().AnsweredCount != 0 {
		t.Error("empty submission changed answers")
	}
}

func TestCompletionOnLastAnswer(t *testing.T) {
	var endReason Phase
	endCount := 0

	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := NewSession(questionSet(), SessionConfig{
		TimeLimitSeconds: 60,
		Clock:            clk.Now,
		OnEnd: func(r Phase) {
			endReason = r
			endCount++
		},
	})
	s.Start()

	s.Submit("paris")
	s.Submit("london")
	if s.Phase() != PhaseRunning {
		t.Fatal("session ended before last answer")
	}

	res := s.Submit("shakespeare")
	if res.Status != SubmitMatched {
		t.Fatalf("status = %v, want SubmitMatched", res.Status)
	}
	if s.Phase() != PhaseCompleted {
		t.Errorf("phase = %v, want completed", s.Phase())
	}
	if endReason != PhaseCompleted || endCount != 1 {
		t.Errorf("OnEnd fired %d times with %v, want once with completed", endCount, endReason)
	}
	if s.Stats().AnsweredCount != 3 {
		t.Errorf("answered = %d, want 3", s.Stats().AnsweredCount)
	}
}

func TestTickCountdownAndTimeout(t *testing.T) {
	var ticks []int
	var endReason Phase
	endCount := 0

	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := NewSession([]Question{{Text: "q", Answer: "Rome"}}, SessionConfig{
		TimeLimitSeconds: 5,
		Clock:            clk.Now,
		OnTick:           func(r int) { ticks = append(ticks, r) },
		OnEnd: func(r Phase) {
			endReason = r
			endCount++
		},
	})
	s.Start()

	for i := 0; i < 5; i++ {
		clk.Advance(time.Second)
		s.Tick()
	}

	if s.Phase() != PhaseTimedUp {
		t.Fatalf("phase = %v, want timeup", s.Phase())
	}
	if endReason != PhaseTimedUp || endCount != 1 {
		t.Errorf("OnEnd fired %d times with %v, want once with timeup", endCount, endReason)
	}
	// Start emits the initial tick, then 5 countdown ticks.
	want := []int{5, 4, 3, 2, 1, 0}
	if len(ticks) != len(want) {
		t.Fatalf("ticks = %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("ticks = %v, want %v", ticks, want)
		}
	}

	// A late tick must not resurrect the session.
	clk.Advance(time.Second)
	s.Tick()
	if endCount != 1 {
		t.Error("late tick re-fired OnEnd")
	}
}

func TestTickRecomputesFromWallClock(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questionSet(), 60, clk)
	s.Start()

	// One slow tick after 7 elapsed seconds must not under-count.
	clk.Advance(7 * time.Second)
	s.Tick()

	if got := s.RemainingSeconds(); got != 53 {
		t.Errorf("remaining = %d, want 53", got)
	}
}

func TestStartIsNotImplicitRestart(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questionSet(), 10, clk)
	s.Start()

	clk.Advance(4 * time.Second)
	s.Start() // no-op while running
	s.Tick()

	if got := s.RemainingSeconds(); got != 6 {
		t.Errorf("remaining = %d, want 6 (second Start must not reset the countdown)", got)
	}
}

func TestSubmitAfterTerminalIsEnded(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questionSet(), 60, clk)
	s.Start()
	s.GiveUp()

	before := s.Stats()
	for _, in := range []string{"paris", "london", ""} {
		res := s.Submit(in)
		if res.Status != SubmitEnded {
			t.Errorf("Submit(%q) after terminal: status = %v, want SubmitEnded", in, res.Status)
		}
	}
	after := s.Stats()
	if before != after {
		t.Error("submission after terminal mutated state")
	}
}

func TestGiveUp(t *testing.T) {
	var endReason Phase
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := NewSession(questionSet(), SessionConfig{
		TimeLimitSeconds: 60,
		Clock:            clk.Now,
		OnEnd:            func(r Phase) { endReason = r },
	})

	s.GiveUp() // no-op before start
	if s.Phase() != PhaseReady {
		t.Fatal("GiveUp before Start changed phase")
	}

	s.Start()
	s.GiveUp()
	if s.Phase() != PhaseGivenUp || endReason != PhaseGivenUp {
		t.Errorf("phase = %v, reason = %v, want givenup", s.Phase(), endReason)
	}
}

func TestAbortIdempotent(t *testing.T) {
	endCount := 0
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := NewSession(questionSet(), SessionConfig{
		TimeLimitSeconds: 60,
		Clock:            clk.Now,
		OnEnd:            func(Phase) { endCount++ },
	})
	s.Start()

	s.Abort()
	s.Abort()
	s.GiveUp()

	if s.Phase() != PhaseAborted {
		t.Errorf("phase = %v, want aborted", s.Phase())
	}
	if endCount != 1 {
		t.Errorf("OnEnd fired %d times, want 1", endCount)
	}
}

func TestNumericAnswerNeverFuzzyMatches(t *testing.T) {
	questions := []Question{{Text: "Year the Titanic sank?", Answer: "1912"}}
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := newTestSession(questions, 60, clk)
	s.Start()

	if res := s.Submit("1913"); res.Status != SubmitIncorrect {
		t.Errorf("status = %v, want SubmitIncorrect for off-by-one year", res.Status)
	}
	if res := s.Submit("1912"); res.Status != SubmitMatched {
		t.Errorf("status = %v, want SubmitMatched for exact year", res.Status)
	}
}
