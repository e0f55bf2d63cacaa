// Package quiz runs a timed trivia session: a fixed question list, a
// countdown recomputed from absolute wall-clock time, and free-text
// answer submission with exact-then-fuzzy matching.
package quiz

import (
	"time"

	"github.com/akale/trivio/internal/match"
)

// Phase is the lifecycle state of a Session.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRunning
	PhaseCompleted
	PhaseTimedUp
	PhaseGivenUp
	PhaseAborted
)

// Terminal reports whether no further transition can leave this phase.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseCompleted, PhaseTimedUp, PhaseGivenUp, PhaseAborted:
		return true
	}
	return false
}

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseCompleted:
		return "completed"
	case PhaseTimedUp:
		return "timeup"
	case PhaseGivenUp:
		return "givenup"
	case PhaseAborted:
		return "aborted"
	}
	return "unknown"
}

// SubmitStatus classifies the outcome of a Submit call.
type SubmitStatus int

const (
	// SubmitMatched means the submission matched an unanswered question.
	SubmitMatched SubmitStatus = iota

	// SubmitIncorrect means the submission matched nothing.
	SubmitIncorrect

	// SubmitEmpty means the submission was empty after normalization.
	// Not an error and not incorrect; hosts should give no feedback.
	SubmitEmpty

	// SubmitEnded means the session is not running. Timing races between
	// user input and the countdown land here instead of erroring.
	SubmitEnded
)

// SubmitResult is returned from Session.Submit.
type SubmitResult struct {
	Status SubmitStatus

	// QuestionIndex and CanonicalAnswer are set when Status is
	// SubmitMatched. CanonicalAnswer is always the question's canonical
	// answer, even when an alternative or fuzzy variant matched.
	QuestionIndex   int
	CanonicalAnswer string
}

// SessionConfig configures a Session.
type SessionConfig struct {
	// TimeLimitSeconds is the countdown length. Must be > 0.
	TimeLimitSeconds int

	// Policy is the fuzzy-matching policy. Zero value is the normative
	// strict-numeric policy.
	Policy match.Policy

	// Clock supplies the current time. Nil means time.Now. Tests inject
	// a fake clock to drive the countdown deterministically.
	Clock func() time.Time

	// OnTick is invoked with the remaining seconds on Start and on every
	// Tick. May be nil.
	OnTick func(remainingSeconds int)

	// OnEnd is invoked exactly once when the session reaches a terminal
	// phase. May be nil.
	OnEnd func(reason Phase)
}

// Stats is a point-in-time read of session progress.
type Stats struct {
	AnsweredCount    int
	TotalCount       int
	RemainingSeconds int
	Phase            Phase
}

// Session owns a quiz run. It is a single-owner object: the host drives
// Start, Tick, and Submit from one goroutine, so no locking is needed.
type Session struct {
	questions []Question
	cfg       SessionConfig
	clock     func() time.Time

	phase       Phase
	startedAt   time.Time
	remaining   int
	userAnswers []string // canonical answer per index, "" = unanswered
	unanswered  map[int]struct{}
	endFired    bool
}

// NewSession creates a session over a fixed question list in phase Ready.
func NewSession(questions []Question, cfg SessionConfig) *Session {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	unanswered := make(map[int]struct{}, len(questions))
	for i := range questions {
		unanswered[i] = struct{}{}
	}

	return &Session{
		questions:   questions,
		cfg:         cfg,
		clock:       clock,
		phase:       PhaseReady,
		remaining:   cfg.TimeLimitSeconds,
		userAnswers: make([]string, len(questions)),
		unanswered:  unanswered,
	}
}

// Start begins the countdown. Valid only from Ready; any other phase is a
// no-op; a running timer is never restarted implicitly.
func (s *Session) Start() {
	if s.phase != PhaseReady {
		return
	}
	s.phase = PhaseRunning
	s.startedAt = s.clock()
	s.remaining = s.cfg.TimeLimitSeconds
	if s.cfg.OnTick != nil {
		s.cfg.OnTick(s.remaining)
	}
}

// Tick recomputes the remaining seconds from the absolute elapsed time
// since Start, so slow or coalesced ticks never drift the countdown.
// Reaching zero ends the session with PhaseTimedUp. No-op unless running.
func (s *Session) Tick() {
	if s.phase != PhaseRunning {
		return
	}

	elapsed := int(s.clock().Sub(s.startedAt) / time.Second)
	s.remaining = s.cfg.TimeLimitSeconds - elapsed
	if s.remaining < 0 {
		s.remaining = 0
	}

	if s.cfg.OnTick != nil {
		s.cfg.OnTick(s.remaining)
	}

	if s.remaining <= 0 {
		s.end(PhaseTimedUp)
	}
}

// Submit evaluates a raw free-text answer against every unanswered
// question. Matching runs in two passes so an exact match is never
// shadowed by a coincidental fuzzy hit on a different question:
//
// Pass 1 checks the normalized submission for exact equality with each
// unanswered question's canonical answer and alternatives, in index
// order; the lowest matching index wins.
//
// Pass 2 runs only when pass 1 found nothing, applying the fuzzy policy
// to each question's [canonical, alternatives...] targets in order; the
// first accepted pair wins.
func (s *Session) Submit(rawAnswer string) SubmitResult {
	if s.phase != PhaseRunning || s.remaining <= 0 {
		return SubmitResult{Status: SubmitEnded}
	}

	submission := match.Normalize(rawAnswer)
	if submission == "" {
		return SubmitResult{Status: SubmitEmpty}
	}

	// Pass 1: exact.
	for i, q := range s.questions {
		if _, open := s.unanswered[i]; !open {
			continue
		}
		if submission == match.Normalize(q.Answer) {
			return s.record(i)
		}
		for _, alt := range q.Alternatives {
			if submission == match.Normalize(alt) {
				return s.record(i)
			}
		}
	}

	// Pass 2: fuzzy.
	for i, q := range s.questions {
		if _, open := s.unanswered[i]; !open {
			continue
		}
		for _, target := range append([]string{q.Answer}, q.Alternatives...) {
			t := match.Normalize(target)
			if t == "" {
				continue
			}
			if s.cfg.Policy.Acceptable(submission, t) {
				return s.record(i)
			}
		}
	}

	return SubmitResult{Status: SubmitIncorrect}
}

// record is the single mutation point for the answer state, keeping the
// unanswered-index cache and the answer slice in lockstep.
func (s *Session) record(index int) SubmitResult {
	canonical := s.questions[index].Answer
	s.userAnswers[index] = canonical
	delete(s.unanswered, index)

	if len(s.unanswered) == 0 {
		s.end(PhaseCompleted)
	}

	return SubmitResult{
		Status:          SubmitMatched,
		QuestionIndex:   index,
		CanonicalAnswer: canonical,
	}
}

// GiveUp ends the session with PhaseGivenUp. Valid only while running.
func (s *Session) GiveUp() {
	if s.phase != PhaseRunning {
		return
	}
	s.end(PhaseGivenUp)
}

// Abort ends the session with PhaseAborted, used when the host navigates
// away. Never counts as completed for statistics. Safe to call on an
// already-terminal session.
func (s *Session) Abort() {
	if s.phase != PhaseRunning {
		return
	}
	s.end(PhaseAborted)
}

// end moves to a terminal phase and fires OnEnd exactly once. Because the
// phase leaves Running synchronously, a late Tick can never resurrect a
// terminal session.
func (s *Session) end(reason Phase) {
	s.phase = reason
	if s.endFired {
		return
	}
	s.endFired = true
	if s.cfg.OnEnd != nil {
		s.cfg.OnEnd(reason)
	}
}

// Stats returns current progress. Pure read.
func (s *Session) Stats() Stats {
	return Stats{
		AnsweredCount:    len(s.questions) - len(s.unanswered),
		TotalCount:       len(s.questions),
		RemainingSeconds: s.remaining,
		Phase:            s.phase,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Questions returns the fixed question list.
func (s *Session) Questions() []Question {
	return s.questions
}

// UserAnswer returns the recorded canonical answer for a question index
// and whether it has been answered.
func (s *Session) UserAnswer(index int) (string, bool) {
	if index < 0 || index >= len(s.userAnswers) {
		return "", false
	}
	a := s.userAnswers[index]
	return a, a != ""
}

// RemainingSeconds returns the last computed countdown value.
func (s *Session) RemainingSeconds() int {
	return s.remaining
}
