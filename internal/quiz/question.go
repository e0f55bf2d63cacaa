package quiz

import (
	"fmt"
	"strings"
)

// Question is a single trivia question ready for play. Created by the
// generator, immutable thereafter.
type Question struct {
	// Text is the question prompt shown to the player.
	Text string `json:"question"`

	// Answer is the single authoritative correct answer, displayed on
	// reveal and recorded when any accepted variant matches.
	Answer string `json:"answer"`

	// Alternatives are accepted synonyms, variants, and common
	// misspellings. May be empty. Duplicates are permitted.
	Alternatives []string `json:"alternative_answers"`
}

// Validate checks the ingestion invariants: non-empty text, non-empty
// canonical answer, and no empty alternatives. Callers are expected to
// have trimmed fields already.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is empty")
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("canonical answer is empty")
	}
	for i, alt := range q.Alternatives {
		if strings.TrimSpace(alt) == "" {
			return fmt.Errorf("alternative answer %d is empty", i)
		}
	}
	return nil
}
