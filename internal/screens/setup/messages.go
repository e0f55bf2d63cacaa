package setup

import (
	"time"

	"github.com/akale/trivio/internal/quizgen"
	"github.com/akale/trivio/internal/store"
)

// quizReadyMsg is sent when generation finishes (or fails).
type quizReadyMsg struct {
	Saved   *store.SavedQuiz
	Outcome quizgen.Outcome
	Err     error
}

// spinnerTickMsg animates the loading spinner while generating.
type spinnerTickMsg time.Time
