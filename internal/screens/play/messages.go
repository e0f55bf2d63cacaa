package play

import "time"

// timerTickMsg is sent every second to advance the countdown.
type timerTickMsg time.Time

// feedbackClearMsg removes the correct/incorrect flash after a short delay.
type feedbackClearMsg struct{}
