package play

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akale/trivio/internal/quiz"
	"github.com/akale/trivio/internal/router"
	"github.com/akale/trivio/internal/screen"
	"github.com/akale/trivio/internal/store"
	"github.com/akale/trivio/internal/ui/components"
	"github.com/akale/trivio/internal/ui/layout"
	"github.com/akale/trivio/internal/ui/theme"
)

type feedback int

const (
	feedbackNone feedback = iota
	feedbackCorrect
	feedbackIncorrect
)

// PlayScreen runs one quiz session.
type PlayScreen struct {
	saved   store.SavedQuiz
	note    string
	session *quiz.Session
	input   components.TextInput

	flash       feedback
	lastMatched int // question index of the last correct answer
	confirmQuit bool
	showResults bool
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a PlayScreen for the given saved quiz. note is an optional
// banner shown above the questions (e.g. a short-quiz warning).
func New(saved store.SavedQuiz, note string) *PlayScreen {
	s := &PlayScreen{
		saved:       saved,
		note:        note,
		lastMatched: -1,
		input:       components.NewTextInput("Type an answer...", false, 60),
	}
	s.session = quiz.NewSession(saved.Questions, quiz.SessionConfig{
		TimeLimitSeconds: saved.TimeLimitSeconds,
	})
	return s
}

func (p *PlayScreen) Init() tea.Cmd {
	p.session.Start()
	return tea.Batch(p.input.Init(), tickCmd())
}

func (p *PlayScreen) Title() string {
	if p.saved.Topic != "" {
		return fmt.Sprintf("Quiz #%d – %s", p.saved.Number, p.saved.Topic)
	}
	return fmt.Sprintf("Quiz #%d", p.saved.Number)
}

// Status renders the countdown for the header.
func (p *PlayScreen) Status() string {
	if p.session.Phase().Terminal() {
		return ""
	}
	remaining := p.session.RemainingSeconds()
	style := theme.TimerNormal
	if remaining <= 10 {
		style = theme.TimerLow
	}
	return style.Render(fmt.Sprintf("⏱ %d:%02d", remaining/60, remaining%60))
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	if p.showResults {
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	}
	if p.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Give up"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Give up"},
	}
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return p.handleTick()

	case feedbackClearMsg:
		p.flash = feedbackNone
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if !p.session.Phase().Terminal() && !p.confirmQuit {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PlayScreen) handleTick() (screen.Screen, tea.Cmd) {
	if p.session.Phase().Terminal() {
		return p, nil
	}

	p.session.Tick()
	if p.session.Phase().Terminal() {
		p.showResults = true
		return p, nil
	}
	return p, tickCmd()
}

func (p *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.showResults {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if p.confirmQuit {
		switch key {
		case "y", "Y":
			p.confirmQuit = false
			p.session.GiveUp()
			p.showResults = true
		case "n", "N", "esc":
			p.confirmQuit = false
		}
		return p, nil
	}

	switch key {
	case "esc":
		p.confirmQuit = true
		return p, nil
	case "enter":
		return p.submit()
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *PlayScreen) submit() (screen.Screen, tea.Cmd) {
	result := p.session.Submit(p.input.Value())
	p.input.Reset()

	switch result.Status {
	case quiz.SubmitMatched:
		p.flash = feedbackCorrect
		p.lastMatched = result.QuestionIndex
	case quiz.SubmitIncorrect:
		p.flash = feedbackIncorrect
	default:
		// Empty or ended submissions get no feedback.
		return p, nil
	}

	if p.session.Phase().Terminal() {
		p.showResults = true
		return p, nil
	}
	return p, clearFeedbackCmd()
}

func (p *PlayScreen) View(width, height int) string {
	if p.showResults {
		return p.renderResults(width, height)
	}
	if p.confirmQuit {
		content := theme.Body.Render("Give up and reveal the answers?") + "\n\n" +
			theme.Hint.Render("Y to give up, N to keep playing")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}
	return p.renderActive(width, height)
}

func (p *PlayScreen) renderActive(width, height int) string {
	var b strings.Builder

	if p.note != "" {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(p.note))
		b.WriteString("\n\n")
	}

	stats := p.session.Stats()
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%d of %d answered", stats.AnsweredCount, stats.TotalCount)))
	b.WriteString("\n\n")

	b.WriteString(p.renderQuestions(width, false))
	b.WriteString("\n")

	inputLine := "  " + p.input.View()
	switch p.flash {
	case feedbackCorrect:
		inputLine += "  " + theme.Correct.Render("✓ Correct!")
	case feedbackIncorrect:
		inputLine += "  " + theme.Incorrect.Render("✗ Not a match")
	}
	b.WriteString(inputLine)

	return b.String()
}

func (p *PlayScreen) renderResults(width, height int) string {
	stats := p.session.Stats()

	var headline string
	switch p.session.Phase() {
	case quiz.PhaseCompleted:
		headline = theme.Correct.Render("Perfect! Every answer found.")
	case quiz.PhaseTimedUp:
		headline = theme.Incorrect.Render("Time's up!")
	case quiz.PhaseGivenUp:
		headline = theme.Body.Render("Quiz ended.")
	default:
		headline = theme.Body.Render("Quiz over.")
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, headline))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Final score: %d / %d", stats.AnsweredCount, stats.TotalCount)))
	b.WriteString("\n\n")
	b.WriteString(p.renderQuestions(width, true))

	return b.String()
}

// renderQuestions lists the questions. Answered ones show the user's
// matched canonical answer; with reveal, missed answers show dimmed.
func (p *PlayScreen) renderQuestions(width int, reveal bool) string {
	var b strings.Builder
	for i, q := range p.session.Questions() {
		num := fmt.Sprintf("%2d. ", i+1)
		line := num + q.Text

		if answer, ok := p.session.UserAnswer(i); ok {
			style := theme.Correct
			if i == p.lastMatched && !reveal {
				style = style.Underline(true)
			}
			line += "  " + style.Render(answer)
			b.WriteString(theme.Body.Render(line))
		} else if reveal {
			line += "  " + theme.Incorrect.Render(q.Answer)
			b.WriteString(theme.Hint.Render(line))
		} else {
			b.WriteString(theme.Body.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func clearFeedbackCmd() tea.Cmd {
	return tea.Tick(1200*time.Millisecond, func(time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}
