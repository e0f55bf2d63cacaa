package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akale/trivio/internal/quizgen"
	"github.com/akale/trivio/internal/router"
	"github.com/akale/trivio/internal/screen"
	"github.com/akale/trivio/internal/screens/play"
	"github.com/akale/trivio/internal/store"
	"github.com/akale/trivio/internal/ui/components"
	"github.com/akale/trivio/internal/ui/layout"
	"github.com/akale/trivio/internal/ui/theme"
)

const (
	fieldTopic = iota
	fieldDifficulty
	fieldCount
	fieldTimeLimit
	fieldMax
)

const (
	minCount     = 1
	maxCount     = 50
	minTimeLimit = 10
	maxTimeLimit = 3600
)

var difficulties = []quizgen.Difficulty{
	quizgen.DifficultyEasy,
	quizgen.DifficultyMedium,
	quizgen.DifficultyHard,
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SetupScreen collects quiz parameters and runs generation.
type SetupScreen struct {
	orch *quizgen.Orchestrator
	st   *store.Store

	topic      components.TextInput
	count      components.TextInput
	timeLimit  components.TextInput
	diffIndex  int
	focus      int
	generating bool
	spinner    int
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a new SetupScreen.
func New(orch *quizgen.Orchestrator, st *store.Store) *SetupScreen {
	topic := components.NewTextInput("general knowledge", false, 60)
	count := components.NewTextInput("10", true, 3)
	count.Model.SetValue("10")
	timeLimit := components.NewTextInput("120", true, 4)
	timeLimit.Model.SetValue("120")

	return &SetupScreen{
		orch:      orch,
		st:        st,
		topic:     topic,
		count:     count,
		timeLimit: timeLimit,
		diffIndex: 1, // medium
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.topic.Init()
}

func (s *SetupScreen) Title() string {
	return "New Quiz"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Difficulty"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleQuizReady(msg)

	case spinnerTickMsg:
		if !s.generating {
			return s, nil
		}
		s.spinner = (s.spinner + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToFocused(msg)
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.generating {
		return s, nil
	}

	if s.errMsg != "" {
		s.errMsg = ""
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "down":
		s.focus = (s.focus + 1) % fieldMax
		return s, nil
	case "shift+tab", "up":
		s.focus = (s.focus + fieldMax - 1) % fieldMax
		return s, nil
	case "left":
		if s.focus == fieldDifficulty && s.diffIndex > 0 {
			s.diffIndex--
		}
		return s, nil
	case "right":
		if s.focus == fieldDifficulty && s.diffIndex < len(difficulties)-1 {
			s.diffIndex++
		}
		return s, nil
	case "enter":
		return s.startGeneration()
	}

	return s.forwardToFocused(msg)
}

func (s *SetupScreen) forwardToFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldCount:
		s.count, cmd = s.count.Update(msg)
	case fieldTimeLimit:
		s.timeLimit, cmd = s.timeLimit.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) startGeneration() (screen.Screen, tea.Cmd) {
	count, err := s.count.NumericValue()
	if err != nil || count < minCount || count > maxCount {
		s.errMsg = fmt.Sprintf("Question count must be between %d and %d.", minCount, maxCount)
		return s, nil
	}
	limit, err := s.timeLimit.NumericValue()
	if err != nil || limit < minTimeLimit || limit > maxTimeLimit {
		s.errMsg = fmt.Sprintf("Time limit must be between %d and %d seconds.", minTimeLimit, maxTimeLimit)
		return s, nil
	}

	s.generating = true
	req := quizgen.Request{
		Count:      count,
		Difficulty: difficulties[s.diffIndex],
		Topic:      strings.TrimSpace(s.topic.Value()),
	}

	return s, tea.Batch(s.generate(req, limit), spinnerTick())
}

// generate runs the orchestrator, persists the quiz, and folds the new
// answers into the known set.
func (s *SetupScreen) generate(req quizgen.Request, limitSeconds int) tea.Cmd {
	orch := s.orch
	st := s.st
	return func() tea.Msg {
		ctx := context.Background()

		known, err := st.AnswerRepo().Load(ctx)
		if err != nil {
			return quizReadyMsg{Err: err}
		}

		result, err := orch.Run(ctx, req, known)
		if err != nil {
			return quizReadyMsg{Err: err}
		}

		saved := &store.SavedQuiz{
			Topic:            req.Topic,
			Difficulty:       string(req.Difficulty),
			TimeLimitSeconds: limitSeconds,
			Questions:        result.Questions,
		}
		if err := st.QuizRepo().Save(ctx, saved); err != nil {
			return quizReadyMsg{Err: err}
		}
		if err := st.AnswerRepo().Add(ctx, result.AnswerSet.Members()); err != nil {
			return quizReadyMsg{Err: err}
		}

		return quizReadyMsg{Saved: saved, Outcome: result.Outcome}
	}
}

func (s *SetupScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	s.generating = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	note := ""
	switch msg.Outcome {
	case quizgen.OutcomePartial:
		note = "Could not find enough fresh questions; the quiz is shorter than requested."
	case quizgen.OutcomeTimedOut:
		note = "Generation ran out of time; the quiz is shorter than requested."
	}

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: play.New(*msg.Saved, note)}
	}
}

func (s *SetupScreen) View(width, height int) string {
	if s.generating {
		msg := fmt.Sprintf("%s  Writing your quiz...", spinnerFrames[s.spinner])
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Body.Render(msg))
	}

	if s.errMsg != "" {
		content := theme.Incorrect.Render("Generation failed") + "\n\n" +
			theme.Body.Render(s.errMsg) + "\n\n" +
			theme.Hint.Render("Press any key to go back to the form.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	rows := []string{
		s.renderField(fieldTopic, "Topic", s.topic.View()),
		s.renderField(fieldDifficulty, "Difficulty", s.renderDifficulty()),
		s.renderField(fieldCount, "Questions", s.count.View()),
		s.renderField(fieldTimeLimit, "Time limit (s)", s.timeLimit.View()),
	}

	form := strings.Join(rows, "\n\n")
	card := theme.Card.Width(min(width-4, 64)).Render(form)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *SetupScreen) renderField(index int, label, value string) string {
	style := theme.Unselected
	marker := "  "
	if s.focus == index {
		style = theme.Selected
		marker = "▸ "
	}
	return style.Render(marker+label) + "\n    " + value
}

func (s *SetupScreen) renderDifficulty() string {
	parts := make([]string, 0, len(difficulties))
	for i, d := range difficulties {
		if i == s.diffIndex {
			parts = append(parts, theme.Selected.Render("["+string(d)+"]"))
		} else {
			parts = append(parts, theme.Hint.Render(string(d)))
		}
	}
	return strings.Join(parts, "  ")
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
