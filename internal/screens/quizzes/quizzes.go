package quizzes

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akale/trivio/internal/router"
	"github.com/akale/trivio/internal/screen"
	"github.com/akale/trivio/internal/screens/play"
	"github.com/akale/trivio/internal/store"
	"github.com/akale/trivio/internal/ui/layout"
	"github.com/akale/trivio/internal/ui/theme"
)

// quizzesLoadedMsg delivers the saved quiz list.
type quizzesLoadedMsg struct {
	Quizzes []store.SavedQuiz
	Err     error
}

// quizDeletedMsg confirms a deletion.
type quizDeletedMsg struct {
	Err error
}

// QuizzesScreen lists saved quizzes to replay or delete.
type QuizzesScreen struct {
	st       *store.Store
	quizzes  []store.SavedQuiz
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*QuizzesScreen)(nil)
var _ screen.KeyHintProvider = (*QuizzesScreen)(nil)

// New creates a new QuizzesScreen.
func New(st *store.Store) *QuizzesScreen {
	return &QuizzesScreen{st: st}
}

func (q *QuizzesScreen) Init() tea.Cmd {
	return q.load()
}

func (q *QuizzesScreen) Title() string {
	return "Saved Quizzes"
}

func (q *QuizzesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (q *QuizzesScreen) load() tea.Cmd {
	st := q.st
	return func() tea.Msg {
		list, err := st.QuizRepo().List(context.Background())
		return quizzesLoadedMsg{Quizzes: list, Err: err}
	}
}

func (q *QuizzesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizzesLoadedMsg:
		q.loaded = true
		if msg.Err != nil {
			q.errMsg = msg.Err.Error()
			return q, nil
		}
		q.quizzes = msg.Quizzes
		if q.selected >= len(q.quizzes) {
			q.selected = len(q.quizzes) - 1
		}
		if q.selected < 0 {
			q.selected = 0
		}
		return q, nil

	case quizDeletedMsg:
		if msg.Err != nil {
			q.errMsg = msg.Err.Error()
			return q, nil
		}
		return q, q.load()

	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizzesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return q, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if q.selected > 0 {
			q.selected--
		}
	case "down", "j":
		if q.selected < len(q.quizzes)-1 {
			q.selected++
		}
	case "enter":
		if q.selected < len(q.quizzes) {
			saved := q.quizzes[q.selected]
			return q, func() tea.Msg {
				return router.PushScreenMsg{Screen: play.New(saved, "")}
			}
		}
	case "d", "D":
		if q.selected < len(q.quizzes) {
			id := q.quizzes[q.selected].ID
			st := q.st
			return q, func() tea.Msg {
				err := st.QuizRepo().Delete(context.Background(), id)
				return quizDeletedMsg{Err: err}
			}
		}
	}
	return q, nil
}

func (q *QuizzesScreen) View(width, height int) string {
	if !q.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading..."))
	}
	if q.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(q.errMsg))
	}
	if len(q.quizzes) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No saved quizzes yet. Generate one from the home screen."))
	}

	var b strings.Builder
	for i, sq := range q.quizzes {
		topic := sq.Topic
		if topic == "" {
			topic = "general knowledge"
		}
		line := fmt.Sprintf("Quiz #%d  %-30s  %s · %d questions · %ds",
			sq.Number, truncate(topic, 30), sq.Difficulty, len(sq.Questions), sq.TimeLimitSeconds)
		if i == q.selected {
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("    " + line))
		}
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, b.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
