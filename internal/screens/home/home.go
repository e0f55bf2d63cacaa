package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akale/trivio/internal/quizgen"
	"github.com/akale/trivio/internal/router"
	"github.com/akale/trivio/internal/screen"
	"github.com/akale/trivio/internal/screens/quizzes"
	"github.com/akale/trivio/internal/screens/setup"
	"github.com/akale/trivio/internal/store"
	"github.com/akale/trivio/internal/ui/components"
	"github.com/akale/trivio/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu        components.Menu
	genDisabled bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. A nil orchestrator disables quiz
// generation (no LLM provider configured) but saved quizzes stay playable.
func New(orch *quizgen.Orchestrator, st *store.Store) *HomeScreen {
	genDisabled := orch == nil

	items := []components.MenuItem{
		{Label: "NEW QUIZ", Disabled: genDisabled, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(orch, st)}
			}
		}},
		{Label: "SAVED QUIZZES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quizzes.New(st)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:        components.NewMenu(items),
		genDisabled: genDisabled,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("T R I V I O"))
	sections = append(sections, theme.Subtitle.Width(width).Render("Timed trivia, fresh every round"))
	sections = append(sections, "")
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	if h.genDisabled {
		sections = append(sections, "")
		sections = append(sections, theme.Hint.Width(width).Align(lipgloss.Center).
			Render("Set an API key (e.g. OPENAI_API_KEY) to generate new quizzes."))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
