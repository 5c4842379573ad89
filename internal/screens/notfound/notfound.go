package notfound

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screen"
	"github.com/abhisek/estudos/internal/ui/layout"
	"github.com/abhisek/estudos/internal/ui/theme"
)

// NotFoundScreen is shown for paths outside the route table.
type NotFoundScreen struct {
	path string
}

var (
	_ screen.Screen          = (*NotFoundScreen)(nil)
	_ screen.KeyHintProvider = (*NotFoundScreen)(nil)
)

// New creates a NotFoundScreen for path.
func New(path string) *NotFoundScreen {
	return &NotFoundScreen{path: path}
}

func (p *NotFoundScreen) Init() tea.Cmd {
	return nil
}

func (p *NotFoundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return p, router.Navigate(router.PathDashboard, router.ModeReset)
	}
	return p, nil
}

func (p *NotFoundScreen) View(width, height int) string {
	body := theme.Title.Render("404") + "\n\n" +
		theme.Body.Render("Nothing lives at "+p.path) + "\n\n" +
		theme.Hint.Render("press enter to go to the dashboard")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (p *NotFoundScreen) Title() string {
	return "Not found"
}

func (p *NotFoundScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "enter", Description: "Dashboard"},
		{Key: "esc", Description: "Back"},
	}
}
