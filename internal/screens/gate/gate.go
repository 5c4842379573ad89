// Package gate wraps protected pages: it shows a spinner while the route
// guard decides, then swaps in the page or sends the user to login.
package gate

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/guard"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screen"
	"github.com/abhisek/estudos/internal/ui/theme"
)

type checkedMsg struct {
	status guard.Status
}

// GateScreen holds a protected page until the guard has checked access.
type GateScreen struct {
	guard   *guard.Guard
	target  func() screen.Screen
	spinner spinner.Model
	status  guard.Status
	done    bool
}

var _ screen.Screen = (*GateScreen)(nil)

// New creates a gate in front of the page built by target. target is only
// called once access is granted.
func New(g *guard.Guard, target func() screen.Screen) *GateScreen {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	return &GateScreen{
		guard:   g,
		target:  target,
		spinner: s,
		status:  g.Initial(),
	}
}

func (s *GateScreen) Init() tea.Cmd {
	if s.status == guard.Authorized {
		return s.resolve(guard.Authorized)
	}
	g := s.guard
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		return checkedMsg{status: g.Check(context.Background())}
	})
}

func (s *GateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkedMsg:
		return s, s.resolve(msg.status)
	case spinner.TickMsg:
		if s.done {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *GateScreen) resolve(status guard.Status) tea.Cmd {
	if s.done {
		return nil
	}
	s.done = true
	s.status = status
	if status != guard.Authorized {
		return router.Navigate(router.PathLogin, router.ModeReset)
	}
	page := s.target()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: page}
	}
}

// Status returns the last known guard status.
func (s *GateScreen) Status() guard.Status {
	return s.status
}

func (s *GateScreen) View(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		s.spinner.View()+" "+theme.Subtitle.Render("Checking your session..."))
}

func (s *GateScreen) Title() string {
	return ""
}
