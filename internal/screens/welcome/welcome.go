package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screen"
	"github.com/abhisek/estudos/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	phase2End    = 1000 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// Tagline is shown under the banner.
const Tagline = "Study smarter, one plan at a time."

const bookArt = `   _______ _______
  /       Y       \
 /  ~~~~  |  ~~~~  \
/  ~~~~~  |  ~~~~~  \
\_________|_________/`

var sparkleFrames = []string{"✦", "·"}

type tickMsg time.Time

// WelcomeScreen is the start-up splash. Any key skips it; otherwise it
// moves on by itself once the animation has played.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with the screen built
// by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.tickCount++
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			w.elapsed = totalDur
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(bookArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		lines := strings.Split(rendered, "\n")
		lines[0] = s + "  " + lines[0]
		lines[len(lines)-1] = lines[len(lines)-1] + "  " + s
		rendered = strings.Join(lines, "\n")
	}

	sections := []string{rendered}
	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
