package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/estudos/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Flasher is an optional interface for screens that can show a one-off
// notice passed along with the navigation that opened them.
type Flasher interface {
	SetFlash(msg string)
}

// Busy is an optional interface for screens that run an operation the
// user must not leave while it is in flight. The app ignores esc while
// Busy reports true.
type Busy interface {
	Busy() bool
}
