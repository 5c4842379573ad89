package login

import (
	"context"
	"errors"
	"log"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screen"
	"github.com/abhisek/estudos/internal/screens/common"
	"github.com/abhisek/estudos/internal/state"
	"github.com/abhisek/estudos/internal/ui/components"
	"github.com/abhisek/estudos/internal/ui/layout"
	"github.com/abhisek/estudos/internal/ui/theme"
)

// InvalidCredentials is shown when the backend rejects the login.
const InvalidCredentials = auth.InvalidCredentials

const (
	fieldUsername = iota
	fieldPassword
)

const (
	buttonSubmit = iota
	buttonRegister
)

type resultMsg struct {
	err error
}

// LoginScreen is the sign-in form.
type LoginScreen struct {
	session *auth.Session
	store   *state.Store

	form       components.Form
	submitting bool
	message    string
	flash      string
}

var (
	_ screen.Screen          = (*LoginScreen)(nil)
	_ screen.KeyHintProvider = (*LoginScreen)(nil)
	_ screen.Flasher         = (*LoginScreen)(nil)
	_ screen.Busy            = (*LoginScreen)(nil)
)

// New creates the login screen.
func New(sess *auth.Session, st *state.Store) *LoginScreen {
	return &LoginScreen{
		session: sess,
		store:   st,
		form: components.NewForm(
			[]components.TextInput{
				components.NewTextInput("Username", "your username", false, 50),
				components.NewTextInput("Password", "••••••", true, 128),
			},
			components.NewButton("Sign in", nil),
			components.NewButton("Create an account", nil),
		),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.form.SetFocus(fieldUsername)
}

// SetFlash shows msg above the form until the next submission.
func (s *LoginScreen) SetFlash(msg string) {
	s.flash = msg
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		return s, s.handleResult(msg.err)

	case tea.KeyPressMsg:
		if s.submitting {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.form.Next()
		case "shift+tab", "up":
			return s, s.form.Prev()
		case "enter":
			return s, s.enter()
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *LoginScreen) enter() tea.Cmd {
	switch {
	case s.form.FocusedButton() == buttonRegister:
		return router.Navigate(router.PathRegister, router.ModeReplace)
	case s.form.FocusedField() == fieldUsername:
		return s.form.Next()
	default:
		return s.submit()
	}
}

func (s *LoginScreen) submit() tea.Cmd {
	s.form.ClearErrors()
	s.message = ""
	s.flash = ""

	in := auth.LoginInput{
		Username: s.form.Value(fieldUsername),
		Password: s.form.Value(fieldPassword),
	}
	if err := auth.Validate(in); err != nil {
		s.showValidation(err)
		return nil
	}

	s.submitting = true
	common.Begin(s.store)
	sess, st := s.session, s.store
	return func() tea.Msg {
		_, err := sess.Login(context.Background(), in)
		common.End(st)
		return resultMsg{err: err}
	}
}

func (s *LoginScreen) handleResult(err error) tea.Cmd {
	s.submitting = false
	if err == nil {
		return router.Navigate(router.PathDashboard, router.ModeReset)
	}

	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		s.showValidation(err)
	case api.IsUnauthorized(err):
		log.Printf("login rejected: %v", err)
		s.message = InvalidCredentials
		s.store.Dispatch(state.SetError{Message: s.message})
	default:
		s.message, _ = common.Fail(s.store, nil, err)
	}
	return nil
}

// Busy reports a request in flight.
func (s *LoginScreen) Busy() bool {
	return s.submitting
}

func (s *LoginScreen) showValidation(err error) {
	var verr *auth.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	s.form.SetError(fieldUsername, verr.For("Username"))
	s.form.SetError(fieldPassword, verr.For("Password"))
}

func (s *LoginScreen) View(width, height int) string {
	w := components.ContentWidth(width)
	if w > 56 {
		w = 56
	}

	body := theme.Subtitle.Render("Sign in to continue studying.") + "\n\n"
	if s.flash != "" {
		body += components.Notice(s.flash, false) + "\n\n"
	}
	if s.message != "" {
		body += components.Notice(s.message, true) + "\n\n"
	}
	body += s.form.View()
	if s.submitting {
		body += "\n\n" + theme.Hint.Render("Signing in...")
	}

	card := components.Card("Welcome back", body, w)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "tab", Description: "Next field"},
		{Key: "enter", Description: "Submit"},
		{Key: "ctrl+c", Description: "Quit"},
	}
}
