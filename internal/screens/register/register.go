package register

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screen"
	"github.com/abhisek/estudos/internal/screens/common"
	"github.com/abhisek/estudos/internal/state"
	"github.com/abhisek/estudos/internal/ui/components"
	"github.com/abhisek/estudos/internal/ui/layout"
	"github.com/abhisek/estudos/internal/ui/theme"
)

// CreatedNotice is passed to the login page after a successful sign-up.
const CreatedNotice = "Account created. Sign in to continue."

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
	fieldConfirm
)

// fieldNames maps form positions to RegisterInput field names.
var fieldNames = [...]string{"Username", "Email", "Password", "ConfirmPassword"}

const (
	buttonSubmit = iota
	buttonLogin
)

type resultMsg struct {
	err error
}

// RegisterScreen is the sign-up form.
type RegisterScreen struct {
	session *auth.Session
	store   *state.Store

	form       components.Form
	submitting bool
	message    string
}

var (
	_ screen.Screen          = (*RegisterScreen)(nil)
	_ screen.KeyHintProvider = (*RegisterScreen)(nil)
	_ screen.Busy            = (*RegisterScreen)(nil)
)

// New creates the registration screen.
func New(sess *auth.Session, st *state.Store) *RegisterScreen {
	return &RegisterScreen{
		session: sess,
		store:   st,
		form: components.NewForm(
			[]components.TextInput{
				components.NewTextInput("Username", "3 to 50 characters", false, 50),
				components.NewTextInput("Email", "you@example.com", false, 254),
				components.NewTextInput("Password", "at least 6 characters", true, 128),
				components.NewTextInput("Confirm password", "repeat the password", true, 128),
			},
			components.NewButton("Create account", nil),
			components.NewButton("I already have an account", nil),
		),
	}
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.form.SetFocus(fieldUsername)
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
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

func (s *RegisterScreen) enter() tea.Cmd {
	switch {
	case s.form.FocusedButton() == buttonLogin:
		return router.Navigate(router.PathLogin, router.ModeReplace)
	case s.form.FocusedField() >= 0 && !s.form.OnLastField():
		return s.form.Next()
	default:
		return s.submit()
	}
}

func (s *RegisterScreen) input() auth.RegisterInput {
	return auth.RegisterInput{
		Username:        s.form.Value(fieldUsername),
		Email:           s.form.Value(fieldEmail),
		Password:        s.form.Value(fieldPassword),
		ConfirmPassword: s.form.Value(fieldConfirm),
	}
}

func (s *RegisterScreen) submit() tea.Cmd {
	s.form.ClearErrors()
	s.message = ""

	in := s.input()
	if err := auth.Validate(in); err != nil {
		s.showValidation(err)
		return nil
	}

	s.submitting = true
	common.Begin(s.store)
	sess, st := s.session, s.store
	return func() tea.Msg {
		_, err := sess.Register(context.Background(), in)
		common.End(st)
		return resultMsg{err: err}
	}
}

func (s *RegisterScreen) handleResult(err error) tea.Cmd {
	s.submitting = false
	if err == nil {
		return router.NavigateWithFlash(router.PathLogin, router.ModeReset, CreatedNotice)
	}
	var verr *auth.ValidationError
	if errors.As(err, &verr) {
		s.showValidation(err)
		return nil
	}
	s.message, _ = common.Fail(s.store, nil, err)
	return nil
}

// Busy reports a request in flight.
func (s *RegisterScreen) Busy() bool {
	return s.submitting
}

func (s *RegisterScreen) showValidation(err error) {
	var verr *auth.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for i, name := range fieldNames {
		s.form.SetError(i, verr.For(name))
	}
}

func (s *RegisterScreen) View(width, height int) string {
	w := components.ContentWidth(width)
	if w > 60 {
		w = 60
	}

	body := theme.Subtitle.Render("Create an account to save your study plans.") + "\n\n"
	if s.message != "" {
		body += components.Notice(s.message, true) + "\n\n"
	}
	body += s.form.View()
	if s.submitting {
		body += "\n\n" + theme.Hint.Render("Creating your account...")
	}

	card := components.Card("Sign up", body, w)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *RegisterScreen) Title() string {
	return "Create account"
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "tab", Description: "Next field"},
		{Key: "enter", Description: "Submit"},
		{Key: "ctrl+c", Description: "Quit"},
	}
}
