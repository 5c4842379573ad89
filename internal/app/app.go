package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/guard"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screen"
	"github.com/abhisek/estudos/internal/screens/dashboard"
	"github.com/abhisek/estudos/internal/screens/gate"
	"github.com/abhisek/estudos/internal/screens/login"
	"github.com/abhisek/estudos/internal/screens/notfound"
	"github.com/abhisek/estudos/internal/screens/quiz"
	"github.com/abhisek/estudos/internal/screens/register"
	"github.com/abhisek/estudos/internal/screens/studyplan"
	"github.com/abhisek/estudos/internal/screens/upload"
	"github.com/abhisek/estudos/internal/screens/welcome"
	"github.com/abhisek/estudos/internal/state"
	"github.com/abhisek/estudos/internal/ui/layout"
)

// PlanCache is the per-user study plan cache.
type PlanCache interface {
	Save(ctx context.Context, owner string, plan domain.StudyPlan) error
	List(ctx context.Context, owner string) ([]domain.StudyPlan, error)
}

// Options holds the dependencies of the TUI.
type Options struct {
	Store   *state.Store
	Gateway api.Gateway
	Tokens  auth.TokenStore
	Plans   PlanCache // optional

	// StartPath is the first page; empty means "/".
	StartPath string

	// Splash shows the welcome animation before the first page.
	Splash bool
}

// pages builds screens for paths.
type pages struct {
	store   *state.Store
	gateway api.Gateway
	session *auth.Session
	guard   *guard.Guard
	plans   PlanCache
}

func newPages(opts Options) pages {
	return pages{
		store:   opts.Store,
		gateway: opts.Gateway,
		session: auth.NewSession(opts.Store, opts.Tokens, opts.Gateway),
		guard:   guard.New(opts.Store, opts.Tokens, opts.Gateway),
		plans:   opts.Plans,
	}
}

// resolve returns the screen for path. Protected pages are wrapped in
// the guard screen; the sign-in pages send an authenticated user to the
// dashboard.
func (p pages) resolve(path string) screen.Screen {
	route, params, ok := router.Match(path)
	if !ok {
		return notfound.New(path)
	}

	if !route.Protected {
		if p.store.State().IsAuthenticated {
			return p.resolve(router.PathDashboard)
		}
		if route.Name == router.Register {
			return register.New(p.session, p.store)
		}
		return login.New(p.session, p.store)
	}

	build := func() screen.Screen {
		switch route.Name {
		case router.Upload:
			return upload.New(p.store, p.session, p.gateway, p.planSaver())
		case router.StudyPlan:
			return studyplan.New(p.store, params["id"])
		case router.Quiz:
			return quiz.New(p.store, p.session, p.gateway, params["id"])
		default:
			return dashboard.New(p.store, p.session, p.planLister())
		}
	}
	return gate.New(p.guard, build)
}

// planSaver and planLister keep a nil cache a nil interface.
func (p pages) planSaver() upload.PlanSaver {
	if p.plans == nil {
		return nil
	}
	return p.plans
}

func (p pages) planLister() dashboard.PlanCache {
	if p.plans == nil {
		return nil
	}
	return p.plans
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	pages  pages
	store  *state.Store
	width  int
	height int
}

// newAppModel creates the root model at the start page.
func newAppModel(opts Options) AppModel {
	start := opts.StartPath
	if start == "" {
		start = router.PathRoot
	}
	pg := newPages(opts)

	var first screen.Screen
	if opts.Splash {
		first = welcome.New(func() screen.Screen { return pg.resolve(start) })
	} else {
		first = pg.resolve(start)
	}
	return AppModel{
		router: router.New(first),
		pages:  pg,
		store:  opts.Store,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if b, ok := m.router.Active().(screen.Busy); ok && b.Busy() {
				return m, nil
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case router.NavigateMsg:
		return m, m.navigate(msg)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) navigate(msg router.NavigateMsg) tea.Cmd {
	s := m.pages.resolve(msg.Path)
	if f, ok := s.(screen.Flasher); ok && msg.Flash != "" {
		f.SetFlash(msg.Flash)
	}
	switch msg.Mode {
	case router.ModeReplace:
		return m.router.Replace(s)
	case router.ModeReset:
		return m.router.Reset(s)
	default:
		return m.router.Push(s)
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders the header, the active screen and the footer.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	user := ""
	if u := m.store.State().User; u != nil {
		user = u.Username
	}
	header := layout.RenderHeader(title, user, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "esc", Description: "Back"},
			{Key: "ctrl+c", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "ctrl+c", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Store == nil {
		opts.Store = state.NewStore()
	}
	if opts.Gateway == nil || opts.Tokens == nil {
		return fmt.Errorf("app: gateway and token store are required")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
