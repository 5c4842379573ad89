package app

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screens/dashboard"
	"github.com/abhisek/estudos/internal/screens/gate"
	"github.com/abhisek/estudos/internal/screens/login"
	"github.com/abhisek/estudos/internal/screens/notfound"
	"github.com/abhisek/estudos/internal/screens/quiz"
	"github.com/abhisek/estudos/internal/screens/register"
	"github.com/abhisek/estudos/internal/screens/upload"
	"github.com/abhisek/estudos/internal/screens/welcome"
	"github.com/abhisek/estudos/internal/state"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type memPlans struct {
	plans map[string][]domain.StudyPlan
}

func (m *memPlans) Save(_ context.Context, owner string, p domain.StudyPlan) error {
	if m.plans == nil {
		m.plans = map[string][]domain.StudyPlan{}
	}
	m.plans[owner] = append(m.plans[owner], p)
	return nil
}

func (m *memPlans) List(_ context.Context, owner string) ([]domain.StudyPlan, error) {
	return m.plans[owner], nil
}

func newOptions(token string) Options {
	return Options{
		Store:   state.NewStore(),
		Gateway: api.NewDemoGateway(),
		Tokens:  auth.NewMemoryTokens(token),
		Plans:   &memPlans{},
	}
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestStartPathResolution(t *testing.T) {
	tests := []struct {
		path string
		want any
	}{
		{"", &gate.GateScreen{}},
		{"/dashboard", &gate.GateScreen{}},
		{"/quiz/1", &gate.GateScreen{}},
		{"/login", &login.LoginScreen{}},
		{"/register", &register.RegisterScreen{}},
		{"/nowhere", &notfound.NotFoundScreen{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			opts := newOptions("")
			opts.StartPath = tt.path
			m := newAppModel(opts)
			assert.IsType(t, tt.want, m.router.Active())
		})
	}
}

func TestSplashFirst(t *testing.T) {
	opts := newOptions("")
	opts.Splash = true
	m := newAppModel(opts)
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
}

func TestAuthenticatedUserSkipsLogin(t *testing.T) {
	opts := newOptions("tok")
	opts.Store.Dispatch(state.LoginSuccess{Token: "tok"})
	opts.StartPath = router.PathLogin
	m := newAppModel(opts)
	assert.IsType(t, &gate.GateScreen{}, m.router.Active())
}

func TestNavigateModes(t *testing.T) {
	m := newAppModel(newOptions(""))
	require.Equal(t, 1, m.router.Depth())

	m, _ = update(m, router.NavigateMsg{Path: router.PathRegister, Mode: router.ModePush})
	assert.Equal(t, 2, m.router.Depth())
	assert.IsType(t, &register.RegisterScreen{}, m.router.Active())

	m, _ = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	// esc emits a pop command; feed it back in
	m, _ = update(m, router.PopScreenMsg{})
	assert.Equal(t, 1, m.router.Depth())

	m, _ = update(m, router.NavigateMsg{Path: router.PathLogin, Mode: router.ModePush})
	m, _ = update(m, router.NavigateMsg{Path: router.PathRegister, Mode: router.ModeReplace})
	assert.Equal(t, 2, m.router.Depth())

	m, _ = update(m, router.NavigateMsg{Path: router.PathLogin, Mode: router.ModeReset})
	assert.Equal(t, 1, m.router.Depth())
	assert.IsType(t, &login.LoginScreen{}, m.router.Active())
}

func TestEscEmitsPop(t *testing.T) {
	m := newAppModel(newOptions(""))
	m, _ = update(m, router.NavigateMsg{Path: router.PathRegister})
	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestFlashReachesLogin(t *testing.T) {
	m := newAppModel(newOptions(""))
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(m, router.NavigateMsg{Path: router.PathLogin, Mode: router.ModeReset, Flash: register.CreatedNotice})
	assert.Contains(t, m.frame(), register.CreatedNotice)
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(newOptions(""))
	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestGateOpensDashboardWithStoredToken(t *testing.T) {
	opts := newOptions("demo-token")
	m := newAppModel(opts)

	// Run the guard check the gate starts in Init.
	cmd := m.Init()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	var replaced bool
	for _, c := range batch {
		if c == nil {
			continue
		}
		msg := c()
		if _, isTick := msg.(spinner.TickMsg); isTick {
			continue
		}
		m, cmd = update(m, msg)
		if cmd == nil {
			continue
		}
		if rep, ok := cmd().(router.ReplaceScreenMsg); ok {
			m, _ = update(m, rep)
			replaced = true
		}
	}
	require.True(t, replaced)
	assert.IsType(t, &dashboard.DashboardScreen{}, m.router.Active())
	assert.True(t, opts.Store.State().IsAuthenticated)

	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.frame(), "demo", "header shows the user")
}

func TestTooSmall(t *testing.T) {
	m := newAppModel(newOptions(""))
	m, _ = update(m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Contains(t, m.frame(), "too small")
}

var (
	escKey = tea.KeyPressMsg{Code: tea.KeyEscape}
	ctrlS  = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
)

// signedIn starts on the dashboard with an authenticated store.
func signedIn(t *testing.T, gw api.Gateway) AppModel {
	t.Helper()
	opts := newOptions("tok")
	opts.Gateway = gw
	opts.Store.DispatchAll(
		state.LoginSuccess{Token: "tok"},
		state.SetUser{User: &domain.UserProfile{Username: "ana"}},
	)
	opts.StartPath = router.PathDashboard
	m := newAppModel(opts)
	return openGate(t, m, m.Init())
}

// openGate feeds the replace message a granted gate emits.
func openGate(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	require.NotNil(t, cmd)
	rep, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	m, _ = update(m, rep)
	return m
}

func push(t *testing.T, m AppModel, path string) AppModel {
	t.Helper()
	m, cmd := update(m, router.NavigateMsg{Path: path, Mode: router.ModePush})
	return openGate(t, m, cmd)
}

func startUpload(t *testing.T, gw *api.MockGateway) (AppModel, tea.Cmd) {
	t.Helper()
	m := signedIn(t, gw)
	require.IsType(t, &dashboard.DashboardScreen{}, m.router.Active())
	m = push(t, m, router.PathUpload)
	require.Equal(t, 2, m.router.Depth())

	page, ok := m.router.Active().(*upload.UploadScreen)
	require.True(t, ok)
	p := filepath.Join(t.TempDir(), "aula.pdf")
	require.NoError(t, os.WriteFile(p, make([]byte, 64), 0o600))
	require.NoError(t, page.AddPaths([]string{p}))

	m, cmd := update(m, ctrlS)
	require.NotNil(t, cmd)
	require.True(t, m.store.State().Loading)
	return m, cmd
}

func uploadGateway() *api.MockGateway {
	return &api.MockGateway{Upload: &api.UploadResult{
		StudyPlan: domain.StudyPlan{ID: "p1", Title: "Redes"},
		Quizzes:   []domain.Quiz{{ID: 1, Title: "Camadas"}},
		SessionID: "s-1",
	}}
}

func TestEscIgnoredWhileUploading(t *testing.T) {
	m, cmd := startUpload(t, uploadGateway())

	m, pop := update(m, escKey)
	assert.Nil(t, pop)
	assert.Equal(t, 2, m.router.Depth())

	m, _ = update(m, cmd())
	assert.False(t, m.store.State().Loading)
	assert.Equal(t, "s-1", m.store.State().SessionID)

	_, pop = update(m, escKey)
	require.NotNil(t, pop, "esc works again once the upload is done")
	assert.Equal(t, router.PopScreenMsg{}, pop())
}

func TestUploadResultAfterPageLeftSettlesStore(t *testing.T) {
	m, cmd := startUpload(t, uploadGateway())

	// Something else takes the page away while the request runs.
	m, _ = update(m, router.PopScreenMsg{})
	require.IsType(t, &dashboard.DashboardScreen{}, m.router.Active())

	m, _ = update(m, cmd())
	st := m.store.State()
	assert.False(t, st.Loading)
	require.NotNil(t, st.CurrentStudyPlan)
	assert.Equal(t, "Redes", st.CurrentStudyPlan.Title)
}

func TestUploadFailureAfterPageLeftSettlesStore(t *testing.T) {
	gw := uploadGateway()
	gw.UploadErr = &api.Error{StatusCode: 502}
	m, cmd := startUpload(t, gw)

	m, _ = update(m, router.PopScreenMsg{})
	m, _ = update(m, cmd())
	assert.False(t, m.store.State().Loading)
	assert.Equal(t, api.GenericMessage, m.store.State().Error)
}

func startQuiz(t *testing.T) (AppModel, tea.Cmd) {
	t.Helper()
	gw := &api.MockGateway{Submit: &api.SubmitResult{Feedback: domain.Feedback{OverallPerformance: "Bom"}}}
	m := signedIn(t, gw)
	essay := domain.Quiz{ID: 7, Title: "Ensaio", Questions: []domain.Question{
		{ID: 1, Type: domain.QuestionOpen, Question: "Explique o encapsulamento."},
	}}
	m.store.DispatchAll(
		state.SetQuizzes{Quizzes: []domain.Quiz{essay}},
		state.SetSessionID{SessionID: "s-1"},
	)
	m = push(t, m, router.QuizPath(7))

	page, ok := m.router.Active().(*quiz.QuizScreen)
	require.True(t, ok)
	page.Answer("Cada camada adiciona um cabeçalho.")

	m, cmd := update(m, ctrlS)
	require.NotNil(t, cmd)
	require.True(t, m.store.State().Loading)
	return m, cmd
}

func TestEscIgnoredWhileSubmittingQuiz(t *testing.T) {
	m, cmd := startQuiz(t)

	m, pop := update(m, escKey)
	assert.Nil(t, pop)
	assert.Equal(t, 2, m.router.Depth())

	m, _ = update(m, cmd())
	assert.False(t, m.store.State().Loading)
	require.Len(t, m.store.State().QuizResults, 1)
}

func TestQuizResultAfterPageLeftSettlesStore(t *testing.T) {
	m, cmd := startQuiz(t)

	m, _ = update(m, router.PopScreenMsg{})
	m, _ = update(m, cmd())
	st := m.store.State()
	assert.False(t, st.Loading)
	require.Len(t, st.QuizResults, 1)
	assert.Equal(t, 7, st.QuizResults[0].QuizID)
}
