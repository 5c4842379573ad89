package dashboard

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/state"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type stubCache struct {
	plans  []domain.StudyPlan
	err    error
	owners []string
}

func (c *stubCache) List(_ context.Context, owner string) ([]domain.StudyPlan, error) {
	c.owners = append(c.owners, owner)
	return c.plans, c.err
}

func pct(v float64) *float64 { return &v }

func signedIn() *state.Store {
	st := state.NewStore()
	st.DispatchAll(
		state.LoginSuccess{Token: "tok"},
		state.SetUser{User: &domain.UserProfile{Username: "ana"}},
	)
	return st
}

func newScreen(st *state.Store, cache PlanCache) (*DashboardScreen, *auth.MemoryTokens) {
	tokens := auth.NewMemoryTokens("tok")
	return New(st, auth.NewSession(st, tokens, &api.MockGateway{}), cache), tokens
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: string(code)}
}

func TestLoadsCachedPlansWhenEmpty(t *testing.T) {
	st := signedIn()
	cache := &stubCache{plans: []domain.StudyPlan{
		{ID: "1", Title: "Redes"},
		{ID: "2", Title: "Sistemas Operacionais"},
	}}
	d, _ := newScreen(st, cache)

	cmd := d.Init()
	require.NotNil(t, cmd)
	d.Update(cmd())

	assert.Equal(t, []string{"ana"}, cache.owners)
	assert.Len(t, st.State().StudyPlans, 2)
	require.Len(t, d.menu.Items, 3)
	assert.Equal(t, "Sistemas Operacionais", d.menu.Items[1].Label, "newest plan first")
}

func TestSkipsCacheWhenPlansInMemory(t *testing.T) {
	st := signedIn()
	st.Dispatch(state.AddStudyPlan{Plan: domain.StudyPlan{ID: "9"}})
	cache := &stubCache{}
	d, _ := newScreen(st, cache)

	assert.Nil(t, d.Init())
	assert.Empty(t, cache.owners)
}

func TestCacheErrorIsNotFatal(t *testing.T) {
	st := signedIn()
	d, _ := newScreen(st, &stubCache{err: errors.New("disk")})
	d.Update(d.Init()())
	assert.Empty(t, st.State().StudyPlans)
	assert.Contains(t, d.View(120, 60), "Hello, ana!")
}

func TestOpenPlanFromMenu(t *testing.T) {
	st := signedIn()
	st.Dispatch(state.SetAllStudyPlans{Plans: []domain.StudyPlan{{ID: "a1", Title: "Redes"}, {Title: "Sem id"}}})
	d, _ := newScreen(st, nil)

	d.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavigateMsg{Path: "/study-plan/1", Mode: router.ModePush}, cmd(),
		"a plan without id is addressed by position")

	d.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavigateMsg{Path: "/study-plan/a1", Mode: router.ModePush}, cmd())
}

func TestNewPlanKey(t *testing.T) {
	d, _ := newScreen(signedIn(), nil)
	_, cmd := d.Update(key('n'))
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavigateMsg{Path: router.PathUpload, Mode: router.ModePush}, cmd())
}

func TestLogout(t *testing.T) {
	st := signedIn()
	d, tokens := newScreen(st, nil)

	_, cmd := d.Update(key('l'))
	require.NotNil(t, cmd)
	_, next := d.Update(cmd())
	require.NotNil(t, next)
	assert.Equal(t, router.NavigateMsg{Path: router.PathLogin, Mode: router.ModeReset}, next())

	assert.False(t, st.State().IsAuthenticated)
	tok, _ := tokens.Load(context.Background())
	assert.Empty(t, tok)
}

func TestMenuFollowsStore(t *testing.T) {
	st := signedIn()
	d, _ := newScreen(st, nil)
	require.Len(t, d.menu.Items, 1)

	st.Dispatch(state.AddStudyPlan{Plan: domain.StudyPlan{ID: "5", Title: "Novo"}})
	d.Update(nil)
	assert.Len(t, d.menu.Items, 2)
}

func TestViewShowsStats(t *testing.T) {
	st := signedIn()
	st.DispatchAll(
		state.AddStudyPlan{Plan: domain.StudyPlan{ID: "1", Title: "Redes"}},
		state.AddQuizResult{Result: domain.QuizResult{QuizID: 1, Feedback: domain.Feedback{
			OverallPerformance: "Bom domínio de camadas",
			QuizEvaluations:    []domain.QuizEvaluation{{Percentage: pct(80)}},
		}}},
	)
	d, _ := newScreen(st, nil)

	view := d.View(140, 80)
	assert.Contains(t, view, "80.0%")
	assert.Contains(t, view, "Test 1")
	assert.Contains(t, view, "Bom domínio de camadas")
	assert.Contains(t, view, "Redes")
}

func TestViewWithoutResults(t *testing.T) {
	d, _ := newScreen(signedIn(), nil)
	assert.Contains(t, d.View(140, 80), "Take a quiz")
}
