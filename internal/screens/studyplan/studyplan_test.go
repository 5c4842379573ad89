package studyplan

import (
	"io"
	"log"
	"os"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/state"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func samplePlan(id, session string) domain.StudyPlan {
	return domain.StudyPlan{
		ID:              domain.FlexString(id),
		Title:           "Redes " + id,
		Summary:         "Modelo OSI e TCP/IP.",
		Topics:          []string{"Camadas", "Protocolos"},
		KeyConcepts:     []string{"Encapsulamento"},
		EstimatedTime:   "3 horas",
		StudySchedule:   map[string][]string{"Dia 2": {"Revisar TCP"}, "Dia 1": {"Ler capítulo 1"}},
		OriginalContent: "texto original da aula",
		SessionID:       session,
		Quizzes: []domain.Quiz{
			{ID: 1, Title: "Camadas", Questions: []domain.Question{{ID: 1}}},
			{ID: 2, Title: "Protocolos"},
		},
	}
}

func TestShowsCurrentPlan(t *testing.T) {
	st := state.NewStore()
	st.Dispatch(state.AddStudyPlan{Plan: samplePlan("1", "s-1")})

	s := New(st, "")
	s.Init()
	require.NotNil(t, s.Plan())

	view := s.View(120, 200)
	for _, want := range []string{"Redes 1", "3 horas", "Modelo OSI", "Camadas", "Encapsulamento", "Ler capítulo 1", "Press o"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "texto original")
}

func TestScheduleSorted(t *testing.T) {
	out := schedule(map[string][]string{"Dia 2": {"b"}, "Dia 1": {"a"}})
	assert.Less(t, indexOf(out, "Dia 1"), indexOf(out, "Dia 2"))
	assert.Empty(t, schedule(nil))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestOpenByIDMakesPlanCurrent(t *testing.T) {
	st := state.NewStore()
	st.DispatchAll(
		state.AddStudyPlan{Plan: samplePlan("1", "s-1")},
		state.AddStudyPlan{Plan: samplePlan("2", "s-2")},
	)

	s := New(st, "1")
	s.Init()

	cur := st.State()
	require.NotNil(t, cur.CurrentStudyPlan)
	assert.Equal(t, "Redes 1", cur.CurrentStudyPlan.Title)
	assert.Equal(t, "s-1", cur.SessionID)
	assert.Len(t, cur.Quizzes, 2)
}

func TestOpenByIndexFallback(t *testing.T) {
	st := state.NewStore()
	st.Dispatch(state.SetAllStudyPlans{Plans: []domain.StudyPlan{
		{Title: "Sem id A"},
		{Title: "Sem id B"},
	}})

	s := New(st, "1")
	s.Init()
	require.NotNil(t, s.Plan())
	assert.Equal(t, "Sem id B", s.Plan().Title)
}

func TestUnknownPlan(t *testing.T) {
	s := New(state.NewStore(), "99")
	s.Init()
	assert.Nil(t, s.Plan())
	assert.Contains(t, s.View(80, 24), "not found")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavigateMsg{Path: router.PathUpload, Mode: router.ModeReplace}, cmd())
}

func TestToggleOriginal(t *testing.T) {
	st := state.NewStore()
	st.Dispatch(state.AddStudyPlan{Plan: samplePlan("1", "s-1")})
	s := New(st, "")
	s.Init()

	s.Update(tea.KeyPressMsg{Code: 'o', Text: "o"})
	assert.Contains(t, s.View(120, 200), "texto original da aula")
	s.Update(tea.KeyPressMsg{Code: 'o', Text: "o"})
	assert.NotContains(t, s.View(120, 200), "texto original da aula")
}

func TestQuizMenu(t *testing.T) {
	st := state.NewStore()
	st.DispatchAll(
		state.AddStudyPlan{Plan: samplePlan("1", "s-1")},
		state.AddQuizResult{Result: domain.QuizResult{QuizID: 2}},
	)
	s := New(st, "")
	s.Init()

	require.Len(t, s.menu.Items, 2)
	assert.NotContains(t, s.menu.Items[0].Label, "✓")
	assert.Contains(t, s.menu.Items[1].Label, "✓")
	assert.Contains(t, s.menu.Items[1].Description, "retake")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavigateMsg{Path: "/quiz/2", Mode: router.ModePush}, cmd())
}

func TestAnsweredMarkRefreshes(t *testing.T) {
	st := state.NewStore()
	st.Dispatch(state.AddStudyPlan{Plan: samplePlan("1", "s-1")})
	s := New(st, "")
	s.Init()
	assert.NotContains(t, s.View(120, 200), "✓")

	st.Dispatch(state.AddQuizResult{Result: domain.QuizResult{QuizID: 1}})
	assert.Contains(t, s.View(120, 200), "✓")
}
