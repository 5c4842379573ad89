package quiz

import (
	"context"
	"errors"
	"strconv"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/quizrun"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screen"
	"github.com/abhisek/estudos/internal/screens/common"
	"github.com/abhisek/estudos/internal/state"
	"github.com/abhisek/estudos/internal/ui/components"
	"github.com/abhisek/estudos/internal/ui/layout"
)

// QuizScreen runs one quiz: a question at a time, then the evaluation.
type QuizScreen struct {
	store   *state.Store
	session *auth.Session
	gateway api.Gateway
	rawID   string

	attempt *quizrun.Attempt
	choice  components.Choice
	area    textarea.Model
	text    components.TextInput

	submitting bool
	message    string
	feedback   *domain.Feedback
	offset     int
	now        func() time.Time
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.Busy            = (*QuizScreen)(nil)
)

// New creates the quiz page for the quiz id taken from the path.
func New(st *state.Store, sess *auth.Session, gw api.Gateway, id string) *QuizScreen {
	return &QuizScreen{
		store:   st,
		session: sess,
		gateway: gw,
		rawID:   id,
		now:     time.Now,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	quiz, ok := s.lookup()
	if !ok {
		return nil
	}
	s.store.Dispatch(state.SetCurrentQuiz{Quiz: &quiz})
	s.attempt = quizrun.New(quiz)
	return s.loadQuestion()
}

// lookup finds the quiz in the active quiz list, then in the current
// plan, then in any plan.
func (s *QuizScreen) lookup() (domain.Quiz, bool) {
	id, err := strconv.Atoi(s.rawID)
	if err != nil {
		return domain.Quiz{}, false
	}
	st := s.store.State()
	if q, ok := st.FindQuiz(id); ok {
		return q, true
	}
	if st.CurrentStudyPlan != nil {
		if q, ok := st.CurrentStudyPlan.FindQuiz(id); ok {
			return q, true
		}
	}
	for _, p := range st.StudyPlans {
		if q, ok := p.FindQuiz(id); ok {
			return q, true
		}
	}
	return domain.Quiz{}, false
}

// Attempt returns the running attempt, or nil when the quiz was not found.
func (s *QuizScreen) Attempt() *quizrun.Attempt {
	return s.attempt
}

// loadQuestion builds the input widget for the current question,
// restoring any answer already given.
func (s *QuizScreen) loadQuestion() tea.Cmd {
	q, ok := s.attempt.Current()
	if !ok {
		return nil
	}
	answer := s.attempt.Answer(q.ID)

	switch quizrun.InputKind(q) {
	case quizrun.InputChoice, quizrun.InputTrueFalse:
		s.choice = components.NewChoice(quizrun.Choices(q))
		s.choice.SetValue(answer)
		return nil
	case quizrun.InputTextArea:
		s.area = textarea.New()
		s.area.Placeholder = "Write your answer..."
		s.area.ShowLineNumbers = false
		s.area.SetWidth(60)
		s.area.SetHeight(6)
		s.area.SetValue(answer)
		return s.area.Focus()
	default:
		s.text = components.NewTextInput("Your answer", "type here", false, 500)
		s.text.SetValue(answer)
		return s.text.Focus()
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		return s, s.handleSubmitted(msg)

	case tea.KeyPressMsg:
		if s.attempt == nil {
			return s, nil
		}
		if s.feedback != nil {
			return s, s.handleResultsKey(msg)
		}
		if s.submitting {
			return s, nil
		}
		switch msg.String() {
		case "ctrl+s":
			return s, s.submit()
		case "tab", "ctrl+n":
			s.message = ""
			s.attempt.Next()
			return s, s.loadQuestion()
		case "shift+tab", "ctrl+p":
			s.message = ""
			s.attempt.Prev()
			return s, s.loadQuestion()
		}
	}

	if s.attempt == nil || s.feedback != nil || s.submitting {
		return s, nil
	}
	return s, s.updateInput(msg)
}

// updateInput forwards msg to the active widget and records the answer.
func (s *QuizScreen) updateInput(msg tea.Msg) tea.Cmd {
	q, ok := s.attempt.Current()
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	switch quizrun.InputKind(q) {
	case quizrun.InputChoice, quizrun.InputTrueFalse:
		s.choice, cmd = s.choice.Update(msg)
		s.attempt.SetAnswer(q.ID, s.choice.Value())
	case quizrun.InputTextArea:
		s.area, cmd = s.area.Update(msg)
		s.attempt.SetAnswer(q.ID, s.area.Value())
	default:
		s.text, cmd = s.text.Update(msg)
		s.attempt.SetAnswer(q.ID, s.text.Value())
	}
	return cmd
}

// Answer records answer for the current question as if it had been
// typed or picked.
func (s *QuizScreen) Answer(answer string) {
	q, ok := s.attempt.Current()
	if !ok {
		return
	}
	switch quizrun.InputKind(q) {
	case quizrun.InputChoice, quizrun.InputTrueFalse:
		s.choice.SetValue(answer)
	case quizrun.InputTextArea:
		s.area.SetValue(answer)
	default:
		s.text.SetValue(answer)
	}
	s.attempt.SetAnswer(q.ID, answer)
}

func (s *QuizScreen) sessionID() string {
	st := s.store.State()
	if st.SessionID != "" {
		return st.SessionID
	}
	if st.CurrentStudyPlan != nil {
		return st.CurrentStudyPlan.SessionID
	}
	return ""
}

func (s *QuizScreen) submit() tea.Cmd {
	responses, err := s.attempt.Responses()
	if errors.Is(err, quizrun.ErrIncomplete) {
		s.message = "Answer every question before submitting."
		return nil
	}

	s.submitting = true
	s.message = ""
	common.Begin(s.store)

	st, sess, gw := s.store, s.session, s.gateway
	sessionID, quizID, now := s.sessionID(), s.attempt.Quiz().ID, s.now
	return func() tea.Msg {
		res, err := gw.SubmitAnswers(context.Background(), sessionID, responses)
		if err != nil {
			msg, unauthorized := common.Settle(st, sess, err)
			return submittedMsg{Err: err, Message: msg, Unauthorized: unauthorized}
		}
		st.Dispatch(state.AddQuizResult{Result: domain.QuizResult{
			QuizID:    quizID,
			Feedback:  res.Feedback,
			Timestamp: now(),
		}})
		common.End(st)
		return submittedMsg{Feedback: res.Feedback}
	}
}

func (s *QuizScreen) handleSubmitted(msg submittedMsg) tea.Cmd {
	s.submitting = false
	if msg.Unauthorized {
		return common.ToLogin()
	}
	if msg.Err != nil {
		s.message = msg.Message
		return nil
	}
	fb := msg.Feedback
	s.feedback = &fb
	s.offset = 0
	return nil
}

// Busy reports a submission in flight.
func (s *QuizScreen) Busy() bool {
	return s.submitting
}

func (s *QuizScreen) handleResultsKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "p":
		return router.Navigate(router.PathStudyPlan, router.ModeReplace)
	case "d":
		return router.Navigate(router.PathDashboard, router.ModeReset)
	case "r":
		s.feedback = nil
		s.attempt = quizrun.New(s.attempt.Quiz())
		return s.loadQuestion()
	case "down", "j", "pgdown":
		s.offset++
	case "up", "k", "pgup":
		s.offset = max(0, s.offset-1)
	}
	return nil
}

func (s *QuizScreen) Title() string {
	if s.attempt != nil && s.attempt.Quiz().Title != "" {
		return s.attempt.Quiz().Title
	}
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.feedback != nil {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "r", Description: "Retake"},
			{Key: "p", Description: "Study plan"},
			{Key: "d", Description: "Dashboard"},
		}
	}
	return []layout.KeyHint{
		{Key: "tab", Description: "Next"},
		{Key: "shift+tab", Description: "Previous"},
		{Key: "ctrl+s", Description: "Submit"},
		{Key: "esc", Description: "Leave"},
	}
}
