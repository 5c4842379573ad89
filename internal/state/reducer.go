package state

import (
	"slices"

	"github.com/abhisek/estudos/internal/domain"
)

// Reduce applies a single action to s and returns the resulting state.
// It has no side effects and never mutates the slices of s. Unrecognized
// actions (including nil) leave the state unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetLoading:
		s.Loading = a.Loading
	case SetError:
		s.Error = a.Message
		s.Loading = false
	case ClearError:
		s.Error = ""
	case SetCurrentStudyPlan:
		s.CurrentStudyPlan = clonePlan(a.Plan)
	case AddStudyPlan:
		s.StudyPlans = append(slices.Clip(s.StudyPlans), a.Plan)
		s.CurrentStudyPlan = clonePlan(&a.Plan)
	case SetAllStudyPlans:
		s.StudyPlans = slices.Clone(a.Plans)
	case SetQuizzes:
		s.Quizzes = slices.Clone(a.Quizzes)
	case SetCurrentQuiz:
		if a.Quiz == nil {
			s.CurrentQuiz = nil
		} else {
			q := *a.Quiz
			s.CurrentQuiz = &q
		}
	case AddQuizResult:
		s.QuizResults = append(slices.Clip(s.QuizResults), a.Result)
	case SetSessionID:
		s.SessionID = a.SessionID
	case LoginSuccess:
		// isAuthenticated implies a token; an empty one is refused.
		if a.Token == "" {
			return s
		}
		s.IsAuthenticated = true
		s.Token = a.Token
		s.Error = ""
	case Logout:
		return Initial()
	case SetUser:
		if a.User == nil {
			s.User = nil
		} else {
			u := *a.User
			s.User = &u
		}
	}
	return s
}

func clonePlan(p *domain.StudyPlan) *domain.StudyPlan {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
