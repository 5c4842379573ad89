package state

import "github.com/abhisek/estudos/internal/domain"

// State is the full client-visible state. Values are snapshots: slices
// are never mutated in place once a State has been produced.
type State struct {
	StudyPlans       []domain.StudyPlan
	CurrentStudyPlan *domain.StudyPlan
	Quizzes          []domain.Quiz
	CurrentQuiz      *domain.Quiz
	QuizResults      []domain.QuizResult
	SessionID        string
	Loading          bool
	Error            string

	IsAuthenticated bool
	Token           string
	User            *domain.UserProfile
}

// Initial returns the empty state used at start-up and after logout.
func Initial() State {
	return State{}
}

// FindQuiz looks up a quiz of the active plan by id.
func (s State) FindQuiz(id int) (domain.Quiz, bool) {
	for _, q := range s.Quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Quiz{}, false
}

// FindStudyPlan looks up a plan by id.
func (s State) FindStudyPlan(id string) (domain.StudyPlan, bool) {
	for _, p := range s.StudyPlans {
		if p.ID.String() == id {
			return p, true
		}
	}
	return domain.StudyPlan{}, false
}
