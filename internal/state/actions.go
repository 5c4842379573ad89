package state

import "github.com/abhisek/estudos/internal/domain"

// Kind names a transition.
type Kind int

const (
	KindSetLoading Kind = iota
	KindSetError
	KindClearError
	KindSetCurrentStudyPlan
	KindAddStudyPlan
	KindSetAllStudyPlans
	KindSetQuizzes
	KindSetCurrentQuiz
	KindAddQuizResult
	KindSetSessionID
	KindLoginSuccess
	KindLogout
	KindSetUser
)

var kindNames = [...]string{
	KindSetLoading:          "set-loading",
	KindSetError:            "set-error",
	KindClearError:          "clear-error",
	KindSetCurrentStudyPlan: "set-current-study-plan",
	KindAddStudyPlan:        "add-study-plan",
	KindSetAllStudyPlans:    "set-all-study-plans",
	KindSetQuizzes:          "set-quizzes",
	KindSetCurrentQuiz:      "set-current-quiz",
	KindAddQuizResult:       "add-quiz-result",
	KindSetSessionID:        "set-session-id",
	KindLoginSuccess:        "login-success",
	KindLogout:              "logout",
	KindSetUser:             "set-user",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Action is a transition request. The set of implementations is closed:
// only the types in this file satisfy it.
type Action interface {
	Kind() Kind
	action()
}

type SetLoading struct{ Loading bool }

type SetError struct{ Message string }

type ClearError struct{}

type SetCurrentStudyPlan struct{ Plan *domain.StudyPlan }

type AddStudyPlan struct{ Plan domain.StudyPlan }

type SetAllStudyPlans struct{ Plans []domain.StudyPlan }

type SetQuizzes struct{ Quizzes []domain.Quiz }

type SetCurrentQuiz struct{ Quiz *domain.Quiz }

type AddQuizResult struct{ Result domain.QuizResult }

type SetSessionID struct{ SessionID string }

type LoginSuccess struct{ Token string }

type Logout struct{}

type SetUser struct{ User *domain.UserProfile }

func (SetLoading) Kind() Kind          { return KindSetLoading }
func (SetError) Kind() Kind            { return KindSetError }
func (ClearError) Kind() Kind          { return KindClearError }
func (SetCurrentStudyPlan) Kind() Kind { return KindSetCurrentStudyPlan }
func (AddStudyPlan) Kind() Kind        { return KindAddStudyPlan }
func (SetAllStudyPlans) Kind() Kind    { return KindSetAllStudyPlans }
func (SetQuizzes) Kind() Kind          { return KindSetQuizzes }
func (SetCurrentQuiz) Kind() Kind      { return KindSetCurrentQuiz }
func (AddQuizResult) Kind() Kind       { return KindAddQuizResult }
func (SetSessionID) Kind() Kind        { return KindSetSessionID }
func (LoginSuccess) Kind() Kind        { return KindLoginSuccess }
func (Logout) Kind() Kind              { return KindLogout }
func (SetUser) Kind() Kind             { return KindSetUser }

func (SetLoading) action()          {}
func (SetError) action()            {}
func (ClearError) action()          {}
func (SetCurrentStudyPlan) action() {}
func (AddStudyPlan) action()        {}
func (SetAllStudyPlans) action()    {}
func (SetQuizzes) action()          {}
func (SetCurrentQuiz) action()      {}
func (AddQuizResult) action()       {}
func (SetSessionID) action()        {}
func (LoginSuccess) action()        {}
func (Logout) action()              {}
func (SetUser) action()             {}
