package api

import (
	"context"
	"io"

	"github.com/abhisek/estudos/internal/domain"
)

// Operation names, used for request logging and mock call records.
const (
	OpUploadMaterials = "upload-materials"
	OpSubmitAnswers   = "submit-answers"
	OpRegisterUser    = "register-user"
	OpLoginUser       = "login-user"
	OpGetProfile      = "get-profile"
)

// Gateway is the backend contract. Every method is a single round trip
// with no retry; backend error payloads are returned as *Error.
type Gateway interface {
	UploadMaterials(ctx context.Context, files []Material) (*UploadResult, error)
	SubmitAnswers(ctx context.Context, sessionID string, responses []QuizResponse) (*SubmitResult, error)
	RegisterUser(ctx context.Context, username, email, password string) (*domain.UserProfile, error)
	LoginUser(ctx context.Context, username, password string) (*LoginResult, error)
	GetProfile(ctx context.Context) (*domain.UserProfile, error)
}

// Material is one file sent to the upload endpoint.
type Material struct {
	Name   string
	Reader io.Reader
}

// UploadResult is the backend's answer to an upload.
type UploadResult struct {
	StudyPlan domain.StudyPlan  `json:"study_plan"`
	Quizzes   []domain.Quiz     `json:"quizzes"`
	SessionID domain.FlexString `json:"session_id"`
}

// Plan returns the study plan with the quizzes and session id attached,
// the shape kept in the state store.
func (r UploadResult) Plan() domain.StudyPlan {
	p := r.StudyPlan
	if len(r.Quizzes) > 0 {
		p.Quizzes = r.Quizzes
	}
	p.SessionID = r.SessionID.String()
	return p
}

// QuizResponse is one answered question.
type QuizResponse struct {
	QuizID     int    `json:"quiz_id"`
	QuestionID int    `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

// SubmitResult carries the backend's evaluation.
type SubmitResult struct {
	Feedback domain.Feedback `json:"feedback"`
}

// LoginResult carries the issued credential.
type LoginResult struct {
	Token string `json:"token"`
}

type submitRequest struct {
	QuizResponses []QuizResponse `json:"quiz_responses"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
