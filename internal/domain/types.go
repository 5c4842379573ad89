package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// QuestionType identifies how a question is answered.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionOpen           QuestionType = "open"
	QuestionOther          QuestionType = "other"
)

// Answer values the backend expects for true/false questions.
const (
	AnswerTrue  = "Verdadeiro"
	AnswerFalse = "Falso"
)

// UserProfile is the signed-in user as reported by the backend.
type UserProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// StudyPlan is a backend-generated summary of uploaded material.
type StudyPlan struct {
	ID              FlexString          `json:"id" yaml:"id"`
	Title           string              `json:"title" yaml:"title"`
	Summary         string              `json:"summary" yaml:"summary"`
	Topics          []string            `json:"topics" yaml:"topics"`
	KeyConcepts     []string            `json:"key_concepts" yaml:"key_concepts"`
	EstimatedTime   string              `json:"estimated_time" yaml:"estimated_time"`
	StudySchedule   map[string][]string `json:"study_schedule" yaml:"study_schedule"`
	OriginalContent string              `json:"original_content" yaml:"original_content,omitempty"`
	Quizzes         []Quiz              `json:"quizzes" yaml:"quizzes,omitempty"`

	// SessionID correlates quiz submissions with the upload that produced
	// this plan. It is not part of the backend's plan object.
	SessionID string `json:"session_id,omitempty" yaml:"session_id,omitempty"`
}

// FindQuiz returns the plan's quiz with the given id.
func (p StudyPlan) FindQuiz(id int) (Quiz, bool) {
	for _, q := range p.Quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return Quiz{}, false
}

// Quiz is a set of questions belonging to a study plan.
type Quiz struct {
	ID          int        `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Question is a single quiz question.
type Question struct {
	ID       int          `json:"id" yaml:"id"`
	Type     QuestionType `json:"type" yaml:"type"`
	Question string       `json:"question" yaml:"question"`
	Options  []string     `json:"options,omitempty" yaml:"options,omitempty"`
}

// Kind normalizes the question type: empty means multiple choice and any
// unrecognized value is treated as other.
func (q Question) Kind() QuestionType {
	switch q.Type {
	case "":
		return QuestionMultipleChoice
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionOpen:
		return q.Type
	default:
		return QuestionOther
	}
}

// QuizResult is one stored quiz attempt.
type QuizResult struct {
	QuizID    int       `json:"quiz_id"`
	Feedback  Feedback  `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
}

// FlexString decodes a JSON string or number into a string. The backend
// is not consistent about the type of plan and session identifiers.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// Int returns the identifier as an integer when it is numeric.
func (f FlexString) Int() (int, bool) {
	n, err := strconv.Atoi(string(f))
	return n, err == nil
}
