// Package quizrun drives a single quiz attempt: question cursor, answer
// collection and the submission payload.
package quizrun

import (
	"errors"
	"strings"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/domain"
)

// ErrIncomplete is returned by Responses when a question has no answer.
var ErrIncomplete = errors.New("answer every question before submitting")

// Input is the widget used to answer a question.
type Input int

const (
	InputChoice Input = iota
	InputTrueFalse
	InputTextArea
	InputText
)

// InputKind picks the input widget for q.
func InputKind(q domain.Question) Input {
	switch q.Kind() {
	case domain.QuestionMultipleChoice:
		return InputChoice
	case domain.QuestionTrueFalse:
		return InputTrueFalse
	case domain.QuestionOpen:
		return InputTextArea
	default:
		return InputText
	}
}

// Choices returns the selectable answers for choice-style questions.
func Choices(q domain.Question) []string {
	switch InputKind(q) {
	case InputChoice:
		return q.Options
	case InputTrueFalse:
		return []string{domain.AnswerTrue, domain.AnswerFalse}
	default:
		return nil
	}
}

// Attempt holds the answers for one quiz. The zero value is not usable;
// call New.
type Attempt struct {
	quiz    domain.Quiz
	answers map[int]string
	cursor  int
}

// New starts an attempt with every answer blank.
func New(quiz domain.Quiz) *Attempt {
	answers := make(map[int]string, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers[q.ID] = ""
	}
	return &Attempt{quiz: quiz, answers: answers}
}

// Quiz returns the quiz being attempted.
func (a *Attempt) Quiz() domain.Quiz { return a.quiz }

// Len is the number of questions.
func (a *Attempt) Len() int { return len(a.quiz.Questions) }

// Index is the cursor position, starting at 0.
func (a *Attempt) Index() int { return a.cursor }

// Current returns the question under the cursor.
func (a *Attempt) Current() (domain.Question, bool) {
	if a.Len() == 0 {
		return domain.Question{}, false
	}
	return a.quiz.Questions[a.cursor], true
}

// IsFirst reports whether the cursor is on the first question.
func (a *Attempt) IsFirst() bool { return a.cursor == 0 }

// IsLast reports whether the cursor is on the last question.
func (a *Attempt) IsLast() bool { return a.Len() == 0 || a.cursor == a.Len()-1 }

// Next moves forward; it does nothing on the last question.
func (a *Attempt) Next() {
	if !a.IsLast() {
		a.cursor++
	}
}

// Prev moves back; it does nothing on the first question.
func (a *Attempt) Prev() {
	if !a.IsFirst() {
		a.cursor--
	}
}

// SetAnswer records the answer for a question id. Unknown ids are ignored.
func (a *Attempt) SetAnswer(questionID int, answer string) {
	if _, ok := a.answers[questionID]; ok {
		a.answers[questionID] = answer
	}
}

// Answer returns the recorded answer for a question id.
func (a *Attempt) Answer(questionID int) string {
	return a.answers[questionID]
}

// Answered counts non-blank answers.
func (a *Attempt) Answered() int {
	n := 0
	for _, v := range a.answers {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// Complete reports whether every question has a non-blank answer.
func (a *Attempt) Complete() bool {
	return a.Answered() == a.Len()
}

// Progress is (index+1)/len, for the progress bar. 0 for an empty quiz.
func (a *Attempt) Progress() float64 {
	if a.Len() == 0 {
		return 0
	}
	return float64(a.cursor+1) / float64(a.Len())
}

// Responses builds the submission payload in question order. It returns
// ErrIncomplete when any answer is blank.
func (a *Attempt) Responses() ([]api.QuizResponse, error) {
	if a.Len() == 0 || !a.Complete() {
		return nil, ErrIncomplete
	}
	out := make([]api.QuizResponse, 0, a.Len())
	for _, q := range a.quiz.Questions {
		out = append(out, api.QuizResponse{
			QuizID:     a.quiz.ID,
			QuestionID: q.ID,
			UserAnswer: a.answers[q.ID],
		})
	}
	return out, nil
}
