package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/quizrun"
	"github.com/abhisek/estudos/internal/ui/components"
	"github.com/abhisek/estudos/internal/ui/layout"
	"github.com/abhisek/estudos/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.attempt == nil:
		return renderNotFound(width, height, s.rawID)
	case s.feedback != nil:
		return s.renderResults(width, height)
	default:
		return s.renderQuestion(width, height)
	}
}

func renderNotFound(width, height int, id string) string {
	body := theme.Title.Render("Quiz "+id+" not found") + "\n\n" +
		theme.Hint.Render("Open a study plan and pick one of its quizzes.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	w := components.ContentWidth(width)
	a := s.attempt

	q, ok := a.Current()
	if !ok {
		return renderNotFound(width, height, s.rawID)
	}

	header := fmt.Sprintf("Question %d of %d", a.Index()+1, a.Len())
	progress := components.NewProgressBar(header, a.Progress(), false, w).View()

	var input string
	switch quizrun.InputKind(q) {
	case quizrun.InputChoice, quizrun.InputTrueFalse:
		input = s.choice.View()
	case quizrun.InputTextArea:
		input = s.area.View()
	default:
		input = s.text.View()
	}

	sections := []string{
		progress,
		"",
		components.Card(kindLabel(q), layout.Wrap(q.Question, w-4)+"\n\n"+input, w),
		"",
		theme.Subtitle.Render(fmt.Sprintf("%d of %d answered", a.Answered(), a.Len())),
	}
	switch {
	case s.submitting:
		sections = append(sections, theme.Hint.Render("Submitting your answers..."))
	case s.message != "":
		sections = append(sections, components.Notice(s.message, true))
	case a.Complete():
		sections = append(sections, theme.SuccessText.Render("All answered. Press ctrl+s to submit."))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(layout.Clip(strings.Join(sections, "\n"), 0, height))
}

func kindLabel(q domain.Question) string {
	switch quizrun.InputKind(q) {
	case quizrun.InputChoice:
		return "Multiple choice"
	case quizrun.InputTrueFalse:
		return "True or false"
	case quizrun.InputTextArea:
		return "Open question"
	default:
		return "Question"
	}
}

func (s *QuizScreen) renderResults(width, height int) string {
	w := components.ContentWidth(width)
	inner := w - 4
	fb := s.feedback

	var sections []string
	sections = append(sections, theme.Title.Render("Results"), "")

	if fb.OverallPerformance != "" {
		sections = append(sections, components.Card("Overall performance", layout.Wrap(fb.OverallPerformance, inner), w), "")
	}

	if len(fb.QuizEvaluations) > 0 {
		var lines []string
		for i, e := range fb.QuizEvaluations {
			p := e.Percent()
			lines = append(lines, fmt.Sprintf("Evaluation %d  %s", i+1,
				theme.Score(p).Render(fmt.Sprintf("%.1f%%", p))))
		}
		if correct, total := fb.CorrectCount(); total > 0 {
			lines = append(lines, theme.Subtitle.Render(fmt.Sprintf("%d of %d correct", correct, total)))
		}
		sections = append(sections, components.Card("Score", strings.Join(lines, "\n"), w), "")
	}

	an := fb.Analysis()
	for _, part := range []struct {
		title string
		items []string
	}{
		{"Strengths", an.StrongAreas},
		{"Areas to improve", an.WeakAreas},
		{"Suggestions", an.ImprovementSuggestions},
	} {
		if len(part.items) > 0 {
			sections = append(sections, components.Card(part.title, layout.Wrap(components.Bullets(part.items), inner), w), "")
		}
	}

	if per := s.questionFeedback(inner); per != "" {
		sections = append(sections, components.Card("Question by question", per, w))
	}

	content := strings.Join(sections, "\n")
	maxOffset := max(0, lipgloss.Height(content)-height)
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(layout.Clip(content, s.offset, height))
}

func (s *QuizScreen) questionFeedback(width int) string {
	text := make(map[int]string)
	for _, q := range s.attempt.Quiz().Questions {
		text[q.ID] = q.Question
	}

	var blocks []string
	for _, e := range s.feedback.QuizEvaluations {
		for _, qe := range e.QuestionEvaluations {
			mark := theme.Incorrect.Render("✗")
			if qe.IsCorrect {
				mark = theme.Correct.Render("✓")
			}
			block := mark + " " + layout.Wrap(text[qe.QuestionID], width-2)
			if qe.UserAnswer != "" {
				block += "\n  " + theme.Subtitle.Render("Your answer: "+qe.UserAnswer)
			}
			if qe.Feedback != "" {
				block += "\n  " + layout.Wrap(qe.Feedback, width-2)
			}
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n")
}
