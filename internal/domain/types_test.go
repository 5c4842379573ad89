package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FlexString
	}{
		{"string", `"abc"`, "abc"},
		{"number", `42`, "42"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexString
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, f)
		})
	}

	var bad FlexString
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

func TestQuestionKind(t *testing.T) {
	assert.Equal(t, QuestionMultipleChoice, Question{}.Kind())
	assert.Equal(t, QuestionTrueFalse, Question{Type: QuestionTrueFalse}.Kind())
	assert.Equal(t, QuestionOpen, Question{Type: QuestionOpen}.Kind())
	assert.Equal(t, QuestionOther, Question{Type: "fill_blank"}.Kind())
}

func TestFeedbackDefaults(t *testing.T) {
	var f Feedback
	assert.Equal(t, 0.0, f.FirstPercent())
	assert.Empty(t, f.Analysis().WeakAreas)

	score, pct := 40.0, 75.0
	f.QuizEvaluations = []QuizEvaluation{{Score: &score, Percentage: &pct}}
	assert.Equal(t, 75.0, f.FirstPercent(), "percentage wins over score")

	f.QuizEvaluations = []QuizEvaluation{{Score: &score}}
	assert.Equal(t, 40.0, f.FirstPercent())

	f.QuizEvaluations = []QuizEvaluation{{}}
	assert.Equal(t, 0.0, f.FirstPercent())
}

func TestFeedbackDecodesBackendPayload(t *testing.T) {
	raw := `{
		"overall_performance": "Bom trabalho",
		"quiz_evaluations": [{
			"percentage": 50,
			"question_evaluations": [
				{"question_id": 1, "user_answer": "Falso", "is_correct": true, "feedback": "ok"},
				{"question_id": 2, "user_answer": "B", "is_correct": false, "feedback": "no"}
			]
		}],
		"performance_analysis": {"strong_areas": ["a"], "weak_areas": [], "improvement_suggestions": ["b"]}
	}`
	var f Feedback
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	assert.Equal(t, 50.0, f.FirstPercent())
	correct, total := f.CorrectCount()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"a"}, f.Analysis().StrongAreas)
}

func TestFindQuiz(t *testing.T) {
	p := StudyPlan{Quizzes: []Quiz{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}}
	q, ok := p.FindQuiz(2)
	require.True(t, ok)
	assert.Equal(t, "B", q.Title)
	_, ok = p.FindQuiz(9)
	assert.False(t, ok)
}
